package trainer

import (
	"bytes"
	"strings"
	"sync"
)

// LogChannelWriter is an io.Writer that turns written text into lines on a
// channel, for the UI log pane. Partial lines are held until their newline
// arrives. Sends never block: lines are dropped while the channel is full.
type LogChannelWriter struct {
	mu  sync.Mutex
	ch  chan string
	buf bytes.Buffer
}

// NewLogChannelWriter creates a writer and the channel it feeds
func NewLogChannelWriter() *LogChannelWriter {
	return &LogChannelWriter{ch: make(chan string, uiLogChannelCapacity)}
}

// Lines returns the channel to hand to NewUIModel
func (w *LogChannelWriter) Lines() <-chan string {
	return w.ch
}

func (w *LogChannelWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// No newline yet, put the fragment back
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		select {
		case w.ch <- strings.TrimRight(line, "\r\n"):
		default:
		}
	}
	return len(p), nil
}
