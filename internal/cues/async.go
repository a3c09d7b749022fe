package cues

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/lowaak/rep-runner/internal/engine"
	"github.com/lowaak/rep-runner/internal/go_func_utils"
)

// DefaultQueueSize is the number of cues Async buffers before dropping
const DefaultQueueSize = 32

// Async moves cue delivery onto its own goroutine so a slow sink (speech,
// audio devices) never holds up the engine. When the queue is full new cues
// are dropped.
type Async struct {
	next    engine.CueDispatcher
	haptics engine.HapticSink
	logger  *log.Logger

	queue   chan func()
	dropped atomic.Int64

	// Goroutine management
	doneChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewAsync wraps next and haptics. Either may be nil.
func NewAsync(next engine.CueDispatcher, haptics engine.HapticSink, size int, logger *log.Logger) *Async {
	if logger == nil {
		panic("Async: logger cannot be nil")
	}
	if size <= 0 {
		size = DefaultQueueSize
	}
	a := &Async{
		next:     next,
		haptics:  haptics,
		logger:   logger,
		queue:    make(chan func(), size),
		doneChan: make(chan struct{}),
	}
	go_func_utils.SafeGoWG(logger, &a.wg, a.run)
	return a
}

func (a *Async) run() {
	for {
		select {
		case <-a.doneChan:
			return
		case fn := <-a.queue:
			go_func_utils.SafeCall(a.logger, "Async: cue", fn)
		}
	}
}

func (a *Async) enqueue(fn func()) {
	select {
	case a.queue <- fn:
	default:
		if n := a.dropped.Add(1); n == 1 || n%100 == 0 {
			a.logger.Printf("Async: Cue queue full, %d cues dropped", n)
		}
	}
}

// Dropped returns how many cues were discarded because the queue was full
func (a *Async) Dropped() int64 {
	return a.dropped.Load()
}

func (a *Async) PlayTick(secondsRemaining int, phaseID string) {
	if a.next != nil {
		a.enqueue(func() { a.next.PlayTick(secondsRemaining, phaseID) })
	}
}

func (a *Async) PlayStart() {
	if a.next != nil {
		a.enqueue(a.next.PlayStart)
	}
}

func (a *Async) PlayDone() {
	if a.next != nil {
		a.enqueue(a.next.PlayDone)
	}
}

func (a *Async) PlayDoneAndAnnounceNext(name string) {
	if a.next != nil {
		a.enqueue(func() { a.next.PlayDoneAndAnnounceNext(name) })
	}
}

func (a *Async) Speak(text string, priority engine.SpeechPriority, phaseID string, voice engine.VoiceProfile) {
	if a.next != nil {
		a.enqueue(func() { a.next.Speak(text, priority, phaseID, voice) })
	}
}

func (a *Async) Impact(style engine.HapticStyle) {
	if a.haptics != nil {
		a.enqueue(func() { a.haptics.Impact(style) })
	}
}

// CancelPending discards every queued cue. A cue already being delivered
// finishes. The wrapped dispatcher is cancelled too if it supports it.
func (a *Async) CancelPending() {
drain:
	for {
		select {
		case <-a.queue:
		default:
			break drain
		}
	}
	if canceller, ok := a.next.(engine.CueCanceller); ok {
		canceller.CancelPending()
	}
}

// Close stops the delivery goroutine. Queued cues are discarded.
// Safe to call multiple times - only the first call has effect
func (a *Async) Close() {
	a.closeOnce.Do(func() {
		close(a.doneChan)
		a.wg.Wait()
	})
}
