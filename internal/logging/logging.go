package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lowaak/rep-runner/internal/config"
)

// Logger is a *log.Logger over a rotating file. Close releases the file.
type Logger struct {
	*log.Logger
	file *lumberjack.Logger
}

// New creates the application logger from the log section of the config.
// The terminal UI owns stdout, so output goes to the file unless stderr
// is requested as well.
func New(cfg config.LogConfig) (*Logger, error) {
	if cfg.File == "" {
		return nil, fmt.Errorf("log file not set")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}

	var out io.Writer = file
	if cfg.Stderr {
		out = io.MultiWriter(file, os.Stderr)
	}

	return &Logger{
		Logger: log.New(out, "", log.LstdFlags|log.Lmicroseconds),
		file:   file,
	}, nil
}

// AddOutput sends log lines to w as well as the current outputs
func (l *Logger) AddOutput(w io.Writer) {
	l.SetOutput(io.MultiWriter(l.Writer(), w))
}

// Rotate starts a new log file, keeping the old one as a backup
func (l *Logger) Rotate() error {
	return l.file.Rotate()
}

func (l *Logger) Close() error {
	return l.file.Close()
}
