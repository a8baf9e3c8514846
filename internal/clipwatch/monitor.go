// Package clipwatch polls the system clipboard and reports new text.
package clipwatch

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/atotto/clipboard"
)

// ErrAlreadyRunning is returned by Run while another Run is active
var ErrAlreadyRunning = errors.New("clipboard monitor already running")

// Reader reads the current clipboard text
type Reader interface {
	ReadAll() (string, error)
}

// ReaderFunc adapts a function to Reader
type ReaderFunc func() (string, error)

func (f ReaderFunc) ReadAll() (string, error) { return f() }

// SystemReader reads the OS clipboard
func SystemReader() Reader {
	return ReaderFunc(clipboard.ReadAll)
}

// Sink receives newly observed clipboard content
type Sink func(ctx context.Context, content string) error

// Monitor polls a Reader and forwards content that differs from the last
// content it saw.
type Monitor struct {
	reader   Reader
	sink     Sink
	interval time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	last    string
	running bool
}

func New(reader Reader, sink Sink, interval time.Duration, logger *log.Logger) *Monitor {
	if logger == nil {
		logger = log.Default()
	}
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Monitor{
		reader:   reader,
		sink:     sink,
		interval: interval,
		logger:   logger,
	}
}

// Run polls until ctx is cancelled
func (m *Monitor) Run(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrAlreadyRunning
	}
	m.running = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		if _, err := m.Poll(ctx); err != nil {
			m.logger.Printf("clipboard poll failed: %v", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Poll performs a single read. It reports whether new content was
// forwarded to the sink.
func (m *Monitor) Poll(ctx context.Context) (bool, error) {
	content, err := m.reader.ReadAll()
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	if content == "" || content == m.last {
		m.mu.Unlock()
		return false, nil
	}
	m.last = content
	m.mu.Unlock()

	if err := m.sink(ctx, content); err != nil {
		return false, err
	}
	return true, nil
}

// Running reports whether Run is active
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
