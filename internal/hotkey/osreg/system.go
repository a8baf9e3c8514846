//go:build darwin || windows || (linux && x11hotkey)

package osreg

import (
	"fmt"
	"log"
	"sync"

	qhotkey "github.com/studiowebux/quickcap/internal/hotkey"
	"golang.design/x/hotkey"
)

// Supported reports whether this build can capture global hotkeys
const Supported = true

// System registers bindings with the operating system. Bindings are
// keyed by their canonical form, so "ctrl+space" and "Ctrl+Space" name
// the same registration.
type System struct {
	mu      sync.Mutex
	entries map[string]*registration
	logger  *log.Logger
}

type registration struct {
	hk   *hotkey.Hotkey
	stop chan struct{}
	done chan struct{}
}

// New returns a registrar backed by golang.design/x/hotkey
func New(logger *log.Logger) *System {
	if logger == nil {
		logger = log.Default()
	}
	return &System{entries: make(map[string]*registration), logger: logger}
}

func (s *System) IsRegistered(binding string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[qhotkey.Canonical(binding)]
	return ok
}

// Register captures binding system-wide. callback runs on a background
// goroutine for every press and release.
func (s *System) Register(binding string, callback func(qhotkey.State)) error {
	b, err := qhotkey.ParseBinding(binding)
	if err != nil {
		return err
	}
	name := b.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[name]; ok {
		return fmt.Errorf("hotkey %s is already registered", name)
	}

	hk, err := toHotkey(b)
	if err != nil {
		return err
	}
	if err := hk.Register(); err != nil {
		return fmt.Errorf("failed to register %s: %w", name, err)
	}

	r := &registration{hk: hk, stop: make(chan struct{}), done: make(chan struct{})}
	s.entries[name] = r
	go r.listen(callback)
	return nil
}

// Unregister releases binding. Unknown bindings are not an error.
func (s *System) Unregister(binding string) error {
	name := qhotkey.Canonical(binding)

	s.mu.Lock()
	r, ok := s.entries[name]
	delete(s.entries, name)
	s.mu.Unlock()

	if !ok {
		return nil
	}

	close(r.stop)
	<-r.done
	if err := r.hk.Unregister(); err != nil {
		return fmt.Errorf("failed to unregister %s: %w", name, err)
	}
	return nil
}

// Close releases every registration
func (s *System) Close() {
	s.mu.Lock()
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	s.mu.Unlock()

	for _, name := range names {
		if err := s.Unregister(name); err != nil {
			s.logger.Printf("hotkey: %v", err)
		}
	}
}

func (r *registration) listen(callback func(qhotkey.State)) {
	defer close(r.done)
	for {
		select {
		case <-r.stop:
			return
		case _, ok := <-r.hk.Keydown():
			if !ok {
				return
			}
			callback(qhotkey.Pressed)
		case _, ok := <-r.hk.Keyup():
			if !ok {
				return
			}
			callback(qhotkey.Released)
		}
	}
}
