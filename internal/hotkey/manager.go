// Package hotkey owns the single system-wide shortcut that toggles the
// overlay window.
//
// Manager keeps exactly one OS registration in step with the configured
// binding. The OS capture itself sits behind Registrar; package osreg
// provides the implementation backed by golang.design/x/hotkey. This
// package never links the OS library, so it loads on headless hosts.
package hotkey

import (
	"fmt"
	"log"
	"strings"
)

// State is the key transition delivered to a registration callback
type State int

const (
	Released State = iota
	Pressed
)

func (s State) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// Registrar is the OS global-shortcut surface
type Registrar interface {
	IsRegistered(binding string) bool
	Register(binding string, callback func(State)) error
	Unregister(binding string) error
}

// Manager keeps at most one global binding registered
type Manager struct {
	reg      Registrar
	onToggle func()
	active   string
	logger   *log.Logger
}

// NewManager returns a manager that calls onToggle once per key press
func NewManager(reg Registrar, onToggle func(), logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{reg: reg, onToggle: onToggle, logger: logger}
}

// Setup makes binding the only active registration. An empty binding
// leaves no hotkey registered. Calling Setup again with the active
// binding is a no-op. On failure no binding is active and the error is
// returned for display; it is also logged.
func (m *Manager) Setup(binding string) error {
	binding = strings.TrimSpace(binding)
	if binding != "" && binding == m.active && m.reg.IsRegistered(binding) {
		return nil
	}

	m.Teardown()
	if binding == "" {
		return nil
	}

	// A stale registration for the same chord would swallow our callback
	if m.reg.IsRegistered(binding) {
		if err := m.reg.Unregister(binding); err != nil {
			m.logger.Printf("hotkey: failed to clear existing %q: %v", binding, err)
		}
	}

	if err := m.reg.Register(binding, m.handle); err != nil {
		m.logger.Printf("hotkey: failed to register %q: %v", binding, err)
		return fmt.Errorf("failed to register hotkey %q: %w", binding, err)
	}

	m.active = binding
	m.logger.Printf("hotkey: registered %q", binding)
	return nil
}

// Teardown unregisters the active binding. Unregister failures are logged.
func (m *Manager) Teardown() {
	if m.active == "" {
		return
	}
	if err := m.reg.Unregister(m.active); err != nil {
		m.logger.Printf("hotkey: failed to unregister %q: %v", m.active, err)
	}
	m.active = ""
}

// Active returns the registered binding, or "" when no hotkey is active
func (m *Manager) Active() string {
	return m.active
}

func (m *Manager) handle(s State) {
	if s != Pressed || m.onToggle == nil {
		return
	}
	m.onToggle()
}
