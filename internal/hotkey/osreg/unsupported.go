//go:build !darwin && !windows && !(linux && x11hotkey)

package osreg

import (
	"log"

	qhotkey "github.com/studiowebux/quickcap/internal/hotkey"
)

// Supported reports whether this build can capture global hotkeys
const Supported = false

// System is the registrar for builds without OS hotkey support. Every
// Register fails with hotkey.ErrUnsupported.
type System struct {
	logger *log.Logger
}

// New returns a registrar that registers nothing
func New(logger *log.Logger) *System {
	if logger == nil {
		logger = log.Default()
	}
	return &System{logger: logger}
}

func (s *System) IsRegistered(string) bool { return false }

func (s *System) Register(binding string, _ func(qhotkey.State)) error {
	if _, err := qhotkey.ParseBinding(binding); err != nil {
		return err
	}
	return qhotkey.ErrUnsupported
}

func (s *System) Unregister(string) error { return nil }

func (s *System) Close() {}
