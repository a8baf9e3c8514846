package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/studiowebux/quickcap/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	DefaultHotkey            = "Ctrl+Shift+Space"
	DefaultDebounceMs        = 200
	DefaultPageSize          = 100
	DefaultPreviewLength     = 100
	DefaultMaxEntries        = 1000
	DefaultMonitorIntervalMs = 500
)

// Settings is the user-editable configuration
type Settings struct {
	Hotkey            string          `yaml:"hotkey" toml:"hotkey"`
	DebounceMs        int             `yaml:"debounce_ms" toml:"debounce_ms"`
	PageSize          int             `yaml:"page_size" toml:"page_size"`
	PreviewLength     int             `yaml:"preview_length" toml:"preview_length"`
	MaxEntries        int             `yaml:"max_entries" toml:"max_entries"`
	MonitorIntervalMs int             `yaml:"monitor_interval_ms" toml:"monitor_interval_ms"`
	MonitorEnabled    *bool           `yaml:"monitor_enabled,omitempty" toml:"monitor_enabled,omitempty"`
	Snippets          []types.Snippet `yaml:"snippets,omitempty" toml:"snippets,omitempty"`
}

// DefaultSettings returns the settings used when no file exists
func DefaultSettings() Settings {
	enabled := true
	return Settings{
		Hotkey:            DefaultHotkey,
		DebounceMs:        DefaultDebounceMs,
		PageSize:          DefaultPageSize,
		PreviewLength:     DefaultPreviewLength,
		MaxEntries:        DefaultMaxEntries,
		MonitorIntervalMs: DefaultMonitorIntervalMs,
		MonitorEnabled:    &enabled,
		Snippets: []types.Snippet{
			{Name: "Date heading", Text: "## " + time.Now().Format("2006-01-02")},
			{Name: "Todo item", Text: "- [ ] "},
		},
	}
}

// Normalize replaces zero or negative numeric values with defaults.
// An empty Hotkey is kept: it means no global hotkey.
func (s *Settings) Normalize() {
	s.Hotkey = strings.TrimSpace(s.Hotkey)
	if s.DebounceMs <= 0 {
		s.DebounceMs = DefaultDebounceMs
	}
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	if s.PreviewLength <= 3 {
		s.PreviewLength = DefaultPreviewLength
	}
	if s.MaxEntries <= 0 {
		s.MaxEntries = DefaultMaxEntries
	}
	if s.MonitorIntervalMs <= 0 {
		s.MonitorIntervalMs = DefaultMonitorIntervalMs
	}
	if s.MonitorEnabled == nil {
		enabled := true
		s.MonitorEnabled = &enabled
	}
}

// Debounce returns the search debounce window
func (s Settings) Debounce() time.Duration {
	return time.Duration(s.DebounceMs) * time.Millisecond
}

// MonitorInterval returns the clipboard polling interval
func (s Settings) MonitorInterval() time.Duration {
	return time.Duration(s.MonitorIntervalMs) * time.Millisecond
}

// Monitoring reports whether the clipboard monitor should run
func (s Settings) Monitoring() bool {
	return s.MonitorEnabled == nil || *s.MonitorEnabled
}

// LoadSettings reads settings from path. A missing file yields defaults.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	var s Settings
	if isTOML(path) {
		err = toml.Unmarshal(data, &s)
	} else {
		err = yaml.Unmarshal(data, &s)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings %s: %w", filepath.Base(path), err)
	}

	s.Normalize()
	return s, nil
}

// SaveSettings writes settings to path in the format implied by its extension
func SaveSettings(path string, s Settings) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(s)
	} else {
		data, err = yaml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), DirPermissions); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
