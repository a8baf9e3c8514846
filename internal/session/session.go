package session

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/studiowebux/quickcap/internal/config"
	"github.com/studiowebux/quickcap/internal/types"
)

const maxRecentSnippets = 10

// Manager persists the editor draft between runs
type Manager struct {
	path  string
	draft *types.Draft
	now   func() time.Time
}

// NewManager creates a manager backed by path. An empty path uses
// config.SessionFile.
func NewManager(path string) *Manager {
	if path == "" {
		path = config.SessionFile
	}
	return &Manager{
		path:  path,
		draft: &types.Draft{},
		now:   time.Now,
	}
}

// Load reads the session file. A missing file yields an empty draft.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.draft = &types.Draft{}
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var draft types.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	m.draft = &draft
	return nil
}

// Save writes the session to disk
func (m *Manager) Save() error {
	data, err := json.MarshalIndent(m.draft, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(m.path, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Draft returns the current draft
func (m *Manager) Draft() types.Draft {
	return *m.draft
}

// Panel returns the last active panel
func (m *Manager) Panel() types.Panel {
	return types.ParsePanel(m.draft.Panel)
}

// SetDraft records editor content and the active panel, then saves
func (m *Manager) SetDraft(content string, panel types.Panel) error {
	m.draft.Content = content
	m.draft.Panel = panel.String()
	m.draft.UpdatedAt = m.now().UTC()
	return m.Save()
}

// AddRecentSnippet moves name to the front of the recently used list.
// Duplicates are removed and the list is capped at maxRecentSnippets.
func (m *Manager) AddRecentSnippet(name string) error {
	recent := []string{name}
	for _, n := range m.draft.RecentSnippets {
		if n != name {
			recent = append(recent, n)
		}
	}

	if len(recent) > maxRecentSnippets {
		recent = recent[:maxRecentSnippets]
	}

	m.draft.RecentSnippets = recent
	return m.Save()
}

// RecentSnippets returns snippet names, most recently used first
func (m *Manager) RecentSnippets() []string {
	if m.draft.RecentSnippets == nil {
		return []string{}
	}
	return m.draft.RecentSnippets
}
