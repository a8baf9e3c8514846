package types

import (
	"fmt"
	"time"
)

// ClipboardEntry is one captured clipboard item. Entries are never mutated
// after they are stored; they can only be deleted.
type ClipboardEntry struct {
	ID          int64     `json:"id" yaml:"id"`
	Content     string    `json:"content" yaml:"content"`
	ContentType string    `json:"contentType" yaml:"contentType"`
	Preview     string    `json:"preview" yaml:"preview"`
	CharCount   int       `json:"charCount" yaml:"charCount"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

// Panel identifies the active view of the overlay
type Panel int

const (
	PanelEditor Panel = iota
	PanelSettings
	PanelHistory
	PanelSnippets
	PanelActions
)

var panelNames = map[Panel]string{
	PanelEditor:   "editor",
	PanelSettings: "settings",
	PanelHistory:  "history",
	PanelSnippets: "snippets",
	PanelActions:  "actions",
}

// String returns the lowercase panel name
func (p Panel) String() string {
	if name, ok := panelNames[p]; ok {
		return name
	}
	return fmt.Sprintf("panel(%d)", int(p))
}

// ParsePanel converts a panel name back into a Panel.
// Unknown names resolve to the editor.
func ParsePanel(name string) Panel {
	for p, n := range panelNames {
		if n == name {
			return p
		}
	}
	return PanelEditor
}

// Snippet is a named block of text that can be inserted into the editor
type Snippet struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Text string `json:"text" yaml:"text" toml:"text"`
}

// Draft is the persisted editor state between runs
type Draft struct {
	Content        string    `json:"content"`
	Panel          string    `json:"panel,omitempty"`
	RecentSnippets []string  `json:"recentSnippets,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
