package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/studiowebux/quickcap/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(filepath.Join(t.TempDir(), ".session.json"))
	m.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return m
}

func TestLoad_MissingFile(t *testing.T) {
	m := newTestManager(t)

	if err := m.Load(); err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	if got := m.Draft().Content; got != "" {
		t.Errorf("Expected empty draft, got %q", got)
	}
	if m.Panel() != types.PanelEditor {
		t.Errorf("Expected editor panel, got %s", m.Panel())
	}
}

func TestSetDraft_RoundTrip(t *testing.T) {
	m := newTestManager(t)
	if err := m.SetDraft("half written note", types.PanelHistory); err != nil {
		t.Fatalf("SetDraft failed: %v", err)
	}

	reloaded := NewManager(m.path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	draft := reloaded.Draft()
	if draft.Content != "half written note" {
		t.Errorf("Expected content to survive reload, got %q", draft.Content)
	}
	if reloaded.Panel() != types.PanelHistory {
		t.Errorf("Expected history panel, got %s", reloaded.Panel())
	}
	if !draft.UpdatedAt.Equal(m.now()) {
		t.Errorf("Expected UpdatedAt %v, got %v", m.now(), draft.UpdatedAt)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	m := newTestManager(t)
	if err := os.WriteFile(m.path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := m.Load(); err == nil {
		t.Error("Expected parse error, got nil")
	}
}

func TestAddRecentSnippet(t *testing.T) {
	m := newTestManager(t)

	for _, name := range []string{"sig", "addr", "sig"} {
		if err := m.AddRecentSnippet(name); err != nil {
			t.Fatalf("AddRecentSnippet(%q) failed: %v", name, err)
		}
	}

	recent := m.RecentSnippets()
	if len(recent) != 2 || recent[0] != "sig" || recent[1] != "addr" {
		t.Errorf("Expected [sig addr], got %v", recent)
	}
}

func TestAddRecentSnippet_Capped(t *testing.T) {
	m := newTestManager(t)

	for i := 0; i < maxRecentSnippets+5; i++ {
		if err := m.AddRecentSnippet(string(rune('a' + i))); err != nil {
			t.Fatal(err)
		}
	}

	recent := m.RecentSnippets()
	if len(recent) != maxRecentSnippets {
		t.Fatalf("Expected %d entries, got %d", maxRecentSnippets, len(recent))
	}
	if recent[0] != string(rune('a'+maxRecentSnippets+4)) {
		t.Errorf("Expected newest first, got %q", recent[0])
	}
}
