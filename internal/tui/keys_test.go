package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/studiowebux/quickcap/internal/keybinds"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func altRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s), Alt: true}
}

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		key  string
		mods keybinds.Modifier
	}{
		{"plain rune", runes("a"), "a", keybinds.ModNone},
		{"upper rune", runes("A"), "a", keybinds.ModNone},
		{"alt rune", altRunes("h"), "h", keybinds.ModMeta},
		{"alt upper rune adds shift", altRunes("A"), "a", keybinds.ModMeta | keybinds.ModShift},
		{"alt comma", altRunes(","), ",", keybinds.ModMeta},
		{"ctrl letter", tea.KeyMsg{Type: tea.KeyCtrlH}, "h", keybinds.ModCtrl},
		{"ctrl j is not enter", tea.KeyMsg{Type: tea.KeyCtrlJ}, "j", keybinds.ModCtrl},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, "backspace", keybinds.ModNone},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, "enter", keybinds.ModNone},
		{"alt enter", tea.KeyMsg{Type: tea.KeyEnter, Alt: true}, "enter", keybinds.ModMeta},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, "esc", keybinds.ModNone},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "space", keybinds.ModNone},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, "tab", keybinds.ModShift},
		{"ctrl shift up", tea.KeyMsg{Type: tea.KeyCtrlShiftUp}, "up", keybinds.ModCtrl | keybinds.ModShift},
		{"alt ctrl letter", tea.KeyMsg{Type: tea.KeyCtrlN, Alt: true}, "n", keybinds.ModCtrl | keybinds.ModMeta},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pasted text"), Paste: true}, "paste", keybinds.ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := keyEvent(tt.msg)
			assert.Equal(t, tt.key, ev.Key)
			assert.Equal(t, tt.mods, ev.Mods)
		})
	}
}

func TestIsPrintable(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected bool
	}{
		{"letter", runes("x"), true},
		{"digit", runes("7"), true},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, true},
		{"alt letter", altRunes("x"), false},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab"), Paste: true}, false},
		{"two runes", runes("ab"), false},
		{"ctrl letter", tea.KeyMsg{Type: tea.KeyCtrlA}, false},
		{"arrow", tea.KeyMsg{Type: tea.KeyDown}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isPrintable(tt.msg))
		})
	}
}

func TestIsTextEditing(t *testing.T) {
	assert.True(t, isTextEditing(tea.KeyMsg{Type: tea.KeyBackspace}))
	assert.True(t, isTextEditing(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab"), Paste: true}))
	assert.False(t, isTextEditing(tea.KeyMsg{Type: tea.KeyUp}), "up navigates")
	assert.False(t, isTextEditing(tea.KeyMsg{Type: tea.KeyEnter}), "enter selects")
}

func TestWindowStart(t *testing.T) {
	tests := []struct {
		selected, total, rows, expected int
	}{
		{0, 5, 10, 0},
		{-1, 0, 10, 0},
		{0, 50, 10, 0},
		{20, 50, 10, 15},
		{49, 50, 10, 40},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, windowStart(tt.selected, tt.total, tt.rows), "windowStart(%d, %d, %d)", tt.selected, tt.total, tt.rows)
	}
}
