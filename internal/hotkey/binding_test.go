package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBinding(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		err      error
	}{
		{input: "Ctrl+Shift+Space", expected: "Ctrl+Shift+Space"},
		{input: "ctrl + space", expected: "Ctrl+Space"},
		{input: "shift+ctrl+space", expected: "Ctrl+Shift+Space"},
		{input: "Cmd+K", expected: "Super+K"},
		{input: "option+return", expected: "Alt+Enter"},
		{input: "Ctrl+F5", expected: "Ctrl+F5"},
		{input: "alt+7", expected: "Alt+7"},
		{input: "", err: ErrEmptyBinding},
		{input: "   ", err: ErrEmptyBinding},
		{input: "Space", err: ErrInvalidBinding},
		{input: "Ctrl+", err: ErrInvalidBinding},
		{input: "Hyper+A", err: ErrInvalidBinding},
		{input: "Ctrl+Shift", err: ErrInvalidBinding},
		{input: "Ctrl+PageUp", err: ErrInvalidBinding},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			b, err := ParseBinding(tt.input)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, b.String())
		})
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "Ctrl+Shift+Space", Canonical("ctrl+shift+space"))
	assert.Equal(t, "not a binding", Canonical(" not a binding "), "unparseable input passes through trimmed")
}

func TestBinding_Accessors(t *testing.T) {
	b, err := ParseBinding("super+alt+shift+ctrl+Escape")
	require.NoError(t, err)

	mods := b.Modifiers()
	assert.Equal(t, []Modifier{ModCtrl, ModShift, ModAlt, ModSuper}, mods)
	assert.Equal(t, "esc", b.Key())

	mods[0] = ModSuper
	assert.Equal(t, ModCtrl, b.Modifiers()[0], "Modifiers returns a copy")
}
