package hotkey

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyBinding is returned when parsing an empty binding string
	ErrEmptyBinding = errors.New("empty hotkey binding")
	// ErrInvalidBinding is returned for bindings the OS layer cannot express
	ErrInvalidBinding = errors.New("invalid hotkey binding")
	// ErrUnsupported is returned by registrars built without OS hotkey support
	ErrUnsupported = errors.New("global hotkey unsupported")
)

// Modifier is the platform-neutral modifier name used in bindings
type Modifier int

const (
	ModCtrl Modifier = iota
	ModShift
	ModAlt
	ModSuper
)

var modifierOrder = []Modifier{ModCtrl, ModShift, ModAlt, ModSuper}

var modifierLabels = map[Modifier]string{
	ModCtrl:  "Ctrl",
	ModShift: "Shift",
	ModAlt:   "Alt",
	ModSuper: "Super",
}

func (m Modifier) String() string { return modifierLabels[m] }

var modifierNames = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"shift":   ModShift,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"super":   ModSuper,
	"cmd":     ModSuper,
	"command": ModSuper,
	"meta":    ModSuper,
	"win":     ModSuper,
}

// NamedKeys lists the non-alphanumeric keys a binding may end in
var NamedKeys = []string{
	"space", "enter", "esc", "tab", "delete",
	"left", "right", "up", "down",
	"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12",
}

var keyAliases = map[string]string{
	"return": "enter",
	"escape": "esc",
}

// Binding is a parsed global shortcut such as "Ctrl+Shift+Space"
type Binding struct {
	mods []Modifier
	key  string
}

// ParseBinding parses a "+"-separated binding. At least one modifier is
// required; tokens are case-insensitive.
func ParseBinding(s string) (Binding, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Binding{}, ErrEmptyBinding
	}

	parts := strings.Split(s, "+")
	if len(parts) < 2 {
		return Binding{}, fmt.Errorf("%w: %q needs modifier+key", ErrInvalidBinding, s)
	}

	seen := make(map[Modifier]bool)
	for _, p := range parts[:len(parts)-1] {
		mod, ok := modifierNames[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			return Binding{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidBinding, p, s)
		}
		seen[mod] = true
	}

	key := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	if alias, ok := keyAliases[key]; ok {
		key = alias
	}
	if !validKey(key) {
		return Binding{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidBinding, key, s)
	}

	b := Binding{key: key}
	for _, mod := range modifierOrder {
		if seen[mod] {
			b.mods = append(b.mods, mod)
		}
	}
	return b, nil
}

// String renders the canonical form, e.g. "Ctrl+Shift+Space"
func (b Binding) String() string {
	parts := make([]string, 0, len(b.mods)+1)
	for _, mod := range b.mods {
		parts = append(parts, modifierLabels[mod])
	}
	parts = append(parts, strings.ToUpper(b.key[:1])+b.key[1:])
	return strings.Join(parts, "+")
}

// Canonical returns the canonical form of s, or s unchanged if it does
// not parse
func Canonical(s string) string {
	b, err := ParseBinding(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return b.String()
}

// Modifiers returns the modifiers in canonical order
func (b Binding) Modifiers() []Modifier {
	return append([]Modifier(nil), b.mods...)
}

// Key returns the lower-case key name: "a", "7", "space", "f5"
func (b Binding) Key() string { return b.key }

func validKey(name string) bool {
	if len(name) == 1 {
		c := name[0]
		return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
	}
	for _, k := range NamedKeys {
		if k == name {
			return true
		}
	}
	return false
}
