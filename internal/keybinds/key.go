package keybinds

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidChord is returned when a chord string cannot be parsed
var ErrInvalidChord = errors.New("invalid chord")

// Modifier is a bitmask of held modifier keys
type Modifier uint8

const (
	ModNone Modifier = 0

	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// primaryMask covers the modifiers accepted for the "primary" token
const primaryMask = ModCtrl | ModMeta

func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

func (m Modifier) With(mod Modifier) Modifier { return m | mod }

func (m Modifier) Without(mod Modifier) Modifier { return m &^ mod }

// String returns a representation like "ctrl+shift"
func (m Modifier) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "meta")
	}
	return strings.Join(parts, "+")
}

var modifierNames = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"super":   ModMeta,
	"win":     ModMeta,
}

var keyAliases = map[string]string{
	"escape": "esc",
	"return": "enter",
	"comma":  ",",
	"spc":    "space",
	" ":      "space",
	"del":    "delete",
}

// Event is a key press delivered to the in-window dispatcher
type Event struct {
	Key  string // lowercase key name: "a", ",", "enter", "esc"
	Mods Modifier

	prevented bool
}

// NewEvent builds an event, normalizing the key name
func NewEvent(key string, mods Modifier) *Event {
	return &Event{Key: normalizeKey(key), Mods: mods}
}

// PreventDefault marks the event as consumed so the focused widget
// does not also receive it
func (e *Event) PreventDefault() { e.prevented = true }

func (e *Event) DefaultPrevented() bool { return e.prevented }

func (e *Event) String() string {
	if e.Mods == ModNone {
		return e.Key
	}
	return e.Mods.String() + "+" + e.Key
}

// Chord is a parsed binding like "primary+shift+a". Primary chords
// match when either Ctrl or Meta is held.
type Chord struct {
	Key     string
	Mods    Modifier
	Primary bool
}

// ParseChord parses "primary+enter", "ctrl+shift+u", "esc", "alt+,".
// Tokens are case-insensitive and separated by '+'; a trailing "+"
// key is written as "plus".
func ParseChord(s string) (Chord, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Chord{}, fmt.Errorf("%w: empty", ErrInvalidChord)
	}

	parts := strings.Split(s, "+")
	var c Chord
	for i, part := range parts {
		part = strings.TrimSpace(part)
		last := i == len(parts)-1

		if !last {
			if part == "primary" || part == "mod" {
				c.Primary = true
				continue
			}
			mod, ok := modifierNames[part]
			if !ok {
				return Chord{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidChord, part, s)
			}
			c.Mods = c.Mods.With(mod)
			continue
		}

		if part == "" {
			return Chord{}, fmt.Errorf("%w: modifier without key in %q", ErrInvalidChord, s)
		}
		if _, isMod := modifierNames[part]; isMod || part == "primary" {
			return Chord{}, fmt.Errorf("%w: modifier without key in %q", ErrInvalidChord, s)
		}
		if part == "plus" {
			part = "+"
		}
		c.Key = normalizeKey(part)
	}

	if c.Primary {
		c.Mods = c.Mods.Without(primaryMask)
	}
	return c, nil
}

// Matches reports whether ev is this chord. Non-primary modifiers must
// match exactly.
func (c Chord) Matches(ev *Event) bool {
	if ev == nil || c.Key != ev.Key {
		return false
	}
	if c.Primary {
		if ev.Mods&primaryMask == 0 {
			return false
		}
		return ev.Mods.Without(primaryMask) == c.Mods
	}
	return ev.Mods == c.Mods
}

func (c Chord) String() string {
	var parts []string
	if c.Primary {
		parts = append(parts, "primary")
	}
	if mods := c.Mods.String(); mods != "" {
		parts = append(parts, mods)
	}
	key := c.Key
	if key == "+" {
		key = "plus"
	}
	parts = append(parts, key)
	return strings.Join(parts, "+")
}

func normalizeKey(k string) string {
	if k != " " {
		k = strings.ToLower(strings.TrimSpace(k))
	}
	if alias, ok := keyAliases[k]; ok {
		return alias
	}
	return k
}

// Chords returns the parsed chords bound to action in context, sorted for
// stable display. Keys that do not parse are skipped.
func (r *Registry) Chords(context Context, action Action) []Chord {
	keys := r.Keys(context, action)
	chords := make([]Chord, 0, len(keys))
	for _, k := range keys {
		c, err := ParseChord(k)
		if err != nil {
			continue
		}
		chords = append(chords, c)
	}
	return chords
}

// MatchEvent resolves ev against the chords bound in context (then global)
func (r *Registry) MatchEvent(context Context, ev *Event) (Action, bool) {
	for _, ctx := range []Context{context, ContextGlobal} {
		keys := make([]string, 0, len(r.bindings[ctx]))
		for k := range r.bindings[ctx] {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			c, err := ParseChord(k)
			if err != nil {
				continue
			}
			if c.Matches(ev) {
				return r.bindings[ctx][k], true
			}
		}
	}
	return "", false
}
