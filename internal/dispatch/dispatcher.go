// Package dispatch resolves in-window key events to overlay actions.
//
// Rules are checked in a fixed order and the first match wins, so a
// keystroke fires at most one action. Escape is checked before every
// modifier chord.
package dispatch

import (
	"log"

	"github.com/studiowebux/quickcap/internal/actions"
	"github.com/studiowebux/quickcap/internal/keybinds"
	"github.com/studiowebux/quickcap/internal/types"
)

// Store is the part of the action bus the dispatcher needs
type Store interface {
	State() actions.State
	Dispatch(actions.Action)
}

// rule binds a registry action to the overlay action it produces
type rule struct {
	binding keybinds.Action
	resolve func(actions.State) actions.Action
}

// rules is the resolution order
var rules = []rule{
	{keybinds.ActionDismiss, func(s actions.State) actions.Action {
		if s.Panel != types.PanelEditor {
			return actions.SwitchPanel{Panel: types.PanelEditor}
		}
		return actions.CloseWithoutCommit{}
	}},
	{keybinds.ActionCommitAndClose, constant(actions.CommitAndClose{})},
	{keybinds.ActionToggleSettings, constant(actions.TogglePanel{Panel: types.PanelSettings})},
	{keybinds.ActionToggleHistory, constant(actions.TogglePanel{Panel: types.PanelHistory})},
	{keybinds.ActionToggleSnippets, constant(actions.TogglePanel{Panel: types.PanelSnippets})},
	{keybinds.ActionToggleActions, constant(actions.TogglePanel{Panel: types.PanelActions})},
	{keybinds.ActionClearContent, constant(actions.ClearContent{})},
	{keybinds.ActionUppercase, constant(actions.TransformContent{Transform: actions.TransformUpper})},
	{keybinds.ActionLowercase, constant(actions.TransformContent{Transform: actions.TransformLower})},
}

func constant(a actions.Action) func(actions.State) actions.Action {
	return func(actions.State) actions.Action { return a }
}

// compiledRule caches parsed chords for one rule
type compiledRule struct {
	rule
	chords []keybinds.Chord
}

// Dispatcher owns the in-window key listener. Events are only handled
// between Attach and the returned release (or Detach).
type Dispatcher struct {
	store  Store
	rules  []compiledRule
	logger *log.Logger

	attached bool
	token    int
}

// New compiles the rule table against registry's overlay context
func New(store Store, registry *keybinds.Registry, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	d := &Dispatcher{store: store, logger: logger}
	d.Reload(registry)
	return d
}

// Reload recompiles chords after the registry changed
func (d *Dispatcher) Reload(registry *keybinds.Registry) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		chords := registry.Chords(keybinds.ContextOverlay, r.binding)
		if len(chords) == 0 {
			d.logger.Printf("dispatch: no chord bound for %s", r.binding)
		}
		compiled = append(compiled, compiledRule{rule: r, chords: chords})
	}
	d.rules = compiled
}

// Attach starts listening and returns a release func. Release is safe to
// call more than once and does nothing if a later Attach superseded it.
func (d *Dispatcher) Attach() func() {
	d.token++
	token := d.token
	d.attached = true

	return func() {
		if d.token == token {
			d.attached = false
		}
	}
}

// Detach stops listening regardless of outstanding releases
func (d *Dispatcher) Detach() {
	d.token++
	d.attached = false
}

func (d *Dispatcher) Attached() bool {
	return d.attached
}

// Handle resolves ev against the rule table. On a match the action is
// dispatched, the event's default is prevented and Handle returns true.
// Unmatched events are left untouched.
func (d *Dispatcher) Handle(ev *keybinds.Event) bool {
	if !d.attached || ev == nil || ev.DefaultPrevented() {
		return false
	}

	for _, r := range d.rules {
		if !matchesAny(r.chords, ev) {
			continue
		}
		ev.PreventDefault()
		d.store.Dispatch(r.resolve(d.store.State()))
		return true
	}
	return false
}

// Describe returns the first chord for each rule, in resolution order
func (d *Dispatcher) Describe() []Shortcut {
	out := make([]Shortcut, 0, len(d.rules))
	for _, r := range d.rules {
		if len(r.chords) == 0 {
			continue
		}
		out = append(out, Shortcut{Action: r.binding, Chord: r.chords[0]})
	}
	return out
}

// Shortcut pairs an overlay action with a chord that triggers it
type Shortcut struct {
	Action keybinds.Action
	Chord  keybinds.Chord
}

func matchesAny(chords []keybinds.Chord, ev *keybinds.Event) bool {
	for _, c := range chords {
		if c.Matches(ev) {
			return true
		}
	}
	return false
}
