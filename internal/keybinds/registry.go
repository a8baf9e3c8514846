package keybinds

import (
	"fmt"
	"sort"
)

// chordContexts are resolved through ParseChord rather than exact strings
var chordContexts = []Context{ContextOverlay, ContextHidden}

// Registry maps context -> key -> action. Key presses are resolved
// through MatchEvent; Match is an exact key-string lookup used when
// checking one configured key against another.
type Registry struct {
	bindings map[Context]map[string]Action
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[Context]map[string]Action),
	}
}

// Register binds key to action in context, replacing any previous action
func (r *Registry) Register(context Context, key string, action Action) {
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][key] = action
}

// RegisterMultiple binds every key to the same action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, key := range keys {
		r.Register(context, key, action)
	}
}

// Unbind removes every key bound to action in context and returns them
func (r *Registry) Unbind(context Context, action Action) []string {
	removed := r.Keys(context, action)
	for _, k := range removed {
		delete(r.bindings[context], k)
	}
	return removed
}

// Match resolves an exact key string in context, then in the global context
func (r *Registry) Match(context Context, key string) (Action, bool) {
	for _, ctx := range []Context{context, ContextGlobal} {
		if action, ok := r.bindings[ctx][key]; ok {
			return action, true
		}
	}
	return "", false
}

// Keys returns the keys bound to action in context, sorted
func (r *Registry) Keys(context Context, action Action) []string {
	var keys []string
	for key, act := range r.bindings[context] {
		if act == action {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that every key in a chord-resolved context parses
func (r *Registry) Validate() error {
	for _, context := range chordContexts {
		for key, action := range r.bindings[context] {
			if _, err := ParseChord(key); err != nil {
				return fmt.Errorf("binding %q for %s in context '%s': %w", key, action, context, err)
			}
		}
	}
	return nil
}

// Clone creates a deep copy of the registry
func (r *Registry) Clone() *Registry {
	clone := NewRegistry()
	for context, contextBindings := range r.bindings {
		for key, action := range contextBindings {
			clone.Register(context, key, action)
		}
	}
	return clone
}
