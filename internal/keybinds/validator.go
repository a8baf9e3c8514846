package keybinds

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "warning"
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys are keys that should not be rebound
	reservedKeys map[string]Action

	// typingContexts treat unmodified printable keys as text entry
	typingContexts map[Context]bool
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]Action{
			"ctrl+c": ActionQuitForce, // Force quit should always work
		},
		typingContexts: map[Context]bool{
			ContextHistory:  true,
			ContextList:     true,
			ContextSettings: true,
		},
	}
}

// ValidateRegistry validates an entire registry
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	v.checkChordSyntax(registry, result)
	v.checkOverlappingChords(registry, result)
	v.checkReservedKeys(registry, result)
	v.checkTypingShadow(registry, result)
	v.checkShadowing(registry, result)

	return result
}

// ValidateConfig validates a configuration applied over the defaults
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	registry := NewDefaultRegistry()
	if err := ApplyConfig(registry, config); err != nil {
		return &ValidationResult{
			Errors: []ValidationError{{
				Type:    "invalid",
				Message: err.Error(),
			}},
			Warnings: []ValidationError{},
		}
	}

	return v.ValidateRegistry(registry)
}

// checkChordSyntax reports keys in chord contexts that do not parse
func (v *Validator) checkChordSyntax(registry *Registry, result *ValidationResult) {
	for _, context := range chordContexts {
		for _, key := range sortedKeys(registry.bindings[context]) {
			if _, err := ParseChord(key); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "invalid",
					Context: context,
					Key:     key,
					Message: err.Error(),
				})
			}
		}
	}
}

// checkOverlappingChords reports two keys in one chord context that can
// match the same keystroke but name different actions, e.g. "primary+h"
// and "ctrl+h".
func (v *Validator) checkOverlappingChords(registry *Registry, result *ValidationResult) {
	for _, context := range chordContexts {
		keys := sortedKeys(registry.bindings[context])
		for i := 0; i < len(keys); i++ {
			a, err := ParseChord(keys[i])
			if err != nil {
				continue
			}
			for j := i + 1; j < len(keys); j++ {
				b, err := ParseChord(keys[j])
				if err != nil || !chordsOverlap(a, b) {
					continue
				}
				actA := registry.bindings[context][keys[i]]
				actB := registry.bindings[context][keys[j]]
				if actA == actB {
					continue
				}
				result.Errors = append(result.Errors, ValidationError{
					Type:    "conflict",
					Context: context,
					Key:     keys[j],
					Message: fmt.Sprintf("overlaps %q (%s vs %s)", keys[i], actA, actB),
				})
			}
		}
	}
}

// chordsOverlap reports whether some event matches both chords
func chordsOverlap(a, b Chord) bool {
	if a.Key != b.Key {
		return false
	}
	for _, ev := range candidateEvents(a) {
		if b.Matches(ev) {
			return true
		}
	}
	return false
}

func candidateEvents(c Chord) []*Event {
	if !c.Primary {
		return []*Event{{Key: c.Key, Mods: c.Mods}}
	}
	return []*Event{
		{Key: c.Key, Mods: c.Mods.With(ModCtrl)},
		{Key: c.Key, Mods: c.Mods.With(ModMeta)},
		{Key: c.Key, Mods: c.Mods.With(ModCtrl | ModMeta)},
	}
}

// checkReservedKeys checks if any reserved keys have been rebound
func (v *Validator) checkReservedKeys(registry *Registry, result *ValidationResult) {
	for context, bindings := range registry.bindings {
		for key, action := range bindings {
			reserved, ok := v.reservedKeys[key]
			if !ok || action == reserved {
				continue
			}
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    "warning",
				Context: context,
				Key:     key,
				Message: "reserved key rebound (may cause issues)",
			})
		}
	}
}

// checkTypingShadow warns when a single printable character is bound in a
// context where typing goes to a text field
func (v *Validator) checkTypingShadow(registry *Registry, result *ValidationResult) {
	for context := range v.typingContexts {
		for key := range registry.bindings[context] {
			if len([]rune(key)) == 1 {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     key,
					Message: "printable key cannot be typed into the search field",
				})
			}
		}
	}
}

// checkShadowing checks for context-specific bindings that shadow global bindings
func (v *Validator) checkShadowing(registry *Registry, result *ValidationResult) {
	for context, bindings := range registry.bindings {
		if context == ContextGlobal {
			continue
		}

		for _, key := range sortedKeys(bindings) {
			action := bindings[key]
			globalAction, hasGlobal := registry.Match(ContextGlobal, key)
			if !hasGlobal || action == globalAction {
				continue
			}
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    "warning",
				Context: context,
				Key:     key,
				Message: fmt.Sprintf("shadows global binding (%s -> %s)", globalAction, action),
			})
		}
	}
}

// FindConflicts finds all conflicting keybindings in a config
func FindConflicts(config *Config) []string {
	validator := NewValidator()
	result := validator.ValidateConfig(config)

	var conflicts []string
	for _, err := range result.Errors {
		if err.Type == "conflict" {
			conflicts = append(conflicts, err.Error())
		}
	}

	return conflicts
}

// ValidateKey checks if a key string is valid
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if strings.Contains(key, "+") {
		if _, err := ParseChord(key); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]Action) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
