package keybinds

import (
	"strings"
	"testing"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator()

	if v == nil {
		t.Fatal("NewValidator returned nil")
	}

	if v.reservedKeys["ctrl+c"] != ActionQuitForce {
		t.Error("Expected ctrl+c to be reserved for quit_force")
	}

	if !v.typingContexts[ContextHistory] {
		t.Error("Expected history to be a typing context")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name: "conflict error",
			err: ValidationError{
				Type:    "conflict",
				Context: ContextOverlay,
				Key:     "ctrl+h",
				Message: "overlaps",
			},
			expected: "[conflict] ctrl+h in context 'overlay': overlaps",
		},
		{
			name: "invalid error",
			err: ValidationError{
				Type:    "invalid",
				Context: ContextGlobal,
				Key:     "",
				Message: "empty key",
			},
			expected: "[invalid]  in context 'global': empty key",
		},
		{
			name: "warning",
			err: ValidationError{
				Type:    "warning",
				Context: ContextHistory,
				Key:     "x",
				Message: "printable key",
			},
			expected: "[warning] x in context 'history': printable key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidationResult_String(t *testing.T) {
	tests := []struct {
		name     string
		result   *ValidationResult
		contains []string
	}{
		{
			name:     "no issues",
			result:   &ValidationResult{},
			contains: []string{"No issues found"},
		},
		{
			name: "errors and warnings",
			result: &ValidationResult{
				Errors: []ValidationError{
					{Type: "conflict", Context: ContextOverlay, Key: "ctrl+h", Message: "overlaps"},
				},
				Warnings: []ValidationError{
					{Type: "warning", Context: ContextHistory, Key: "x", Message: "printable"},
				},
			},
			contains: []string{"Errors (1)", "Warnings (1)", "overlay", "history"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.String()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("String() output missing %q, got:\n%s", want, got)
				}
			}
		})
	}
}

func TestValidateRegistry_DefaultsAreClean(t *testing.T) {
	result := NewValidator().ValidateRegistry(NewDefaultRegistry())

	if result.HasErrors() {
		t.Errorf("Expected default registry to have no errors, got:\n%s", result.String())
	}
	if result.HasWarnings() {
		t.Errorf("Expected default registry to have no warnings, got:\n%s", result.String())
	}
}

func TestCheckOverlappingChords(t *testing.T) {
	tests := []struct {
		name         string
		keys         map[string]Action
		expectErrors int
	}{
		{
			name: "distinct keys",
			keys: map[string]Action{
				"primary+h": ActionToggleHistory,
				"primary+k": ActionToggleSnippets,
			},
			expectErrors: 0,
		},
		{
			name: "primary overlaps ctrl",
			keys: map[string]Action{
				"primary+h": ActionToggleHistory,
				"ctrl+h":    ActionToggleSnippets,
			},
			expectErrors: 1,
		},
		{
			name: "primary overlaps meta with shift",
			keys: map[string]Action{
				"primary+shift+a": ActionToggleActions,
				"cmd+shift+a":     ActionUppercase,
			},
			expectErrors: 1,
		},
		{
			name: "shift distinguishes",
			keys: map[string]Action{
				"primary+a":       ActionToggleHistory,
				"primary+shift+a": ActionToggleActions,
			},
			expectErrors: 0,
		},
		{
			name: "same action twice is fine",
			keys: map[string]Action{
				"primary+h": ActionToggleHistory,
				"ctrl+h":    ActionToggleHistory,
			},
			expectErrors: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			for key, action := range tt.keys {
				r.Register(ContextOverlay, key, action)
			}

			result := &ValidationResult{}
			NewValidator().checkOverlappingChords(r, result)

			if len(result.Errors) != tt.expectErrors {
				t.Errorf("Expected %d errors, got %d: %v", tt.expectErrors, len(result.Errors), result.Errors)
			}
		})
	}
}

func TestCheckChordSyntax(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextOverlay, "hyper+x", ActionClearContent)
	r.Register(ContextOverlay, "primary+n", ActionClearContent)

	result := &ValidationResult{}
	NewValidator().checkChordSyntax(r, result)

	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(result.Errors))
	}
	if result.Errors[0].Key != "hyper+x" {
		t.Errorf("Expected error for 'hyper+x', got %q", result.Errors[0].Key)
	}
}

func TestCheckReservedKeys(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextHistory, "ctrl+c", ActionHistoryClear)

	result := &ValidationResult{}
	NewValidator().checkReservedKeys(r, result)

	if len(result.Warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(result.Warnings))
	}
	if result.Warnings[0].Context != ContextHistory {
		t.Errorf("Expected warning in history context, got %s", result.Warnings[0].Context)
	}
}

func TestCheckTypingShadow(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextHistory, "d", ActionHistoryDelete)
	r.Register(ContextHistory, "ctrl+d", ActionHistoryDelete)
	r.Register(ContextConfirm, "y", ActionConfirm)

	result := &ValidationResult{}
	NewValidator().checkTypingShadow(r, result)

	if len(result.Warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d: %v", len(result.Warnings), result.Warnings)
	}
	if result.Warnings[0].Key != "d" {
		t.Errorf("Expected warning for 'd', got %q", result.Warnings[0].Key)
	}
}

func TestCheckShadowing(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "ctrl+q", ActionQuitForce)
	r.Register(ContextHistory, "ctrl+q", ActionHistoryClear)
	r.Register(ContextList, "ctrl+q", ActionQuitForce)
	r.Register(ContextList, "enter", ActionSelect)

	result := &ValidationResult{}
	NewValidator().checkShadowing(r, result)

	if len(result.Warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d: %v", len(result.Warnings), result.Warnings)
	}
	w := result.Warnings[0]
	if w.Context != ContextHistory || w.Key != "ctrl+q" {
		t.Errorf("Expected history ctrl+q warning, got %s %q", w.Context, w.Key)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name       string
		config     *Config
		wantErrors bool
	}{
		{
			name:       "empty config",
			config:     &Config{Version: "1.0"},
			wantErrors: false,
		},
		{
			name: "rebinding history toggle",
			config: &Config{
				Overlay: map[string]string{"toggle_history": "primary+y"},
			},
			wantErrors: false,
		},
		{
			name: "unknown action",
			config: &Config{
				Overlay: map[string]string{"launch_rockets": "primary+r"},
			},
			wantErrors: true,
		},
		{
			name: "overlap with default",
			config: &Config{
				Overlay: map[string]string{"clear_content": "ctrl+h"},
			},
			wantErrors: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewValidator().ValidateConfig(tt.config)
			if result.HasErrors() != tt.wantErrors {
				t.Errorf("HasErrors() = %v, want %v\n%s", result.HasErrors(), tt.wantErrors, result.String())
			}
		})
	}
}

func TestFindConflicts(t *testing.T) {
	conflicts := FindConflicts(&Config{
		Overlay: map[string]string{"uppercase": "meta+h"},
	})

	if len(conflicts) != 1 {
		t.Errorf("Expected 1 conflict, got %d: %v", len(conflicts), conflicts)
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "empty key", key: "", wantErr: true},
		{name: "simple key", key: "q", wantErr: false},
		{name: "named key", key: "esc", wantErr: false},
		{name: "ctrl modifier", key: "ctrl+c", wantErr: false},
		{name: "primary modifier", key: "primary+enter", wantErr: false},
		{name: "super modifier", key: "super+k", wantErr: false},
		{name: "modifier only", key: "ctrl+", wantErr: true},
		{name: "unknown modifier", key: "hyper+k", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}
