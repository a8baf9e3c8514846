package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Config represents the user's keybinding configuration.
// Each section maps an action name to a comma-separated list of keys.
type Config struct {
	Version  string            `json:"version"`
	Global   map[string]string `json:"global,omitempty"`
	Overlay  map[string]string `json:"overlay,omitempty"`
	History  map[string]string `json:"history,omitempty"`
	List     map[string]string `json:"list,omitempty"`
	Settings map[string]string `json:"settings,omitempty"`
	Confirm  map[string]string `json:"confirm,omitempty"`
	Hidden   map[string]string `json:"hidden,omitempty"`
}

// LoadConfig loads keybinding configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:   c.Global,
		ContextOverlay:  c.Overlay,
		ContextHistory:  c.History,
		ContextList:     c.List,
		ContextSettings: c.Settings,
		ContextConfirm:  c.Confirm,
		ContextHidden:   c.Hidden,
	}
}

// ApplyConfig applies user configuration to a registry.
// An action listed in a section replaces every default key for that
// action in the section's context.
func ApplyConfig(registry *Registry, config *Config) error {
	for context, section := range config.sections() {
		for actionStr, keyList := range section {
			action := Action(actionStr)
			if !IsKnownAction(action) {
				return fmt.Errorf("unknown action %q in context '%s'", actionStr, context)
			}

			registry.Unbind(context, action)

			for _, key := range splitKeys(keyList) {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("action %q in context '%s': %w", actionStr, context, err)
				}
				registry.Register(context, key, action)
			}
		}
	}

	return nil
}

// splitKeys splits "up,ctrl+p" into keys; a lone "," key is written "comma"
func splitKeys(list string) []string {
	var keys []string
	for _, k := range strings.Split(list, ",") {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if k == "comma" {
			k = ","
		}
		keys = append(keys, k)
	}
	return keys
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}

		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}

// ExportConfig renders a registry in the config file format
func ExportConfig(registry *Registry) *Config {
	config := &Config{Version: "1.0"}
	targets := map[Context]*map[string]string{
		ContextGlobal:   &config.Global,
		ContextOverlay:  &config.Overlay,
		ContextHistory:  &config.History,
		ContextList:     &config.List,
		ContextSettings: &config.Settings,
		ContextConfirm:  &config.Confirm,
		ContextHidden:   &config.Hidden,
	}

	for context, target := range targets {
		grouped := make(map[string][]string)
		for key, action := range registry.bindings[context] {
			if key == "," || strings.HasSuffix(key, "+,") {
				key = strings.TrimSuffix(key, ",") + "comma"
			}
			grouped[string(action)] = append(grouped[string(action)], key)
		}
		if len(grouped) == 0 {
			continue
		}
		section := make(map[string]string, len(grouped))
		for action, keys := range grouped {
			sort.Strings(keys)
			section[action] = strings.Join(keys, ",")
		}
		*target = section
	}

	return config
}
