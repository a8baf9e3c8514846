package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// HomeEnv overrides the configuration directory
	HomeEnv = "QUICKCAP_HOME"
)

var (
	// ConfigDir is the global configuration directory (~/.quickcap)
	ConfigDir string

	// DatabasePath is the SQLite database file for clipboard history
	DatabasePath string

	// SettingsFile is the user settings file (YAML, or TOML when it ends in .toml)
	SettingsFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string

	// SessionFile is the persisted editor draft
	SessionFile string

	// LogFile receives the application log
	LogFile string
)

// Initialize sets up the configuration directory and file paths.
// It creates ~/.quickcap/ (or $QUICKCAP_HOME) if it doesn't exist.
func Initialize() error {
	dir := os.Getenv(HomeEnv)
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".quickcap")
	}
	return InitializeAt(dir)
}

// InitializeAt points every path at dir and creates it
func InitializeAt(dir string) error {
	ConfigDir = dir
	DatabasePath = filepath.Join(ConfigDir, "quickcap.db")
	SettingsFile = resolveSettingsFile(ConfigDir)
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	SessionFile = filepath.Join(ConfigDir, ".session.json")
	LogFile = filepath.Join(ConfigDir, "quickcap.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Write defaults on first run so users have something to edit
	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		if err := SaveSettings(SettingsFile, DefaultSettings()); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	return nil
}

// resolveSettingsFile prefers an existing settings.toml over settings.yaml
func resolveSettingsFile(dir string) string {
	tomlPath := filepath.Join(dir, "settings.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath
	}
	return filepath.Join(dir, "settings.yaml")
}
