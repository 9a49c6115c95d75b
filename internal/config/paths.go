package config

import (
	"os"
	"path/filepath"
)

const appName = "parallax"

// Paths holds the resolved file locations.
type Paths struct {
	ConfigDir    string
	StateDir     string
	SettingsFile string
	MetadataFile string
	HistoryFile  string
}

// DefaultPaths resolves paths from the environment.
func DefaultPaths() *Paths {
	return NewPaths(defaultConfigDir(), defaultStateDir())
}

// NewPaths derives file locations from the two directories.
func NewPaths(configDir, stateDir string) *Paths {
	return &Paths{
		ConfigDir:    configDir,
		StateDir:     stateDir,
		SettingsFile: filepath.Join(configDir, "settings.toml"),
		MetadataFile: filepath.Join(stateDir, "workspaces.json"),
		HistoryFile:  filepath.Join(stateDir, "history.jsonl"),
	}
}

func defaultConfigDir() string {
	if dir := os.Getenv("PARALLAX_CONFIG_DIR"); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	return filepath.Join(ExpandPath("~/.config"), appName)
}

func defaultStateDir() string {
	if dir := os.Getenv("PARALLAX_STATE_DIR"); dir != "" {
		return dir
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	return filepath.Join(ExpandPath("~/.local/state"), appName)
}
