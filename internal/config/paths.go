package config

import (
	"os"
	"path/filepath"
)

var (
	homeDir string
)

func init() {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		homeDir = "~"
	}
}

// AppDir returns the braindrive-chat config directory path
// ~/.config/braindrive-chat/
func AppDir() string {
	return filepath.Join(homeDir, ".config", "braindrive-chat")
}

// ConfigPath returns the config.json file path
// ~/.config/braindrive-chat/config.json
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.json")
}

// DefaultPluginsRoot returns the directory plugins are installed under
// ~/.config/braindrive-chat/plugins/
func DefaultPluginsRoot() string {
	return filepath.Join(AppDir(), "plugins")
}

// DefaultDatabasePath returns the local sqlite database path
// ~/.config/braindrive-chat/braindrive.db
func DefaultDatabasePath() string {
	return filepath.Join(AppDir(), "braindrive.db")
}

// DefaultSourceDir returns the plugin source directory used when none is given.
// It is the current working directory, which is where a built plugin checkout lives.
func DefaultSourceDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
