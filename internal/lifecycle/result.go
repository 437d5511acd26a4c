package lifecycle

import (
	"errors"

	"github.com/braindrive/chat-plugin/internal/health"
	"github.com/braindrive/chat-plugin/internal/store"
)

var (
	// ErrAlreadyInstalled rejects an install for a user who already has the plugin
	ErrAlreadyInstalled = errors.New("plugin already installed for user")
	// ErrNotInstalled rejects an uninstall or update for a user without the plugin
	ErrNotInstalled = errors.New("plugin not installed for user")
)

// InstallResult is returned by InstallForUser and UpdateForUser
type InstallResult struct {
	Success        bool              `json:"success"`
	PluginID       string            `json:"plugin_id,omitempty"`
	PluginSlug     string            `json:"plugin_slug,omitempty"`
	PluginName     string            `json:"plugin_name,omitempty"`
	ModulesCreated []store.ModuleRef `json:"modules_created,omitempty"`
	CopiedFiles    []string          `json:"copied_files,omitempty"`
	InstallPath    string            `json:"install_path,omitempty"`
	Error          string            `json:"error,omitempty"`
}

// UninstallResult is returned by UninstallForUser
type UninstallResult struct {
	Success        bool              `json:"success"`
	PluginID       string            `json:"plugin_id,omitempty"`
	DeletedModules []store.ModuleRef `json:"deleted_modules,omitempty"`
	Error          string            `json:"error,omitempty"`
}

// StatusResult is returned by Status
type StatusResult struct {
	Success bool               `json:"success"`
	State   State              `json:"state"`
	Lookup  store.LookupResult `json:"lookup"`
	Error   string             `json:"error,omitempty"`
}

// HealthResult is returned by Health
type HealthResult struct {
	Success     bool          `json:"success"`
	InstallPath string        `json:"install_path"`
	Report      health.Report `json:"report"`
}
