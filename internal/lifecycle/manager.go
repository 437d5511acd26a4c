package lifecycle

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/braindrive/chat-plugin/internal/descriptor"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// State is a user's position in the install/uninstall state machine
type State string

const (
	StateNotInstalled State = "not_installed"
	StateInstalling   State = "installing"
	StateInstalled    State = "installed"
	StateUninstalling State = "uninstalling"
)

// Options configures a Manager
type Options struct {
	PluginsRoot string // install target is <PluginsRoot>/shared/<slug>/v<version>
	Logger      zerolog.Logger
	Clock       func() time.Time
}

// Manager runs the install, uninstall and update flows for one plugin,
// delegating file, validation, health and persistence work to the injected
// Plugin and Records. The database handle is supplied per call.
type Manager struct {
	plugin      Plugin
	records     Records
	pluginsRoot string
	logger      zerolog.Logger
	now         func() time.Time

	mu        sync.Mutex
	states    map[string]State
	createdAt time.Time
	lastUsed  time.Time
}

// New creates a Manager
func New(plugin Plugin, records Records, opts Options) *Manager {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	meta := plugin.PluginMetadata()
	created := now()
	return &Manager{
		plugin:      plugin,
		records:     records,
		pluginsRoot: opts.PluginsRoot,
		logger:      opts.Logger.With().Str("plugin_slug", meta.Slug).Str("instance", meta.InstanceID()).Logger(),
		now:         now,
		states:      make(map[string]State),
		createdAt:   created,
		lastUsed:    created,
	}
}

// InstanceID returns <slug>_<version>
func (m *Manager) InstanceID() string {
	return m.plugin.PluginMetadata().InstanceID()
}

// SharedPath returns the directory plugin files are installed into
func (m *Manager) SharedPath() string {
	return m.plugin.PluginMetadata().SharedPath(m.pluginsRoot)
}

// ActiveUsers returns the users this Manager has seen installed, sorted
func (m *Manager) ActiveUsers() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]string, 0, len(m.states))
	for u, st := range m.states {
		if st == StateInstalled {
			users = append(users, u)
		}
	}
	sort.Strings(users)
	return users
}

// State returns the in-memory state for userID
func (m *Manager) State(userID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked(userID)
}

// LastUsed returns the time of the last successful transition
func (m *Manager) LastUsed() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastUsed
}

// CreatedAt returns when the Manager was constructed
func (m *Manager) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Manager) stateLocked(userID string) State {
	if st, ok := m.states[userID]; ok {
		return st
	}
	return StateNotInstalled
}

// transition sets userID's state and returns the previous one
func (m *Manager) transition(userID string, st State) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.stateLocked(userID)
	if st == StateNotInstalled {
		delete(m.states, userID)
	} else {
		m.states[userID] = st
	}
	if st == StateInstalled || st == StateNotInstalled {
		m.lastUsed = m.now()
	}
	return prev
}

// PluginMetadata returns the descriptor of the managed plugin
func (m *Manager) PluginMetadata() descriptor.Plugin { return m.plugin.PluginMetadata() }

// ModuleMetadata returns the module descriptors of the managed plugin
func (m *Manager) ModuleMetadata() []descriptor.Module { return m.plugin.ModuleMetadata() }

// InstallForUser creates the user's records, copies the plugin files from
// sourcePath into the shared path and validates the result. A failing step
// reports failure; earlier steps are not undone.
func (m *Manager) InstallForUser(ctx context.Context, userID string, db *gorm.DB, sourcePath string) InstallResult {
	meta := m.plugin.PluginMetadata()
	log := m.logger.With().Str("user_id", userID).Logger()

	if m.State(userID) == StateInstalled {
		return InstallResult{Success: false, Error: ErrAlreadyInstalled.Error()}
	}

	existing, err := m.records.Lookup(ctx, db, userID, meta.Slug)
	if err != nil {
		return InstallResult{Success: false, Error: err.Error()}
	}
	if existing.Exists {
		m.transition(userID, StateInstalled)
		log.Info().Str("plugin_id", existing.PluginID).Msg("plugin already installed")
		return InstallResult{Success: false, PluginID: existing.PluginID, Error: ErrAlreadyInstalled.Error()}
	}

	m.transition(userID, StateInstalling)
	result, err := m.install(ctx, userID, db, sourcePath)
	if err != nil {
		m.transition(userID, StateNotInstalled)
		log.Error().Err(err).Msg("user installation failed")
		result.Success = false
		result.Error = err.Error()
		return result
	}

	m.transition(userID, StateInstalled)
	log.Info().Str("plugin_id", result.PluginID).Msg("user installation completed")
	return result
}

func (m *Manager) install(ctx context.Context, userID string, db *gorm.DB, sourcePath string) (InstallResult, error) {
	meta := m.plugin.PluginMetadata()
	target := m.SharedPath()

	result := InstallResult{
		PluginSlug:  meta.Slug,
		PluginName:  meta.Name,
		InstallPath: target,
	}

	inserted, err := m.records.Insert(ctx, db, userID, meta, m.plugin.ModuleMetadata())
	if err != nil {
		return result, fmt.Errorf("failed to create database records: %w", err)
	}
	result.PluginID = inserted.PluginID
	result.ModulesCreated = inserted.ModulesCreated

	copied := m.plugin.CopyFiles(ctx, userID, sourcePath, target, false)
	result.CopiedFiles = copied.CopiedFiles
	if !copied.Success {
		return result, fmt.Errorf("failed to copy plugin files: %s", copied.Error)
	}

	if v := m.plugin.ValidateInstallation(ctx, userID, target); !v.Valid {
		return result, fmt.Errorf("installation validation failed: %s", v.Error)
	}

	result.Success = true
	return result, nil
}

// UninstallForUser deletes the user's plugin and module records. Installed
// files are left in place.
func (m *Manager) UninstallForUser(ctx context.Context, userID string, db *gorm.DB) UninstallResult {
	meta := m.plugin.PluginMetadata()
	log := m.logger.With().Str("user_id", userID).Logger()

	existing, err := m.records.Lookup(ctx, db, userID, meta.Slug)
	if err != nil {
		return UninstallResult{Success: false, Error: err.Error()}
	}
	if !existing.Exists {
		m.transition(userID, StateNotInstalled)
		return UninstallResult{Success: false, Error: ErrNotInstalled.Error()}
	}

	prev := m.transition(userID, StateUninstalling)
	deleted, err := m.records.Delete(ctx, db, userID, existing.PluginID)
	if err != nil {
		if prev == StateNotInstalled {
			// the database still holds the rows
			prev = StateInstalled
		}
		m.transition(userID, prev)
		log.Error().Err(err).Msg("user uninstallation failed")
		return UninstallResult{
			Success:  false,
			PluginID: existing.PluginID,
			Error:    fmt.Sprintf("failed to delete database records: %v", err),
		}
	}

	m.transition(userID, StateNotInstalled)
	log.Info().Str("plugin_id", existing.PluginID).Int("count", len(deleted.DeletedModules)).Msg("user uninstallation completed")
	return UninstallResult{
		Success:        true,
		PluginID:       existing.PluginID,
		DeletedModules: deleted.DeletedModules,
	}
}

// UpdateForUser re-copies the plugin files over an existing installation,
// replacing files in place, then validates it. Records are not touched.
func (m *Manager) UpdateForUser(ctx context.Context, userID string, db *gorm.DB, sourcePath string) InstallResult {
	meta := m.plugin.PluginMetadata()
	log := m.logger.With().Str("user_id", userID).Logger()
	target := m.SharedPath()

	existing, err := m.records.Lookup(ctx, db, userID, meta.Slug)
	if err != nil {
		return InstallResult{Success: false, Error: err.Error()}
	}
	if !existing.Exists {
		return InstallResult{Success: false, Error: ErrNotInstalled.Error()}
	}

	result := InstallResult{
		PluginID:    existing.PluginID,
		PluginSlug:  meta.Slug,
		PluginName:  meta.Name,
		InstallPath: target,
	}

	copied := m.plugin.CopyFiles(ctx, userID, sourcePath, target, true)
	result.CopiedFiles = copied.CopiedFiles
	if !copied.Success {
		result.Error = fmt.Sprintf("failed to copy plugin files: %s", copied.Error)
		log.Error().Msg(result.Error)
		return result
	}
	if v := m.plugin.ValidateInstallation(ctx, userID, target); !v.Valid {
		result.Error = fmt.Sprintf("installation validation failed: %s", v.Error)
		log.Error().Msg(result.Error)
		return result
	}

	m.transition(userID, StateInstalled)
	log.Info().Str("plugin_id", existing.PluginID).Int("count", len(copied.CopiedFiles)).Msg("user update completed")
	result.Success = true
	return result
}

// Status reports whether userID has the plugin installed
func (m *Manager) Status(ctx context.Context, userID string, db *gorm.DB) StatusResult {
	meta := m.plugin.PluginMetadata()

	found, err := m.records.Lookup(ctx, db, userID, meta.Slug)
	if err != nil {
		return StatusResult{Success: false, State: m.State(userID), Error: err.Error()}
	}

	state := m.State(userID)
	if state == StateNotInstalled && found.Exists {
		state = StateInstalled
	}
	return StatusResult{Success: true, State: state, Lookup: found}
}

// Health inspects the installed files for userID
func (m *Manager) Health(ctx context.Context, userID string) HealthResult {
	target := m.SharedPath()
	report := m.plugin.Health(ctx, userID, target)
	return HealthResult{
		Success:     report.Healthy,
		InstallPath: target,
		Report:      report,
	}
}
