package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/braindrive/chat-plugin/internal/braindrivechat"
	"github.com/braindrive/chat-plugin/internal/config"
	"github.com/braindrive/chat-plugin/internal/i18n"
	"github.com/braindrive/chat-plugin/internal/lifecycle"
	"github.com/braindrive/chat-plugin/internal/store"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var userID string

// addUserFlag registers the --user flag on commands that act for one user
func addUserFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&userID, "user", "u", "", "BrainDrive user id (required)")
}

func requireUser() error {
	if userID == "" {
		return errors.New(i18n.T("error.user.required", nil))
	}
	return nil
}

// environment is the resolved settings plus the manager built from them
type environment struct {
	settings config.Resolved
	manager  *lifecycle.Manager
	db       *gorm.DB
}

func newEnvironment() (*environment, error) {
	settings, err := config.Get().Resolve(pluginsDir, dbPath)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("path", settings.PluginsRoot).
		Str("database", settings.DatabasePath).
		Msg("resolved settings")

	return &environment{
		settings: settings,
		manager:  braindrivechat.NewManager(settings.PluginsRoot, logger),
	}, nil
}

// openEnvironment also opens and migrates the database
func openEnvironment() (*environment, error) {
	env, err := newEnvironment()
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(env.settings.DatabasePath); dir != "." {
		if err := config.EnsureDir(dir); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := store.Open(env.settings.DatabasePath, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", env.settings.DatabasePath, err)
	}
	if err := store.Migrate(db); err != nil {
		store.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	env.db = db
	return env, nil
}

func (e *environment) Close() {
	if e.db == nil {
		return
	}
	if err := store.Close(e.db); err != nil {
		logger.Warn().Err(err).Msg("failed to close database")
	}
}

// printJSON writes v to stdout. A false ok turns into errReported so the
// process exits non-zero without printing anything else.
func printJSON(v any, ok bool) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	if !ok {
		return errReported
	}
	return nil
}
