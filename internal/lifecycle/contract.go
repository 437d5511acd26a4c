package lifecycle

import (
	"context"

	"github.com/braindrive/chat-plugin/internal/descriptor"
	"github.com/braindrive/chat-plugin/internal/filesync"
	"github.com/braindrive/chat-plugin/internal/health"
	"github.com/braindrive/chat-plugin/internal/store"
	"github.com/braindrive/chat-plugin/internal/validate"
	"gorm.io/gorm"
)

// Plugin is the set of hooks a concrete plugin supplies to the Manager
type Plugin interface {
	PluginMetadata() descriptor.Plugin
	ModuleMetadata() []descriptor.Module

	// CopyFiles materializes the plugin's files from sourceDir into targetDir
	CopyFiles(ctx context.Context, userID, sourceDir, targetDir string, update bool) filesync.Result
	// ValidateInstallation checks a materialized install directory
	ValidateInstallation(ctx context.Context, userID, dir string) validate.Result
	// Health reports on an install directory without modifying it
	Health(ctx context.Context, userID, dir string) health.Report
}

// Records persists plugin and module rows on a caller-supplied handle
type Records interface {
	Lookup(ctx context.Context, db *gorm.DB, userID, slug string) (store.LookupResult, error)
	Insert(ctx context.Context, db *gorm.DB, userID string, plugin descriptor.Plugin, modules []descriptor.Module) (store.InsertResult, error)
	Delete(ctx context.Context, db *gorm.DB, userID, pluginID string) (store.DeleteResult, error)
}

var _ Records = (*store.Store)(nil)
