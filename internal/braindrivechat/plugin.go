package braindrivechat

import (
	"context"

	"github.com/braindrive/chat-plugin/internal/descriptor"
	"github.com/braindrive/chat-plugin/internal/filesync"
	"github.com/braindrive/chat-plugin/internal/health"
	"github.com/braindrive/chat-plugin/internal/lifecycle"
	"github.com/braindrive/chat-plugin/internal/store"
	"github.com/braindrive/chat-plugin/internal/validate"
	"github.com/rs/zerolog"
)

const (
	manifestFile = "package.json"
	bundleFile   = "dist/remoteEntry.js"
)

// componentPatterns match the chat UI sources under src/
var componentPatterns = []string{"Chat", "Model", "History"}

// Plugin supplies the BrainDriveChat hooks to a lifecycle.Manager
type Plugin struct {
	sync      *filesync.Synchronizer
	validator *validate.Validator
	inspector *health.Inspector
	logger    zerolog.Logger
}

var _ lifecycle.Plugin = (*Plugin)(nil)

// New creates the BrainDriveChat hooks
func New(logger zerolog.Logger) *Plugin {
	logger = logger.With().Str("plugin", Slug).Logger()

	syncOpts := filesync.DefaultOptions()
	syncOpts.Logger = logger

	return &Plugin{
		sync: filesync.New(syncOpts),
		validator: validate.New(validate.Rules{
			ManifestFile:   manifestFile,
			BundleFile:     bundleFile,
			RequiredFields: []string{"name", "version"},
			Label:          Slug,
		}, logger),
		inspector: health.New(health.Probe{
			BundleFile:        bundleFile,
			ManifestFile:      manifestFile,
			AssetsDir:         "assets",
			SourceDir:         "src",
			ComponentPatterns: componentPatterns,
		}),
		logger: logger,
	}
}

// NewManager wires the BrainDriveChat hooks and a gorm record store into a
// lifecycle.Manager rooted at pluginsRoot
func NewManager(pluginsRoot string, logger zerolog.Logger) *lifecycle.Manager {
	return lifecycle.New(New(logger), store.New(store.WithLogger(logger)), lifecycle.Options{
		PluginsRoot: pluginsRoot,
		Logger:      logger,
	})
}

// PluginMetadata returns the BrainDriveChat plugin descriptor
func (p *Plugin) PluginMetadata() descriptor.Plugin { return PluginDescriptor() }

// ModuleMetadata returns the BrainDriveChat module descriptors
func (p *Plugin) ModuleMetadata() []descriptor.Module { return ModuleDescriptors() }

// CopyFiles syncs the plugin tree from sourceDir into targetDir
func (p *Plugin) CopyFiles(ctx context.Context, userID, sourceDir, targetDir string, update bool) filesync.Result {
	p.logger.Info().Str("user_id", userID).Str("path", targetDir).Bool("update", update).Msg("copying plugin files")
	return p.sync.Sync(sourceDir, targetDir, update)
}

// ValidateInstallation checks dir for the manifest and a non-empty bundle
func (p *Plugin) ValidateInstallation(ctx context.Context, userID, dir string) validate.Result {
	return p.validator.Validate(dir)
}

// Health inspects dir without modifying it
func (p *Plugin) Health(ctx context.Context, userID, dir string) health.Report {
	return p.inspector.Inspect(dir)
}
