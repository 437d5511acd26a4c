package braindrivechat

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/braindrive/chat-plugin/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
}

func pluginSource(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	writeSource(t, src, map[string]string{
		"package.json":            `{"name":"braindrive-chat","version":"1.0.0"}`,
		"dist/remoteEntry.js":     "var remote = {};",
		"src/ChatPanel.tsx":       "export {}",
		"assets/icon.svg":         "<svg/>",
		"lifecycle_manager.py":    "# installer",
		"node_modules/x/index.js": "ignored",
		".git/HEAD":               "ref: refs/heads/main",
		"src/__pycache__/a.pyc":   "ignored",
		"README.md":               "docs",
	})
	return src
}

func TestDescriptors(t *testing.T) {
	p := PluginDescriptor()
	assert.Equal(t, "BrainDriveChat", p.Slug)
	assert.Equal(t, "1.0.0", p.Version)
	assert.Equal(t, "dist/remoteEntry.js", p.BundleLocation)
	assert.Equal(t, "BrainDriveChat_1.0.0", p.InstanceID())
	assert.Equal(t, []string{"storage.read", "storage.write", "api.access"}, p.Permissions)

	mods := ModuleDescriptors()
	require.Len(t, mods, 1)
	m := mods[0]
	assert.Equal(t, "BrainDriveChat", m.Name)
	assert.Equal(t, 1, m.Priority)
	assert.Len(t, m.ConfigFields, 6)
	assert.Equal(t, initialGreeting, m.Props["initialGreeting"])
	assert.Contains(t, m.RequiredServices, "api")
	assert.Equal(t, 8, m.Layout.DefaultWidth)
}

func TestDescriptorsAreFreshCopies(t *testing.T) {
	a := ModuleDescriptors()
	a[0].Props["initialGreeting"] = "changed"
	a[0].Tags[0] = "changed"

	b := ModuleDescriptors()
	assert.Equal(t, initialGreeting, b[0].Props["initialGreeting"])
	assert.Equal(t, "ai", b[0].Tags[0])
}

func TestInstallUninstallEndToEnd(t *testing.T) {
	ctx := context.Background()
	db, err := store.Open(filepath.Join(t.TempDir(), "braindrive.db"), false)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	t.Cleanup(func() { store.Close(db) })

	root := t.TempDir()
	m := NewManager(root, zerolog.Nop())
	src := pluginSource(t)

	res := m.InstallForUser(ctx, "u1", db, src)
	require.True(t, res.Success, res.Error)
	require.Len(t, res.ModulesCreated, 1)
	assert.Equal(t, "BrainDriveChat", res.ModulesCreated[0].Name)

	target := filepath.Join(root, "shared", "BrainDriveChat", "v1.0.0")
	assert.Equal(t, target, res.InstallPath)
	assert.FileExists(t, filepath.Join(target, "dist", "remoteEntry.js"))
	assert.FileExists(t, filepath.Join(target, "lifecycle_manager.py"))
	assert.NoDirExists(t, filepath.Join(target, "node_modules"))
	assert.NoDirExists(t, filepath.Join(target, ".git"))
	assert.NoFileExists(t, filepath.Join(target, "src", "__pycache__", "a.pyc"))

	h := m.Health(ctx, "u1")
	assert.True(t, h.Success)
	assert.True(t, h.Report.Details.ComponentsPresent)
	assert.True(t, h.Report.Details.AssetsPresent)

	un := m.UninstallForUser(ctx, "u1", db)
	require.True(t, un.Success, un.Error)
	require.Len(t, un.DeletedModules, 1)
	assert.Equal(t, "BrainDriveChat", un.DeletedModules[0].Name)

	// files stay behind for other users of the shared path
	assert.FileExists(t, filepath.Join(target, "package.json"))
}

func TestInstallFailsValidationWithoutBundle(t *testing.T) {
	ctx := context.Background()
	db, err := store.Open(filepath.Join(t.TempDir(), "braindrive.db"), false)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	t.Cleanup(func() { store.Close(db) })

	src := t.TempDir()
	writeSource(t, src, map[string]string{
		"package.json": `{"name":"braindrive-chat","version":"1.0.0"}`,
	})

	m := NewManager(t.TempDir(), zerolog.Nop())
	res := m.InstallForUser(ctx, "u1", db, src)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "BrainDriveChat: Missing required files: dist/remoteEntry.js")
}
