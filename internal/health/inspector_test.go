package health

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProbe = Probe{
	BundleFile:        "dist/remoteEntry.js",
	ManifestFile:      "package.json",
	AssetsDir:         "assets",
	SourceDir:         "src",
	ComponentPatterns: []string{"Chat", "Model", "History"},
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestInspect_EmptyDirectory(t *testing.T) {
	report := New(testProbe).Inspect(t.TempDir())

	assert.False(t, report.Healthy)
	assert.Equal(t, Details{}, report.Details)
}

func TestInspect_MissingDirectory(t *testing.T) {
	report := New(testProbe).Inspect(filepath.Join(t.TempDir(), "nope"))

	assert.False(t, report.Healthy)
	assert.False(t, report.Details.BundleExists)
}

func TestInspect_HealthyInstallation(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "dist", "remoteEntry.js"), "12345")
	write(t, filepath.Join(dir, "package.json"), `{"name":"x"}`)
	write(t, filepath.Join(dir, "src", "components", "ModelSelector.tsx"), "")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0755))

	report := New(testProbe).Inspect(dir)

	assert.True(t, report.Healthy)
	assert.Equal(t, Details{
		BundleExists:      true,
		BundleSize:        5,
		ManifestValid:     true,
		AssetsPresent:     true,
		ComponentsPresent: true,
	}, report.Details)
}

func TestInspect_UnhealthyCases(t *testing.T) {
	tests := []struct {
		name     string
		bundle   string
		manifest string
	}{
		{name: "EmptyBundle", bundle: "", manifest: `{}`},
		{name: "BrokenManifest", bundle: "x", manifest: `{"name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			write(t, filepath.Join(dir, "dist", "remoteEntry.js"), tt.bundle)
			write(t, filepath.Join(dir, "package.json"), tt.manifest)

			report := New(testProbe).Inspect(dir)

			assert.False(t, report.Healthy)
			assert.True(t, report.Details.BundleExists)
		})
	}
}

func TestInspect_AssetsFileIsNotADirectory(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "assets"), "not a dir")
	write(t, filepath.Join(dir, "src", "utils.ts"), "")

	report := New(testProbe).Inspect(dir)

	assert.False(t, report.Details.AssetsPresent)
	assert.False(t, report.Details.ComponentsPresent)
}

func TestInspect_DoesNotModify(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "package.json"), `{}`)

	before, err := os.ReadDir(dir)
	require.NoError(t, err)
	New(testProbe).Inspect(dir)
	after, err := os.ReadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, len(before), len(after))
}
