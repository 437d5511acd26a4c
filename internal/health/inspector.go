package health

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Probe names the paths a health check looks at, relative to the install dir
type Probe struct {
	BundleFile        string
	ManifestFile      string
	AssetsDir         string
	SourceDir         string
	ComponentPatterns []string // substrings matched against names under SourceDir
}

// Details is the per-check breakdown of a Report
type Details struct {
	BundleExists      bool  `json:"bundle_exists"`
	BundleSize        int64 `json:"bundle_size"`
	ManifestValid     bool  `json:"package_json_valid"`
	AssetsPresent     bool  `json:"assets_present"`
	ComponentsPresent bool  `json:"components_present"`
}

// Report is a read-only snapshot of an installation
type Report struct {
	Healthy bool    `json:"healthy"`
	Details Details `json:"details"`
}

// Inspector produces health reports for one plugin layout
type Inspector struct {
	probe Probe
}

// New creates an Inspector
func New(probe Probe) *Inspector {
	return &Inspector{probe: probe}
}

// Inspect reports on dir without modifying anything. Missing paths are reported
// as false, not as errors.
func (i *Inspector) Inspect(dir string) Report {
	var d Details

	if info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(i.probe.BundleFile))); err == nil && info.Mode().IsRegular() {
		d.BundleExists = true
		d.BundleSize = info.Size()
	}

	if data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(i.probe.ManifestFile))); err == nil {
		d.ManifestValid = json.Valid(data)
	}

	if info, err := os.Stat(filepath.Join(dir, i.probe.AssetsDir)); err == nil && info.IsDir() {
		d.AssetsPresent = true
	}

	d.ComponentsPresent = i.hasComponents(filepath.Join(dir, i.probe.SourceDir))

	return Report{
		Healthy: d.BundleExists && d.BundleSize > 0 && d.ManifestValid,
		Details: d,
	}
}

func (i *Inspector) hasComponents(srcDir string) bool {
	if len(i.probe.ComponentPatterns) == 0 {
		return false
	}
	if info, err := os.Stat(srcDir); err != nil || !info.IsDir() {
		return false
	}

	found := false
	filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == srcDir {
			return nil
		}
		for _, pattern := range i.probe.ComponentPatterns {
			if strings.Contains(d.Name(), pattern) {
				found = true
				return fs.SkipAll
			}
		}
		return nil
	})
	return found
}
