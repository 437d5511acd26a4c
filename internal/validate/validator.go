package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// ErrorKind classifies a failed validation
type ErrorKind string

const (
	KindMissingFiles    ErrorKind = "missing_files"
	KindMissingField    ErrorKind = "missing_field"
	KindInvalidManifest ErrorKind = "invalid_manifest"
	KindEmptyBundle     ErrorKind = "empty_bundle"
	KindIO              ErrorKind = "io"
)

// Error is a descriptive validation failure
type Error struct {
	Kind    ErrorKind
	Label   string
	Message string
}

func (e *Error) Error() string {
	if e.Label == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Label, e.Message)
}

// Rules lists the files and manifest fields an installation must have
type Rules struct {
	ManifestFile   string   // relative to the install dir, e.g. "package.json"
	BundleFile     string   // relative to the install dir, e.g. "dist/remoteEntry.js"
	RequiredFields []string // top-level manifest keys
	Label          string   // prefix for error messages, usually the plugin name
}

// Result is the outcome of Validate
type Result struct {
	Valid bool      `json:"valid"`
	Kind  ErrorKind `json:"kind,omitempty"`
	Error string    `json:"error,omitempty"`
}

// Validator checks an installed plugin directory against Rules
type Validator struct {
	rules  Rules
	logger zerolog.Logger
}

// New creates a Validator
func New(rules Rules, logger zerolog.Logger) *Validator {
	return &Validator{rules: rules, logger: logger}
}

// Validate checks that dir holds a parseable manifest with every required field
// and a non-empty bundle. Failures are returned as data.
func (v *Validator) Validate(dir string) Result {
	if err := v.check(dir); err != nil {
		v.logger.Warn().Str("path", dir).Str("kind", string(err.Kind)).Msg(err.Error())
		return Result{Valid: false, Kind: err.Kind, Error: err.Error()}
	}
	v.logger.Info().Str("path", dir).Msg("installation validation passed")
	return Result{Valid: true}
}

func (v *Validator) check(dir string) *Error {
	var missing []string
	for _, rel := range []string{v.rules.ManifestFile, v.rules.BundleFile} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			missing = append(missing, rel)
		}
	}
	if len(missing) > 0 {
		return v.fail(KindMissingFiles, "Missing required files: %s", strings.Join(missing, ", "))
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(v.rules.ManifestFile)))
	if err != nil {
		return v.fail(KindInvalidManifest, "Invalid or missing %s: %v", v.rules.ManifestFile, err)
	}
	var manifest map[string]json.RawMessage
	if err := json.Unmarshal(data, &manifest); err != nil {
		return v.fail(KindInvalidManifest, "Invalid or missing %s: %v", v.rules.ManifestFile, err)
	}
	for _, field := range v.rules.RequiredFields {
		if _, ok := manifest[field]; !ok {
			return v.fail(KindMissingField, "%s missing required field: %s", v.rules.ManifestFile, field)
		}
	}

	info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(v.rules.BundleFile)))
	if err != nil {
		return v.fail(KindIO, "failed to stat %s: %v", v.rules.BundleFile, err)
	}
	if !info.Mode().IsRegular() {
		return v.fail(KindMissingFiles, "Missing required files: %s", v.rules.BundleFile)
	}
	if info.Size() == 0 {
		return v.fail(KindEmptyBundle, "Bundle file (%s) is empty", filepath.Base(v.rules.BundleFile))
	}
	return nil
}

func (v *Validator) fail(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Label: v.rules.Label, Message: fmt.Sprintf(format, args...)}
}
