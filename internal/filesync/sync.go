package filesync

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultInstallerFile is the host-visible installer entry point shipped with
// every plugin tree.
const DefaultInstallerFile = "lifecycle_manager.py"

var (
	// DefaultExcludeNames are path components never copied into an install
	DefaultExcludeNames = []string{
		"node_modules",
		"package-lock.json",
		".git",
		".gitignore",
		"__pycache__",
		".DS_Store",
		"Thumbs.db",
	}

	// DefaultExcludeSuffixes are filename suffixes never copied into an install
	DefaultExcludeSuffixes = []string{".pyc"}
)

// Options configures a Synchronizer
type Options struct {
	ExcludeNames    []string
	ExcludeSuffixes []string
	InstallerFile   string
	Logger          zerolog.Logger
}

// DefaultOptions returns the exclusion set used for frontend plugin trees
func DefaultOptions() Options {
	return Options{
		ExcludeNames:    append([]string(nil), DefaultExcludeNames...),
		ExcludeSuffixes: append([]string(nil), DefaultExcludeSuffixes...),
		InstallerFile:   DefaultInstallerFile,
		Logger:          zerolog.Nop(),
	}
}

// Result is the outcome of a Sync call
type Result struct {
	Success     bool     `json:"success"`
	CopiedFiles []string `json:"copied_files,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// Synchronizer copies a plugin source tree into an install directory
type Synchronizer struct {
	excludeNames    map[string]struct{}
	excludeSuffixes []string
	installerFile   string
	logger          zerolog.Logger
}

// New creates a Synchronizer from opts
func New(opts Options) *Synchronizer {
	names := make(map[string]struct{}, len(opts.ExcludeNames))
	for _, n := range opts.ExcludeNames {
		names[n] = struct{}{}
	}
	return &Synchronizer{
		excludeNames:    names,
		excludeSuffixes: opts.ExcludeSuffixes,
		installerFile:   opts.InstallerFile,
		logger:          opts.Logger,
	}
}

// Excluded reports whether a path relative to the source root must be skipped
func (s *Synchronizer) Excluded(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if _, ok := s.excludeNames[part]; ok {
			return true
		}
	}
	name := filepath.Base(rel)
	for _, suffix := range s.excludeSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// Sync copies every non-excluded entry of source into target, preserving the
// relative layout. With update set, existing target files are removed before
// being rewritten. Individual copy failures are logged and skipped; only a
// failure to read the source root or create the target root fails the sync.
func (s *Synchronizer) Sync(source, target string, update bool) Result {
	info, err := os.Stat(source)
	if err != nil {
		return s.fail(fmt.Errorf("source directory not accessible: %w", err))
	}
	if !info.IsDir() {
		return s.fail(fmt.Errorf("source is not a directory: %s", source))
	}
	absSource, err := filepath.Abs(source)
	if err != nil {
		return s.fail(fmt.Errorf("failed to resolve source directory: %w", err))
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return s.fail(fmt.Errorf("failed to resolve target directory: %w", err))
	}
	if absSource == absTarget {
		return s.fail(fmt.Errorf("target is the source directory: %s", target))
	}
	if err := os.MkdirAll(target, 0755); err != nil {
		return s.fail(fmt.Errorf("failed to create target directory: %w", err))
	}

	copied := []string{}
	walkErr := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if path == source {
			return err
		}
		rel, relErr := filepath.Rel(source, path)
		if relErr != nil {
			s.logger.Warn().Err(relErr).Str("path", path).Msg("failed to resolve relative path")
			return nil
		}
		if err != nil {
			s.logger.Warn().Err(err).Str("path", rel).Msg("failed to read entry")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		// a target nested in the source must not be copied into itself
		if d.IsDir() && filepath.Join(absSource, rel) == absTarget {
			s.logger.Debug().Str("path", rel).Msg("skipping target directory")
			return fs.SkipDir
		}
		if s.Excluded(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		// copied explicitly after the walk
		if rel == s.installerFile {
			return nil
		}

		dest := filepath.Join(target, rel)
		if d.IsDir() {
			if err := os.MkdirAll(dest, 0755); err != nil {
				s.logger.Warn().Err(err).Str("path", rel).Msg("failed to create directory")
				return nil
			}
			s.logger.Debug().Str("path", rel).Msg("created directory")
			return nil
		}

		if err := copyEntry(path, dest, update); err != nil {
			s.logger.Warn().Err(err).Str("path", rel).Msg("failed to copy file")
			return nil
		}
		copied = append(copied, filepath.ToSlash(rel))
		s.logger.Debug().Str("path", rel).Msg("copied file")
		return nil
	})
	if walkErr != nil {
		return s.fail(fmt.Errorf("failed to walk source directory: %w", walkErr))
	}

	if s.installerFile != "" {
		installerSrc := filepath.Join(source, s.installerFile)
		if st, err := os.Stat(installerSrc); err == nil && st.Mode().IsRegular() {
			if err := copyEntry(installerSrc, filepath.Join(target, s.installerFile), update); err != nil {
				return s.fail(fmt.Errorf("failed to copy %s: %w", s.installerFile, err))
			}
			copied = append(copied, filepath.ToSlash(s.installerFile))
			s.logger.Info().Str("path", s.installerFile).Msg("copied installer file")
		}
	}

	s.logger.Info().Int("count", len(copied)).Str("path", target).Msg("copied plugin files")
	return Result{Success: true, CopiedFiles: copied}
}

func (s *Synchronizer) fail(err error) Result {
	s.logger.Error().Err(err).Msg("error copying plugin files")
	return Result{Success: false, Error: err.Error()}
}

// copyEntry copies a regular file (following symlinks), keeping its mode and
// modification time. Anything that is not a regular file is rejected.
func copyEntry(src, dst string, update bool) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", src)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	if update {
		if _, err := os.Lstat(dst); err == nil {
			if err := os.Remove(dst); err != nil {
				return fmt.Errorf("failed to remove existing file: %w", err)
			}
		}
	}
	return copyFile(src, dst, info)
}

func copyFile(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
