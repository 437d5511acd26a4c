package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const (
	// EnvPluginsDir overrides PluginsRoot
	EnvPluginsDir = "BRAINDRIVE_PLUGINS_DIR"
	// EnvDatabase overrides DatabasePath
	EnvDatabase = "BRAINDRIVE_DB"
)

// Config represents the main configuration file structure
type Config struct {
	Locale       string `json:"locale"`       // "auto" or ISO format (e.g., "ko-KR", "en-US")
	PluginsRoot  string `json:"pluginsRoot"`  // empty means DefaultPluginsRoot
	DatabasePath string `json:"databasePath"` // empty means DefaultDatabasePath
	LogLevel     string `json:"logLevel"`     // zerolog level name (default: info)
}

// Resolved holds the effective settings after file, environment and flags
type Resolved struct {
	PluginsRoot  string
	DatabasePath string
	LogLevel     zerolog.Level
}

var (
	cfg     *Config
	cfgOnce sync.Once
	cfgMu   sync.RWMutex
)

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Locale:   "auto", // default: auto-detect system locale
		LogLevel: "info",
	}
}

// Load loads the configuration from file
func Load() (*Config, error) {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return load()
}

func load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return NewConfig(), nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigPath(), err)
	}

	if config.Locale == "" {
		config.Locale = "auto"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	return &config, nil
}

// Save saves the configuration to file
func Save(config *Config) error {
	cfgMu.Lock()
	defer cfgMu.Unlock()

	if err := EnsureDir(AppDir()); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0644)
}

// Get returns the current configuration (singleton)
func Get() *Config {
	cfgOnce.Do(func() {
		var err error
		cfg, err = Load()
		if err != nil {
			cfg = NewConfig()
		}
	})
	return cfg
}

// Reload reloads the configuration from file
func Reload() error {
	cfgMu.Lock()
	defer cfgMu.Unlock()

	newCfg, err := load()
	if err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

// Resolve layers environment overrides over c. Flag values, when non-empty,
// win over both.
func (c *Config) Resolve(pluginsDirFlag, dbFlag string) (Resolved, error) {
	r := Resolved{
		PluginsRoot:  firstNonEmpty(pluginsDirFlag, os.Getenv(EnvPluginsDir), c.PluginsRoot, DefaultPluginsRoot()),
		DatabasePath: firstNonEmpty(dbFlag, os.Getenv(EnvDatabase), c.DatabasePath, DefaultDatabasePath()),
	}

	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return r, err
	}
	r.LogLevel = level
	return r, nil
}

// ParseLogLevel accepts zerolog level names; empty means info
func ParseLogLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// GetLocale returns the configured locale
func GetLocale() string {
	return Get().Locale
}

// SetLocale sets the locale and saves
func SetLocale(locale string) error {
	config := Get()
	config.Locale = locale
	return Save(config)
}

// SetPluginsRoot sets the plugins root and saves
func SetPluginsRoot(path string) error {
	config := Get()
	config.PluginsRoot = path
	return Save(config)
}

// SetDatabasePath sets the database path and saves
func SetDatabasePath(path string) error {
	config := Get()
	config.DatabasePath = path
	return Save(config)
}

// SetLogLevel validates and sets the log level, then saves
func SetLogLevel(level string) error {
	if _, err := ParseLogLevel(level); err != nil {
		return err
	}
	config := Get()
	config.LogLevel = strings.ToLower(level)
	return Save(config)
}
