// Package config loads the fleetshift configuration file and exposes the
// process-wide configuration instance.
//
// Configuration lives in ~/.fleetshift/config.yaml by default; the
// FLEETSHIFT_CONFIG environment variable overrides the path. A missing file
// is not an error: defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/fleetshift/fleetshift/internal/logging"
)

// EnvConfigPath overrides the configuration file location.
const EnvConfigPath = "FLEETSHIFT_CONFIG"

// configDirName is the per-user configuration directory under $HOME.
const configDirName = ".fleetshift"

// LoggingConfig is the logging section of the config file.
type LoggingConfig struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	Level string `yaml:"level"`

	// Format is "console", "json" or "auto".
	Format string `yaml:"format"`

	// File is an optional log file path.
	File string `yaml:"file"`
}

// OutputConfig is the output section of the config file.
type OutputConfig struct {
	// DefaultFormat is the output format used when --output is not given:
	// "table" or "json".
	DefaultFormat string `yaml:"default_format"`
}

// ScenariosConfig is the scenario storage section of the config file.
type ScenariosConfig struct {
	// Database is the SQLite database path for persisted scenarios.
	Database string `yaml:"database"`
}

// ServerConfig is the HTTP API section of the config file.
type ServerConfig struct {
	// Listen is the listen address for the serve command.
	Listen string `yaml:"listen"`
}

// Config is the full configuration tree.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Output    OutputConfig    `yaml:"output"`
	Scenarios ScenariosConfig `yaml:"scenarios"`
	Server    ServerConfig    `yaml:"server"`

	// Defaults optionally overrides individual calculator input defaults.
	Defaults InputDefaults `yaml:"defaults"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, configDirName)

	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			DefaultFormat: "table",
		},
		Scenarios: ScenariosConfig{
			Database: filepath.Join(dir, "scenarios.db"),
		},
		Server: ServerConfig{
			Listen: "127.0.0.1:8383",
		},
	}
}

// Path returns the configuration file location, honoring EnvConfigPath.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, configDirName, "config.yaml")
}

// Load reads the configuration file at path on top of the defaults.
// A missing file returns the defaults without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory if needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// ToLoggingConfig converts the yaml section to the logging package config.
func (c LoggingConfig) ToLoggingConfig() logging.Config {
	return logging.Config{Level: c.Level, Format: c.Format, File: c.File}
}

// global holds the process-wide configuration instance.
var (
	global   *Config      //nolint:gochecknoglobals // Set once at startup, read by commands
	globalMu sync.RWMutex //nolint:gochecknoglobals // Protects global
)

// SetGlobal stores the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = cfg
}

// GetGlobal returns the process-wide configuration, loading defaults on
// first use.
func GetGlobal() *Config {
	globalMu.RLock()
	cfg := global
	globalMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = Default()
	}
	return global
}
