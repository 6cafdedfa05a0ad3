// Package config resolves the store location and display settings.
//
// The store path is resolved in priority order: explicit command-line
// override, then the RLIST_DB_FILE environment variable (optionally
// loaded from a .env file), then the db_file value from the config
// file, then a fixed default under the user's data directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration, stored as YAML.
type Config struct {
	// DBFile is the store file path. Relative paths are rejected so an
	// invocation from a different directory cannot silently create a
	// second list.
	DBFile string `yaml:"db_file,omitempty"`

	// DateFormat is the Go time layout used for human-readable dates.
	DateFormat string `yaml:"date_format,omitempty"`
}

const (
	// ConfigDirName is the directory under XDG_CONFIG_HOME.
	ConfigDirName = "rlist"
	// ConfigFileName is the config file name.
	ConfigFileName = "config.yml"

	// EnvDBFile overrides the store path when set.
	EnvDBFile = "RLIST_DB_FILE"

	// DefaultDateFormat is the fallback human date layout.
	DefaultDateFormat = "2006-01-02"
)

// DefaultPath returns the default config file location, honoring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDirName, ConfigFileName)
}

// DefaultDBPath returns the default store file location, honoring
// XDG_DATA_HOME.
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("finding home directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, ConfigDirName, "rlist.db"), nil
}

// Load reads the config file at path, or the default location when
// path is empty. A missing file at the default location yields an empty
// config, not an error; an explicitly named file must exist. A .env
// file in the working directory is loaded first so RLIST_DB_FILE can be
// set per project.
func Load(path string) (*Config, error) {
	// Missing .env files are fine; only populate the environment.
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DBFile != "" {
		cfg.DBFile = expandTilde(cfg.DBFile)
		if !filepath.IsAbs(cfg.DBFile) {
			return nil, fmt.Errorf("db_file must be an absolute path, got %q", cfg.DBFile)
		}
	}

	return &cfg, nil
}

// ResolveDBFile returns the store path, applying the priority order.
// flagValue is the command-line override and wins when non-empty.
func (c *Config) ResolveDBFile(flagValue string) (string, error) {
	if flagValue != "" {
		return expandTilde(flagValue), nil
	}
	if env := os.Getenv(EnvDBFile); env != "" {
		return expandTilde(env), nil
	}
	if c.DBFile != "" {
		return c.DBFile, nil
	}
	return DefaultDBPath()
}

// DateLayout returns the human date layout and whether the configured
// value was usable. Unusable layouts fall back to DefaultDateFormat;
// the caller decides whether to warn.
func (c *Config) DateLayout() (layout string, ok bool) {
	if c.DateFormat == "" {
		return DefaultDateFormat, true
	}
	if !validLayout(c.DateFormat) {
		return DefaultDateFormat, false
	}
	return c.DateFormat, true
}

// validLayout checks that a Go time layout carries the full calendar
// date: formatting the reference date and parsing it back must recover
// year, month and day. A layout without date fields renders literally
// and would silently show the same text for every entry.
func validLayout(layout string) bool {
	ref := time.Date(2006, time.January, 2, 0, 0, 0, 0, time.UTC)
	parsed, err := time.Parse(layout, ref.Format(layout))
	if err != nil {
		return false
	}
	return parsed.Year() == 2006 && parsed.Month() == time.January && parsed.Day() == 2
}

// expandTilde expands a leading ~ to the user's home directory.
func expandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
