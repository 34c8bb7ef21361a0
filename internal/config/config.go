// Package config resolves application settings from defaults, an optional
// YAML file and SOLPLAN_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/alexanderramin/solplan/internal/timeline"
	"gopkg.in/yaml.v3"
)

const (
	envConfig          = "SOLPLAN_CONFIG"
	envDB              = "SOLPLAN_DB"
	envLogUseCases     = "SOLPLAN_LOG_USE_CASES"
	envWindowMonths    = "SOLPLAN_WINDOW_MONTHS"
	envDefaultCapacity = "SOLPLAN_DEFAULT_CAPACITY"
)

// Config holds every setting the CLI needs.
type Config struct {
	DBPath          string  `yaml:"db_path"`
	LogUseCases     bool    `yaml:"log_use_cases"`
	WindowMonths    int     `yaml:"window_months"`
	DefaultCapacity float64 `yaml:"default_capacity_kwc"`
}

// DefaultConfig returns the settings used when nothing is configured.
// home is the directory that holds the .solplan folder.
func DefaultConfig(home string) Config {
	return Config{
		DBPath:          filepath.Join(home, ".solplan", "solplan.db"),
		LogUseCases:     false,
		WindowMonths:    timeline.DefaultWindowMonths,
		DefaultCapacity: domain.DefaultCapacityKWc,
	}
}

// DefaultPath is the config file location under home.
func DefaultPath(home string) string {
	return filepath.Join(home, ".solplan", "config.yaml")
}

// Load resolves the configuration for the current user. SOLPLAN_CONFIG
// names an alternative config file.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	path := os.Getenv(envConfig)
	if path == "" {
		path = DefaultPath(home)
	}
	return LoadFile(home, path)
}

// LoadFile applies the YAML file at path, if present, over the defaults
// and then the environment. A missing file is not an error.
func LoadFile(home, path string) (Config, error) {
	cfg := DefaultConfig(home)

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("opening config: %w", err)
	default:
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	}

	overrideFromEnv(&cfg)
	cfg.sanitize(home)
	return cfg, nil
}

// overrideFromEnv ignores values that fail to parse.
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv(envDB); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(envLogUseCases); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
	if v := os.Getenv(envWindowMonths); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WindowMonths = n
		}
	}
	if v := os.Getenv(envDefaultCapacity); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.DefaultCapacity = f
		}
	}
}

func (c *Config) sanitize(home string) {
	def := DefaultConfig(home)
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.WindowMonths <= 0 {
		c.WindowMonths = def.WindowMonths
	}
	if c.DefaultCapacity <= 0 {
		c.DefaultCapacity = def.DefaultCapacity
	}
}
