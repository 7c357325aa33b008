// Package config loads ganttx settings from defaults, YAML files and
// GANTTX_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/yken-tsuru/ganttx/internal/domain"
	"github.com/yken-tsuru/ganttx/internal/timescale"
)

// ServerConfig describes the Redmine server.
type ServerConfig struct {
	URL    string `mapstructure:"url" yaml:"url"`
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	// Token is a fixed authenticity token; empty scrapes it from the gantt
	// page before every write.
	Token     string `mapstructure:"token" yaml:"token"`
	TimeoutMs int    `mapstructure:"timeout_ms" yaml:"timeout_ms"`
}

// Config is the read-only settings snapshot of one run.
type Config struct {
	Server           ServerConfig   `mapstructure:"server" yaml:"server"`
	Project          string         `mapstructure:"project" yaml:"project"`
	Zoom             int            `mapstructure:"zoom" yaml:"zoom"`
	MaxRows          int            `mapstructure:"max_rows" yaml:"max_rows"`
	JournalRetention int            `mapstructure:"journal_retention" yaml:"journal_retention"`
	DBPath           string         `mapstructure:"db_path" yaml:"db_path"`
	LogPath          string         `mapstructure:"log_path" yaml:"log_path"`
	LogCalls         bool           `mapstructure:"log_calls" yaml:"log_calls"`
	Strings          domain.Strings `mapstructure:"strings" yaml:"strings"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:       "http://localhost:3000/",
			TimeoutMs: 15000,
		},
		Zoom:             timescale.DefaultZoom,
		MaxRows:          500,
		JournalRetention: 1000,
		DBPath:           filepath.Join(Dir(), "ganttx.db"),
		LogPath:          filepath.Join(Dir(), "ganttx.log"),
		LogCalls:         true,
		Strings:          domain.DefaultStrings(),
	}
}

// Timeout returns the HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutMs) * time.Millisecond
}

// Dir is the per-user ganttx directory.
func Dir() string {
	if v := os.Getenv("GANTTX_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ganttx"
	}
	return filepath.Join(home, ".ganttx")
}

// GlobalPath is the per-user config file.
func GlobalPath() string { return filepath.Join(Dir(), "config.yaml") }

// ProjectPath is the config file of the working directory.
func ProjectPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Join(".ganttx", "config.yaml")
	}
	return filepath.Join(cwd, ".ganttx", "config.yaml")
}

// Load reads the global then the project config file, then applies the
// environment.
func Load() (*Config, error) {
	return LoadFiles(GlobalPath(), ProjectPath())
}

// LoadFiles overlays each existing file onto the defaults in order, then
// applies the environment. Missing files are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	cfg := DefaultConfig()
	for _, p := range paths {
		if err := loadFile(p, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", p, err)
		}
	}
	applyEnv(cfg)
	defaults := DefaultConfig()
	if cfg.DBPath == "" {
		cfg.DBPath = defaults.DBPath
	}
	if cfg.LogPath == "" {
		cfg.LogPath = defaults.LogPath
	}
	cfg.Strings = cfg.Strings.WithDefaults()
	if !timescale.ValidZoom(cfg.Zoom) {
		cfg.Zoom = timescale.DefaultZoom
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(cfg)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GANTTX_URL"); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv("GANTTX_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("GANTTX_TOKEN"); v != "" {
		cfg.Server.Token = v
	}
	if v := os.Getenv("GANTTX_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.TimeoutMs = n
		}
	}
	if v := os.Getenv("GANTTX_PROJECT"); v != "" {
		cfg.Project = v
	}
	if v := os.Getenv("GANTTX_ZOOM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Zoom = n
		}
	}
	if v := os.Getenv("GANTTX_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("GANTTX_LOG"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("GANTTX_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
}

// WriteDefault writes the default settings to path. An existing file is
// kept unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	cfg := DefaultConfig()
	cfg.DBPath = ""
	cfg.LogPath = ""
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
