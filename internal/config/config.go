// Package config loads charpick settings from TOML files, .env and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/charpick/internal/rickmorty"
	"github.com/llehouerou/charpick/internal/ui/portrait"
)

const appName = "charpick"

// Environment variables that override file settings.
const (
	EnvAPIURL    = "CHARPICK_API_URL"
	EnvLogLevel  = "CHARPICK_LOG_LEVEL"
	EnvPortraits = "CHARPICK_PORTRAITS"
)

type Config struct {
	API    APIConfig    `koanf:"api"`
	Search SearchConfig `koanf:"search"`
	UI     UIConfig     `koanf:"ui"`
	Log    LogConfig    `koanf:"log"`
}

// APIConfig holds the character API settings.
type APIConfig struct {
	BaseURL        string `koanf:"base_url"`
	TimeoutSeconds int    `koanf:"timeout_seconds"`
}

// SearchConfig holds widget search behavior.
type SearchConfig struct {
	DebounceMS int `koanf:"debounce_ms"` // quiet period before a request (default: 300)
	MaxVisible int `koanf:"max_visible"` // dropdown rows shown at once (default: 8)
}

// UIConfig holds display settings.
type UIConfig struct {
	Portraits string `koanf:"portraits"` // "auto", "kitty" or "none"
}

// LogConfig holds log file settings.
type LogConfig struct {
	Level      string `koanf:"level"`
	Path       string `koanf:"path"` // directory; empty means the XDG state dir
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        rickmorty.DefaultBaseURL,
			TimeoutSeconds: 10,
		},
		Search: SearchConfig{
			DebounceMS: 300,
			MaxVisible: 8,
		},
		UI: UIConfig{Portraits: string(portrait.ModeAuto)},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// Load reads ./.env, then the config files in order of priority (last wins),
// then explicitPath if set, then environment overrides.
func Load(explicitPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if explicitPath != "" {
		path := expandPath(explicitPath)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	cfg.Log.Path = expandPath(cfg.Log.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/charpick/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvPortraits); v != "" {
		c.UI.Portraits = v
	}
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = d.API.TimeoutSeconds
	}
	if c.Search.DebounceMS <= 0 {
		c.Search.DebounceMS = d.Search.DebounceMS
	}
	if c.Search.MaxVisible <= 0 {
		c.Search.MaxVisible = d.Search.MaxVisible
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = d.Log.MaxSizeMB
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = d.Log.MaxBackups
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api.base_url %q", c.API.BaseURL)
	}
	if _, err := portrait.ParseMode(c.UI.Portraits); err != nil {
		return err
	}
	return nil
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Debounce returns the search quiet period.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMS) * time.Millisecond
}

// PortraitMode returns the parsed portraits setting.
func (c *Config) PortraitMode() portrait.Mode {
	m, err := portrait.ParseMode(c.UI.Portraits)
	if err != nil {
		return portrait.ModeNone
	}
	return m
}

// LogDir returns the directory for log files.
func (c *Config) LogDir() string {
	if c.Log.Path != "" {
		return c.Log.Path
	}
	return filepath.Join(xdg.StateHome, appName)
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
