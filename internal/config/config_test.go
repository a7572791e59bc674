//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/charpick/internal/rickmorty"
	"github.com/llehouerou/charpick/internal/ui/portrait"
)

// isolate points XDG dirs and the working directory at fresh temp dirs and
// clears override variables.
func isolate(t *testing.T) (cwd, configHome string) {
	t.Helper()
	cwd = t.TempDir()
	configHome = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_STATE_HOME", filepath.Join(configHome, "state"))
	for _, k := range []string{EnvAPIURL, EnvLogLevel, EnvPortraits} {
		t.Setenv(k, "")
	}
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	t.Chdir(cwd)
	return cwd, configHome
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, rickmorty.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 8, cfg.Search.MaxVisible)
	assert.Equal(t, portrait.ModeAuto, cfg.PortraitMode())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.Equal(t, filepath.Join(xdg.StateHome, "charpick"), cfg.LogDir())
}

func TestLoad_FilesInPriorityOrder(t *testing.T) {
	cwd, configHome := isolate(t)

	writeFile(t, filepath.Join(configHome, "charpick", "config.toml"), `
[search]
debounce_ms = 150
max_visible = 4

[ui]
portraits = "none"
`)
	writeFile(t, filepath.Join(cwd, "config.toml"), `
[search]
debounce_ms = 500
`)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.Debounce(), "local file wins")
	assert.Equal(t, 4, cfg.Search.MaxVisible, "keys not overridden survive")
	assert.Equal(t, portrait.ModeNone, cfg.PortraitMode())
}

func TestLoad_ExplicitPath(t *testing.T) {
	cwd, _ := isolate(t)
	writeFile(t, filepath.Join(cwd, "config.toml"), `
[api]
timeout_seconds = 3
`)
	explicit := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, explicit, `
[api]
base_url = "http://localhost:8080/api/character/"

[log]
level = "debug"
path = "/tmp/charpick-logs"
`)

	cfg, err := Load(explicit)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/character/", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/charpick-logs", cfg.LogDir())
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_InvalidTOML(t *testing.T) {
	cwd, _ := isolate(t)
	writeFile(t, filepath.Join(cwd, "config.toml"), "[search\ndebounce_ms = ")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIURL, "http://127.0.0.1:9000/character/")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvPortraits, "kitty")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9000/character/", cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, portrait.ModeKitty, cfg.PortraitMode())
}

func TestLoad_DotEnv(t *testing.T) {
	cwd, _ := isolate(t)
	writeFile(t, filepath.Join(cwd, ".env"), EnvLogLevel+"=debug\n")
	// godotenv never overrides variables that are already set
	require.NoError(t, os.Unsetenv(EnvLogLevel))
	t.Cleanup(func() { _ = os.Unsetenv(EnvLogLevel) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_NonPositiveValuesFallBack(t *testing.T) {
	cwd, _ := isolate(t)
	writeFile(t, filepath.Join(cwd, "config.toml"), `
[api]
timeout_seconds = 0

[search]
debounce_ms = -5
max_visible = 0
`)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 8, cfg.Search.MaxVisible)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"relative url", func(c *Config) { c.API.BaseURL = "/api/character" }, true},
		{"garbage url", func(c *Config) { c.API.BaseURL = "::" }, true},
		{"bad portraits", func(c *Config) { c.UI.Portraits = "sixel" }, true},
		{"empty portraits", func(c *Config) { c.UI.Portraits = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expands to home", "~/logs", filepath.Join(home, "logs")},
		{"tilde with nested path", "~/.local/state/charpick", filepath.Join(home, ".local", "state", "charpick")},
		{"absolute path unchanged", "/var/log/charpick", "/var/log/charpick"},
		{"relative path unchanged", "logs/charpick", "logs/charpick"},
		{"empty string unchanged", "", ""},
		{"tilde only", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandPath(tt.input))
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	_, configHome := isolate(t)

	paths := getConfigPaths()

	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(configHome, "charpick", "config.toml"), paths[0])
	assert.Equal(t, "config.toml", paths[len(paths)-1])
}
