// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the home directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, key := range []string{
		"TERMFOLIO_API_BASE_URL",
		"VITE_API_BASE_URL",
		"TERMFOLIO_DATA_DIR",
		"TERMFOLIO_TYPE_SPEED_MS",
		"TERMFOLIO_DEBUG",
		"TERMFOLIO_NO_CACHE",
	} {
		t.Setenv(key, "")
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault(t *testing.T) {
	home := isolate(t)
	cfg := Default()

	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.Equal(t, 15*time.Millisecond, cfg.TypeSpeed())
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, filepath.Join(home, ".termfolio", "termfolio.db"), cfg.Cache.Path)
	assert.Equal(t, "visitor@portfolio.dev:~$ ", cfg.Prompt())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().API.BaseURL, cfg.API.BaseURL)
	assert.Equal(t, CurrentVersion, cfg.Version)
}

// =============================================================================
// FILE LOADING
// =============================================================================

func TestLoad_TOML(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".termfolio", "config.toml"), `
[api]
base_url = "https://api.example.com/v1/"
rate_per_sec = 2.5

[ui]
type_speed_ms = 0
owner_name = "Ada"
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1", cfg.API.BaseURL)
	assert.Equal(t, 2.5, cfg.API.RatePerSec)
	assert.Equal(t, 0, cfg.UI.TypeSpeedMs)
	assert.Equal(t, "Ada", cfg.UI.OwnerName)
	// Untouched sections keep their defaults.
	assert.Equal(t, 10, cfg.API.TimeoutSecs)
	assert.Equal(t, "visitor", cfg.UI.PromptUser)
}

func TestLoad_JSONFallback(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".termfolio", "config.json"),
		`{"api": {"base_url": "http://10.0.0.5:9000/api"}, "offline": {"demo": true}}`)

	path, err := ActivePath()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "config.json"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000/api", cfg.API.BaseURL)
	assert.True(t, cfg.Offline.Demo)
}

func TestLoadFromPath_Invalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, path, `[api]
base_url = "ftp://example.com"
timeout_secs = -1
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, len(verrs))
	for i, v := range verrs {
		fields[i] = v.Field
	}
	assert.Contains(t, fields, "api.base_url")
	assert.Contains(t, fields, "api.timeout_secs")
}

func TestLoadFromPath_Malformed(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "broken.toml")
	writeFile(t, path, "[api\nbase_url =")

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	home := isolate(t)

	cfg := Default()
	cfg.UI.OwnerName = "Grace"
	cfg.Offline.DataDir = "/srv/portfolio"
	require.NoError(t, Save(cfg))

	data, err := os.ReadFile(filepath.Join(home, ".termfolio", "config.toml"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# termfolio configuration file"))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Grace", loaded.UI.OwnerName)
	assert.Equal(t, "/srv/portfolio", loaded.Offline.DataDir)
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("VITE_API_BASE_URL", "https://legacy.example.com/api")
	t.Setenv("TERMFOLIO_API_BASE_URL", "https://new.example.com/api")
	t.Setenv("TERMFOLIO_TYPE_SPEED_MS", "40")
	t.Setenv("TERMFOLIO_DEBUG", "true")
	t.Setenv("TERMFOLIO_NO_CACHE", "1")
	t.Setenv("TERMFOLIO_DATA_DIR", "/tmp/data")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "https://new.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 40, cfg.UI.TypeSpeedMs)
	assert.True(t, cfg.Log.Debug)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "/tmp/data", cfg.Offline.DataDir)
}

func TestApplyEnvOverrides_LegacyBaseURL(t *testing.T) {
	isolate(t)
	t.Setenv("VITE_API_BASE_URL", "https://legacy.example.com/api")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "https://legacy.example.com/api", cfg.API.BaseURL)
}

func TestApplyEnvOverrides_BadNumberIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("TERMFOLIO_TYPE_SPEED_MS", "fast")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, 15, cfg.UI.TypeSpeedMs)
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	const key = "TERMFOLIO_DOTENV_PROBE"
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))

	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, key+"=from-file\n")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv(key))

	// Already-set variables win.
	t.Setenv(key, "from-env")
	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-env", os.Getenv(key))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"http://localhost:8080/api", false},
		{"https://example.com", false},
		{"ftp://example.com", true},
		{"file:///etc/passwd", true},
		{"/relative/path", true},
		{"http://", true},
	}

	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			err := ValidateURL(tc.url)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tc.url, err, tc.wantErr)
			}
		})
	}
}

func TestValidate_WatchNeedsDataDir(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Offline.Watch = true
	assert.Error(t, cfg.Validate())

	cfg.Offline.DataDir = t.TempDir()
	assert.NoError(t, cfg.Validate())
}

func TestMigrate_ExpandsHome(t *testing.T) {
	home := isolate(t)
	cfg := Default()
	cfg.Offline.DataDir = "~/portfolio"
	require.NoError(t, cfg.Migrate())
	assert.Equal(t, filepath.Join(home, "portfolio"), cfg.Offline.DataDir)
}

// =============================================================================
// GET/SET
// =============================================================================

func TestGetSet(t *testing.T) {
	isolate(t)
	cfg := Default()

	v, err := cfg.Get("api.base_url")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", v)

	require.NoError(t, cfg.Set("ui.type_speed_ms", "25"))
	assert.Equal(t, 25, cfg.UI.TypeSpeedMs)

	require.NoError(t, cfg.Set("cache.enabled", "false"))
	assert.False(t, cfg.Cache.Enabled)

	require.NoError(t, cfg.Set("api.rate_per_sec", "0.5"))
	assert.Equal(t, 0.5, cfg.API.RatePerSec)

	assert.Error(t, cfg.Set("ui.type_speed_ms", "quick"))
	_, err = cfg.Get("api.nope")
	assert.Error(t, err)
	_, err = cfg.Get("api")
	assert.Error(t, err)
	_, err = cfg.Get("")
	assert.Error(t, err)
}

func TestSet_Bool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"true", true}, {"1", true}, {"YES", true}, {"on", true}, {" t ", true},
		{"false", false}, {"0", false}, {"no", false}, {"Off", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cfg := Default()
			cfg.UI.AltScreen = !tt.want
			require.NoError(t, cfg.Set("ui.alt_screen", tt.in))
			assert.Equal(t, tt.want, cfg.UI.AltScreen)
		})
	}

	cfg := Default()
	cfg.UI.AltScreen = true
	err := cfg.Set("ui.alt_screen", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maybe")
	assert.True(t, cfg.UI.AltScreen, "rejected value leaves the field alone")
}

func TestGetAllKeys(t *testing.T) {
	keys := GetAllKeys()
	assert.Contains(t, keys, "version")
	assert.Contains(t, keys, "api.base_url")
	assert.Contains(t, keys, "cache.ttl_secs")
	assert.Contains(t, keys, "ui.type_speed_ms")

	cfg := Default()
	for _, key := range keys {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}

func TestClone_Independent(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.API.BaseURL = "https://other.example.com"
	assert.NotEqual(t, cfg.API.BaseURL, clone.API.BaseURL)
	assert.Contains(t, cfg.String(), `"base_url": "http://localhost:8080/api"`)
}

func TestServerConfig_Origins(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"*", []string{"*"}},
		{" http://a.test , ,http://b.test", []string{"http://a.test", "http://b.test"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ServerConfig{AllowedOrigins: tt.in}.Origins(), tt.in)
	}

	cfg := Default()
	cfg.Server.RatePerMinute = -1
	assert.Error(t, cfg.Validate())
}
