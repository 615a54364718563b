// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for termfolio.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// .env files, environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.termfolio/config.toml
//   - ~/.termfolio/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/termfolio-tui/internal/util"
)

// CurrentVersion is stamped into configs by Migrate.
const CurrentVersion = "1.0.0"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete termfolio configuration.
type Config struct {
	// Version of the config file layout
	Version string `toml:"version" json:"version"`

	// Backend API configuration
	API APIConfig `toml:"api" json:"api"`

	// Payload cache configuration
	Cache CacheConfig `toml:"cache" json:"cache"`

	// Local data configuration
	Offline OfflineConfig `toml:"offline" json:"offline"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Local API server configuration
	Server ServerConfig `toml:"server" json:"server"`

	// Log configuration
	Log LogConfig `toml:"log" json:"log"`
}

// APIConfig contains backend API configuration.
type APIConfig struct {
	// BaseURL is prepended to "/<endpoint>" for every request
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs bounds a single request
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// RatePerSec is the sustained request rate (0 = unlimited)
	RatePerSec float64 `toml:"rate_per_sec" json:"rate_per_sec"`
	// Burst is the token bucket size
	Burst int `toml:"burst" json:"burst"`
	// UserAgent is sent with every request
	UserAgent string `toml:"user_agent" json:"user_agent"`
}

// CacheConfig contains payload cache configuration.
type CacheConfig struct {
	// Enabled controls whether responses are cached in the local database
	Enabled bool `toml:"enabled" json:"enabled"`
	// TTLSecs is how long a cached response is served without refetching
	TTLSecs int `toml:"ttl_secs" json:"ttl_secs"`
	// Path is the SQLite database file (also holds command history)
	Path string `toml:"path" json:"path"`
}

// OfflineConfig selects a local data source instead of the API.
type OfflineConfig struct {
	// DataDir serves <dir>/<endpoint>.json when set
	DataDir string `toml:"data_dir" json:"data_dir"`
	// Watch reloads DataDir files as they change
	Watch bool `toml:"watch" json:"watch"`
	// Demo serves the built-in sample portfolio
	Demo bool `toml:"demo" json:"demo"`
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	// PromptUser is the user part of the prompt
	PromptUser string `toml:"prompt_user" json:"prompt_user"`
	// PromptHost is the host part of the prompt
	PromptHost string `toml:"prompt_host" json:"prompt_host"`
	// TypeSpeedMs is the delay between typed characters (0 = no animation)
	TypeSpeedMs int `toml:"type_speed_ms" json:"type_speed_ms"`
	// OwnerName is shown in the intro banner
	OwnerName string `toml:"owner_name" json:"owner_name"`
	// Tagline is shown under the owner name
	Tagline string `toml:"tagline" json:"tagline"`
	// AltScreen runs the TUI in the alternate screen buffer
	AltScreen bool `toml:"alt_screen" json:"alt_screen"`
}

// ServerConfig configures the local portfolio API server.
type ServerConfig struct {
	// Addr is the listen address
	Addr string `toml:"addr" json:"addr"`
	// AllowedOrigins is a comma-separated CORS allowlist ("*" allows any origin)
	AllowedOrigins string `toml:"allowed_origins" json:"allowed_origins"`
	// RatePerMinute bounds requests per client IP (0 = unlimited)
	RatePerMinute int `toml:"rate_per_minute" json:"rate_per_minute"`
}

// Origins splits AllowedOrigins into a list, dropping blanks.
func (s ServerConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(s.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// File receives JSON log lines (rotated)
	File string `toml:"file" json:"file"`
	// Debug enables debug-level logging
	Debug bool `toml:"debug" json:"debug"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,

		API: APIConfig{
			BaseURL:     "http://localhost:8080/api",
			TimeoutSecs: 10,
			RatePerSec:  5,
			Burst:       5,
			UserAgent:   "termfolio/" + CurrentVersion,
		},

		Cache: CacheConfig{
			Enabled: true,
			TTLSecs: 300,
			Path:    defaultPath("termfolio.db"),
		},

		UI: UIConfig{
			PromptUser:  "visitor",
			PromptHost:  "portfolio.dev",
			TypeSpeedMs: 15,
			OwnerName:   "Portfolio",
			Tagline:     "Software Engineer",
			AltScreen:   true,
		},

		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			AllowedOrigins: "http://localhost:3000,http://localhost:5173",
			RatePerMinute:  120,
		},

		Log: LogConfig{
			File: defaultPath("termfolio.log"),
		},
	}
}

// defaultPath returns name inside the config directory, or a relative
// ".termfolio" directory when the home directory is unknown.
func defaultPath(name string) string {
	dir, err := ConfigDir()
	if err != nil {
		dir = ".termfolio"
	}
	return filepath.Join(dir, name)
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// Timeout returns the request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// CacheTTL returns the payload cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSecs) * time.Second
}

// TypeSpeed returns the delay between typed characters.
func (c *Config) TypeSpeed() time.Duration {
	return time.Duration(c.UI.TypeSpeedMs) * time.Millisecond
}

// Prompt returns the prompt string, e.g. "visitor@portfolio.dev:~$ ".
func (c *Config) Prompt() string {
	return c.UI.PromptUser + "@" + c.UI.PromptHost + ":~$ "
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the termfolio configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".termfolio"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ActivePath returns the config file Load would read, or the TOML path
// when neither file exists yet.
func ActivePath() (string, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// A .env file in the working directory and environment overrides are
// applied last.
func Load() (*Config, error) {
	path, err := ActivePath()
	if err != nil {
		return finish(Default())
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return finish(Default())
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file path with full validation.
// Files ending in .json are decoded as JSON, everything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// finish runs the shared tail of every load: env, migrate, defaults, validate.
func finish(cfg *Config) (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()

	if err := cfg.Migrate(); err != nil {
		return nil, fmt.Errorf("config migration failed: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadDotEnv loads KEY=value pairs from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# termfolio configuration file\n")
	buf.WriteString("# Generated by termfolio - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// ErrInvalidURLScheme is returned when a URL scheme is not http or https.
var ErrInvalidURLScheme = errors.New("only http and https schemes are allowed")

// ValidateURL checks that rawURL is an absolute http or https URL.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURLScheme
	}
	if u.Host == "" {
		return errors.New("URL has no host")
	}
	return nil
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// API
	if err := ValidateURL(c.API.BaseURL); err != nil {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("%q: %v", c.API.BaseURL, err),
		})
	}
	if c.API.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{Field: "api.timeout_secs", Message: "cannot be negative"})
	}
	if c.API.RatePerSec < 0 {
		errs = append(errs, ValidationError{Field: "api.rate_per_sec", Message: "cannot be negative"})
	}
	if c.API.Burst < 0 {
		errs = append(errs, ValidationError{Field: "api.burst", Message: "cannot be negative"})
	}

	// Cache
	if c.Cache.TTLSecs < 0 {
		errs = append(errs, ValidationError{Field: "cache.ttl_secs", Message: "cannot be negative"})
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		errs = append(errs, ValidationError{Field: "cache.path", Message: "required when the cache is enabled"})
	}

	// Offline
	if c.Offline.Watch && c.Offline.DataDir == "" {
		errs = append(errs, ValidationError{Field: "offline.watch", Message: "requires offline.data_dir"})
	}

	// UI
	if c.UI.TypeSpeedMs < 0 {
		errs = append(errs, ValidationError{Field: "ui.type_speed_ms", Message: "cannot be negative"})
	}
	if c.UI.TypeSpeedMs > 1000 {
		errs = append(errs, ValidationError{Field: "ui.type_speed_ms", Message: "must be at most 1000"})
	}

	// Server
	if c.Server.RatePerMinute < 0 {
		errs = append(errs, ValidationError{Field: "server.rate_per_minute", Message: "cannot be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values that have no sensible zero meaning.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.TimeoutSecs == 0 {
		c.API.TimeoutSecs = defaults.API.TimeoutSecs
	}
	if c.API.RatePerSec > 0 && c.API.Burst == 0 {
		c.API.Burst = 1
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = defaults.API.UserAgent
	}
	if c.Cache.Path == "" {
		c.Cache.Path = defaults.Cache.Path
	}
	if c.UI.PromptUser == "" {
		c.UI.PromptUser = defaults.UI.PromptUser
	}
	if c.UI.PromptHost == "" {
		c.UI.PromptHost = defaults.UI.PromptHost
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}
}

// Migrate upgrades older config files in place.
func (c *Config) Migrate() error {
	// Trailing slashes would double up with "/<endpoint>".
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	c.Offline.DataDir = expandHome(c.Offline.DataDir)
	c.Cache.Path = expandHome(c.Cache.Path)
	c.Log.File = expandHome(c.Log.File)

	if c.Version != CurrentVersion {
		c.Version = CurrentVersion
	}
	return nil
}

// expandHome replaces a leading "~/" with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - TERMFOLIO_API_BASE_URL: overrides api.base_url
//   - VITE_API_BASE_URL: legacy name for the same setting (lower precedence)
//   - TERMFOLIO_DATA_DIR: overrides offline.data_dir
//   - TERMFOLIO_TYPE_SPEED_MS: overrides ui.type_speed_ms
//   - TERMFOLIO_DEBUG: set to "1" or "true" to enable debug logging
//   - TERMFOLIO_NO_CACHE: set to "1" or "true" to disable the payload cache
func (c *Config) ApplyEnvOverrides() {
	if base := os.Getenv("VITE_API_BASE_URL"); base != "" {
		c.API.BaseURL = base
	}
	if base := os.Getenv("TERMFOLIO_API_BASE_URL"); base != "" {
		c.API.BaseURL = base
	}

	if dir := os.Getenv("TERMFOLIO_DATA_DIR"); dir != "" {
		c.Offline.DataDir = dir
	}

	if speed := os.Getenv("TERMFOLIO_TYPE_SPEED_MS"); speed != "" {
		if ms, err := strconv.Atoi(speed); err == nil {
			c.UI.TypeSpeedMs = ms
		}
	}

	if debug := os.Getenv("TERMFOLIO_DEBUG"); debug != "" {
		c.Log.Debug = truthy(debug)
	}

	if noCache := os.Getenv("TERMFOLIO_NO_CACHE"); noCache != "" {
		c.Cache.Enabled = !truthy(noCache)
	}
}

func truthy(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes"
}

// parseBool accepts strconv.ParseBool forms plus yes/no and on/off.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("invalid boolean value: %q", s)
	}
	return b, nil
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "api.base_url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "ui.type_speed_ms").
// String values are converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks a dotted key down the struct tree.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			b, err := parseBool(strVal)
			if err != nil {
				return err
			}
			field.SetBool(b)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation, in struct order.
func GetAllKeys() []string {
	var keys []string
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		section := t.Field(i)
		name := tagName(section)
		if section.Type.Kind() != reflect.Struct {
			keys = append(keys, name)
			continue
		}
		for j := 0; j < section.Type.NumField(); j++ {
			keys = append(keys, name+"."+tagName(section.Type.Field(j)))
		}
	}
	return keys
}

func tagName(f reflect.StructField) string {
	if tag := f.Tag.Get("toml"); tag != "" {
		return strings.Split(tag, ",")[0]
	}
	return strings.ToLower(f.Name)
}

// Clone returns a deep copy of the config.
// Config holds only value fields, so a struct copy is deep.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
