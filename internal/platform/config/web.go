package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// WebConfig configures the admin web server.
//
// Values are resolved in order: built-in defaults, the optional YAML file named
// by CONFIG_FILE, then environment variables (a local .env file is loaded into
// the environment first without overriding variables that are already set).
type WebConfig struct {
	Port      string `yaml:"port"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Timezone names the IANA zone used to decide "today" for defaulted dates.
	// Empty means the process's local zone.
	Timezone string `yaml:"timezone"`

	// CSRFKey enables CSRF protection on forms when set (32 bytes).
	CSRFKey string `yaml:"csrf_key"`

	// StaticDir serves assets from disk instead of the embedded copy.
	StaticDir string `yaml:"static_dir"`

	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

func defaultWebConfig() WebConfig {
	return WebConfig{
		Port:              "3000",
		LogLevel:          "info",
		LogFormat:         "text",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

// LoadWebConfig loads .env (if present), the CONFIG_FILE YAML (if set) and the
// environment.
func LoadWebConfig() (WebConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return WebConfig{}, fmt.Errorf("load .env: %w", err)
	}
	return LoadWebConfigFrom(os.Getenv("CONFIG_FILE"), os.LookupEnv)
}

// LoadWebConfigFrom is LoadWebConfig with an explicit YAML path ("" to skip)
// and environment lookup.
func LoadWebConfigFrom(path string, lookup func(string) (string, bool)) (WebConfig, error) {
	cfg := defaultWebConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return WebConfig{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return WebConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("PORT", &cfg.Port)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("TIMEZONE", &cfg.Timezone)
	str("CSRF_KEY", &cfg.CSRFKey)
	str("STATIC_DIR", &cfg.StaticDir)

	for key, dst := range map[string]*time.Duration{
		"READ_HEADER_TIMEOUT": &cfg.ReadHeaderTimeout,
		"SHUTDOWN_TIMEOUT":    &cfg.ShutdownTimeout,
	} {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return WebConfig{}, fmt.Errorf("%s must be a duration (e.g. 5s): %w", key, err)
		}
		*dst = d
	}

	if cfg.CSRFKey != "" && len(cfg.CSRFKey) != 32 {
		return WebConfig{}, fmt.Errorf("CSRF_KEY must be exactly 32 bytes, got %d", len(cfg.CSRFKey))
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return WebConfig{}, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

// Location resolves Timezone, falling back to time.Local when unset.
func (c WebConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	return loc, nil
}
