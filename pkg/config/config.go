// Package config loads the importer configuration from json5 files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

type Config struct {
	Workers  int    `json:"workers"`
	Database string `json:"database"` // empty means next to the binary
	Cache    Cache  `json:"cache"`
	HTTP     HTTP   `json:"http"`
	SMTP     SMTP   `json:"smtp"`
}

type Cache struct {
	Dir string `json:"dir"`
	TTL string `json:"ttl"` // Go duration, "0s" disables cache reads
}

type HTTP struct {
	Timeout    string `json:"timeout"`
	UserAgent  string `json:"user_agent"`
	RetryCount int    `json:"retry_count"`
}

// SMTP configures the review report mail.
type SMTP struct {
	Enabled      bool     `json:"enabled"`
	Server       string   `json:"server"`
	Port         int      `json:"port"`
	EmailAddress string   `json:"email_address"`
	Password     string   `json:"password"`
	Recipients   []string `json:"recipients"`
}

func (s SMTP) Addr() string {
	return fmt.Sprintf("%s:%d", s.Server, s.Port)
}

func Defaults() Config {
	return Config{
		Workers: 4,
		Cache: Cache{
			Dir: filepath.Join(os.TempDir(), "recipe-web-parser", "pages"),
			TTL: "1h",
		},
		HTTP: HTTP{
			Timeout: "30s",
		},
		SMTP: SMTP{
			Port: 587,
		},
	}
}

func (c Config) CacheTTL() (time.Duration, error) {
	return parseDuration("cache.ttl", c.Cache.TTL)
}

func (c Config) HTTPTimeout() (time.Duration, error) {
	return parseDuration("http.timeout", c.HTTP.Timeout)
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}

// Load reads path (plus its .local override) and fills anything left unset
// from Defaults. An empty path returns Defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Defaults(), nil
	}

	cfg, err := ReadConfig[Config](path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := mergo.Merge(&cfg, Defaults()); err != nil {
		return Config{}, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	return cfg, nil
}

// ReadConfig reads name and then <name-without-ext>.local.<ext>, the local
// file taking priority. os.ErrNotExist is returned only when both are missing.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found := false

	base, ext := splitExt(name)

	data, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(data) > 0 {
		if err := json5.Unmarshal(data, &out); err != nil {
			return out, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		found = true
	}

	localName := base + ".local" + ext
	local, err := os.ReadFile(localName)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(local) > 0 {
		var override T
		if err := json5.Unmarshal(local, &override); err != nil {
			return out, fmt.Errorf("failed to parse %s: %w", localName, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
		slog.Debug("merging config with local overrides", "local", localName)
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

// splitExt splits "dir/app.json5" into "dir/app" and ".json5".
func splitExt(name string) (string, string) {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}
