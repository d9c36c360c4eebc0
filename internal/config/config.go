// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the session token goes to the OS keychain.
// Values from config.json are overridden by MURAL_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"mural/cli/internal/xdg"

	"github.com/caarlos0/env/v11"
)

// DefaultAPIURL is used when neither config.json nor the environment name a backend.
const DefaultAPIURL = "http://localhost:3000"

// Config holds non-sensitive CLI settings.
type Config struct {
	APIURL         string `json:"api_url" env:"MURAL_API_URL"`
	LogLevel       string `json:"log_level" env:"MURAL_LOG_LEVEL"`
	RestoreSession bool   `json:"restore_session" env:"MURAL_RESTORE_SESSION"`
	TimeoutSeconds int    `json:"timeout_seconds" env:"MURAL_TIMEOUT_SECONDS"`
}

// Timeout returns the HTTP client timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Verbose reports whether debug output was requested.
func (c Config) Verbose() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		LogLevel:       "info",
		RestoreSession: true,
		TimeoutSeconds: 10,
	}
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults.
// Environment variables are applied on top of whatever the file provides.
func Load() (Config, error) {
	c := Defaults()
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return c, err
	default:
		if err := json.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parsing %s: %w", p, err)
		}
	}
	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parsing environment: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks that the API URL is an absolute http(s) URL.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api_url %q: %w", c.APIURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_url %q: expected http(s)://host", c.APIURL)
	}
	return nil
}

// Set changes the setting named key, as spelled in config.json.
func Set(c *Config, key, value string) error {
	next := *c
	switch key {
	case "api_url":
		next.APIURL = strings.TrimRight(strings.TrimSpace(value), "/")
	case "log_level":
		next.LogLevel = strings.ToLower(strings.TrimSpace(value))
	case "restore_session":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("restore_session: %w", err)
		}
		next.RestoreSession = b
	case "timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("timeout_seconds must be a positive integer, got %q", value)
		}
		next.TimeoutSeconds = n
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
