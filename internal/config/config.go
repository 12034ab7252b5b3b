// Package config loads the board's TOML configuration file.
//
// A missing file is not an error: Load falls back to defaults so the board
// works without any setup. Fields left empty in the file keep their defaults.
// Command-line flags are applied on top by the caller.
//
// Example config.toml:
//
//	endpoint        = "https://efhk-flights-backend.onrender.com/api/flights"
//	timezone        = "Europe/Helsinki"
//	poll_interval   = "60s"
//	request_timeout = "10s"
//	title           = "Helsinki Airport - Arriving Flights"
//	metrics_addr    = "127.0.0.1:9090"
//	log_file        = "~/.local/state/flightboard/flightboard.log"
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/efhk-flights/flightboard/internal/api"
	"github.com/efhk-flights/flightboard/internal/output"
	"github.com/efhk-flights/flightboard/internal/poller"
)

// Config holds the board settings
type Config struct {
	Endpoint       string
	Timezone       string
	PollInterval   time.Duration
	RequestTimeout time.Duration
	Title          string
	MetricsAddr    string
	LogFile        string
}

const (
	// DefaultPath is where Load looks when no path is given
	DefaultPath = "~/.config/flightboard/config.toml"

	defaultRequestTimeout = 10 * time.Second
)

// Default returns the built-in settings
func Default() Config {
	return Config{
		Endpoint:       api.DefaultEndpoint,
		Timezone:       api.DefaultTimezone,
		PollInterval:   poller.DefaultInterval,
		RequestTimeout: defaultRequestTimeout,
		Title:          output.Title,
	}
}

type rawConfig struct {
	Endpoint       string `toml:"endpoint"`
	Timezone       string `toml:"timezone"`
	PollInterval   string `toml:"poll_interval"`
	RequestTimeout string `toml:"request_timeout"`
	Title          string `toml:"title"`
	MetricsAddr    string `toml:"metrics_addr"`
	LogFile        string `toml:"log_file"`
}

// Load parses the config at path. An empty path means DefaultPath, which may
// be missing (or unresolvable without a home directory), in which case the
// defaults are returned. An explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		if !explicit {
			return cfg, nil
		}
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.Endpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(raw.Timezone); v != "" {
		cfg.Timezone = v
	}
	if v := strings.TrimSpace(raw.Title); v != "" {
		cfg.Title = v
	}
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	if cfg.PollInterval, err = parseDuration("poll_interval", raw.PollInterval, cfg.PollInterval); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, cfg.RequestTimeout); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the settings after flags have been applied
func (c Config) Validate() error {
	if err := api.ValidateEndpoint(c.Endpoint); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	// a request still running when the next cycle fires is discarded
	if c.RequestTimeout >= c.PollInterval {
		return fmt.Errorf("request_timeout (%s) must be shorter than poll_interval (%s)", c.RequestTimeout, c.PollInterval)
	}
	return nil
}

// Location loads the configured timezone
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse config: %s must be positive, got %s", field, value)
	}
	return d, nil
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
