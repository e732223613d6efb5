package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds client settings. Values come from the YAML file first,
// then the environment; command-line flags override both.
type Config struct {
	APIURL   string        `yaml:"api"`
	Timeout  time.Duration `yaml:"timeout"`
	TimeZone string        `yaml:"timezone"` // IANA name; empty means local time
	LogLevel string        `yaml:"log_level"`
	LogFile  string        `yaml:"log_file"`
}

func Defaults() *Config {
	return &Config{
		APIURL:   "http://localhost:5000/history",
		Timeout:  10 * time.Second,
		LogLevel: "info",
	}
}

// Load reads path (or DefaultPath when empty) and applies EXECVIEW_*
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.APIURL = envOr("EXECVIEW_URL", cfg.APIURL)
	cfg.TimeZone = envOr("EXECVIEW_TIMEZONE", cfg.TimeZone)
	cfg.LogLevel = envOr("EXECVIEW_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = envOr("EXECVIEW_LOG_FILE", cfg.LogFile)
	if v := os.Getenv("EXECVIEW_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("EXECVIEW_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// DefaultPath is $EXECVIEW_CONFIG, or config.yaml under the user config dir.
func DefaultPath() string {
	if p := os.Getenv("EXECVIEW_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "execview", "config.yaml")
}

// Location resolves TimeZone for timestamp display.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
