// Package config handles configuration for the Furari CLI: defaults,
// JSON overlay, and command-line flags.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the Furari CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP endpoint.
//   - LocatorURL: optional URL of a local position provider. Empty means
//     no provider; commands then require explicit coordinates.
//   - SessionFile: where the CLI persists tokens between invocations.
//   - RequestTimeout: per-request deadline for one-shot API calls.
type Config struct {
	ServerBaseURL  string
	LocatorURL     string
	SessionFile    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.LocatorURL = ""
	c.SessionFile = defaultSessionFile()
	c.RequestTimeout = 15 * time.Second
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "furari-session.json"
	}
	return filepath.Join(home, ".furari", "session.json")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
