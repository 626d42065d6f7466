// Package config handles configuration for the mock booking API,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the mock API server.
//
// Fields:
//   - ListenAddr: bind address of the HTTP endpoint.
//   - Seed: load the demo salons, masters, users and appointments on start.
//   - BcryptCost: cost used to hash registered passwords (0 = bcrypt default).
//   - LogLevel / LogFormat: slog level and "json" or "text" handler.
//   - ShutdownTimeout: how long in-flight requests get on SIGINT/SIGTERM.
type Config struct {
	ListenAddr      string
	Seed            bool
	BcryptCost      int
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with development defaults. The address
// matches the client's default API base URL.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8000"
	c.Seed = true
	c.BcryptCost = 0
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
