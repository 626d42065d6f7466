package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/beautybook/internal/client/session"
	"github.com/dmitrijs2005/beautybook/internal/common"
	"github.com/dmitrijs2005/beautybook/internal/filex"
)

// Config holds runtime settings for the beautybook CLI.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	SessionBackend string
	SessionPath    string
	RedisAddr      string
	Timezone       string
	LogLevel       string
	SentryDSN      string
	MetricsAddr    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = common.DefaultAPIBaseURL
	c.RequestTimeout = 0
	c.SessionBackend = session.BackendSQLite
	c.SessionPath = filex.DefaultDataPath("session.db")
	c.RedisAddr = session.DefaultRedisAddr
	c.Timezone = "Local"
	c.LogLevel = "warn"
	c.SentryDSN = ""
	c.MetricsAddr = ""
}

// Location resolves Timezone. Booking times are interpreted in it.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SessionOptions maps the session settings onto session.Options.
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		Backend:   c.SessionBackend,
		Path:      c.SessionPath,
		RedisAddr: c.RedisAddr,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
