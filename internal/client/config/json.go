package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/beautybook/internal/flagx"
	"github.com/dmitrijs2005/beautybook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as a
// string like "10s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string          `json:"api_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	SessionBackend string          `json:"session_backend"`
	SessionPath    string          `json:"session_path"`
	RedisAddr      string          `json:"redis_addr"`
	Timezone       string          `json:"timezone"`
	LogLevel       string          `json:"log_level"`
	SentryDSN      string          `json:"sentry_dsn"`
	MetricsAddr    string          `json:"metrics_addr"`
}

// parseJson overlays Config with values loaded from the JSON file given via
// -c or -config. Keys missing from the file keep their current value.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.APIBaseURL, jc.APIBaseURL)
	set(&cfg.SessionBackend, jc.SessionBackend)
	set(&cfg.SessionPath, jc.SessionPath)
	set(&cfg.RedisAddr, jc.RedisAddr)
	set(&cfg.Timezone, jc.Timezone)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.SentryDSN, jc.SentryDSN)
	set(&cfg.MetricsAddr, jc.MetricsAddr)

	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
