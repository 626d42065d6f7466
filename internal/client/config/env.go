package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/beautybook/internal/flagx"
)

const (
	envPrefix      = "BEAUTYBOOK_"
	defaultEnvFile = ".env"
)

// loadEnvFile loads the dotenv file named by -env, or ./.env when it exists.
// Variables already set in the process environment win.
func loadEnvFile() {
	path := flagx.EnvFileFlag()
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); errors.Is(err, fs.ErrNotExist) {
			return
		}
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		panic(err)
	}
}

// parseEnv overlays cfg with BEAUTYBOOK_* variables. Unset variables leave
// the current value untouched; a malformed timeout panics like a bad flag.
func parseEnv(cfg *Config) {
	loadEnvFile()

	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	str("API_BASE_URL", &cfg.APIBaseURL)
	str("SESSION_BACKEND", &cfg.SessionBackend)
	str("SESSION_PATH", &cfg.SessionPath)
	str("REDIS_ADDR", &cfg.RedisAddr)
	str("TIMEZONE", &cfg.Timezone)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("SENTRY_DSN", &cfg.SentryDSN)
	str("METRICS_ADDR", &cfg.MetricsAddr)

	if v, ok := os.LookupEnv(envPrefix + "REQUEST_TIMEOUT"); ok {
		d, err := parseTimeout(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}

// parseTimeout accepts a Go duration ("5s") or a bare number of seconds.
func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
