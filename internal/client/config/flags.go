package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/beautybook/internal/flagx"
)

// parseFlags populates Config fields from command-line flags (see the
// package doc for the list). Flags owned by other loaders are filtered out
// with flagx.FilterArgs first.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-s", "-d", "-r", "-z", "-l", "-e", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the booking API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds), 0 = no timeout")
	fs.StringVar(&cfg.SessionBackend, "s", cfg.SessionBackend, "session backend: sqlite, redis or memory")
	fs.StringVar(&cfg.SessionPath, "d", cfg.SessionPath, "SQLite session database path")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address")
	fs.StringVar(&cfg.Timezone, "z", cfg.Timezone, "time zone for booking times")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.SentryDSN, "e", cfg.SentryDSN, "Sentry DSN")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only an explicit -t replaces a sub-second timeout from env or JSON
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
