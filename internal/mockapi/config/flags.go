package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/beautybook/internal/flagx"
)

// parseFlags populates Config from command-line flags.
//
// Supported flags:
//
//	-a string   listen address (e.g. ":8000")
//	-seed bool  load demo data (use -seed=false to start empty)
//	-b int      bcrypt cost
//	-l string   log level
//	-f string   log format: json or text
//	-g int      graceful shutdown timeout, seconds
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-seed", "-b", "-l", "-f", "-g"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "address and port to listen on")
	fs.BoolVar(&cfg.Seed, "seed", cfg.Seed, "load demo data")
	fs.IntVar(&cfg.BcryptCost, "b", cfg.BcryptCost, "bcrypt cost, 0 = default")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")
	grace := fs.Int("g", int(cfg.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "g" {
			cfg.ShutdownTimeout = time.Duration(*grace) * time.Second
		}
	})
}
