package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/beautybook/internal/buildinfo"
	"github.com/dmitrijs2005/beautybook/internal/client/cli"
	"github.com/dmitrijs2005/beautybook/internal/client/config"
	"github.com/dmitrijs2005/beautybook/internal/client/metrics"
	"github.com/dmitrijs2005/beautybook/internal/client/reporting"
	"github.com/dmitrijs2005/beautybook/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, "text", cfg.LogLevel)

	reporter, err := reporting.NewSentry(cfg.SentryDSN, "cli", buildinfo.Release())
	if err != nil {
		logger.Warn(ctx, "error reporting disabled", "error", err)
		reporter = reporting.Nop()
	}
	defer reporter.Flush()

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		metrics.Serve(ctx, cfg.MetricsAddr, m, logger)
	}

	app, err := cli.NewApp(ctx, cfg, logger, m, reporter)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)

}
