package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/beautybook/internal/buildinfo"
	"github.com/dmitrijs2005/beautybook/internal/logging"
	"github.com/dmitrijs2005/beautybook/internal/mockapi"
	"github.com/dmitrijs2005/beautybook/internal/mockapi/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	gin.SetMode(gin.ReleaseMode)

	app, err := mockapi.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}

}
