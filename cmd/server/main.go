package main

import (
	"github.com/wb-go/wbf/zlog"

	"image-resizer/internal/app"
	"image-resizer/internal/config"
)

func main() {
	zlog.Init()

	cfg, err := config.Load()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to load config")
	}

	application, err := app.NewApp(cfg, &zlog.Logger)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to create app")
	}

	if err := application.Run(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Server failed")
	}
}
