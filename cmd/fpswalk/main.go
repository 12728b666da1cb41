package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Versifine/fpsctl/internal/app"
	"github.com/Versifine/fpsctl/internal/config"
	"github.com/Versifine/fpsctl/internal/logger"
	"github.com/Versifine/fpsctl/internal/viewer"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config")
	printConfig := flag.Bool("print-config", false, "print the effective config as YAML and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			slog.Error("Failed to print config", "error", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}); err != nil {
		slog.Error("Failed to init logger", "error", err)
		os.Exit(1)
	}
	defer logger.Close()

	session, err := app.New(cfg)
	if err != nil {
		slog.Error("Failed to set up session", "error", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(viewer.ScreenWidth, viewer.ScreenHeight)
	ebiten.SetWindowTitle("fpswalk - " + session.Level.Name)
	ebiten.SetTPS(cfg.Host.TickRate)

	game := viewer.NewGame(session.Controller, session.Mover, session.Level, session.Bindings())
	game.Capture()

	if err := ebiten.RunGame(game); err != nil {
		slog.Error("Game exited", "error", err)
		os.Exit(1)
	}
}
