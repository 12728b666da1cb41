package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Versifine/fpsctl/internal/app"
	"github.com/Versifine/fpsctl/internal/config"
	"github.com/Versifine/fpsctl/internal/debug"
	"github.com/Versifine/fpsctl/internal/logger"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := debug.NewConsole(session.Controller, session.Mover, session.Level.Grid(), session.Bindings())
	console.SetTickRate(cfg.Host.TickRate)
	if err := console.Start(ctx); err != nil {
		slog.Error("Console stopped", "error", err)
		os.Exit(1)
	}
}
