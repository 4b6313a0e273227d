// cmd/patro-api/main.go
//
// Read-only HTTP API over the converter, the festival registry and the
// month grid. Settings come from .patro/config.yaml, .env and PATRO_*
// environment variables.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kingrea/patro/internal/api"
	"github.com/kingrea/patro/internal/config"
	"github.com/kingrea/patro/internal/festival"
)

func main() {
	dir := flag.String("config-dir", "", "directory holding .patro/ (default: current directory)")
	flag.Parse()

	if err := run(*dir); err != nil {
		fmt.Fprintf(os.Stderr, "patro-api: %v\n", err)
		os.Exit(1)
	}
}

func run(projectDir string) error {
	if projectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		projectDir = cwd
	}

	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return err
	}
	logger := api.NewLogger(os.Stdout, cfg.Project.Log.Level, cfg.Project.Log.Format)
	slog.SetDefault(logger)

	registry, err := festival.LoadOrDefault(cfg.FestivalsFile())
	if err != nil {
		return err
	}
	logger.Info("festivals loaded", slog.Int("count", registry.Len()), slog.String("file", cfg.FestivalsFile()))

	handlers := api.NewHandlers(registry, logger, api.WithRemoteImages(cfg.Project.Festivals.PreferRemoteImages))
	router := api.SetupRoutes(handlers, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return api.Serve(ctx, cfg.APIAddr(), router, logger)
}
