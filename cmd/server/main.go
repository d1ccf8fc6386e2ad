package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lMelkorl/b2bminiui/internal/fixtures"
	"github.com/lMelkorl/b2bminiui/internal/pkg/log"
	platformconfig "github.com/lMelkorl/b2bminiui/internal/platform/config"
	"github.com/lMelkorl/b2bminiui/internal/server"
)

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load platform config: %v", err)
		os.Exit(1)
	}

	ds, err := fixtures.Load(cfg.Catalog.FixturePath)
	if err != nil {
		log.Error("Failed to load catalog fixtures: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, ds, server.Options{})
	if err != nil {
		log.Error("Failed to start server: %v", err)
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		log.Error("Server stopped: %v", err)
		os.Exit(1)
	}
	log.Info("Server exited")
}
