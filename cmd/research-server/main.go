package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/zero360/researchlab/internal/httpserver"
	"github.com/zero360/researchlab/internal/observability"
)

func main() {
	logger := observability.InitLogger()

	logger.Info("Research API server starting...")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tp, err := observability.InitTracer(ctx, "researchlab-api", "1.0.0")
	if err != nil {
		logger.Warn("Failed to init tracer, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("Tracer shutdown error", "error", err)
			}
		}()
	}

	cfg := httpserver.DefaultConfig()

	srv, err := httpserver.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutdown signal received")
		srv.Close()
		os.Exit(0)
	}()

	if err := srv.Run(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
