package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/narwhalmedia/storefront/internal/config"
	"github.com/narwhalmedia/storefront/internal/container"
	"github.com/narwhalmedia/storefront/pkg/interfaces"
	"github.com/narwhalmedia/storefront/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Server.Environment, cfg.Server.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Storefront starting",
		interfaces.String("environment", cfg.Server.Environment),
		interfaces.String("instance", cfg.Server.InstanceID))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := container.InitializeApp(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize application", interfaces.Error(err))
	}
	defer cleanup()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Info("HTTP server starting", interfaces.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed", interfaces.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down storefront...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTime)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown error", interfaces.Error(err))
	}

	appLogger.Info("Storefront stopped")
}
