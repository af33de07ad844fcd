package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mahmudulbisd/stockgen-ai-pro/config"
	"github.com/mahmudulbisd/stockgen-ai-pro/internal/app"
	"github.com/mahmudulbisd/stockgen-ai-pro/server"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "stockgen-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := pflag.String("config", "", "path to a YAML config file")
	pflag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, err := app.NewLogger(cfg, os.Stderr, false)
	if err != nil {
		return err
	}

	c, err := app.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}
	if cfg.APIKey == "" {
		logger.Warn("API_KEY is not set; generation requests will fail until it is configured")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(c, logger, server.WithGenerationTimeout(cfg.RequestTimeout)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof("Starting server on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		logger.Info("Server shutdown completed")
		return nil
	})

	return g.Wait()
}
