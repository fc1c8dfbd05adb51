// Package main is the entry point for the stokpano API server.
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

	"stokpano/internal/domain/store"
	v1 "stokpano/internal/infrastructure/http/v1"
	"stokpano/internal/infrastructure/storage"
	"stokpano/internal/infrastructure/storage/kvfile"
	"stokpano/internal/infrastructure/storage/sqlite"
	"stokpano/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting stokpano server")

	dataDir := getEnv("DATA_DIR", "./data")

	// Primary structured store; a failed open is not fatal, the adapter
	// degrades to the key-value fallback.
	var primary storage.Backend
	if sqliteStore, err := sqlite.Open(dataDir); err != nil {
		log.Warnw("sqlite unavailable, running on fallback only", "error", err)
	} else {
		primary = sqliteStore
	}

	fallback, err := kvfile.Open(dataDir)
	if err != nil {
		log.Fatalw("failed to open fallback storage", "error", err)
	}

	adapter := storage.NewAdapter(primary, fallback, log)

	entityStore, err := store.New(ctx, adapter, log)
	if err != nil {
		log.Fatalw("failed to load store", "error", err)
	}

	router := v1.NewRouter(v1.RouterConfig{
		Store:  entityStore,
		Logger: log,
	})

	addr := getEnv("HTTP_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("http server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnw("http shutdown", "error", err)
	}

	// Best-effort durability before exit: flush pending snapshots.
	if err := entityStore.Close(); err != nil {
		log.Warnw("store close", "error", err)
	}
	log.Info("bye")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
