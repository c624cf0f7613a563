package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sirwa/internal/config"
	"sirwa/internal/logger"
	"sirwa/internal/metrics"
	"sirwa/internal/repositories"
	"sirwa/internal/server"
	"sirwa/internal/services"
	"sirwa/pkg/rabbitmq"

	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(logger.Config{
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		ServiceName: "sirwa-api",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	m := metrics.New("sirwa")

	// --- Document Store ---
	// A store that cannot be reached leaves the API up in degraded mode.
	repo, err := repositories.Open(context.Background(), repositories.Options{
		Driver:         cfg.StoreDriver,
		URL:            cfg.DatabaseURL,
		Database:       cfg.DatabaseName,
		ConnectTimeout: cfg.StoreConnectTimeout,
	}, zl)
	if err != nil {
		zl.Fatal("Invalid document store configuration", zap.Error(err))
	}
	store := repositories.NewInstrumentedRepository(repo, zl, m)

	// --- Event Publisher (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange}, zl)
		if err != nil {
			zl.Warn("RabbitMQ unavailable, submission events disabled", zap.Error(err))
		} else {
			defer mqClient.Close()
			publisher = mqClient
		}
	}

	// --- HTTP Server ---
	app := server.New(server.Deps{
		Config:     cfg,
		Repository: store,
		Publisher:  publisher,
		Metrics:    m,
		Logger:     zl,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zl.Info("Starting server", zap.String("address", cfg.ListenAddress()), zap.String("store_driver", cfg.StoreDriver))
		if err := app.Listen(cfg.ListenAddress()); err != nil {
			zl.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	zl.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error("Error during Fiber shutdown", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		zl.Error("Error closing document store", zap.Error(err))
	}

	zl.Info("Server gracefully stopped")
}
