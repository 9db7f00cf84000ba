package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pixelquest/accounts/internal/api"
	"github.com/pixelquest/accounts/internal/config"
	"github.com/pixelquest/accounts/internal/dependencies/clock"
	"github.com/pixelquest/accounts/internal/factory"
	"github.com/pixelquest/accounts/internal/identity/jwtverifier"
	pgstorage "github.com/pixelquest/accounts/internal/storage/postgres"
	redisstorage "github.com/pixelquest/accounts/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load server configuration from environment
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Token verification settings
	tokenCfg, err := jwtverifier.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load token configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	verifier, err := jwtverifier.New(tokenCfg, clock.New())
	if err != nil {
		logger.Error("failed to create token verifier", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build factory config
	factoryCfg := factory.Config{
		Verifier:    verifier,
		Logger:      logger,
		StorageType: cfg.StorageType,
	}

	switch cfg.StorageType {
	case factory.StorageTypeRedis:
		if cfg.RedisURL == "" {
			logger.Error("PQACCT_REDIS_URL required when PQACCT_STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	case factory.StorageTypePostgres:
		if cfg.PostgresDSN == "" {
			logger.Error("PQACCT_POSTGRES_DSN required when PQACCT_STORAGE_TYPE=postgres")
			os.Exit(1)
		}
		factoryCfg.PostgresConfig = &pgstorage.Config{DSN: cfg.PostgresDSN}
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AccountService: app.AccountService,
		Verifier:       app.Verifier,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
