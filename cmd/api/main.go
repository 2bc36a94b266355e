package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/ipic-ai/sparky-dashboard/internal/api/router"
	appconfig "github.com/ipic-ai/sparky-dashboard/internal/config"
	"github.com/ipic-ai/sparky-dashboard/internal/conversation"
	"github.com/ipic-ai/sparky-dashboard/internal/dashboard"
	"github.com/ipic-ai/sparky-dashboard/internal/knowledge"
	"github.com/ipic-ai/sparky-dashboard/internal/observability/metrics"
	"github.com/ipic-ai/sparky-dashboard/pkg/logging"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)

	// Missing Supabase credentials abort before any data access.
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting sparky-dashboard API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN())
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	dashMetrics := metrics.NewDashboardMetrics(nil)

	convStore := conversation.NewStore(pool, logger)
	kbStore := knowledge.NewStore(pool)

	var provider dashboard.Provider = dashboard.NewStoreProvider(convStore, kbStore, dashMetrics)
	if cfg.RedisAddr != "" {
		redisOptions := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient := redis.NewClient(redisOptions)
		provider = dashboard.NewCachedProvider(provider, redisClient, cfg.CacheTTL, dashMetrics, logger)
		logger.Info("fetch caching enabled", "ttl", cfg.CacheTTL.String())
	}

	service := dashboard.NewService(provider, conversation.NewClassifier(), dashMetrics, logger)
	handler := dashboard.NewHandler(service, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		Dashboard:          handler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
