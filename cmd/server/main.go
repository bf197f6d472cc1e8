package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"postmarket/internal/analyzer"
	"postmarket/internal/auth"
	"postmarket/internal/cache"
	"postmarket/internal/config"
	"postmarket/internal/db"
	"postmarket/internal/email"
	"postmarket/internal/jobs"
	"postmarket/internal/metrics"
	"postmarket/internal/server"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	catalog, err := config.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		slog.Error("failed to load catalog", "file", cfg.CatalogFile, "error", err)
		os.Exit(1)
	}

	// Database and migrations
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations completed")

	// Optional Redis cache. A nil cache degrades to uncached behavior.
	var cch *cache.Cache
	if cfg.IsRedisEnabled() {
		cch, err = cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			slog.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer cch.Close()
		slog.Info("redis cache enabled", "addr", cfg.RedisAddr)
	} else {
		slog.Info("redis cache disabled")
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenExpiry)
	notifier := email.NewNotifier(cfg, database)
	siteAnalyzer := analyzer.New(analyzer.NewEstimator(cfg.SimilarWebAPIKey), cfg.FetchTimeout)

	metrics.Init(database)

	// Background analysis worker
	worker := jobs.NewAnalysisWorker(database, siteAnalyzer, cfg.AnalysisInterval, cfg.AnalysisMaxAge)
	go worker.Start(ctx)

	srv := server.New(cfg)
	srv.RegisterRoutes(server.Deps{
		DB:       database,
		Catalog:  catalog,
		Issuer:   issuer,
		Analyzer: siteAnalyzer,
		Cache:    cch,
		Notifier: notifier,
		Queue:    worker,
	})

	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
		}
	}()
	slog.Info("server started", "addr", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	cancel()
	if err := srv.Shutdown(); err != nil {
		slog.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server exited")
}
