package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/user/comic-reader/internal/adapter/chromedp_crawler"
	"github.com/user/comic-reader/internal/adapter/httpfetch"
	"github.com/user/comic-reader/internal/adapter/noop"
	"github.com/user/comic-reader/internal/adapter/postgres"
	redis_adapter "github.com/user/comic-reader/internal/adapter/redis"
	"github.com/user/comic-reader/internal/delivery/http/handler"
	"github.com/user/comic-reader/internal/delivery/http/router"
	"github.com/user/comic-reader/internal/extractor"
	"github.com/user/comic-reader/internal/proxy"
	"github.com/user/comic-reader/internal/repository"
	"github.com/user/comic-reader/internal/usecase"
	"github.com/user/comic-reader/pkg/config"
	"github.com/user/comic-reader/pkg/logger"
	"github.com/user/comic-reader/pkg/metrics"
	"go.uber.org/zap"
)

func main() {
	// The level is configurable, so config errors go to a bootstrap logger.
	bootstrap, _ := zap.NewProduction()

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		bootstrap.Fatal("could not load config", zap.Error(err))
	}

	// --- Logger ---
	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		bootstrap.Fatal("could not build logger", zap.Error(err))
	}
	defer zl.Sync()

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	ctx := context.Background()

	// --- Upstream fetching ---
	proxyManager, err := proxy.NewManager(cfg.ProxyURLs, cfg.UserAgents)
	if err != nil {
		zl.Fatal("invalid proxy configuration", zap.Error(err))
	}

	var fetcher repository.PageFetcher
	switch cfg.FetchMode {
	case "browser":
		browser := chromedp_crawler.NewChromedpFetcher(cfg.FetchTimeout(), proxyManager, zl)
		defer browser.Close()
		fetcher = browser
	default:
		fetcher = httpfetch.NewFetcher(httpfetch.Options{
			Timeout:        cfg.FetchTimeout(),
			Retries:        cfg.FetchRetries,
			Backoff:        cfg.RetryBackoff(),
			AcceptLanguage: cfg.AcceptLanguage,
		}, proxyManager, zl)
	}
	zl.Info("upstream fetcher ready", zap.String("mode", cfg.FetchMode), zap.Int("proxies", len(cfg.ProxyURLs)))

	// --- Diagnostics stores ---
	var failureRepo repository.ScrapeFailureRepository = noop.ScrapeFailureRepo{}
	if cfg.PostgresURL != "" {
		dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			zl.Fatal("unable to connect to postgres", zap.Error(err))
		}
		defer dbpool.Close()

		pgRepo := postgres.NewScrapeFailureRepo(dbpool)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			zl.Fatal("unable to prepare scrape_failures table", zap.Error(err))
		}
		failureRepo = pgRepo
		zl.Info("postgres failure ledger enabled")
	}

	var streakRepo repository.FailureStreakRepository = noop.FailureStreakRepo{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			zl.Fatal("unable to connect to redis", zap.Error(err))
		}
		streakRepo = redis_adapter.NewFailureStreakRepo(rdb, cfg.FailureStreakTTL())
		zl.Info("redis failure streaks enabled")
	}

	// --- Use Cases ---
	targets := usecase.Targets{
		BaseURL:    cfg.UpstreamBaseURL,
		Profile:    cfg.TargetProfile,
		AlbumsPath: cfg.AlbumsPathTemplate,
		PhotosPath: cfg.PhotosPathTemplate,
	}
	albumLister := usecase.NewAlbumLister(
		fetcher, extractor.DefaultAlbumStrategies(), targets,
		failureRepo, streakRepo, m, zl,
	)
	photoFetcher := usecase.NewPhotoFetcher(
		fetcher,
		extractor.PhotoChain{extractor.CDNPhotoStrategy{Pattern: cfg.CDNPattern, Exclude: cfg.PhotoExcludeMarkers}},
		extractor.NewIDGenerator(cfg.PhotoIDMode),
		targets,
		failureRepo, streakRepo, m, zl,
	)
	statusReporter := usecase.NewStatusReporter(failureRepo, streakRepo)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(albumLister, photoFetcher, statusReporter, zl)
	server := &http.Server{
		Addr:        ":" + cfg.ServerPort,
		Handler:     router.New(apiHandler, m, registry, zl),
		ReadTimeout: 5 * time.Second,
		// Leaves room for a slow upstream plus one retry.
		WriteTimeout: 2*cfg.FetchTimeout() + cfg.RetryBackoff() + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("could not start server", zap.Error(err))
		}
	}()
	zl.Info("server started",
		zap.String("port", cfg.ServerPort),
		zap.String("profile", cfg.TargetProfile),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exiting")
}
