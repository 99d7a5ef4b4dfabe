package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/config"
	dbRedis "github.com/arkadiuszzietek/doofinder-woocommerce/internal/db/redis"
	logpkg "github.com/arkadiuszzietek/doofinder-woocommerce/internal/logger"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/metrics"
	bannerrepo "github.com/arkadiuszzietek/doofinder-woocommerce/internal/repository/banner"
	catalogrepo "github.com/arkadiuszzietek/doofinder-woocommerce/internal/repository/catalog"
	chiTransport "github.com/arkadiuszzietek/doofinder-woocommerce/internal/transport/chi"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/transport/doofinder"
	healthuc "github.com/arkadiuszzietek/doofinder-woocommerce/internal/usecase/health"
	reconcileuc "github.com/arkadiuszzietek/doofinder-woocommerce/internal/usecase/reconcile"
	searchuc "github.com/arkadiuszzietek/doofinder-woocommerce/internal/usecase/search"
	telemetryuc "github.com/arkadiuszzietek/doofinder-woocommerce/internal/usecase/telemetry"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	// Credentials resolved once for the active locale — the reconciler gets a
	// settings struct, not a live registry.
	locale := os.Getenv("LOCALE")
	doofCfg := cfg.Doofinder.Resolve(locale)

	logger.Info("Starting doofinder bridge",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("locale", locale),
		zap.Bool("search_enabled", doofCfg.Enabled),
	)

	// Product catalog (Postgres)
	catalog, err := catalogrepo.New(catalogrepo.Config{
		DSN:             cfg.Catalog.DSN,
		MaxOpenConns:    cfg.Catalog.MaxOpenConns,
		MaxIdleConns:    cfg.Catalog.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Catalog.ConnMaxLifeSec) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to connect to product catalog", zap.Error(err))
	}
	defer func() { _ = catalog.Close() }()
	logger.Info("Connected to product catalog")

	// Banner cache (Redis); optional — without it banner telemetry degrades
	// to click-only.
	var cache *dbRedis.Store
	if len(cfg.Cache.Addrs) > 0 {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create banner cache", zap.Error(err))
		}
		defer cache.Close()

		ctx := context.Background()
		if err := cache.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Banner cache not ready", zap.Error(err))
		}
		logger.Info("Connected to banner cache")
	}

	metrics.RegisterSearchMetrics()

	// Hosted search client is built lazily: a process serving only native
	// search (or only click telemetry) never opens the connection early.
	newClient := func() *doofinder.Client {
		return doofinder.NewClient(&doofinder.Config{
			APIKey:       doofCfg.APIKey,
			SearchEngine: doofCfg.SearchEngine,
			BaseURL:      doofCfg.BaseURL,
			Timeout:      time.Duration(doofCfg.TimeoutSec) * time.Second,
			Logger:       logger,
		})
	}

	settings := reconcileuc.Settings{
		Enabled:      doofCfg.Enabled,
		APIKey:       doofCfg.APIKey,
		SearchEngine: doofCfg.SearchEngine,
	}

	var bannerStore *bannerrepo.Store
	if cache != nil {
		bannerStore = bannerrepo.New(cache, time.Duration(cfg.Cache.BannerTTLSec)*time.Second)
	}

	reconciler := reconcileuc.New(
		func() reconcileuc.SearchClient { return newClient() },
		catalog,
		bannerSink(bannerStore),
		doofCfg.ResultsLimit,
		logger,
	)
	searchSvc := searchuc.New(settings, reconciler, catalog, logger)
	telemetrySvc := telemetryuc.New(
		func() telemetryuc.SearchClient { return newClient() },
		bannerSource(bannerStore),
		logger,
	)
	healthSvc := healthuc.New(catalog, cachePinger(cache))

	server := chiTransport.NewServer(
		searchSvc, telemetrySvc, healthSvc,
		cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize,
		logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// bannerSink adapts an optional banner store to the reconciler contract.
// Without a cache, banners are dropped and impressions become no-ops.
func bannerSink(store *bannerrepo.Store) reconcileuc.BannerStore {
	if store == nil {
		return noopBanners{}
	}
	return store
}

// bannerSource adapts an optional banner store to the telemetry contract.
func bannerSource(store *bannerrepo.Store) telemetryuc.BannerReader {
	if store == nil {
		return noopBanners{}
	}
	return store
}

// cachePinger avoids the typed-nil-in-interface gotcha for the health check.
func cachePinger(cache *dbRedis.Store) healthuc.CachePinger {
	if cache == nil {
		return nil
	}
	return cache
}
