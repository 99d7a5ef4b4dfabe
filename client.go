// Package doofinder embeds hosted-search reconciliation into a host process.
// A storefront that already owns a catalog connection can wire the
// reconciler, availability gate, and banner telemetry without running the
// HTTP server.
package doofinder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/arkadiuszzietek/doofinder-woocommerce/internal/db/redis"
	dombanner "github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/search/banner"
	bannerrepo "github.com/arkadiuszzietek/doofinder-woocommerce/internal/repository/banner"
	catalogrepo "github.com/arkadiuszzietek/doofinder-woocommerce/internal/repository/catalog"
	dfapi "github.com/arkadiuszzietek/doofinder-woocommerce/internal/transport/doofinder"
	reconcileuc "github.com/arkadiuszzietek/doofinder-woocommerce/internal/usecase/reconcile"
	searchuc "github.com/arkadiuszzietek/doofinder-woocommerce/internal/usecase/search"
	telemetryuc "github.com/arkadiuszzietek/doofinder-woocommerce/internal/usecase/telemetry"
)

const defaultBannerTTL = 30 * time.Minute

// Client is the embeddable entry point.
type Client struct {
	catalog   *catalogrepo.Repo
	cache     *dbRedis.Store
	ownsCache bool
	search    *searchuc.Service
	telemetry *telemetryuc.Service
}

// New creates a Client. A catalog connection is required; the banner cache
// and hosted-search credentials are optional (without credentials the gate
// keeps every search on the native path).
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		resultsLimit: 100,
		bannerTTL:    defaultBannerTTL,
		logger:       zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.catalogDSN == "" && cfg.catalogDB == nil {
		return nil, errors.New("doofinder: catalog connection required (use WithCatalogDSN or WithCatalogDB)")
	}

	catalog, err := createCatalog(cfg)
	if err != nil {
		return nil, err
	}

	var cache *dbRedis.Store
	if len(cfg.cacheAddrs) > 0 {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("doofinder: create banner cache: %w", err)
		}
	}

	return wireClient(catalog, cache, cfg), nil
}

func createCatalog(cfg *clientConfig) (*catalogrepo.Repo, error) {
	if cfg.catalogDB != nil {
		return catalogrepo.NewWithDB(cfg.catalogDB), nil
	}
	repo, err := catalogrepo.New(catalogrepo.Config{
		DSN:             cfg.catalogDSN,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	})
	if err != nil {
		return nil, fmt.Errorf("doofinder: connect catalog: %w", err)
	}
	return repo, nil
}

func wireClient(catalog *catalogrepo.Repo, cache *dbRedis.Store, cfg *clientConfig) *Client {
	newClient := func() *dfapi.Client {
		return dfapi.NewClient(&dfapi.Config{
			APIKey:       cfg.apiKey,
			SearchEngine: cfg.searchEngine,
			BaseURL:      cfg.baseURL,
			Timeout:      cfg.timeout,
			Logger:       cfg.logger,
		})
	}

	var reconcileBanners reconcileuc.BannerStore = noopBanners{}
	var telemetryBanners telemetryuc.BannerReader = noopBanners{}
	if cache != nil {
		store := bannerrepo.New(cache, cfg.bannerTTL)
		reconcileBanners = store
		telemetryBanners = store
	}

	settings := reconcileuc.Settings{
		Enabled:      cfg.enabled,
		APIKey:       cfg.apiKey,
		SearchEngine: cfg.searchEngine,
	}

	reconciler := reconcileuc.New(
		func() reconcileuc.SearchClient { return newClient() },
		catalog,
		reconcileBanners,
		cfg.resultsLimit,
		cfg.logger,
	)

	return &Client{
		catalog:   catalog,
		cache:     cache,
		ownsCache: cache != nil,
		search:    searchuc.New(settings, reconciler, catalog, cfg.logger),
		telemetry: telemetryuc.New(
			func() telemetryuc.SearchClient { return newClient() },
			telemetryBanners,
			cfg.logger,
		),
	}
}

// Close releases resources the client opened itself. A catalog pool passed in
// via WithCatalogDB stays open: the host owns it.
func (c *Client) Close() error {
	if c.ownsCache && c.cache != nil {
		c.cache.Close()
	}
	return c.catalog.Close() //nolint:wrapcheck // delegating to the repo
}

// Ping checks catalog connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.catalog.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// bannerValue aliases the internal banner type for the noop store.
type bannerValue = dombanner.Banner

// noopBanners drops banners when no cache is configured.
type noopBanners struct{}

func (noopBanners) Put(_ context.Context, _ string, _ bannerValue) error { return nil }

func (noopBanners) Get(_ context.Context, _ string) (*bannerValue, error) { return nil, nil }

func (noopBanners) Delete(_ context.Context, _ string) error { return nil }
