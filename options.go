package doofinder

import (
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	catalogDSN    string
	catalogDB     *sql.DB
	cacheAddrs    []string
	cachePassword string
	bannerTTL     time.Duration

	enabled      bool
	apiKey       string
	searchEngine string
	baseURL      string
	timeout      time.Duration
	resultsLimit int

	logger *zap.Logger
}

// WithCatalogDSN connects to the product catalog by Postgres DSN.
func WithCatalogDSN(dsn string) Option {
	return func(c *clientConfig) {
		c.catalogDSN = dsn
	}
}

// WithCatalogDB reuses an existing catalog connection pool owned by the host.
func WithCatalogDB(db *sql.DB) Option {
	return func(c *clientConfig) {
		c.catalogDB = db
	}
}

// WithBannerCache connects the request-scoped banner cache (Redis).
func WithBannerCache(addrs []string, password string) Option {
	return func(c *clientConfig) {
		c.cacheAddrs = addrs
		c.cachePassword = password
	}
}

// WithBannerTTL overrides how long a stored banner waits for its telemetry.
func WithBannerTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		if ttl > 0 {
			c.bannerTTL = ttl
		}
	}
}

// WithCredentials enables reconciliation with the hosted search credentials.
// The availability gate still requires both fields to be non-empty.
func WithCredentials(apiKey, searchEngine string) Option {
	return func(c *clientConfig) {
		c.enabled = true
		c.apiKey = apiKey
		c.searchEngine = searchEngine
	}
}

// WithBaseURL overrides the hosted search API endpoint (zone selection).
func WithBaseURL(baseURL string) Option {
	return func(c *clientConfig) {
		c.baseURL = baseURL
	}
}

// WithTimeout overrides the hosted search API request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithResultsLimit overrides the single-call results-per-page bound. It caps
// the maximum reconcilable result-set size.
func WithResultsLimit(limit int) Option {
	return func(c *clientConfig) {
		if limit > 0 {
			c.resultsLimit = limit
		}
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
