package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the doofinder bridge service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Cache     CacheConfig     `yaml:"cache"`
	Auth      AuthConfig      `yaml:"auth"`
	Doofinder DoofinderConfig `yaml:"doofinder"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CatalogConfig holds Postgres connection settings for the product catalog.
type CatalogConfig struct {
	DSN             string `yaml:"dsn"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifeSec  int    `yaml:"conn_max_life_sec"`
	DefaultPageSize int    `yaml:"default_page_size"`
	MaxPageSize     int    `yaml:"max_page_size"`
}

// CacheConfig holds the banner cache (Redis) connection settings.
type CacheConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	BannerTTLSec     int      `yaml:"banner_ttl_sec"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// DoofinderConfig holds hosted-search credentials and reconciliation limits.
// Locales maps a language code (e.g. "de", "pt-BR") to credential overrides;
// the top-level credentials are the fallback when no locale matches.
type DoofinderConfig struct {
	Enabled      bool                        `yaml:"enabled"`
	APIKey       string                      `yaml:"api_key"`
	SearchEngine string                      `yaml:"search_engine_id"`
	BaseURL      string                      `yaml:"base_url"`
	TimeoutSec   int                         `yaml:"timeout_sec"`
	ResultsLimit int                         `yaml:"results_limit"`
	Locales      map[string]LocaleCredential `yaml:"locales"`
}

// LocaleCredential holds per-locale credential overrides.
type LocaleCredential struct {
	Enabled      *bool  `yaml:"enabled"`
	APIKey       string `yaml:"api_key"`
	SearchEngine string `yaml:"search_engine_id"`
}

// Resolve returns the effective credentials for a locale. Fields a locale
// override leaves empty fall back to the top-level values.
func (d DoofinderConfig) Resolve(locale string) DoofinderConfig {
	out := d
	lc, ok := d.Locales[locale]
	if !ok {
		return out
	}
	if lc.Enabled != nil {
		out.Enabled = *lc.Enabled
	}
	if lc.APIKey != "" {
		out.APIKey = lc.APIKey
	}
	if lc.SearchEngine != "" {
		out.SearchEngine = lc.SearchEngine
	}
	return out
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Catalog.MaxOpenConns <= 0 {
		c.Catalog.MaxOpenConns = 10
	}
	if c.Catalog.MaxIdleConns <= 0 {
		c.Catalog.MaxIdleConns = 5
	}
	if c.Catalog.ConnMaxLifeSec <= 0 {
		c.Catalog.ConnMaxLifeSec = 300
	}
	if c.Catalog.DefaultPageSize <= 0 {
		c.Catalog.DefaultPageSize = 20
	}
	if c.Catalog.MaxPageSize <= 0 {
		c.Catalog.MaxPageSize = 100
	}
	if c.Cache.BannerTTLSec <= 0 {
		c.Cache.BannerTTLSec = 1800
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Doofinder.BaseURL == "" {
		c.Doofinder.BaseURL = "https://eu1-search.doofinder.com"
	}
	if c.Doofinder.TimeoutSec <= 0 {
		c.Doofinder.TimeoutSec = 5
	}
	// results_limit caps the maximum reconcilable result-set size: the hosted
	// API is queried once with this page size instead of true pagination.
	if c.Doofinder.ResultsLimit <= 0 {
		c.Doofinder.ResultsLimit = 100
	}
}

// Validate checks the configuration for correctness.
// Missing Doofinder credentials are not an error: the availability gate keeps
// reconciliation off and the service serves native search.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Catalog.DSN == "" {
		return fmt.Errorf("catalog.dsn is required")
	}
	if c.Doofinder.ResultsLimit > 1000 {
		return fmt.Errorf("doofinder.results_limit must not exceed 1000, got %d", c.Doofinder.ResultsLimit)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
