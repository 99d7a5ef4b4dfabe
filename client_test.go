package doofinder

import (
	"context"
	"testing"
	"time"
)

func TestNew_RequiresCatalog(t *testing.T) {
	if _, err := New(WithCredentials("key", "abc123")); err == nil {
		t.Fatal("expected error without a catalog connection")
	}
}

func TestOptions(t *testing.T) {
	cfg := &clientConfig{resultsLimit: 100, bannerTTL: defaultBannerTTL}

	for _, o := range []Option{
		WithCredentials("key", "abc123"),
		WithBaseURL("https://us1-search.doofinder.com"),
		WithTimeout(2 * time.Second),
		WithResultsLimit(250),
		WithBannerTTL(time.Hour),
	} {
		o(cfg)
	}

	if !cfg.enabled || cfg.apiKey != "key" || cfg.searchEngine != "abc123" {
		t.Errorf("credentials = %v/%q/%q", cfg.enabled, cfg.apiKey, cfg.searchEngine)
	}
	if cfg.baseURL != "https://us1-search.doofinder.com" {
		t.Errorf("baseURL = %q", cfg.baseURL)
	}
	if cfg.timeout != 2*time.Second {
		t.Errorf("timeout = %v", cfg.timeout)
	}
	if cfg.resultsLimit != 250 {
		t.Errorf("resultsLimit = %d", cfg.resultsLimit)
	}
	if cfg.bannerTTL != time.Hour {
		t.Errorf("bannerTTL = %v", cfg.bannerTTL)
	}
}

func TestOptions_IgnoreInvalidValues(t *testing.T) {
	cfg := &clientConfig{resultsLimit: 100, bannerTTL: defaultBannerTTL}

	WithResultsLimit(0)(cfg)
	WithBannerTTL(-time.Minute)(cfg)
	WithLogger(nil)(cfg)

	if cfg.resultsLimit != 100 {
		t.Errorf("resultsLimit = %d, want the default kept", cfg.resultsLimit)
	}
	if cfg.bannerTTL != defaultBannerTTL {
		t.Errorf("bannerTTL = %v, want the default kept", cfg.bannerTTL)
	}
}

func TestNoopBanners(t *testing.T) {
	var nb noopBanners
	ctx := context.Background()

	if err := nb.Put(ctx, "req-1", bannerValue{}); err != nil {
		t.Errorf("Put: %v", err)
	}
	b, err := nb.Get(ctx, "req-1")
	if err != nil || b != nil {
		t.Errorf("Get = %v, %v, want nil banner", b, err)
	}
	if err := nb.Delete(ctx, "req-1"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}
