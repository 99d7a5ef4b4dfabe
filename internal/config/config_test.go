package config

import "testing"

func validConfig() Config {
	cfg := Config{}
	cfg.HTTP.Port = 8080
	cfg.Catalog.DSN = "postgres://localhost/catalog"
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Doofinder.BaseURL != "https://eu1-search.doofinder.com" {
		t.Errorf("base_url = %q", cfg.Doofinder.BaseURL)
	}
	if cfg.Doofinder.ResultsLimit != 100 {
		t.Errorf("results_limit = %d, want 100", cfg.Doofinder.ResultsLimit)
	}
	if cfg.Doofinder.TimeoutSec != 5 {
		t.Errorf("timeout_sec = %d, want 5", cfg.Doofinder.TimeoutSec)
	}
	if cfg.Cache.BannerTTLSec != 1800 {
		t.Errorf("banner_ttl_sec = %d, want 1800", cfg.Cache.BannerTTLSec)
	}
	if cfg.Catalog.DefaultPageSize != 20 || cfg.Catalog.MaxPageSize != 100 {
		t.Errorf("page sizes = %d/%d, want 20/100", cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{}
	cfg.Doofinder.ResultsLimit = 250
	cfg.Doofinder.BaseURL = "https://us1-search.doofinder.com"
	cfg.ApplyDefaults()

	if cfg.Doofinder.ResultsLimit != 250 {
		t.Errorf("results_limit = %d, want 250", cfg.Doofinder.ResultsLimit)
	}
	if cfg.Doofinder.BaseURL != "https://us1-search.doofinder.com" {
		t.Errorf("base_url = %q", cfg.Doofinder.BaseURL)
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.HTTP.Port = 0 }},
		{"port too large", func(c *Config) { c.HTTP.Port = 70000 }},
		{"missing catalog dsn", func(c *Config) { c.Catalog.DSN = "" }},
		{"results limit too large", func(c *Config) { c.Doofinder.ResultsLimit = 5000 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_MissingCredentialsAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.Doofinder.Enabled = true
	cfg.Doofinder.APIKey = ""
	cfg.Doofinder.SearchEngine = ""

	// The availability gate handles missing credentials at runtime.
	if err := cfg.Validate(); err != nil {
		t.Errorf("missing credentials must not fail validation: %v", err)
	}
}

func TestResolve(t *testing.T) {
	off := false
	base := DoofinderConfig{
		Enabled:      true,
		APIKey:       "base-key",
		SearchEngine: "base-engine",
		Locales: map[string]LocaleCredential{
			"de":    {APIKey: "de-key", SearchEngine: "de-engine"},
			"pt-BR": {SearchEngine: "br-engine"},
			"fr":    {Enabled: &off},
		},
	}

	t.Run("full override", func(t *testing.T) {
		got := base.Resolve("de")
		if got.APIKey != "de-key" || got.SearchEngine != "de-engine" {
			t.Errorf("got %q/%q", got.APIKey, got.SearchEngine)
		}
		if !got.Enabled {
			t.Error("enabled must carry over from the base")
		}
	})

	t.Run("partial override falls back", func(t *testing.T) {
		got := base.Resolve("pt-BR")
		if got.APIKey != "base-key" {
			t.Errorf("api key = %q, want the base fallback", got.APIKey)
		}
		if got.SearchEngine != "br-engine" {
			t.Errorf("search engine = %q", got.SearchEngine)
		}
	})

	t.Run("locale can disable", func(t *testing.T) {
		if got := base.Resolve("fr"); got.Enabled {
			t.Error("locale override must be able to disable the feature")
		}
	})

	t.Run("unknown locale uses base", func(t *testing.T) {
		got := base.Resolve("xx")
		if got.APIKey != "base-key" || got.SearchEngine != "base-engine" {
			t.Errorf("got %q/%q, want base credentials", got.APIKey, got.SearchEngine)
		}
	})
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DOOF_TEST_KEY", "secret")

	got := string(expandEnvVars([]byte("api_key: ${DOOF_TEST_KEY}\nbase_url: ${DOOF_TEST_URL:-https://eu1-search.doofinder.com}")))
	want := "api_key: secret\nbase_url: https://eu1-search.doofinder.com"
	if got != want {
		t.Errorf("expanded = %q, want %q", got, want)
	}
}
