// Package doofinder is the HTTP client for the hosted search API. It is the
// only component that talks to the external index; every failure surfaces as
// domain.ErrSearchUnavailable so callers can fall back to native search.
package doofinder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/search/banner"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/search/ranked"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/search/term"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/metrics"
)

// Config holds the hosted search API settings.
type Config struct {
	APIKey       string
	SearchEngine string
	BaseURL      string
	Timeout      time.Duration
	Logger       *zap.Logger
}

// Client talks to the hosted search API. Construction requires the search
// engine identifier and the API key; the availability gate guarantees both
// are present before a client is built.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	searchEngine string
	logger       *zap.Logger
}

// NewClient creates a hosted search API client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		searchEngine: cfg.SearchEngine,
		logger:       logger,
	}
}

// searchResponse is the API wire format for a search call.
type searchResponse struct {
	Total   int `json:"total"`
	Results []struct {
		ID int `json:"id"`
	} `json:"results"`
	Banner *struct {
		ID   int             `json:"id"`
		Data json.RawMessage `json:"data,omitempty"`
	} `json:"banner,omitempty"`
}

// Query runs one search call and returns the ranked result set. The term may
// be unset: the API rejects an empty query string but accepts absence of the
// parameter, which means "match all".
func (c *Client) Query(ctx context.Context, t term.Term, resultsPerPage int) (ranked.Set, error) {
	q := url.Values{}
	q.Set("hashid", c.searchEngine)
	q.Set("rpp", strconv.Itoa(resultsPerPage))
	if t.IsSet() {
		q.Set("query", t.Value())
	}

	u := c.baseURL + "/5/search?" + q.Encode()

	start := time.Now()
	body, err := c.get(ctx, u)
	duration := time.Since(start)

	if err != nil {
		metrics.SearchAPIRequestsTotal.WithLabelValues(c.searchEngine, "error").Inc()
		return ranked.Set{}, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		metrics.SearchAPIRequestsTotal.WithLabelValues(c.searchEngine, "error").Inc()
		return ranked.Set{}, fmt.Errorf("malformed search response: %w: %w", err, domain.ErrSearchUnavailable)
	}

	metrics.SearchAPIRequestsTotal.WithLabelValues(c.searchEngine, "success").Inc()
	metrics.SearchAPIRequestDuration.WithLabelValues(c.searchEngine).Observe(duration.Seconds())

	ids := make([]int, 0, len(resp.Results))
	for _, r := range resp.Results {
		ids = append(ids, r.ID)
	}

	var b *banner.Banner
	if resp.Banner != nil {
		bb := banner.New(resp.Banner.ID, resp.Banner.Data)
		b = &bb
	}

	return ranked.New(ids, resp.Total, b), nil
}

// RegisterBannerDisplay records a banner impression with the API.
func (c *Client) RegisterBannerDisplay(ctx context.Context, bannerID int) error {
	u := fmt.Sprintf("%s/5/stats/img?hashid=%s&banner_id=%d",
		c.baseURL, url.QueryEscape(c.searchEngine), bannerID)
	if _, err := c.get(ctx, u); err != nil {
		return fmt.Errorf("register banner display: %w", err)
	}
	return nil
}

// RegisterBannerClick records a banner click with the API.
func (c *Client) RegisterBannerClick(ctx context.Context, bannerID int) error {
	u := fmt.Sprintf("%s/5/stats/click?hashid=%s&banner_id=%d",
		c.baseURL, url.QueryEscape(c.searchEngine), bannerID)
	if _, err := c.get(ctx, u); err != nil {
		return fmt.Errorf("register banner click: %w", err)
	}
	return nil
}

// get performs an authenticated GET and returns the response body. Transport
// errors and non-2xx statuses wrap domain.ErrSearchUnavailable.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search API request failed: %w: %w", err, domain.ErrSearchUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("search API status %d: %w", resp.StatusCode, domain.ErrSearchUnavailable)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("read search API response: %w: %w", err, domain.ErrSearchUnavailable)
	}
	return body, nil
}
