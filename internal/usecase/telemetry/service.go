// Package telemetry forwards banner impression and click events to the
// hosted search API. Telemetry is fire-and-forget: failures are logged and
// swallowed, never surfaced to the browsing flow.
package telemetry

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/metrics"
)

// Service records banner telemetry.
type Service struct {
	newClient  func() SearchClient
	clientOnce sync.Once
	client     SearchClient
	banners    BannerReader
	logger     *zap.Logger
}

// New creates a telemetry service. newClient builds the hosted search client
// on first use: click events can arrive on a page load without a prior
// search call in the same process (banner rendered from cached state).
func New(newClient func() SearchClient, banners BannerReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{newClient: newClient, banners: banners, logger: logger}
}

func (s *Service) searchClient() SearchClient {
	s.clientOnce.Do(func() {
		s.client = s.newClient()
	})
	return s.client
}

// RecordImpression registers the banner stored for the request. No-op when no
// banner was stored or the banner lacks an identifier. The stored banner is
// dropped afterwards so repeat page loads do not double-count.
func (s *Service) RecordImpression(ctx context.Context, requestID string) {
	b, err := s.banners.Get(ctx, requestID)
	if err != nil {
		metrics.BannerEventsTotal.WithLabelValues("impression", "error").Inc()
		s.logger.Warn("read stored banner", zap.String("request_id", requestID), zap.Error(err))
		return
	}
	if b == nil || !b.Trackable() {
		return
	}

	if err := s.searchClient().RegisterBannerDisplay(ctx, b.ID()); err != nil {
		metrics.BannerEventsTotal.WithLabelValues("impression", "error").Inc()
		s.logger.Warn("register banner display", zap.Int("banner_id", b.ID()), zap.Error(err))
		return
	}
	metrics.BannerEventsTotal.WithLabelValues("impression", "success").Inc()

	if err := s.banners.Delete(ctx, requestID); err != nil {
		s.logger.Warn("drop stored banner", zap.String("request_id", requestID), zap.Error(err))
	}
}

// RecordClick registers a banner click.
func (s *Service) RecordClick(ctx context.Context, bannerID int) {
	if bannerID <= 0 {
		return
	}
	if err := s.searchClient().RegisterBannerClick(ctx, bannerID); err != nil {
		metrics.BannerEventsTotal.WithLabelValues("click", "error").Inc()
		s.logger.Warn("register banner click", zap.Int("banner_id", bannerID), zap.Error(err))
		return
	}
	metrics.BannerEventsTotal.WithLabelValues("click", "success").Inc()
}
