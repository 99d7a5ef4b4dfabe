package telemetry

import (
	"context"

	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/search/banner"
)

// SearchClient registers banner events with the hosted search API.
type SearchClient interface {
	RegisterBannerDisplay(ctx context.Context, bannerID int) error
	RegisterBannerClick(ctx context.Context, bannerID int) error
}

// BannerReader reads and drops the request-scoped banner.
type BannerReader interface {
	Get(ctx context.Context, requestID string) (*banner.Banner, error)
	Delete(ctx context.Context, requestID string) error
}
