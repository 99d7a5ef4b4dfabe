package reconcile

import (
	"context"

	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/catalog/page"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/catalog/query"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/search/banner"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/search/ranked"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/search/term"
)

// SearchClient queries the hosted search API.
type SearchClient interface {
	Query(ctx context.Context, t term.Term, resultsPerPage int) (ranked.Set, error)
}

// CatalogQuerier executes a local catalog query spec.
type CatalogQuerier interface {
	Query(ctx context.Context, spec *query.Spec) (page.Page, error)
}

// BannerStore persists the request-scoped banner for later telemetry.
type BannerStore interface {
	Put(ctx context.Context, requestID string, b banner.Banner) error
}
