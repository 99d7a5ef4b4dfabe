// Package reconcile replaces the catalog's native free-text search with an
// ID-restricted query ordered by the hosted search API's relevance ranking.
package reconcile

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain"
	domcatalog "github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/catalog"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/catalog/page"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/catalog/query"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/metrics"
)

// Reconciled is the outcome of one reconciliation pass: locally present
// identifiers in external rank order plus pagination counts.
type Reconciled struct {
	ids       []int
	found     int
	pageCount int
}

// NewReconciled creates a reconciliation outcome. ids keep external rank order.
func NewReconciled(ids []int, found, pageCount int) *Reconciled {
	return &Reconciled{ids: ids, found: found, pageCount: pageCount}
}

// IDs returns the identifiers in external rank order.
func (r *Reconciled) IDs() []int { return r.ids }

// Found returns the total local match count.
func (r *Reconciled) Found() int { return r.found }

// PageCount returns the number of result pages.
func (r *Reconciled) PageCount() int { return r.pageCount }

// Service orchestrates one hosted-search call and one ordered catalog query.
type Service struct {
	newClient    func() SearchClient
	clientOnce   sync.Once
	client       SearchClient
	catalog      CatalogQuerier
	banners      BannerStore
	resultsLimit int
	logger       *zap.Logger
}

// New creates a reconciler. newClient builds the hosted search client on
// first use; the instance is reused afterwards.
func New(
	newClient func() SearchClient,
	catalog CatalogQuerier,
	banners BannerStore,
	resultsLimit int,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		newClient:    newClient,
		catalog:      catalog,
		banners:      banners,
		resultsLimit: resultsLimit,
		logger:       logger,
	}
}

// searchClient lazily builds the hosted search client.
func (s *Service) searchClient() SearchClient {
	s.clientOnce.Do(func() {
		s.client = s.newClient()
	})
	return s.client
}

// Reconcile rewrites a native query spec into an ID-restricted one ordered by
// the hosted index's ranking, then executes it against the local catalog.
//
// A nil result with a nil error means "not applicable": the request is not a
// search, or the term is missing. The caller runs the native flow unmodified.
// Callers must check the availability gate and the re-entrancy guard before
// invoking; Reconcile assumes the feature is enabled.
//
// Failure semantics: hosted API errors surface as domain.ErrSearchUnavailable
// (caller should fall back to native search); catalog errors surface as
// domain.ErrLocalQuery and are never masked. No retries happen here.
func (s *Service) Reconcile(
	ctx context.Context, guard *Guard, requestID string, spec *query.Spec,
) (*Reconciled, error) {
	// Missing or empty term means "browse all": the native flow keeps running
	// unfiltered rather than going through the ranking API.
	if spec == nil || !spec.IsSearch() {
		metrics.ReconcileTotal.WithLabelValues("skipped").Inc()
		return nil, nil
	}

	// One call with a fixed upper bound instead of true pagination; the bound
	// caps the maximum reconcilable result-set size.
	set, err := s.searchClient().Query(ctx, spec.SearchTerm(), s.resultsLimit)
	if err != nil {
		metrics.ReconcileTotal.WithLabelValues("fallback").Inc()
		return nil, fmt.Errorf("hosted search: %w", err)
	}

	if b := set.Banner(); b != nil {
		// Telemetry state only: a failed write must not break the search.
		if err := s.banners.Put(ctx, requestID, *b); err != nil {
			s.logger.Warn("store banner", zap.String("request_id", requestID), zap.Error(err))
		}
	}

	// Rewrite the spec: the ID filter replaces the free-text term so the
	// catalog engine cannot re-apply its own relevance scoring. An empty ID
	// set still becomes a filter — skipping it would fall back to unfiltered
	// native results.
	spec.SetIDFilter(set.IDs())
	spec.SetTypeFilter([]string{domcatalog.KindProduct, domcatalog.KindVariation})
	spec.SetFields(query.FieldsIDs)
	spec.SetOrder(query.OrderIDFilter)

	p, err := s.orderedQuery(ctx, guard, spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLocalQuery, err)
	}

	metrics.ReconcileTotal.WithLabelValues("reconciled").Inc()
	return &Reconciled{
		ids:       p.IDs(),
		found:     p.Total(),
		pageCount: p.PageCount(),
	}, nil
}

// orderedQuery runs the catalog query with the re-entrancy guard held. The
// deferred release clears the guard on every exit path.
func (s *Service) orderedQuery(
	ctx context.Context, guard *Guard, spec *query.Spec,
) (page.Page, error) {
	release := guard.Acquire()
	defer release()
	return s.catalog.Query(ctx, spec) //nolint:wrapcheck // caller wraps with ErrLocalQuery
}
