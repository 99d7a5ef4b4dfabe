// Package search serves product search requests. When reconciliation is
// available the hosted index decides relevance and the local catalog only
// confirms presence; otherwise the catalog's native full-text search runs.
package search

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain"
	domcatalog "github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/catalog"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/catalog/query"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/search/term"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/usecase/reconcile"
)

// Source identifies which engine produced the result ordering.
type Source string

const (
	// SourceDoofinder marks an externally ranked, reconciled result set.
	SourceDoofinder Source = "doofinder"
	// SourceNative marks the catalog's own full-text search.
	SourceNative Source = "native"
)

// Result is one search response page.
type Result struct {
	source    Source
	products  []domcatalog.Product
	total     int
	pageCount int
}

// Source returns the engine that produced the ordering.
func (r *Result) Source() Source { return r.source }

// Products returns the hydrated product records in result order.
func (r *Result) Products() []domcatalog.Product { return r.products }

// Total returns the total match count.
func (r *Result) Total() int { return r.total }

// PageCount returns the number of result pages.
func (r *Result) PageCount() int { return r.pageCount }

// Service handles search requests.
type Service struct {
	settings   reconcile.Settings
	reconciler Reconciler
	catalog    Catalog
	logger     *zap.Logger
}

// New creates a search service. settings is the configuration already
// resolved for the active locale.
func New(settings reconcile.Settings, reconciler Reconciler, catalog Catalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		settings:   settings,
		reconciler: reconciler,
		catalog:    catalog,
		logger:     logger,
	}
}

// Search runs one product search. rawTerm may be empty, which means "browse
// all" and always takes the native path.
func (s *Service) Search(
	ctx context.Context, requestID, rawTerm string, pageNum, perPage int,
) (Result, error) {
	t := term.New(rawTerm)

	guard := reconcile.GuardFromContext(ctx)
	if guard == nil {
		guard = reconcile.NewGuard()
		ctx = reconcile.ContextWithGuard(ctx, guard)
	}

	// The guard trips when the catalog layer's own search hook re-enters
	// this path from inside a reconciliation-issued query.
	if s.settings.Active() && !guard.Nested() && t.IsSet() {
		spec := query.New(pageNum, perPage)
		spec.SetSearchTerm(t)

		rec, err := s.reconciler.Reconcile(ctx, guard, requestID, spec)
		switch {
		case err == nil && rec != nil:
			return s.hydrate(ctx, SourceDoofinder, rec.IDs(), rec.Found(), rec.PageCount())
		case errors.Is(err, domain.ErrSearchUnavailable):
			// Availability beats relevance: serve native results instead of
			// an error page.
			s.logger.Warn("search API unavailable, falling back to native search",
				zap.String("request_id", requestID), zap.Error(err))
		case err != nil:
			return Result{}, fmt.Errorf("reconcile: %w", err)
		}
	}

	return s.native(ctx, t, pageNum, perPage)
}

// native runs the catalog's own full-text search.
func (s *Service) native(
	ctx context.Context, t term.Term, pageNum, perPage int,
) (Result, error) {
	spec := query.New(pageNum, perPage)
	spec.SetSearchTerm(t)
	spec.SetTypeFilter([]string{domcatalog.KindProduct})

	p, err := s.catalog.Query(ctx, spec)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", domain.ErrLocalQuery, err)
	}
	return s.hydrate(ctx, SourceNative, p.IDs(), p.Total(), p.PageCount())
}

// hydrate materializes full product records for the ordered identifiers.
func (s *Service) hydrate(
	ctx context.Context, src Source, ids []int, total, pageCount int,
) (Result, error) {
	var products []domcatalog.Product
	if len(ids) > 0 {
		var err error
		products, err = s.catalog.Products(ctx, ids)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", domain.ErrLocalQuery, err)
		}
	}
	return Result{
		source:    src,
		products:  products,
		total:     total,
		pageCount: pageCount,
	}, nil
}
