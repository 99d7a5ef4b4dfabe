package doofinder

import (
	"context"
	"fmt"

	searchuc "github.com/arkadiuszzietek/doofinder-woocommerce/internal/usecase/search"
)

// Source identifies which engine produced the result ordering.
type Source string

const (
	// SourceDoofinder marks an externally ranked, reconciled result set.
	SourceDoofinder Source = "doofinder"
	// SourceNative marks the catalog's own full-text search.
	SourceNative Source = "native"
)

// Product is a catalog product record.
type Product struct {
	ID    int
	Title string
	Kind  string
	Price float64
}

// SearchResult is one search response page. Products keep the relevance
// order of whichever engine produced them.
type SearchResult struct {
	Source    Source
	Products  []Product
	Total     int
	PageCount int
}

// Search runs one product search. requestID keys the banner stored for later
// telemetry; reuse it for RecordImpression. An empty term browses all
// products through the native path.
func (c *Client) Search(
	ctx context.Context, requestID, term string, page, perPage int,
) (SearchResult, error) {
	result, err := c.search.Search(ctx, requestID, term, page, perPage)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}
	return fromResult(result), nil
}

// RecordImpression registers the banner stored for the request, if any.
// Fire-and-forget: telemetry failures are logged and swallowed.
func (c *Client) RecordImpression(ctx context.Context, requestID string) {
	c.telemetry.RecordImpression(ctx, requestID)
}

// RecordClick registers a banner click. Fire-and-forget.
func (c *Client) RecordClick(ctx context.Context, bannerID int) {
	c.telemetry.RecordClick(ctx, bannerID)
}

func fromResult(r searchuc.Result) SearchResult {
	products := make([]Product, 0, len(r.Products()))
	for _, p := range r.Products() {
		products = append(products, Product{
			ID:    p.ID(),
			Title: p.Title(),
			Kind:  p.Kind(),
			Price: p.Price(),
		})
	}
	return SearchResult{
		Source:    Source(r.Source()),
		Products:  products,
		Total:     r.Total(),
		PageCount: r.PageCount(),
	}
}
