package health

import "context"

// CatalogPinger checks product catalog availability.
type CatalogPinger interface {
	Ping(ctx context.Context) error
}

// CachePinger checks banner cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
