package domain

import "errors"

var (
	// ErrSearchUnavailable signals that the hosted search API could not be
	// reached or returned a malformed response. Callers fall back to the
	// native catalog search.
	ErrSearchUnavailable = errors.New("search service unavailable")
	// ErrLocalQuery signals a catalog-layer failure. Never masked: it points
	// at a storage problem unrelated to search reconciliation.
	ErrLocalQuery = errors.New("local catalog query failed")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrSearchDisabled signals that reconciliation is switched off or the
	// credentials are incomplete.
	ErrSearchDisabled = errors.New("search reconciliation disabled")
)
