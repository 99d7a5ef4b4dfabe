package reconcile

import "context"

type guardKey struct{}

// ContextWithGuard stores a request-scoped guard in the context so a catalog
// search hook firing inside the reconciliation flow sees the same guard.
func ContextWithGuard(ctx context.Context, g *Guard) context.Context {
	return context.WithValue(ctx, guardKey{}, g)
}

// GuardFromContext extracts the request guard. Returns nil if none is set.
func GuardFromContext(ctx context.Context) *Guard {
	if g, ok := ctx.Value(guardKey{}).(*Guard); ok {
		return g
	}
	return nil
}
