package reconcile

// Settings is the resolved search configuration for one request, injected at
// construction time (credentials may differ per locale).
type Settings struct {
	Enabled      bool
	APIKey       string
	SearchEngine string
}

// Active reports whether reconciliation may run: the feature flag must be
// affirmatively set and both credential fields non-empty. No side effects.
func (s Settings) Active() bool {
	return s.Enabled && s.APIKey != "" && s.SearchEngine != ""
}

// Guard prevents a catalog query issued inside reconciliation from
// re-triggering reconciliation through the catalog layer's own search hook.
// One Guard belongs to one request; it must never be shared across requests.
type Guard struct {
	nested bool
}

// NewGuard creates a released guard.
func NewGuard() *Guard { return &Guard{} }

// Acquire marks the guard nested and returns the release function. Callers
// defer the release so every exit path, including panics and errors from the
// catalog query, clears the flag.
func (g *Guard) Acquire() func() {
	g.nested = true
	return func() { g.nested = false }
}

// Nested reports whether a reconciliation-issued catalog query is in flight.
func (g *Guard) Nested() bool { return g.nested }
