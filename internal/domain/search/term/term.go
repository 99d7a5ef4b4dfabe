// Package term models the free-text search term sent to the hosted search
// API. The API rejects an empty string but accepts absence of a term, so an
// empty or whitespace-only input normalizes to "no term".
package term

import "strings"

// Term is a normalized search term.
type Term struct {
	value string
	set   bool
}

// New normalizes raw input into a Term. Empty and whitespace-only input
// produce an unset term, meaning "match all".
func New(raw string) Term {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Term{}
	}
	return Term{value: v, set: true}
}

// None returns the unset term.
func None() Term { return Term{} }

// IsSet reports whether a non-empty term is present.
func (t Term) IsSet() bool { return t.set }

// Value returns the term text. Empty when unset.
func (t Term) Value() string { return t.value }
