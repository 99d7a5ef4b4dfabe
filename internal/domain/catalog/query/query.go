// Package query models the mutable specification handed to the local product
// catalog. The reconciler rewrites a native free-text spec into an
// ID-restricted one; the two filters are mutually exclusive by construction.
package query

import "github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/search/term"

// Order selects the row ordering the catalog must apply.
type Order string

const (
	// OrderDefault is the catalog's own default ordering.
	OrderDefault Order = "default"
	// OrderIDFilter returns rows in the exact sequence given by the ID
	// filter, ignoring the catalog's relevance and sort logic.
	OrderIDFilter Order = "id_filter"
)

// Fields selects which columns the catalog materializes.
type Fields string

const (
	// FieldsAll materializes full product records.
	FieldsAll Fields = "all"
	// FieldsIDs materializes identifiers only.
	FieldsIDs Fields = "ids"
)

// Spec is a mutable catalog query specification.
type Spec struct {
	searchTerm  term.Term
	idFilter    []int
	hasIDFilter bool
	typeFilter  []string
	fields      Fields
	order       Order
	page        int
	perPage     int
}

// New creates a spec for page/perPage with the catalog defaults.
func New(page, perPage int) *Spec {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return &Spec{
		fields:  FieldsAll,
		order:   OrderDefault,
		page:    page,
		perPage: perPage,
	}
}

// DefaultPerPage is the catalog page size when the caller gives none.
const DefaultPerPage = 20

// SetSearchTerm attaches a free-text term and drops any ID filter.
func (s *Spec) SetSearchTerm(t term.Term) {
	s.searchTerm = t
	s.idFilter = nil
	s.hasIDFilter = false
}

// ClearSearchTerm removes the free-text term so the catalog engine cannot
// apply its own relevance scoring.
func (s *Spec) ClearSearchTerm() { s.searchTerm = term.None() }

// SetIDFilter restricts the query to the given identifiers and removes the
// free-text term. An empty (non-nil semantics preserved via the flag) list is
// a valid filter that matches nothing.
func (s *Spec) SetIDFilter(ids []int) {
	s.idFilter = ids
	s.hasIDFilter = true
	s.searchTerm = term.None()
}

// SetTypeFilter restricts the query to the given item type tags.
func (s *Spec) SetTypeFilter(types []string) { s.typeFilter = types }

// SetFields selects the columns to materialize.
func (s *Spec) SetFields(f Fields) { s.fields = f }

// SetOrder selects the row ordering.
func (s *Spec) SetOrder(o Order) { s.order = o }

// SearchTerm returns the free-text term.
func (s *Spec) SearchTerm() term.Term { return s.searchTerm }

// IsSearch reports whether the spec carries a free-text term.
func (s *Spec) IsSearch() bool { return s.searchTerm.IsSet() }

// IDFilter returns the identifier restriction.
func (s *Spec) IDFilter() []int { return s.idFilter }

// HasIDFilter reports whether an ID filter is active, even when empty.
func (s *Spec) HasIDFilter() bool { return s.hasIDFilter }

// TypeFilter returns the item type restriction.
func (s *Spec) TypeFilter() []string { return s.typeFilter }

// FieldsOnly returns the column selection.
func (s *Spec) FieldsOnly() Fields { return s.fields }

// Order returns the requested row ordering.
func (s *Spec) Order() Order { return s.order }

// Page returns the 1-based page number.
func (s *Spec) Page() int { return s.page }

// PerPage returns the page size.
func (s *Spec) PerPage() int { return s.perPage }
