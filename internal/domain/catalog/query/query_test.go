package query

import (
	"testing"

	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/search/term"
)

func TestNewDefaults(t *testing.T) {
	s := New(0, 0)
	if s.Page() != 1 {
		t.Errorf("page = %d, want 1", s.Page())
	}
	if s.PerPage() != DefaultPerPage {
		t.Errorf("perPage = %d, want %d", s.PerPage(), DefaultPerPage)
	}
	if s.Order() != OrderDefault {
		t.Errorf("order = %q, want %q", s.Order(), OrderDefault)
	}
	if s.FieldsOnly() != FieldsAll {
		t.Errorf("fields = %q, want %q", s.FieldsOnly(), FieldsAll)
	}
	if s.IsSearch() || s.HasIDFilter() {
		t.Error("a fresh spec carries neither a term nor an ID filter")
	}
}

func TestSetIDFilterDropsTerm(t *testing.T) {
	s := New(1, 20)
	s.SetSearchTerm(term.New("shoes"))

	s.SetIDFilter([]int{5, 2, 9})

	if s.IsSearch() {
		t.Error("setting an ID filter must drop the free-text term")
	}
	if !s.HasIDFilter() {
		t.Error("expected an active ID filter")
	}
	if got := s.IDFilter(); len(got) != 3 || got[0] != 5 || got[1] != 2 || got[2] != 9 {
		t.Errorf("ids = %v, want [5 2 9]", got)
	}
}

func TestSetSearchTermDropsIDFilter(t *testing.T) {
	s := New(1, 20)
	s.SetIDFilter([]int{1, 2})

	s.SetSearchTerm(term.New("shoes"))

	if s.HasIDFilter() {
		t.Error("setting a term must drop the ID filter")
	}
	if !s.IsSearch() {
		t.Error("expected an active term")
	}
}

func TestEmptyIDFilterIsActive(t *testing.T) {
	s := New(1, 20)
	s.SetIDFilter([]int{})

	if !s.HasIDFilter() {
		t.Error("an empty ID filter is still a filter, not the absence of one")
	}
	if len(s.IDFilter()) != 0 {
		t.Errorf("ids = %v, want empty", s.IDFilter())
	}
}

func TestClearSearchTerm(t *testing.T) {
	s := New(1, 20)
	s.SetSearchTerm(term.New("shoes"))
	s.ClearSearchTerm()

	if s.IsSearch() {
		t.Error("term must be cleared")
	}
}
