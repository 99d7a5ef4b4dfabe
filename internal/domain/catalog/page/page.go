// Package page models one page of catalog query results.
package page

// Page is a catalog result page. IDs keep the order the catalog returned,
// which under the id_filter ordering is the external rank order.
type Page struct {
	ids       []int
	total     int
	pageCount int
}

// New creates a result page.
func New(ids []int, total, pageCount int) Page {
	return Page{ids: ids, total: total, pageCount: pageCount}
}

// IDs returns the matched identifiers in result order.
func (p *Page) IDs() []int { return p.ids }

// Total returns the total match count across pages.
func (p *Page) Total() int { return p.total }

// PageCount returns the number of pages available.
func (p *Page) PageCount() int { return p.pageCount }
