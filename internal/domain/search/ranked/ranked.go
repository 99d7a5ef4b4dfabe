// Package ranked models the ranked result set returned by the hosted search
// API. The identifier order reflects external relevance rank and must not be
// re-sorted downstream.
package ranked

import "github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/search/banner"

// Set is a ranked result set from one hosted-search call.
type Set struct {
	ids    []int
	total  int
	banner *banner.Banner
}

// New creates a ranked set. ids keep the API's rank order.
func New(ids []int, total int, b *banner.Banner) Set {
	return Set{ids: ids, total: total, banner: b}
}

// IDs returns the matched item identifiers in rank order.
func (s *Set) IDs() []int { return s.ids }

// Total returns the total match count reported by the API.
func (s *Set) Total() int { return s.total }

// Banner returns the attached merchandising banner, if any.
func (s *Set) Banner() *banner.Banner { return s.banner }
