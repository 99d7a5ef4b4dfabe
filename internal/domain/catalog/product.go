// Package catalog holds the product record model.
package catalog

// Product is a catalog product record.
type Product struct {
	id    int
	title string
	kind  string
	price float64
}

// NewProduct creates a product record.
func NewProduct(id int, title, kind string, price float64) Product {
	return Product{id: id, title: title, kind: kind, price: price}
}

// ID returns the product identifier.
func (p *Product) ID() int { return p.id }

// Title returns the product title.
func (p *Product) Title() string { return p.title }

// Kind returns the item type tag (product or product_variation).
func (p *Product) Kind() string { return p.kind }

// Price returns the product price.
func (p *Product) Price() float64 { return p.price }

// Item type tags used by the type filter. The variant tag matters because the
// external index surfaces split variant entries as separate items.
const (
	KindProduct   = "product"
	KindVariation = "product_variation"
)
