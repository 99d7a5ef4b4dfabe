package catalog

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	domcatalog "github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/catalog"
)

// Products hydrates full records for the given identifiers, preserving the
// order of ids. Called after the identifiers-only ordering pass.
func (r *Repo) Products(ctx context.Context, ids []int) ([]domcatalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.title, p.kind, p.price
		   FROM products p
		  WHERE p.id = ANY($1)
		  ORDER BY array_position($1::bigint[], p.id)`,
		pq.Array(toInt64(ids)),
	)
	if err != nil {
		return nil, fmt.Errorf("products query: %w", err)
	}
	defer rows.Close()

	var out []domcatalog.Product
	for rows.Next() {
		var (
			id    int
			title string
			kind  string
			price float64
		)
		if err := rows.Scan(&id, &title, &kind, &price); err != nil {
			return nil, fmt.Errorf("products scan: %w", err)
		}
		out = append(out, domcatalog.NewProduct(id, title, kind, price))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("products rows: %w", err)
	}
	return out, nil
}
