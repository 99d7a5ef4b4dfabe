// Package catalog implements the local product store query over Postgres.
// Its id_filter ordering mode returns rows in the exact sequence given by the
// ID filter, which is how externally ranked results keep their order.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/catalog/page"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/catalog/query"
)

// Config holds Postgres connection settings.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Repo queries the product catalog.
type Repo struct {
	db *sql.DB
}

// New opens a Postgres connection pool and verifies connectivity.
func New(cfg Config) (*Repo, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &Repo{db: db}, nil
}

// NewWithDB wraps an existing connection pool (used by the embeddable client).
func NewWithDB(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Close releases the connection pool.
func (r *Repo) Close() error {
	return r.db.Close() //nolint:wrapcheck // delegating to database/sql
}

// Ping checks catalog connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("catalog ping: %w", err)
	}
	return nil
}

// Query executes a catalog query spec and returns one result page.
//
// With an active ID filter the free-text term is absent by construction
// (query.Spec enforces this), so only the ID restriction and the type
// restriction survive. An empty ID filter matches nothing but still runs: the
// caller gets a genuine zero-result page, not an unfiltered fallback.
func (r *Repo) Query(ctx context.Context, spec *query.Spec) (page.Page, error) {
	where, args := buildWhere(spec)

	total, err := r.count(ctx, where, args)
	if err != nil {
		return page.Page{}, err
	}

	orderBy := "p.id"
	if spec.Order() == query.OrderIDFilter && spec.HasIDFilter() {
		// array_position returns each row's index in the filter array, so
		// rows come back in the exact filter sequence.
		orderBy = fmt.Sprintf("array_position($%d::bigint[], p.id)", len(args)+1)
		args = append(args, pq.Array(toInt64(spec.IDFilter())))
	}

	limit := spec.PerPage()
	offset := (spec.Page() - 1) * spec.PerPage()
	args = append(args, limit, offset)

	q := fmt.Sprintf(
		`SELECT p.id FROM products p WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		where, orderBy, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return page.Page{}, fmt.Errorf("catalog query: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return page.Page{}, fmt.Errorf("catalog scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return page.Page{}, fmt.Errorf("catalog rows: %w", err)
	}

	return page.New(ids, total, pageCount(total, spec.PerPage())), nil
}

func (r *Repo) count(ctx context.Context, where string, args []any) (int, error) {
	var total int
	q := fmt.Sprintf(`SELECT COUNT(*) FROM products p WHERE %s`, where)
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("catalog count: %w", err)
	}
	return total, nil
}

// buildWhere translates the spec filters into a WHERE clause. The free-text
// term and the ID filter are mutually exclusive; the spec guarantees at most
// one is set.
func buildWhere(spec *query.Spec) (string, []any) {
	conds := []string{"p.status = 'publish'"}
	var args []any

	if spec.HasIDFilter() {
		args = append(args, pq.Array(toInt64(spec.IDFilter())))
		conds = append(conds, fmt.Sprintf("p.id = ANY($%d)", len(args)))
	} else if spec.SearchTerm().IsSet() {
		args = append(args, spec.SearchTerm().Value())
		conds = append(conds, fmt.Sprintf(
			"to_tsvector('simple', p.title || ' ' || coalesce(p.description, '')) @@ plainto_tsquery('simple', $%d)",
			len(args),
		))
	}

	if len(spec.TypeFilter()) > 0 {
		args = append(args, pq.Array(spec.TypeFilter()))
		conds = append(conds, fmt.Sprintf("p.kind = ANY($%d)", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

func toInt64(ids []int) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

func pageCount(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
