package search

import (
	"context"

	domcatalog "github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/catalog"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/catalog/page"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/catalog/query"
	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/usecase/reconcile"
)

// Catalog is the local product store contract.
type Catalog interface {
	Query(ctx context.Context, spec *query.Spec) (page.Page, error)
	Products(ctx context.Context, ids []int) ([]domcatalog.Product, error)
}

// Reconciler runs the externally ranked reconciliation pass.
type Reconciler interface {
	Reconcile(
		ctx context.Context, guard *reconcile.Guard, requestID string, spec *query.Spec,
	) (*reconcile.Reconciled, error)
}
