package interfaces

import (
	"context"

	"project_billing/internal/domain/entities"
)

// IProductCatalog resolves product references from the catalog. An unresolved
// reference returns a zero-Ref product and no error; validation treats it as
// skip-with-warning, never fatal.
//
//go:generate mockgen -source=product_catalog_interface.go -destination=mocks/product_catalog_mock.go -package=mocks

type IProductCatalog interface {
	GetByRef(ctx context.Context, ref string) (entities.Product, error)
}
