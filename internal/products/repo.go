package products

import "context"

// ProductsRepo defines persistence operations for products.
type ProductsRepo interface {
	Create(ctx context.Context, p Product) error
	GetByID(ctx context.Context, tenantID, productID string) (Product, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]Product, error)
	AllByTenant(ctx context.Context, tenantID string) ([]Product, error)
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, tenantID, productID string) error
}
