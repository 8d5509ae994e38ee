package products

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of ProductsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Product // tenantId -> products
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Product),
	}
}

// Create stores a product for a tenant.
func (r *MemoryRepo) Create(ctx context.Context, p Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[p.TenantID] = append(r.data[p.TenantID], p)
	return nil
}

// GetByID returns a product by ID for a tenant.
func (r *MemoryRepo) GetByID(ctx context.Context, tenantID, productID string) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.data[tenantID]
	for i := range list {
		if list[i].ID == productID {
			return list[i], nil
		}
	}
	return Product{}, ErrNotFound
}

// ListByTenant returns products for a tenant, newest first, honoring limit/offset.
func (r *MemoryRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	tenantProducts := r.data[tenantID]
	r.mu.RUnlock()

	if len(tenantProducts) == 0 || offset >= len(tenantProducts) {
		return []Product{}, nil
	}

	// Copy and sort newest-first by CreatedAt.
	list := make([]Product, len(tenantProducts))
	copy(list, tenantProducts)
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return list[offset:end], nil
}

// AllByTenant returns every product for a tenant in insertion order.
func (r *MemoryRepo) AllByTenant(ctx context.Context, tenantID string) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.data[tenantID]
	out := make([]Product, len(list))
	copy(out, list)
	return out, nil
}

// Update replaces a stored product in place.
func (r *MemoryRepo) Update(ctx context.Context, p Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.data[p.TenantID]
	for i := range list {
		if list[i].ID == p.ID {
			list[i] = p
			r.data[p.TenantID] = list
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a product for a tenant.
func (r *MemoryRepo) Delete(ctx context.Context, tenantID, productID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.data[tenantID]
	for i := range list {
		if list[i].ID == productID {
			r.data[tenantID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var _ ProductsRepo = (*MemoryRepo)(nil)
