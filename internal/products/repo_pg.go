package products

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements ProductsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const productColumns = `id, tenant_id, title, name, description, image_url, images, price, cost_price, stock_quantity, sku, barcode, category, brand, tags, seo_title, seo_description, seo_keywords, status, created_at, updated_at`

// Create inserts a new product.
func (r *PGRepo) Create(ctx context.Context, p Product) error {
	const query = `
INSERT INTO products (
    id,
    tenant_id,
    title,
    name,
    description,
    image_url,
    images,
    price,
    cost_price,
    stock_quantity,
    sku,
    barcode,
    category,
    brand,
    tags,
    seo_title,
    seo_description,
    seo_keywords,
    status,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	images, err := marshalStrings(p.Images)
	if err != nil {
		return err
	}
	tags, err := marshalStrings(p.Tags)
	if err != nil {
		return err
	}
	keywords, err := marshalStrings(p.SEOKeywords)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		p.ID,
		p.TenantID,
		p.Title,
		p.Name,
		p.Description,
		p.ImageURL,
		images,
		p.Price,
		p.CostPrice,
		nullableInt(p.StockQuantity),
		p.SKU,
		p.Barcode,
		p.Category,
		p.Brand,
		tags,
		p.SEOTitle,
		p.SEODescription,
		keywords,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

// GetByID fetches a product by ID for a tenant.
func (r *PGRepo) GetByID(ctx context.Context, tenantID, productID string) (Product, error) {
	query := `
SELECT ` + productColumns + `
FROM products
WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, tenantID, productID)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

// ListByTenant lists products ordered newest-first.
func (r *PGRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `
SELECT ` + productColumns + `
FROM products
WHERE tenant_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// AllByTenant returns every live product for a tenant, oldest-first. Used by
// catalog-wide analysis.
func (r *PGRepo) AllByTenant(ctx context.Context, tenantID string) ([]Product, error) {
	query := `
SELECT ` + productColumns + `
FROM products
WHERE tenant_id = $1 AND deleted_at IS NULL
ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update overwrites the mutable fields of a product.
func (r *PGRepo) Update(ctx context.Context, p Product) error {
	const query = `
UPDATE products
SET title = $1,
    name = $2,
    description = $3,
    image_url = $4,
    images = $5,
    price = $6,
    cost_price = $7,
    stock_quantity = $8,
    sku = $9,
    barcode = $10,
    category = $11,
    brand = $12,
    tags = $13,
    seo_title = $14,
    seo_description = $15,
    seo_keywords = $16,
    status = $17,
    updated_at = $18
WHERE tenant_id = $19 AND id = $20 AND deleted_at IS NULL`

	images, err := marshalStrings(p.Images)
	if err != nil {
		return err
	}
	tags, err := marshalStrings(p.Tags)
	if err != nil {
		return err
	}
	keywords, err := marshalStrings(p.SEOKeywords)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		p.Title,
		p.Name,
		p.Description,
		p.ImageURL,
		images,
		p.Price,
		p.CostPrice,
		nullableInt(p.StockQuantity),
		p.SKU,
		p.Barcode,
		p.Category,
		p.Brand,
		tags,
		p.SEOTitle,
		p.SEODescription,
		keywords,
		p.Status,
		p.UpdatedAt,
		p.TenantID,
		p.ID,
	)
	if err != nil {
		return err
	}
	updated, _ := res.RowsAffected()
	if updated == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete soft-deletes a product.
func (r *PGRepo) Delete(ctx context.Context, tenantID, productID string) error {
	const query = `
UPDATE products
SET deleted_at = now()
WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, tenantID, productID)
	if err != nil {
		return err
	}
	deleted, _ := res.RowsAffected()
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var images, tags, keywords []byte
	var stock sql.NullInt64
	if err := row.Scan(
		&p.ID,
		&p.TenantID,
		&p.Title,
		&p.Name,
		&p.Description,
		&p.ImageURL,
		&images,
		&p.Price,
		&p.CostPrice,
		&stock,
		&p.SKU,
		&p.Barcode,
		&p.Category,
		&p.Brand,
		&tags,
		&p.SEOTitle,
		&p.SEODescription,
		&keywords,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return Product{}, err
	}
	if stock.Valid {
		v := int(stock.Int64)
		p.StockQuantity = &v
	}
	var err error
	if p.Images, err = unmarshalStrings(images); err != nil {
		return Product{}, fmt.Errorf("decode images: %w", err)
	}
	if p.Tags, err = unmarshalStrings(tags); err != nil {
		return Product{}, fmt.Errorf("decode tags: %w", err)
	}
	if p.SEOKeywords, err = unmarshalStrings(keywords); err != nil {
		return Product{}, fmt.Errorf("decode seo_keywords: %w", err)
	}
	return p, nil
}

func marshalStrings(in []string) ([]byte, error) {
	if in == nil {
		in = []string{}
	}
	return json.Marshal(in)
}

func unmarshalStrings(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

var _ ProductsRepo = (*PGRepo)(nil)
