package products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateEncodesArraysAsJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	stock := 12
	p := Product{
		ID:            "prod-1",
		TenantID:      "tenant-1",
		Title:         "Stainless Steel Water Bottle",
		Description:   "Keeps drinks cold for 24 hours.",
		ImageURL:      "https://cdn.example.com/bottle.jpg",
		Images:        []string{"https://cdn.example.com/bottle-side.jpg"},
		Price:         24.99,
		CostPrice:     9.5,
		StockQuantity: &stock,
		SKU:           "BTL-001",
		Barcode:       "0123456789012",
		Category:      "Sports & Outdoors",
		Brand:         "Hydra",
		Tags:          []string{"bottle", "insulated"},
		Status:        StatusActive,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO products").
		WithArgs(
			p.ID,
			p.TenantID,
			p.Title,
			p.Name,
			p.Description,
			p.ImageURL,
			[]byte(`["https://cdn.example.com/bottle-side.jpg"]`),
			p.Price,
			p.CostPrice,
			sqlmock.AnyArg(), // stock_quantity
			p.SKU,
			p.Barcode,
			p.Category,
			p.Brand,
			[]byte(`["bottle","insulated"]`),
			p.SEOTitle,
			p.SEODescription,
			[]byte(`[]`),
			p.Status,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansNullableColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "tenant_id", "title", "name", "description", "image_url", "images",
		"price", "cost_price", "stock_quantity", "sku", "barcode", "category",
		"brand", "tags", "seo_title", "seo_description", "seo_keywords",
		"status", "created_at", "updated_at",
	}).AddRow(
		"prod-1", "tenant-1", "Bottle", "", "", "", []byte(`["a.jpg","b.jpg"]`),
		19.99, 7.0, nil, "BTL-001", "", "",
		"", []byte(`[]`), "", "", []byte(`["bottle"]`),
		StatusDraft, now, now,
	)

	mock.ExpectQuery("SELECT .+ FROM products").
		WithArgs("tenant-1", "prod-1").
		WillReturnRows(rows)

	p, err := repo.GetByID(context.Background(), "tenant-1", "prod-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.StockQuantity != nil {
		t.Fatalf("expected nil stock quantity, got %d", *p.StockQuantity)
	}
	if len(p.Images) != 2 || p.Images[0] != "a.jpg" {
		t.Fatalf("unexpected images: %v", p.Images)
	}
	if p.Tags != nil {
		t.Fatalf("expected empty tags to decode as nil, got %v", p.Tags)
	}
	if len(p.SEOKeywords) != 1 {
		t.Fatalf("unexpected seo keywords: %v", p.SEOKeywords)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE products").
		WithArgs("tenant-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), "tenant-1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
