package products

import (
	"time"

	"catalog-backend/internal/health"
)

// Product lifecycle statuses. Imported rows start as drafts.
const (
	StatusDraft    = "draft"
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Product is a catalog listing owned by a tenant.
type Product struct {
	ID             string
	TenantID       string
	Title          string
	Name           string
	Description    string
	ImageURL       string
	Images         []string
	Price          float64
	CostPrice      float64
	StockQuantity  *int
	SKU            string
	Barcode        string
	Category       string
	Brand          string
	Tags           []string
	SEOTitle       string
	SEODescription string
	SEOKeywords    []string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Data returns the scoring-engine view of the product.
func (p Product) Data() health.ProductData {
	return health.ProductData{
		ID:             p.ID,
		Title:          p.Title,
		Name:           p.Name,
		Description:    p.Description,
		ImageURL:       p.ImageURL,
		Images:         p.Images,
		Price:          p.Price,
		CostPrice:      p.CostPrice,
		StockQuantity:  p.StockQuantity,
		SKU:            p.SKU,
		Barcode:        p.Barcode,
		Category:       p.Category,
		Brand:          p.Brand,
		Tags:           p.Tags,
		SEOTitle:       p.SEOTitle,
		SEODescription: p.SEODescription,
		SEOKeywords:    p.SEOKeywords,
		Status:         p.Status,
	}
}
