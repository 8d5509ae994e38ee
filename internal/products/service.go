package products

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"catalog-backend/internal/audit"
	"catalog-backend/internal/health"
)

// Service contains business logic for products.
type Service struct {
	Repo     ProductsRepo
	AuditCfg audit.Config
}

// NewService constructs a Service.
func NewService(repo ProductsRepo, auditCfg audit.Config) *Service {
	return &Service{Repo: repo, AuditCfg: auditCfg}
}

// Create validates and stores a new product.
func (s *Service) Create(ctx context.Context, tenantID string, p Product) (Product, error) {
	if tenantID == "" {
		return Product{}, ErrInvalidInput
	}
	if strings.TrimSpace(p.Title) == "" && strings.TrimSpace(p.Name) == "" {
		return Product{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.TenantID = tenantID
	if p.Status == "" {
		p.Status = StatusDraft
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.Repo.Create(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Get fetches a product by ID.
func (s *Service) Get(ctx context.Context, tenantID, productID string) (Product, error) {
	if tenantID == "" || productID == "" {
		return Product{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, tenantID, productID)
}

// List returns a page of the tenant's products, newest first.
func (s *Service) List(ctx context.Context, tenantID string, limit, offset int) ([]Product, error) {
	if tenantID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByTenant(ctx, tenantID, limit, offset)
}

// Update overwrites the mutable fields of a product.
func (s *Service) Update(ctx context.Context, tenantID, productID string, p Product) (Product, error) {
	if tenantID == "" || productID == "" {
		return Product{}, ErrInvalidInput
	}
	if strings.TrimSpace(p.Title) == "" && strings.TrimSpace(p.Name) == "" {
		return Product{}, ErrInvalidInput
	}

	existing, err := s.Repo.GetByID(ctx, tenantID, productID)
	if err != nil {
		return Product{}, err
	}

	p.ID = existing.ID
	p.TenantID = existing.TenantID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	if p.Status == "" {
		p.Status = existing.Status
	}

	if err := s.Repo.Update(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, tenantID, productID string) error {
	if tenantID == "" || productID == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, tenantID, productID)
}

// HealthReport scores a single product.
func (s *Service) HealthReport(ctx context.Context, tenantID, productID string) (health.ProductHealthReport, error) {
	p, err := s.Get(ctx, tenantID, productID)
	if err != nil {
		return health.ProductHealthReport{}, err
	}
	return health.AnalyzeProduct(p.Data()), nil
}

// AuditInput carries caller-supplied audit data that is not stored on the
// product record: unit economics, supplier performance, market signals.
type AuditInput struct {
	Profitability audit.ProfitabilityData `json:"profitability"`
	Supplier      audit.SupplierData      `json:"supplier"`
	Market        audit.MarketData        `json:"market"`
}

// Audit runs the four-dimension product audit. Feed data comes from the
// stored product; sell and cost price default to the product's own figures
// when the caller leaves them unset.
func (s *Service) Audit(ctx context.Context, tenantID, productID string, in AuditInput) (audit.Result, error) {
	p, err := s.Get(ctx, tenantID, productID)
	if err != nil {
		return audit.Result{}, err
	}

	if in.Profitability.SellPrice == 0 {
		in.Profitability.SellPrice = p.Price
	}
	if in.Profitability.CostPrice == 0 {
		in.Profitability.CostPrice = p.CostPrice
	}

	input := audit.Input{
		ProductID:     p.ID,
		ProductName:   p.Data().DisplayTitle(),
		ProductSKU:    p.SKU,
		Profitability: in.Profitability,
		Supplier:      in.Supplier,
		Feed:          feedFromProduct(p),
		Market:        in.Market,
	}

	cfg := s.AuditCfg
	if cfg.Weights == (audit.Weights{}) {
		cfg = audit.DefaultConfig()
	}
	return audit.Run(input, cfg), nil
}

func feedFromProduct(p Product) audit.FeedData {
	data := p.Data()
	images := data.AllImages()
	var primary string
	var additional []string
	if len(images) > 0 {
		primary = images[0]
		additional = images[1:]
	}

	availability := ""
	if p.StockQuantity != nil {
		if *p.StockQuantity > 0 {
			availability = "in_stock"
		} else {
			availability = "out_of_stock"
		}
	}

	return audit.FeedData{
		Title:            data.DisplayTitle(),
		Description:      p.Description,
		ImageURL:         primary,
		AdditionalImages: additional,
		Price:            p.Price,
		Availability:     availability,
		GTIN:             p.Barcode,
		MPN:              p.SKU,
		Brand:            p.Brand,
		Category:         p.Category,
	}
}
