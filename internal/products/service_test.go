package products

import (
	"context"
	"errors"
	"testing"

	"catalog-backend/internal/audit"
)

func newTestService() *Service {
	return NewService(NewMemoryRepo(), audit.DefaultConfig())
}

func TestServiceCreateAssignsDefaults(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "acme", Product{Title: "Ceramic Mug"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}
	if p.TenantID != "acme" {
		t.Fatalf("expected tenant acme, got %q", p.TenantID)
	}
	if p.Status != StatusDraft {
		t.Fatalf("expected draft status, got %q", p.Status)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestServiceCreateRejectsUntitled(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Create(context.Background(), "acme", Product{Price: 5}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "", Product{Title: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing tenant, got %v", err)
	}
}

func TestServiceUpdatePreservesIdentity(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "acme", Product{Title: "Ceramic Mug", Status: StatusActive})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, "acme", created.ID, Product{Title: "Ceramic Mug v2", Price: 12})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != created.ID || updated.TenantID != "acme" {
		t.Fatalf("identity changed on update: %+v", updated)
	}
	if updated.Status != StatusActive {
		t.Fatalf("expected status preserved when omitted, got %q", updated.Status)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected createdAt preserved")
	}

	if _, err := svc.Update(ctx, "acme", "missing", Product{Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceHealthReport(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "acme", Product{Title: "Mug"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	report, err := svc.HealthReport(ctx, "acme", created.ID)
	if err != nil {
		t.Fatalf("HealthReport: %v", err)
	}
	if report.ProductID != created.ID {
		t.Fatalf("expected report for %s, got %s", created.ID, report.ProductID)
	}
	if report.GlobalScore < 0 || report.GlobalScore > 100 {
		t.Fatalf("score out of bounds: %d", report.GlobalScore)
	}

	if _, err := svc.HealthReport(ctx, "acme", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceAuditDefaultsPricesFromProduct(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	stock := 5

	created, err := svc.Create(ctx, "acme", Product{
		Title:         "Insulated Bottle 750ml",
		Description:   "Double-walled stainless steel bottle.",
		ImageURL:      "https://cdn.example.com/bottle.jpg",
		Price:         50,
		CostPrice:     15,
		StockQuantity: &stock,
		SKU:           "BTL-750",
		Barcode:       "0123456789012",
		Brand:         "Hydra",
		Category:      "Sports",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	result, err := svc.Audit(ctx, "acme", created.ID, AuditInput{
		Profitability: audit.ProfitabilityData{ShippingCost: 5, PlatformFees: 5},
	})
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if result.ProductID != created.ID {
		t.Fatalf("expected audit for %s, got %s", created.ID, result.ProductID)
	}
	if result.ProductName != "Insulated Bottle 750ml" {
		t.Fatalf("unexpected product name %q", result.ProductName)
	}

	// 50 sell, 15 cost: gross margin 70%, well above the pass bar.
	gross := findCheck(t, result.Dimensions.Profitability.Checks, "gross-margin")
	if gross.Status != audit.StatusPassed {
		t.Fatalf("expected gross-margin passed with product prices, got %s", gross.Status)
	}

	feed := result.Dimensions.Feed
	availability := findCheck(t, feed.Checks, "feed-availability")
	if availability.Status != audit.StatusPassed {
		t.Fatalf("expected in-stock availability to pass, got %s", availability.Status)
	}
	gtin := findCheck(t, feed.Checks, "feed-gtin")
	if gtin.Status != audit.StatusPassed {
		t.Fatalf("expected barcode to satisfy the GTIN check, got %s", gtin.Status)
	}
}

func findCheck(t *testing.T, checks []audit.Check, id string) audit.Check {
	t.Helper()
	for _, c := range checks {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("check %s not found", id)
	return audit.Check{}
}
