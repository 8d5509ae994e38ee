package imports

import (
	"context"
	"strings"
	"testing"

	"catalog-backend/internal/audit"
	"catalog-backend/internal/products"
	"catalog-backend/internal/shared/storage/object/local"
)

func newTestService(t *testing.T) (*Service, *products.Service) {
	t.Helper()
	productsSvc := products.NewService(products.NewMemoryRepo(), audit.DefaultConfig())
	store := local.New(t.TempDir())
	return NewService(productsSvc, store), productsSvc
}

func TestImportCSVCreatesDraftProducts(t *testing.T) {
	svc, productsSvc := newTestService(t)
	ctx := context.Background()

	input := strings.Join([]string{
		"title,price,stock,sku",
		"Canvas Tote,24.90,100,TOTE-1",
		"Ceramic Mug,9.99,50,MUG-1",
		",5.00,1,BAD-1",
	}, "\n")

	report, err := svc.ImportCSV(ctx, "acme", "products.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if report.TotalRows != 3 {
		t.Fatalf("expected 3 rows, got %d", report.TotalRows)
	}
	if report.Created != 2 || report.Rejected != 1 {
		t.Fatalf("expected 2 created / 1 rejected, got %d / %d", report.Created, report.Rejected)
	}
	if report.FileKey == "" {
		t.Fatalf("expected stored file key")
	}
	if len(report.Errors) != 1 || report.Errors[0].Issue != "missing title" {
		t.Fatalf("unexpected errors: %v", report.Errors)
	}

	list, err := productsSvc.List(ctx, "acme", 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 products, got %d", len(list))
	}
	for _, p := range list {
		if p.Status != products.StatusDraft {
			t.Fatalf("expected draft status, got %q", p.Status)
		}
	}
}

func TestImportCSVRejectsUnparseableFile(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ImportCSV(context.Background(), "acme", "junk.csv", strings.NewReader("foo,bar\n1,2\n"))
	if err == nil {
		t.Fatal("expected error for unrecognized header")
	}
}

func TestImportSpecSheetRejectsNonPDF(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ImportSpecSheet(context.Background(), "acme", "", "notes.txt", strings.NewReader("plain text, not a spec sheet"))
	if err == nil {
		t.Fatal("expected error for non-pdf upload")
	}
	if !strings.Contains(err.Error(), "unsupported mime type") {
		t.Fatalf("unexpected error: %v", err)
	}
}
