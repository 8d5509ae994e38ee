package imports

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"catalog-backend/internal/extract"
	"catalog-backend/internal/products"
	"catalog-backend/internal/shared/metrics"
	"catalog-backend/internal/shared/storage/object"
	"catalog-backend/internal/shared/telemetry"
)

// Service ingests supplier files into the catalog.
type Service struct {
	Products *products.Service
	Store    object.ObjectStore
}

// NewService constructs a Service.
func NewService(productsSvc *products.Service, store object.ObjectStore) *Service {
	return &Service{Products: productsSvc, Store: store}
}

// CSVReport summarizes one CSV import.
type CSVReport struct {
	FileKey    string     `json:"fileKey"`
	TotalRows  int        `json:"totalRows"`
	Created    int        `json:"created"`
	Rejected   int        `json:"rejected"`
	ProductIDs []string   `json:"productIds"`
	Errors     []RowError `json:"errors,omitempty"`
}

// ImportCSV stores the raw file, parses it, and creates one draft product per
// valid row. Bad rows are reported, not fatal.
func (s *Service) ImportCSV(ctx context.Context, tenantID, fileName string, r io.Reader) (CSVReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return CSVReport{}, fmt.Errorf("read upload: %w", err)
	}

	fileKey, _, _, err := s.Store.Save(ctx, tenantID, fileName, bytes.NewReader(data))
	if err != nil {
		return CSVReport{}, fmt.Errorf("store upload: %w", err)
	}

	rows, rowErrs, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		return CSVReport{}, err
	}

	report := CSVReport{
		FileKey:    fileKey,
		TotalRows:  len(rows) + len(rowErrs),
		ProductIDs: make([]string, 0, len(rows)),
		Errors:     rowErrs,
	}
	for _, row := range rows {
		created, err := s.Products.Create(ctx, tenantID, row)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Row: 0, Issue: fmt.Sprintf("create product: %v", err)})
			continue
		}
		report.ProductIDs = append(report.ProductIDs, created.ID)
	}
	report.Created = len(report.ProductIDs)
	report.Rejected = report.TotalRows - report.Created

	metrics.AddImportRows(report.TotalRows)
	metrics.AddImportRejected(report.Rejected)
	telemetry.Info("import.csv", map[string]any{
		"tenant_id": tenantID,
		"file_key":  fileKey,
		"rows":      report.TotalRows,
		"created":   report.Created,
		"rejected":  report.Rejected,
	})
	return report, nil
}

// SpecSheetResult is the outcome of one spec-sheet extraction.
type SpecSheetResult struct {
	FileKey   string `json:"fileKey"`
	Text      string `json:"text"`
	ProductID string `json:"productId,omitempty"`
	Applied   bool   `json:"applied"`
}

// ImportSpecSheet stores a supplier PDF, extracts its text, and optionally
// prefills the description of a product that has none.
func (s *Service) ImportSpecSheet(ctx context.Context, tenantID, productID, fileName string, r io.Reader) (SpecSheetResult, error) {
	fileKey, _, mimeType, err := s.Store.Save(ctx, tenantID, fileName, r)
	if err != nil {
		return SpecSheetResult{}, fmt.Errorf("store upload: %w", err)
	}

	text, err := extract.ExtractText(ctx, s.Store, fileKey, mimeType, fileName)
	if err != nil {
		return SpecSheetResult{}, err
	}
	text = strings.TrimSpace(text)

	result := SpecSheetResult{
		FileKey:   fileKey,
		Text:      text,
		ProductID: productID,
	}
	if productID == "" || text == "" {
		return result, nil
	}

	p, err := s.Products.Get(ctx, tenantID, productID)
	if err != nil {
		return SpecSheetResult{}, err
	}
	if strings.TrimSpace(p.Description) != "" {
		return result, nil
	}

	p.Description = text
	if _, err := s.Products.Update(ctx, tenantID, productID, p); err != nil {
		return SpecSheetResult{}, err
	}
	result.Applied = true
	telemetry.Info("import.spec_sheet.applied", map[string]any{
		"tenant_id":  tenantID,
		"product_id": productID,
		"file_key":   fileKey,
		"text_len":   len(text),
	})
	return result, nil
}
