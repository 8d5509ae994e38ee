package scans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"catalog-backend/internal/health"
	"catalog-backend/internal/products"
	"catalog-backend/internal/queue"
	"catalog-backend/internal/shared/metrics"
	"catalog-backend/internal/shared/telemetry"
)

// Service contains business logic for scans.
type Service struct {
	Repo     Repo
	Products products.ProductsRepo
	Queue    queue.Client
}

// StartProductScan enqueues a scan of one product and kicks off completion,
// either through the configured queue or in-process.
func (s *Service) StartProductScan(ctx context.Context, tenantID, productID string) (Scan, error) {
	if tenantID == "" || productID == "" {
		return Scan{}, ErrInvalidInput
	}

	// Fail fast when the product does not exist instead of queueing a doomed job.
	if _, err := s.Products.GetByID(ctx, tenantID, productID); err != nil {
		if errors.Is(err, products.ErrNotFound) {
			return Scan{}, ErrNotFound
		}
		return Scan{}, err
	}

	scan := Scan{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Kind:      KindProduct,
		ProductID: productID,
		Status:    StatusQueued,
		CreatedAt: time.Now().UTC(),
	}
	return s.start(ctx, scan)
}

// StartCatalogScan enqueues a scan over every product of the tenant.
func (s *Service) StartCatalogScan(ctx context.Context, tenantID string) (Scan, error) {
	if tenantID == "" {
		return Scan{}, ErrInvalidInput
	}

	scan := Scan{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Kind:      KindCatalog,
		Status:    StatusQueued,
		CreatedAt: time.Now().UTC(),
	}
	return s.start(ctx, scan)
}

func (s *Service) start(ctx context.Context, scan Scan) (Scan, error) {
	if err := s.Repo.Create(ctx, scan); err != nil {
		return Scan{}, err
	}

	if s.Queue != nil {
		msg := queue.Message{
			ScanID:     scan.ID,
			RequestID:  requestIDFromContext(ctx),
			EnqueuedAt: scan.CreatedAt.Format(time.RFC3339),
			Version:    1,
		}
		if err := s.Queue.Send(ctx, msg); err != nil {
			s.failScan(ctx, scan.ID, scan.TenantID, fmt.Errorf("queue send: %w", err), nil)
			return Scan{}, err
		}
		return scan, nil
	}

	go s.completeAsync(backgroundWithRequestID(ctx), scan.ID)
	return scan, nil
}

// Get returns a scan by ID, scoped to the tenant.
func (s *Service) Get(ctx context.Context, tenantID, scanID string) (Scan, error) {
	if tenantID == "" || scanID == "" {
		return Scan{}, ErrInvalidInput
	}
	scan, err := s.Repo.GetByID(ctx, scanID)
	if err != nil {
		return Scan{}, err
	}
	if scan.TenantID != tenantID {
		return Scan{}, ErrNotFound
	}
	return scan, nil
}

// List returns scans for a tenant ordered newest-first.
func (s *Service) List(ctx context.Context, tenantID string, limit, offset int) ([]Scan, error) {
	if tenantID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByTenant(ctx, tenantID, limit, offset)
}

// CatalogSummary analyzes the tenant's whole catalog synchronously.
func (s *Service) CatalogSummary(ctx context.Context, tenantID string) (health.CatalogHealthSummary, error) {
	if tenantID == "" {
		return health.CatalogHealthSummary{}, ErrInvalidInput
	}
	list, err := s.Products.AllByTenant(ctx, tenantID)
	if err != nil {
		return health.CatalogHealthSummary{}, err
	}
	data := make([]health.ProductData, 0, len(list))
	for _, p := range list {
		data = append(data, p.Data())
	}
	return health.AnalyzeCatalog(data), nil
}

func (s *Service) completeAsync(ctx context.Context, scanID string) {
	defer func() {
		if r := recover(); r != nil {
			s.failScan(ctx, scanID, "", fmt.Errorf("panic: %v", r), nil)
		}
	}()
	_ = s.ProcessScan(ctx, scanID)
}

// ProcessScan runs a queued scan to completion. It is called from the
// in-process goroutine and from the queue worker; errors have already been
// recorded on the scan when it returns.
func (s *Service) ProcessScan(ctx context.Context, scanID string) error {
	startedAt := time.Now().UTC()
	if err := s.Repo.UpdateStatusResultAndError(ctx, scanID, StatusProcessing, nil, nil, nil, &startedAt, nil); err != nil {
		err = fmt.Errorf("set processing failed: %w", err)
		s.failScan(ctx, scanID, "", err, &startedAt)
		return err
	}

	scan, err := s.Repo.GetByID(ctx, scanID)
	if err != nil {
		err = fmt.Errorf("scan lookup: %w", err)
		s.failScan(ctx, scanID, "", err, &startedAt)
		return err
	}
	metrics.IncScanStarted()
	telemetry.Info("scan.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"tenant_id":         scan.TenantID,
		"product_id":        scan.ProductID,
		"scan_id":           scan.ID,
		"kind":              scan.Kind,
		"status":            StatusProcessing,
		"status_transition": "queued->processing",
	})
	if s.Products == nil {
		err := errors.New("missing products repository")
		s.failScan(ctx, scanID, scan.TenantID, err, &startedAt)
		return err
	}

	var result map[string]any
	switch scan.Kind {
	case KindProduct:
		p, err := s.Products.GetByID(ctx, scan.TenantID, scan.ProductID)
		if err != nil {
			err = fmt.Errorf("product lookup id=%s: %w", scan.ProductID, err)
			s.failScan(ctx, scanID, scan.TenantID, err, &startedAt)
			return err
		}
		result, err = toResultMap(health.AnalyzeProduct(p.Data()))
		if err != nil {
			s.failScan(ctx, scanID, scan.TenantID, err, &startedAt)
			return err
		}
	case KindCatalog:
		summary, err := s.CatalogSummary(ctx, scan.TenantID)
		if err != nil {
			err = fmt.Errorf("catalog analysis: %w", err)
			s.failScan(ctx, scanID, scan.TenantID, err, &startedAt)
			return err
		}
		result, err = toResultMap(summary)
		if err != nil {
			s.failScan(ctx, scanID, scan.TenantID, err, &startedAt)
			return err
		}
	default:
		err := fmt.Errorf("validation: unknown scan kind %q", scan.Kind)
		s.failScan(ctx, scanID, scan.TenantID, err, &startedAt)
		return err
	}

	completedAt := time.Now().UTC()
	if err := s.Repo.UpdateStatusResultAndError(ctx, scanID, StatusCompleted, result, nil, nil, nil, &completedAt); err != nil {
		err = fmt.Errorf("set scan result failed: %w", err)
		s.failScan(ctx, scanID, scan.TenantID, err, &startedAt)
		return err
	}
	metrics.IncScanCompleted()
	metrics.ObserveScanDurationMs(durationMs(&startedAt, &completedAt))
	telemetry.Info("scan.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"tenant_id":         scan.TenantID,
		"product_id":        scan.ProductID,
		"scan_id":           scan.ID,
		"kind":              scan.Kind,
		"status":            StatusCompleted,
		"status_transition": "processing->completed",
		"duration_ms":       durationMs(&startedAt, &completedAt),
	})
	return nil
}

func (s *Service) failScan(ctx context.Context, scanID, tenantID string, err error, startedAt *time.Time) {
	code := classifyFailure(err)
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.UpdateStatusResultAndError(context.Background(), scanID, StatusFailed, nil, &code, &msg, nil, &completedAt); updateErr != nil {
		telemetry.Error("scan.fail_update", map[string]any{
			"scan_id": scanID,
			"error":   updateErr.Error(),
			"cause":   sanitizeError(err),
		})
	}
	metrics.IncScanFailed()
	if startedAt != nil {
		metrics.ObserveScanDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("scan.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"tenant_id":         tenantID,
		"scan_id":           scanID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"error_code":        code,
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}

func classifyFailure(err error) string {
	if err == nil {
		return ErrorCodeInternal
	}
	if errors.Is(err, products.ErrNotFound) || errors.Is(err, ErrNotFound) {
		return ErrorCodeNotFound
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "validation") {
		return ErrorCodeValidation
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCodeStorage
	}
	if strings.Contains(msg, "lookup") || strings.Contains(msg, "storage") || strings.Contains(msg, "scan result") || strings.Contains(msg, "set processing") || strings.Contains(msg, "queue send") {
		return ErrorCodeStorage
	}
	return ErrorCodeInternal
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

// toResultMap converts a typed report into the JSONB shape stored on the scan.
func toResultMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return out, nil
}
