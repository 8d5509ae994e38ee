package scans

import (
	"context"
	"time"
)

// Repo defines persistence operations for scans.
type Repo interface {
	Create(ctx context.Context, scan Scan) error
	GetByID(ctx context.Context, scanID string) (Scan, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]Scan, error)
	UpdateStatusResultAndError(ctx context.Context, scanID, status string, result map[string]any, errorCode, errorMessage *string, startedAt, completedAt *time.Time) error
}
