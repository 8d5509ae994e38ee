package scans

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores scans in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu       sync.RWMutex
	byID     map[string]Scan
	byTenant map[string][]Scan
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:     make(map[string]Scan),
		byTenant: make(map[string][]Scan),
	}
}

// Create stores the scan.
func (r *MemoryRepo) Create(ctx context.Context, scan Scan) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[scan.ID] = scan
	r.byTenant[scan.TenantID] = append(r.byTenant[scan.TenantID], scan)
	return nil
}

// GetByID returns a scan by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, scanID string) (Scan, error) {
	if err := ctx.Err(); err != nil {
		return Scan{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	scan, ok := r.byID[scanID]
	if !ok {
		return Scan{}, ErrNotFound
	}
	return scan, nil
}

// UpdateStatusResultAndError updates status, result and error fields plus timestamps.
func (r *MemoryRepo) UpdateStatusResultAndError(ctx context.Context, scanID, status string, result map[string]any, errorCode, errorMessage *string, startedAt, completedAt *time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	scan, ok := r.byID[scanID]
	if !ok {
		return ErrNotFound
	}
	scan.Status = status
	if result != nil {
		scan.Result = result
	}
	if errorCode != nil {
		scan.ErrorCode = errorCode
	}
	if errorMessage != nil {
		scan.ErrorMessage = errorMessage
	}
	if startedAt != nil {
		scan.StartedAt = startedAt
	} else if status == StatusProcessing && scan.StartedAt == nil {
		now := time.Now().UTC()
		scan.StartedAt = &now
	}
	if completedAt != nil {
		scan.CompletedAt = completedAt
	} else if (status == StatusCompleted || status == StatusFailed) && scan.CompletedAt == nil {
		now := time.Now().UTC()
		scan.CompletedAt = &now
	}
	r.byID[scanID] = scan

	// update in tenant slice
	tenantScans := r.byTenant[scan.TenantID]
	for i := range tenantScans {
		if tenantScans[i].ID == scanID {
			tenantScans[i] = scan
			break
		}
	}
	r.byTenant[scan.TenantID] = tenantScans

	return nil
}

// ListByTenant returns scans for a tenant, newest first, with limit/offset.
func (r *MemoryRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]Scan, error) {
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
	tenantScans := r.byTenant[tenantID]
	r.mu.RUnlock()

	if len(tenantScans) == 0 || offset >= len(tenantScans) {
		return []Scan{}, nil
	}

	list := make([]Scan, len(tenantScans))
	copy(list, tenantScans)
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
