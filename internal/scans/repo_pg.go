package scans

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const scanColumns = `id, tenant_id, kind, product_id, status, result, error_code, error_message, created_at, started_at, completed_at`

// Create inserts a new scan.
func (r *PGRepo) Create(ctx context.Context, scan Scan) error {
	const query = `
INSERT INTO scans (
    id,
    tenant_id,
    kind,
    product_id,
    status,
    result,
    error_code,
    error_message,
    created_at,
    started_at,
    completed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	result, err := marshalResult(scan.Result)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		scan.ID,
		scan.TenantID,
		scan.Kind,
		nullableString(scan.ProductID),
		scan.Status,
		result,
		scan.ErrorCode,
		scan.ErrorMessage,
		scan.CreatedAt,
		scan.StartedAt,
		scan.CompletedAt,
	)
	return err
}

// GetByID fetches a scan by ID.
func (r *PGRepo) GetByID(ctx context.Context, scanID string) (Scan, error) {
	query := `
SELECT ` + scanColumns + `
FROM scans
WHERE id = $1
LIMIT 1`
	scan, err := scanRow(r.DB.QueryRowContext(ctx, query, scanID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Scan{}, ErrNotFound
		}
		return Scan{}, err
	}
	return scan, nil
}

// ListByTenant lists scans ordered newest-first.
func (r *PGRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]Scan, error) {
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
SELECT ` + scanColumns + `
FROM scans
WHERE tenant_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Scan
	for rows.Next() {
		scan, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, scan)
	}
	return out, rows.Err()
}

// UpdateStatusResultAndError updates status, result and error fields plus timestamps.
func (r *PGRepo) UpdateStatusResultAndError(ctx context.Context, scanID, status string, result map[string]any, errorCode, errorMessage *string, startedAt, completedAt *time.Time) error {
	const query = `
UPDATE scans
SET status = $1,
    result = COALESCE($2, result),
    error_code = COALESCE($3, error_code),
    error_message = COALESCE($4, error_message),
    started_at = COALESCE($5, started_at),
    completed_at = COALESCE($6, completed_at)
WHERE id = $7`

	var encoded any
	if result != nil {
		raw, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("encode scan result: %w", err)
		}
		encoded = raw
	}

	res, err := r.DB.ExecContext(ctx, query, status, encoded, errorCode, errorMessage, startedAt, completedAt, scanID)
	if err != nil {
		return err
	}
	updated, _ := res.RowsAffected()
	if updated == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(row rowScanner) (Scan, error) {
	var s Scan
	var productID sql.NullString
	var result []byte
	var errorCode sql.NullString
	var errorMessage sql.NullString
	var startedAt sql.NullTime
	var completedAt sql.NullTime
	if err := row.Scan(
		&s.ID,
		&s.TenantID,
		&s.Kind,
		&productID,
		&s.Status,
		&result,
		&errorCode,
		&errorMessage,
		&s.CreatedAt,
		&startedAt,
		&completedAt,
	); err != nil {
		return Scan{}, err
	}
	if productID.Valid {
		s.ProductID = productID.String
	}
	if len(result) > 0 {
		if err := json.Unmarshal(result, &s.Result); err != nil {
			return Scan{}, fmt.Errorf("decode scan result: %w", err)
		}
	}
	if errorCode.Valid {
		s.ErrorCode = &errorCode.String
	}
	if errorMessage.Valid {
		s.ErrorMessage = &errorMessage.String
	}
	if startedAt.Valid {
		s.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		s.CompletedAt = &completedAt.Time
	}
	return s, nil
}

func marshalResult(result map[string]any) (any, error) {
	if result == nil {
		return nil, nil
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode scan result: %w", err)
	}
	return raw, nil
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
