package scans

import "time"

// Scan kinds.
const (
	KindProduct = "product"
	KindCatalog = "catalog"
)

// Scan lifecycle statuses.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Scan represents one health-scoring job over a product or a whole catalog.
type Scan struct {
	ID           string         `json:"id"`
	TenantID     string         `json:"tenantId"`
	Kind         string         `json:"kind"`
	ProductID    string         `json:"productId,omitempty"`
	Status       string         `json:"status"`
	Result       map[string]any `json:"result,omitempty"`
	ErrorCode    *string        `json:"errorCode,omitempty"`
	ErrorMessage *string        `json:"errorMessage,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	StartedAt    *time.Time     `json:"startedAt,omitempty"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
}
