package audit

import "time"

// Dimension identifies one of the four audit dimensions.
type Dimension string

const (
	DimensionProfitability Dimension = "profitability"
	DimensionSupplier      Dimension = "supplier"
	DimensionFeed          Dimension = "feed"
	DimensionMarket        Dimension = "market"
)

// CheckStatus is the outcome of a single audit check or dimension.
type CheckStatus string

const (
	StatusPassed        CheckStatus = "passed"
	StatusWarning       CheckStatus = "warning"
	StatusFailed        CheckStatus = "failed"
	StatusNotApplicable CheckStatus = "not_applicable"
)

// Impact ranks how much a check influences the product's commercial outcome.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Effort estimates how much work a priority action takes.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// Check is one evaluated criterion inside a dimension.
type Check struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Status         CheckStatus `json:"status"`
	Score          float64     `json:"score"`
	Value          string      `json:"value"`
	ExpectedValue  string      `json:"expectedValue"`
	Recommendation string      `json:"recommendation,omitempty"`
	Impact         Impact      `json:"impact"`
}

// Weights distributes the global score across dimensions; they must sum to 1.
type Weights struct {
	Profitability float64 `json:"profitability"`
	Supplier      float64 `json:"supplier"`
	Feed          float64 `json:"feed"`
	Market        float64 `json:"market"`
}

// Config tunes the audit thresholds.
type Config struct {
	TargetMarginPercent float64 `json:"targetMarginPercent"`
	Weights             Weights `json:"weights"`
}

// DefaultConfig returns the standard dropshipping audit configuration.
func DefaultConfig() Config {
	return Config{
		TargetMarginPercent: 30,
		Weights: Weights{
			Profitability: 0.30,
			Supplier:      0.25,
			Feed:          0.25,
			Market:        0.20,
		},
	}
}

// DimensionResult is the common shape of every audited dimension.
type DimensionResult struct {
	Dimension       Dimension   `json:"dimension"`
	Score           int         `json:"score"`
	Status          CheckStatus `json:"status"`
	Checks          []Check     `json:"checks"`
	Recommendations []string    `json:"recommendations"`
	Weight          float64     `json:"weight"`
}

// PriorityAction is one ranked remediation suggestion.
type PriorityAction struct {
	ID                 string    `json:"id"`
	Dimension          Dimension `json:"dimension"`
	Action             string    `json:"action"`
	Impact             Impact    `json:"impact"`
	Effort             Effort    `json:"effort"`
	EstimatedScoreGain int       `json:"estimatedScoreGain"`
}

// Summary is the SWOT view plus ranked priority actions.
type Summary struct {
	Strengths       []string         `json:"strengths"`
	Weaknesses      []string         `json:"weaknesses"`
	Opportunities   []string         `json:"opportunities"`
	Threats         []string         `json:"threats"`
	PriorityActions []PriorityAction `json:"priorityActions"`
}

// Dimensions groups the four dimension results of one audit.
type Dimensions struct {
	Profitability ProfitabilityResult `json:"profitability"`
	Supplier      SupplierResult      `json:"supplier"`
	Feed          FeedResult          `json:"feed"`
	Market        MarketResult        `json:"market"`
}

// Result is the complete audit of one product.
type Result struct {
	ProductID    string      `json:"productId"`
	ProductName  string      `json:"productName"`
	ProductSKU   string      `json:"productSku,omitempty"`
	GlobalScore  int         `json:"globalScore"`
	GlobalStatus CheckStatus `json:"globalStatus"`
	AuditedAt    time.Time   `json:"auditedAt"`
	Dimensions   Dimensions  `json:"dimensions"`
	Summary      Summary     `json:"summary"`
}

// Input carries the per-dimension data for one product audit.
type Input struct {
	ProductID     string             `json:"productId"`
	ProductName   string             `json:"productName"`
	ProductSKU    string             `json:"productSku,omitempty"`
	Profitability ProfitabilityData  `json:"profitability"`
	Supplier      SupplierData       `json:"supplier"`
	Feed          FeedData           `json:"feed"`
	Market        MarketData         `json:"market"`
}
