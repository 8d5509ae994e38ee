package audit

import (
	"fmt"
	"math"
)

// SupplierData describes the sourcing relationship behind one product.
// Pointer fields are nil when the metric has never been measured.
type SupplierData struct {
	SupplierID          string   `json:"supplierId,omitempty"`
	SupplierName        string   `json:"supplierName,omitempty"`
	Rating              float64  `json:"rating,omitempty"`
	AverageDeliveryDays int      `json:"averageDeliveryDays,omitempty"`
	OnTimeDeliveryRate  *float64 `json:"onTimeDeliveryRate,omitempty"`
	DefectRate          *float64 `json:"defectRate,omitempty"`
	ResponseTimeHours   float64  `json:"responseTimeHours,omitempty"`
	HasBackupSupplier   bool     `json:"hasBackupSupplier"`
}

// SupplierMetrics are the derived reliability figures of a supplier audit.
type SupplierMetrics struct {
	ReliabilityScore      int    `json:"reliabilityScore"`
	QualityScore          int    `json:"qualityScore"`
	CommunicationScore    int    `json:"communicationScore"`
	RiskLevel             string `json:"riskLevel"`
	DiversificationStatus string `json:"diversificationStatus"`
}

// SupplierResult is the supplier dimension outcome.
type SupplierResult struct {
	DimensionResult
	Metrics SupplierMetrics `json:"metrics"`
}

// AuditSupplier evaluates sourcing reliability, quality and risk.
func AuditSupplier(data SupplierData, cfg Config) SupplierResult {
	hasSupplier := data.SupplierID != "" || data.SupplierName != ""

	supplierCheck := Check{
		ID:            "supplier-assigned",
		Name:          "Supplier assigned",
		Description:   "Product is linked to a supplier",
		Status:        StatusFailed,
		Score:         0,
		Value:         "No",
		ExpectedValue: "Assigned",
		Impact:        ImpactHigh,
	}
	if hasSupplier {
		supplierCheck.Status = StatusPassed
		supplierCheck.Score = 100
		supplierCheck.Value = "Yes"
		if data.SupplierName != "" {
			supplierCheck.Value = data.SupplierName
		}
	} else {
		supplierCheck.Recommendation = "Assign a supplier to this product"
	}

	ratingCheck := Check{
		ID:            "supplier-rating",
		Name:          "Supplier rating",
		Description:   "Overall supplier evaluation",
		Status:        StatusNotApplicable,
		Score:         50,
		Value:         "Not rated",
		ExpectedValue: ">= 4/5",
		Impact:        ImpactMedium,
	}
	if data.Rating > 0 {
		ratingCheck.Score = data.Rating * 20
		ratingCheck.Value = fmt.Sprintf("%.1f/5", data.Rating)
		switch {
		case data.Rating >= 4:
			ratingCheck.Status = StatusPassed
		case data.Rating >= 3:
			ratingCheck.Status = StatusWarning
		default:
			ratingCheck.Status = StatusFailed
		}
		if data.Rating < 4 {
			ratingCheck.Recommendation = "Consider a better-rated supplier"
		}
	}

	deliveryCheck := Check{
		ID:            "delivery-time",
		Name:          "Delivery time",
		Description:   "Average supplier delivery delay",
		Status:        StatusNotApplicable,
		Score:         50,
		Value:         "Unknown",
		ExpectedValue: "<= 7 days",
		Impact:        ImpactHigh,
	}
	if data.AverageDeliveryDays > 0 {
		days := data.AverageDeliveryDays
		deliveryCheck.Score = clampScore(100 - float64(days-3)*10)
		deliveryCheck.Value = fmt.Sprintf("%d days", days)
		switch {
		case days <= 7:
			deliveryCheck.Status = StatusPassed
		case days <= 14:
			deliveryCheck.Status = StatusWarning
		default:
			deliveryCheck.Status = StatusFailed
		}
		if days > 7 {
			deliveryCheck.Recommendation = "Long delivery delays hurt customer satisfaction"
		}
	}

	onTimeCheck := Check{
		ID:            "on-time-delivery",
		Name:          "On-time delivery",
		Description:   "Share of orders delivered on schedule",
		Status:        StatusNotApplicable,
		Score:         50,
		Value:         "Not measured",
		ExpectedValue: ">= 95%",
		Impact:        ImpactHigh,
	}
	if data.OnTimeDeliveryRate != nil {
		rate := *data.OnTimeDeliveryRate
		onTimeCheck.Score = clampScore(rate)
		onTimeCheck.Value = fmt.Sprintf("%.1f%%", rate)
		switch {
		case rate >= 95:
			onTimeCheck.Status = StatusPassed
		case rate >= 85:
			onTimeCheck.Status = StatusWarning
		default:
			onTimeCheck.Status = StatusFailed
		}
		if rate < 95 {
			onTimeCheck.Recommendation = "Reliability is insufficient, diversify your suppliers"
		}
	}

	defectCheck := Check{
		ID:            "defect-rate",
		Name:          "Defect rate",
		Description:   "Share of defective products",
		Status:        StatusNotApplicable,
		Score:         50,
		Value:         "Not measured",
		ExpectedValue: "<= 2%",
		Impact:        ImpactHigh,
	}
	if data.DefectRate != nil {
		rate := *data.DefectRate
		defectCheck.Score = clampScore(100 - rate*10)
		defectCheck.Value = fmt.Sprintf("%.1f%%", rate)
		switch {
		case rate <= 2:
			defectCheck.Status = StatusPassed
		case rate <= 5:
			defectCheck.Status = StatusWarning
		default:
			defectCheck.Status = StatusFailed
		}
		if rate > 2 {
			defectCheck.Recommendation = "Product quality is insufficient, negotiate improvements"
		}
	}

	backupCheck := Check{
		ID:            "backup-supplier",
		Name:          "Backup supplier",
		Description:   "Alternative source in case of stockout",
		Status:        StatusWarning,
		Score:         40,
		Value:         "No",
		ExpectedValue: "Yes",
		Impact:        ImpactMedium,
	}
	if data.HasBackupSupplier {
		backupCheck.Status = StatusPassed
		backupCheck.Score = 100
		backupCheck.Value = "Yes"
	} else {
		backupCheck.Recommendation = "Identify an alternative supplier to reduce sourcing risk"
	}

	checks := []Check{supplierCheck, ratingCheck, deliveryCheck, onTimeCheck, defectCheck, backupCheck}

	reliability := orDefault(data.OnTimeDeliveryRate, 70)*0.5 +
		defectReliability(data.DefectRate)*0.5
	quality := 70.0
	if data.DefectRate != nil {
		quality = clampScore(100 - *data.DefectRate*20)
	}
	communication := 70.0
	if data.ResponseTimeHours > 0 {
		communication = clampScore(100 - (data.ResponseTimeHours-2)*10)
	}

	riskLevel := "critical"
	if hasSupplier {
		switch {
		case data.HasBackupSupplier && reliability >= 80:
			riskLevel = "low"
		case data.HasBackupSupplier || reliability >= 80:
			riskLevel = "medium"
		default:
			riskLevel = "high"
		}
	}

	diversification := "no_supplier"
	if hasSupplier {
		diversification = "single_source"
		if data.HasBackupSupplier {
			diversification = "diversified"
		}
	}

	avg := averageCheckScore(checks)
	return SupplierResult{
		DimensionResult: DimensionResult{
			Dimension:       DimensionSupplier,
			Score:           int(math.Round(avg)),
			Status:          statusFromScore(avg),
			Checks:          checks,
			Recommendations: collectRecommendations(checks),
			Weight:          cfg.Weights.Supplier,
		},
		Metrics: SupplierMetrics{
			ReliabilityScore:      int(math.Round(reliability)),
			QualityScore:          int(math.Round(quality)),
			CommunicationScore:    int(math.Round(communication)),
			RiskLevel:             riskLevel,
			DiversificationStatus: diversification,
		},
	}
}

func orDefault(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}

func defectReliability(rate *float64) float64 {
	if rate == nil {
		return 70
	}
	return clampScore(100 - *rate*10)
}
