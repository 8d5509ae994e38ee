package audit

import (
	"fmt"
	"math"
)

// ProfitabilityData is the cost structure of one product.
type ProfitabilityData struct {
	SellPrice       float64 `json:"sellPrice"`
	CostPrice       float64 `json:"costPrice"`
	ShippingCost    float64 `json:"shippingCost"`
	PlatformFees    float64 `json:"platformFees"`
	AdvertisingCost float64 `json:"advertisingCost"`
	ReturnRate      float64 `json:"returnRate"`
}

// ProfitabilityMetrics are the derived financials of a profitability audit.
type ProfitabilityMetrics struct {
	GrossMargin    float64 `json:"grossMargin"`
	NetMargin      float64 `json:"netMargin"`
	ProfitPerUnit  float64 `json:"profitPerUnit"`
	BreakEvenUnits int     `json:"breakEvenUnits"`
	ROI            float64 `json:"roi"`
	MarginHealth   string  `json:"marginHealth"`
}

// ProfitabilityResult is the profitability dimension outcome.
type ProfitabilityResult struct {
	DimensionResult
	Metrics ProfitabilityMetrics `json:"metrics"`
}

// AuditProfitability evaluates margins, ROI and per-unit profit against the
// configured target margin.
func AuditProfitability(data ProfitabilityData, cfg Config) ProfitabilityResult {
	grossProfit := data.SellPrice - data.CostPrice - data.ShippingCost
	grossMargin := 0.0
	if data.SellPrice > 0 {
		grossMargin = grossProfit / data.SellPrice * 100
	}

	netProfit := grossProfit - data.PlatformFees - data.AdvertisingCost
	returnLoss := data.SellPrice * data.ReturnRate / 100
	adjustedNetProfit := netProfit - returnLoss
	netMargin := 0.0
	if data.SellPrice > 0 {
		netMargin = adjustedNetProfit / data.SellPrice * 100
	}

	profitPerUnit := adjustedNetProfit
	totalCosts := data.CostPrice + data.ShippingCost + data.PlatformFees + data.AdvertisingCost
	breakEvenUnits := 0
	if totalCosts > 0 && profitPerUnit > 0 {
		breakEvenUnits = int(math.Ceil(totalCosts / profitPerUnit))
	}
	roi := 0.0
	if totalCosts > 0 {
		roi = adjustedNetProfit / totalCosts * 100
	}

	marginHealth := "critical"
	switch {
	case netMargin >= cfg.TargetMarginPercent:
		marginHealth = "excellent"
	case netMargin >= cfg.TargetMarginPercent*0.7:
		marginHealth = "good"
	case netMargin >= cfg.TargetMarginPercent*0.4:
		marginHealth = "warning"
	}

	checks := []Check{
		{
			ID:            "gross-margin",
			Name:          "Gross margin",
			Description:   "Margin before platform fees and advertising",
			Status:        tieredStatus(grossMargin, 40, 25),
			Score:         clampScore(grossMargin * 2),
			Value:         fmt.Sprintf("%.1f%%", grossMargin),
			ExpectedValue: ">= 40%",
			Impact:        ImpactHigh,
		},
		{
			ID:            "net-margin",
			Name:          "Net margin",
			Description:   "Margin after all costs",
			Status:        tieredStatus(netMargin, cfg.TargetMarginPercent, cfg.TargetMarginPercent*0.6),
			Score:         clampScore(netMargin / cfg.TargetMarginPercent * 100),
			Value:         fmt.Sprintf("%.1f%%", netMargin),
			ExpectedValue: fmt.Sprintf(">= %.0f%%", cfg.TargetMarginPercent),
			Impact:        ImpactHigh,
		},
		{
			ID:            "roi",
			Name:          "Return on investment",
			Description:   "ROI per unit sold",
			Status:        tieredStatus(roi, 50, 20),
			Score:         clampScore(roi),
			Value:         fmt.Sprintf("%.1f%%", roi),
			ExpectedValue: ">= 50%",
			Impact:        ImpactMedium,
		},
		{
			ID:            "return-rate",
			Name:          "Return rate",
			Description:   "Impact of returns on profitability",
			Status:        tieredStatus(-data.ReturnRate, -5, -15),
			Score:         clampScore(100 - data.ReturnRate*5),
			Value:         fmt.Sprintf("%.1f%%", data.ReturnRate),
			ExpectedValue: "<= 5%",
			Impact:        ImpactMedium,
		},
		{
			ID:            "profit-per-unit",
			Name:          "Profit per unit",
			Description:   "Net profit per product sold",
			Status:        tieredStatus(profitPerUnit, 5, 2),
			Score:         clampScore(profitPerUnit * 10),
			Value:         fmt.Sprintf("%.2f", profitPerUnit),
			ExpectedValue: ">= 5.00",
			Impact:        ImpactHigh,
		},
	}

	if grossMargin < 40 {
		checks[0].Recommendation = "Negotiate better supplier pricing or raise the selling price"
	}
	if netMargin < cfg.TargetMarginPercent {
		checks[1].Recommendation = "Reduce advertising spend or platform fees"
	}
	if roi < 50 {
		checks[2].Recommendation = "Optimize the cost structure to improve ROI"
	}
	if data.ReturnRate > 5 {
		checks[3].Recommendation = "Improve descriptions and photos to reduce returns"
	}
	if profitPerUnit < 5 {
		checks[4].Recommendation = "This product generates little profit per sale"
	}

	avg := averageCheckScore(checks)
	return ProfitabilityResult{
		DimensionResult: DimensionResult{
			Dimension:       DimensionProfitability,
			Score:           int(math.Round(avg)),
			Status:          statusFromScore(avg),
			Checks:          checks,
			Recommendations: collectRecommendations(checks),
			Weight:          cfg.Weights.Profitability,
		},
		Metrics: ProfitabilityMetrics{
			GrossMargin:    round1(grossMargin),
			NetMargin:      round1(netMargin),
			ProfitPerUnit:  round2(profitPerUnit),
			BreakEvenUnits: breakEvenUnits,
			ROI:            round1(roi),
			MarginHealth:   marginHealth,
		},
	}
}
