package audit

import (
	"math"
	"sort"
	"strings"
	"time"
)

const priorityActionCap = 10

// Run executes the four dimension audits and assembles the weighted
// global result with its SWOT summary and ranked priority actions.
func Run(input Input, cfg Config) Result {
	profitability := AuditProfitability(input.Profitability, cfg)
	supplier := AuditSupplier(input.Supplier, cfg)
	feed := AuditFeed(input.Feed, cfg)
	market := AuditMarket(input.Market, cfg)

	globalScore := int(math.Round(
		float64(profitability.Score)*cfg.Weights.Profitability +
			float64(supplier.Score)*cfg.Weights.Supplier +
			float64(feed.Score)*cfg.Weights.Feed +
			float64(market.Score)*cfg.Weights.Market))

	summary := buildSummary(profitability, supplier, feed, market)
	summary.PriorityActions = buildPriorityActions(
		profitability.DimensionResult,
		supplier.DimensionResult,
		feed.DimensionResult,
		market.DimensionResult)

	return Result{
		ProductID:    input.ProductID,
		ProductName:  input.ProductName,
		ProductSKU:   input.ProductSKU,
		GlobalScore:  globalScore,
		GlobalStatus: statusFromScore(float64(globalScore)),
		AuditedAt:    time.Now().UTC(),
		Dimensions: Dimensions{
			Profitability: profitability,
			Supplier:      supplier,
			Feed:          feed,
			Market:        market,
		},
		Summary: summary,
	}
}

func buildSummary(profitability ProfitabilityResult, supplier SupplierResult, feed FeedResult, market MarketResult) Summary {
	s := Summary{
		Strengths:     []string{},
		Weaknesses:    []string{},
		Opportunities: []string{},
		Threats:       []string{},
	}

	switch profitability.Metrics.MarginHealth {
	case "excellent":
		s.Strengths = append(s.Strengths, "Excellent profit margin")
	case "critical":
		s.Weaknesses = append(s.Weaknesses, "Insufficient margin")
		s.Threats = append(s.Threats, "Risk of unprofitability")
	}

	switch supplier.Metrics.RiskLevel {
	case "low":
		s.Strengths = append(s.Strengths, "Reliable supply chain")
	case "critical":
		s.Threats = append(s.Threats, "Risk of supplier stockout")
	}
	if supplier.Metrics.DiversificationStatus == "single_source" {
		s.Weaknesses = append(s.Weaknesses, "Dependent on a single supplier")
		s.Opportunities = append(s.Opportunities, "Diversify sourcing channels")
	}

	if feed.Metrics.GoogleReadyScore >= 80 {
		s.Strengths = append(s.Strengths, "Listing optimized for Google Shopping")
	} else if len(feed.Metrics.MissingRequiredFields) > 0 {
		s.Weaknesses = append(s.Weaknesses, "Missing fields: "+joinFields(feed.Metrics.MissingRequiredFields))
		s.Opportunities = append(s.Opportunities, "Complete the product data to improve visibility")
	}

	switch market.Metrics.MarketPosition {
	case "leader":
		s.Strengths = append(s.Strengths, "Market-leading position")
	case "niche":
		s.Opportunities = append(s.Opportunities, "Growth potential in a niche market")
	}
	if market.Metrics.OpportunityScore >= 70 {
		s.Opportunities = append(s.Opportunities, "Strong growth potential")
	}
	if market.Metrics.CompetitionIndex < 50 {
		s.Threats = append(s.Threats, "Strong competitive pressure")
	}

	return s
}

// buildPriorityActions turns failed and warning checks into remediation
// actions ranked so quick wins come first.
func buildPriorityActions(results ...DimensionResult) []PriorityAction {
	actions := []PriorityAction{}
	for _, result := range results {
		for _, check := range result.Checks {
			if check.Status != StatusFailed && check.Status != StatusWarning {
				continue
			}
			if check.Recommendation == "" {
				continue
			}
			effort := EffortLow
			if check.Impact == ImpactHigh {
				effort = EffortMedium
			}
			actions = append(actions, PriorityAction{
				ID:                 check.ID,
				Dimension:          result.Dimension,
				Action:             check.Recommendation,
				Impact:             check.Impact,
				Effort:             effort,
				EstimatedScoreGain: gainForImpact(check.Impact),
			})
		}
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return priorityRank(actions[i]) > priorityRank(actions[j])
	})
	if len(actions) > priorityActionCap {
		actions = actions[:priorityActionCap]
	}
	return actions
}

func gainForImpact(impact Impact) int {
	switch impact {
	case ImpactHigh:
		return 15
	case ImpactMedium:
		return 10
	default:
		return 5
	}
}

var impactRank = map[Impact]int{ImpactHigh: 3, ImpactMedium: 2, ImpactLow: 1}
var effortRank = map[Effort]int{EffortLow: 3, EffortMedium: 2, EffortHigh: 1}

func priorityRank(a PriorityAction) int {
	return impactRank[a.Impact]*2 + effortRank[a.Effort]
}

func statusFromScore(score float64) CheckStatus {
	switch {
	case score >= 80:
		return StatusPassed
	case score >= 60:
		return StatusWarning
	default:
		return StatusFailed
	}
}

// tieredStatus grades value against a pass threshold and a warning
// threshold, both inclusive.
func tieredStatus(value, passAt, warnAt float64) CheckStatus {
	switch {
	case value >= passAt:
		return StatusPassed
	case value >= warnAt:
		return StatusWarning
	default:
		return StatusFailed
	}
}

func clampScore(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

func averageCheckScore(checks []Check) float64 {
	if len(checks) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range checks {
		sum += c.Score
	}
	return sum / float64(len(checks))
}

func collectRecommendations(checks []Check) []string {
	recs := []string{}
	for _, c := range checks {
		if c.Recommendation != "" {
			recs = append(recs, c.Recommendation)
		}
	}
	return recs
}

func joinFields(fields []string) string {
	return strings.Join(fields, ", ")
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
