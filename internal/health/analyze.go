package health

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const recommendationFloor = 60

// HealthPillar is one scored quality dimension of a product listing.
type HealthPillar struct {
	Key           PillarKey     `json:"key"`
	Label         string        `json:"label"`
	Score         int           `json:"score"`
	Weight        int           `json:"weight"`
	WeightedScore float64       `json:"weightedScore"`
	Issues        []HealthIssue `json:"issues"`
	Status        Status        `json:"status"`
}

// ProductHealthReport is the full analysis of one product listing. Reports
// are immutable; persisting them is the caller's decision.
type ProductHealthReport struct {
	ProductID       string         `json:"productId"`
	GlobalScore     int            `json:"globalScore"`
	Grade           string         `json:"grade"`
	Status          Status         `json:"status"`
	Pillars         []HealthPillar `json:"pillars"`
	Issues          []HealthIssue  `json:"issues"`
	Recommendations []string       `json:"recommendations"`
	AnalyzedAt      time.Time      `json:"analyzedAt"`
}

// AnalyzeProduct runs all six pillar scorers over the record and combines
// them into one weighted report. It is a pure function of its input except
// for the AnalyzedAt timestamp.
func AnalyzeProduct(p ProductData) ProductHealthReport {
	pillars := make([]HealthPillar, 0, len(pillarDefs))
	issues := make([]HealthIssue, 0, 8)
	weightedTotal := 0.0

	for _, def := range pillarDefs {
		result := def.score(p)
		score := result.finalScore()
		pillar := HealthPillar{
			Key:           def.Key,
			Label:         def.Label,
			Score:         score,
			Weight:        def.Weight,
			WeightedScore: float64(score) * float64(def.Weight) / 100,
			Issues:        result.issues,
			Status:        StatusFromScore(score),
		}
		pillars = append(pillars, pillar)
		issues = append(issues, result.issues...)
		weightedTotal += pillar.WeightedScore
	}

	globalScore := clampRound(weightedTotal)

	return ProductHealthReport{
		ProductID:       p.ID,
		GlobalScore:     globalScore,
		Grade:           GradeFromScore(globalScore),
		Status:          StatusFromScore(globalScore),
		Pillars:         pillars,
		Issues:          issues,
		Recommendations: buildRecommendations(pillars),
		AnalyzedAt:      time.Now().UTC(),
	}
}

// buildRecommendations targets the three weakest pillars, skipping any that
// already score at or above the floor. Pillars with an auto-fixable issue get
// the AI-assisted phrasing with an estimated point gain.
func buildRecommendations(pillars []HealthPillar) []string {
	ranked := make([]HealthPillar, len(pillars))
	copy(ranked, pillars)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	recommendations := make([]string, 0, len(ranked))
	for _, pillar := range ranked {
		if pillar.Score >= recommendationFloor {
			continue
		}
		if action := firstAutoFixAction(pillar.Issues); action != "" {
			gain := int(math.Round(float64(80-pillar.Score) * float64(pillar.Weight) / 100))
			recommendations = append(recommendations,
				fmt.Sprintf("Improve %s with AI assistance (estimated +%d points)", pillar.Label, gain))
			continue
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Review and improve %s to raise the listing quality", pillar.Label))
	}
	return recommendations
}

func firstAutoFixAction(issues []HealthIssue) string {
	for _, issue := range issues {
		if issue.AutoFixAction != "" {
			return issue.AutoFixAction
		}
	}
	return ""
}
