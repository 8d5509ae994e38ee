package audit

import (
	"fmt"
	"math"
	"strings"
)

// MarketData is the competitive context of a product. Zero values mean
// the signal was never collected and fall back to neutral assumptions.
type MarketData struct {
	PricePosition    string `json:"pricePosition,omitempty"`
	DemandTrend      string `json:"demandTrend,omitempty"`
	CompetitionLevel string `json:"competitionLevel,omitempty"`
	TrendingScore    *int   `json:"trendingScore,omitempty"`
	MarketSaturation *int   `json:"marketSaturation,omitempty"`
	SearchVolume     int    `json:"searchVolume,omitempty"`
}

// MarketMetrics are the derived competitive indicators.
type MarketMetrics struct {
	PriceCompetitiveness int    `json:"priceCompetitiveness"`
	DemandScore          int    `json:"demandScore"`
	OpportunityScore     int    `json:"opportunityScore"`
	CompetitionIndex     int    `json:"competitionIndex"`
	MarketPosition       string `json:"marketPosition"`
}

// MarketResult is the market dimension outcome.
type MarketResult struct {
	DimensionResult
	Metrics MarketMetrics `json:"metrics"`
}

type gradedSignal struct {
	score  float64
	status CheckStatus
}

var pricePositionGrades = map[string]gradedSignal{
	"lowest":        {90, StatusPassed},
	"below_average": {80, StatusPassed},
	"average":       {60, StatusWarning},
	"above_average": {40, StatusWarning},
	"highest":       {20, StatusFailed},
}

var demandGrades = map[string]gradedSignal{
	"rising":    {100, StatusPassed},
	"stable":    {70, StatusPassed},
	"declining": {30, StatusWarning},
}

var competitionGrades = map[string]gradedSignal{
	"low":       {95, StatusPassed},
	"medium":    {70, StatusPassed},
	"high":      {45, StatusWarning},
	"very_high": {25, StatusFailed},
}

// AuditMarket evaluates pricing position, demand and competitive pressure.
func AuditMarket(data MarketData, cfg Config) MarketResult {
	pricePosition := data.PricePosition
	if _, ok := pricePositionGrades[pricePosition]; !ok {
		pricePosition = "average"
	}
	price := pricePositionGrades[pricePosition]
	priceCheck := Check{
		ID:            "market-price-position",
		Name:          "Price position",
		Description:   "Your price relative to the market",
		Status:        price.status,
		Score:         price.score,
		Value:         strings.ReplaceAll(pricePosition, "_", " "),
		ExpectedValue: "Competitive",
		Impact:        ImpactHigh,
	}
	if pricePosition == "highest" || pricePosition == "above_average" {
		priceCheck.Recommendation = "Your price sits above the market, consider lowering it"
	}

	demandTrend := data.DemandTrend
	if _, ok := demandGrades[demandTrend]; !ok {
		demandTrend = "stable"
	}
	demand := demandGrades[demandTrend]
	demandCheck := Check{
		ID:            "market-demand",
		Name:          "Demand trend",
		Description:   "How demand is evolving",
		Status:        demand.status,
		Score:         demand.score,
		Value:         demandTrend,
		ExpectedValue: "rising or stable",
		Impact:        ImpactHigh,
	}
	if demandTrend == "declining" {
		demandCheck.Recommendation = "Demand is falling, consider reducing stock or running promotions"
	}

	competitionLevel := data.CompetitionLevel
	if _, ok := competitionGrades[competitionLevel]; !ok {
		competitionLevel = "medium"
	}
	competition := competitionGrades[competitionLevel]
	competitionCheck := Check{
		ID:            "market-competition",
		Name:          "Competition level",
		Description:   "Competitive intensity",
		Status:        competition.status,
		Score:         competition.score,
		Value:         strings.ReplaceAll(competitionLevel, "_", " "),
		ExpectedValue: "low to medium",
		Impact:        ImpactMedium,
	}
	if competitionLevel == "high" || competitionLevel == "very_high" {
		competitionCheck.Recommendation = "Highly competitive market, differentiate on service or quality"
	}

	trending := 50
	if data.TrendingScore != nil {
		trending = *data.TrendingScore
	}
	trendingCheck := Check{
		ID:            "market-trending",
		Name:          "Trending score",
		Description:   "Product popularity",
		Status:        tieredStatus(float64(trending), 70, 40),
		Score:         float64(trending),
		Value:         fmt.Sprintf("%d/100", trending),
		ExpectedValue: ">= 70",
		Impact:        ImpactMedium,
	}
	if trending < 70 {
		trendingCheck.Recommendation = "Product is not trending, strengthen the marketing"
	}

	saturation := 50
	if data.MarketSaturation != nil {
		saturation = *data.MarketSaturation
	}
	saturationCheck := Check{
		ID:            "market-saturation",
		Name:          "Market saturation",
		Description:   "How crowded the market is",
		Status:        tieredStatus(float64(-saturation), -40, -70),
		Score:         clampScore(float64(100 - saturation)),
		Value:         fmt.Sprintf("%d%%", saturation),
		ExpectedValue: "<= 40%",
		Impact:        ImpactMedium,
	}
	if saturation > 70 {
		saturationCheck.Recommendation = "Saturated market, look for niches or differentiate"
	}

	searchVolume := data.SearchVolume
	searchScore := searchVolumeScore(searchVolume)
	searchValue := "Not measured"
	if searchVolume > 0 {
		searchValue = fmt.Sprintf("%d/month", searchVolume)
	}
	searchCheck := Check{
		ID:            "market-search-volume",
		Name:          "Search volume",
		Description:   "Monthly search count",
		Status:        tieredStatus(float64(searchScore), 60, 40),
		Score:         float64(searchScore),
		Value:         searchValue,
		ExpectedValue: ">= 1000/month",
		Impact:        ImpactMedium,
	}
	if searchVolume < 1000 {
		searchCheck.Recommendation = "Low demand signal, invest in SEO optimization"
	}

	checks := []Check{priceCheck, demandCheck, competitionCheck, trendingCheck, saturationCheck, searchCheck}

	priceCompetitiveness := int(price.score)
	demandScore := int(demand.score)
	opportunityScore := int(math.Round((price.score + demand.score + float64(100-saturation)) / 3))
	competitionIndex := int(competition.score)

	marketPosition := "follower"
	switch {
	case priceCompetitiveness >= 80 && demandScore >= 70:
		marketPosition = "leader"
	case priceCompetitiveness >= 60 && demandScore >= 60:
		marketPosition = "challenger"
	case saturation <= 30:
		marketPosition = "niche"
	}

	avg := averageCheckScore(checks)
	return MarketResult{
		DimensionResult: DimensionResult{
			Dimension:       DimensionMarket,
			Score:           int(math.Round(avg)),
			Status:          statusFromScore(avg),
			Checks:          checks,
			Recommendations: collectRecommendations(checks),
			Weight:          cfg.Weights.Market,
		},
		Metrics: MarketMetrics{
			PriceCompetitiveness: priceCompetitiveness,
			DemandScore:          demandScore,
			OpportunityScore:     opportunityScore,
			CompetitionIndex:     competitionIndex,
			MarketPosition:       marketPosition,
		},
	}
}

func searchVolumeScore(volume int) int {
	switch {
	case volume >= 10000:
		return 100
	case volume >= 5000:
		return 80
	case volume >= 1000:
		return 60
	case volume >= 100:
		return 40
	default:
		return 20
	}
}
