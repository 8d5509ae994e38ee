package health

import "sort"

// marketplace readiness bar: products at or above this global score are
// considered fit to publish to a feed.
const readinessScoreBar = 70

// maximum number of recurring issues surfaced in a catalog summary.
const topIssuesCap = 8

// IssueCount is one recurring issue across a catalog, keyed by message text.
// Messages that interpolate per-product values (stock counts, margins) do not
// merge; that is a known property of the message-based keying.
type IssueCount struct {
	Message  string   `json:"message"`
	Count    int      `json:"count"`
	Severity Severity `json:"severity"`
}

// PillarAverage is the mean score of one pillar across a catalog.
type PillarAverage struct {
	Key   PillarKey `json:"key"`
	Label string    `json:"label"`
	Score int       `json:"score"`
}

// CatalogHealthSummary is the fleet-wide reduction of per-product reports.
type CatalogHealthSummary struct {
	TotalProducts    int             `json:"totalProducts"`
	AverageScore     int             `json:"averageScore"`
	Grade            string          `json:"grade"`
	Distribution     map[Status]int  `json:"distribution"`
	TopIssues        []IssueCount    `json:"topIssues"`
	PillarAverages   []PillarAverage `json:"pillarAverages"`
	ReadinessPercent int             `json:"readinessPercent"`
}

// AnalyzeCatalog analyzes every product independently and reduces the
// reports into catalog-wide statistics. An empty input yields the zero-value
// summary rather than an error.
func AnalyzeCatalog(products []ProductData) CatalogHealthSummary {
	summary := CatalogHealthSummary{
		Grade:          "F",
		Distribution:   emptyDistribution(),
		TopIssues:      []IssueCount{},
		PillarAverages: []PillarAverage{},
	}
	if len(products) == 0 {
		return summary
	}

	reports := make([]ProductHealthReport, 0, len(products))
	for _, product := range products {
		reports = append(reports, AnalyzeProduct(product))
	}

	scoreTotal := 0
	ready := 0
	issueCounts := make(map[string]*IssueCount)
	issueOrder := make([]string, 0)
	pillarTotals := make(map[PillarKey]int, len(pillarDefs))

	for _, report := range reports {
		scoreTotal += report.GlobalScore
		summary.Distribution[report.Status]++
		if report.GlobalScore >= readinessScoreBar {
			ready++
		}
		for _, issue := range report.Issues {
			if existing, ok := issueCounts[issue.Message]; ok {
				existing.Count++
				continue
			}
			issueCounts[issue.Message] = &IssueCount{Message: issue.Message, Count: 1, Severity: issue.Severity}
			issueOrder = append(issueOrder, issue.Message)
		}
		for _, pillar := range report.Pillars {
			pillarTotals[pillar.Key] += pillar.Score
		}
	}

	total := len(reports)
	summary.TotalProducts = total
	summary.AverageScore = clampRound(float64(scoreTotal) / float64(total))
	summary.Grade = GradeFromScore(summary.AverageScore)
	summary.ReadinessPercent = clampRound(float64(ready) / float64(total) * 100)

	topIssues := make([]IssueCount, 0, len(issueOrder))
	for _, message := range issueOrder {
		topIssues = append(topIssues, *issueCounts[message])
	}
	sort.SliceStable(topIssues, func(i, j int) bool {
		if topIssues[i].Count != topIssues[j].Count {
			return topIssues[i].Count > topIssues[j].Count
		}
		return topIssues[i].Message < topIssues[j].Message
	})
	if len(topIssues) > topIssuesCap {
		topIssues = topIssues[:topIssuesCap]
	}
	summary.TopIssues = topIssues

	firstPillars := reports[0].Pillars
	for i, def := range pillarDefs {
		summary.PillarAverages = append(summary.PillarAverages, PillarAverage{
			Key:   def.Key,
			Label: firstPillars[i].Label,
			Score: clampRound(float64(pillarTotals[def.Key]) / float64(total)),
		})
	}

	return summary
}

func emptyDistribution() map[Status]int {
	return map[Status]int{
		StatusExcellent: 0,
		StatusGood:      0,
		StatusWarning:   0,
		StatusCritical:  0,
	}
}
