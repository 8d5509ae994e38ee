package health

// Status is the coarse quality tier used by dashboards and distribution
// counts, applied to pillar scores, product scores and catalog averages alike.
type Status string

const (
	StatusExcellent Status = "excellent"
	StatusGood      Status = "good"
	StatusWarning   Status = "warning"
	StatusCritical  Status = "critical"
)

// GradeFromScore buckets a 0-100 score into a letter grade. This function and
// StatusFromScore are the single source of truth for tier boundaries; call
// sites must not inline their own thresholds.
func GradeFromScore(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}

// StatusFromScore buckets a 0-100 score into a status tier.
func StatusFromScore(score int) Status {
	switch {
	case score >= 80:
		return StatusExcellent
	case score >= 60:
		return StatusGood
	case score >= 40:
		return StatusWarning
	default:
		return StatusCritical
	}
}
