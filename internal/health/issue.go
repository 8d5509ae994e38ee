package health

// Severity classifies how much a diagnosed defect hurts a pillar score.
type Severity string

const (
	// SeverityError marks a defect that forces the pillar score to zero.
	SeverityError Severity = "error"
	// SeverityWarning marks a defect that caps the score without zeroing it.
	SeverityWarning Severity = "warning"
	// SeverityInfo marks a minor stylistic note.
	SeverityInfo Severity = "info"
)

// Auto-fix action ids. They are opaque hints for the surrounding AI
// optimization service; the engine never performs the remediation itself.
const (
	ActionGenerateTitle     = "ai_generate_title"
	ActionEnrichDescription = "ai_enrich_description"
	ActionCategorize        = "ai_categorize"
	ActionGenerateSEO       = "ai_generate_seo"
)

// HealthIssue is one diagnosed data-quality defect on a product listing.
type HealthIssue struct {
	Pillar        PillarKey `json:"pillar"`
	Severity      Severity  `json:"severity"`
	Message       string    `json:"message"`
	Fixable       bool      `json:"fixable"`
	AutoFixAction string    `json:"autoFixAction,omitempty"`
}

func errorIssue(pillar PillarKey, message string) HealthIssue {
	return HealthIssue{Pillar: pillar, Severity: SeverityError, Message: message}
}

func warningIssue(pillar PillarKey, message string) HealthIssue {
	return HealthIssue{Pillar: pillar, Severity: SeverityWarning, Message: message}
}

func infoIssue(pillar PillarKey, message string) HealthIssue {
	return HealthIssue{Pillar: pillar, Severity: SeverityInfo, Message: message}
}

func fixable(issue HealthIssue, action string) HealthIssue {
	issue.Fixable = true
	issue.AutoFixAction = action
	return issue
}
