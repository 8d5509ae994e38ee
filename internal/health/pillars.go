package health

import "math"

// PillarKey identifies one of the six quality dimensions.
type PillarKey string

const (
	PillarTitle       PillarKey = "title"
	PillarDescription PillarKey = "description"
	PillarImages      PillarKey = "images"
	PillarPricing     PillarKey = "pricing"
	PillarIdentifiers PillarKey = "identifiers"
	PillarSEO         PillarKey = "seo"
)

type pillarDef struct {
	Key    PillarKey
	Label  string
	Weight int
	score  func(ProductData) pillarResult
}

// pillarDefs fixes both the weights and the ordering used for flattened
// issues and pillar averages.
var pillarDefs = []pillarDef{
	{Key: PillarTitle, Label: "Title", Weight: 20, score: scoreTitle},
	{Key: PillarDescription, Label: "Description", Weight: 20, score: scoreDescription},
	{Key: PillarImages, Label: "Images", Weight: 20, score: scoreImages},
	{Key: PillarPricing, Label: "Pricing & Stock", Weight: 15, score: scorePricing},
	{Key: PillarIdentifiers, Label: "Identifiers", Weight: 15, score: scoreIdentifiers},
	{Key: PillarSEO, Label: "SEO", Weight: 10, score: scoreSEO},
}

func init() {
	total := 0
	for _, def := range pillarDefs {
		total += def.Weight
	}
	// The weighted global score is only a true 0-100 scale if the six
	// weights sum to exactly 100.
	if total != 100 {
		panic("health: pillar weights must sum to 100")
	}
}

// pillarResult is the raw output of one scorer before weighting.
type pillarResult struct {
	score  float64
	issues []HealthIssue
}

func (r *pillarResult) add(points float64) {
	r.score += points
}

func (r *pillarResult) diagnose(issue HealthIssue) {
	r.issues = append(r.issues, issue)
}

// finalScore clamps and rounds the accumulated points to the 0-100 range.
func (r pillarResult) finalScore() int {
	return clampRound(r.score)
}

func clampRound(score float64) int {
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
