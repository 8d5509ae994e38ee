package audit

import (
	"fmt"
	"math"
)

// FeedData is the marketplace-feed view of a product: the fields Google
// Shopping, Meta and Amazon expect in a product feed.
type FeedData struct {
	Title            string   `json:"title,omitempty"`
	Description      string   `json:"description,omitempty"`
	ImageURL         string   `json:"imageUrl,omitempty"`
	AdditionalImages []string `json:"additionalImages,omitempty"`
	Price            float64  `json:"price,omitempty"`
	Availability     string   `json:"availability,omitempty"`
	GTIN             string   `json:"gtin,omitempty"`
	MPN              string   `json:"mpn,omitempty"`
	Brand            string   `json:"brand,omitempty"`
	Category         string   `json:"category,omitempty"`
	Condition        string   `json:"condition,omitempty"`
	ShippingWeight   float64  `json:"shippingWeight,omitempty"`
}

// FeedMetrics reports per-platform feed readiness.
type FeedMetrics struct {
	GoogleReadyScore       int      `json:"googleReadyScore"`
	MetaReadyScore         int      `json:"metaReadyScore"`
	AmazonReadyScore       int      `json:"amazonReadyScore"`
	CompletenessScore      int      `json:"completenessScore"`
	MissingRequiredFields  []string `json:"missingRequiredFields"`
	MissingRecommendedFields []string `json:"missingRecommendedFields"`
}

// FeedResult is the feed dimension outcome.
type FeedResult struct {
	DimensionResult
	Metrics FeedMetrics `json:"metrics"`
}

// AuditFeed evaluates marketplace feed readiness and completeness.
func AuditFeed(data FeedData, cfg Config) FeedResult {
	titleLen := len([]rune(data.Title))
	titleCheck := Check{
		ID:            "feed-title",
		Name:          "Product title",
		Description:   "Title optimized for feeds",
		Score:         float64(titleLen) * 2,
		Value:         "Missing",
		ExpectedValue: "30-150 characters",
		Impact:        ImpactHigh,
	}
	switch {
	case titleLen >= 30 && titleLen <= 150:
		titleCheck.Status = StatusPassed
	case titleLen >= 20:
		titleCheck.Status = StatusWarning
	default:
		titleCheck.Status = StatusFailed
	}
	if titleLen >= 30 {
		titleCheck.Score = 100
		if titleLen > 150 {
			titleCheck.Score = 80
		}
	}
	if titleLen > 0 {
		titleCheck.Value = fmt.Sprintf("%d chars", titleLen)
	}
	if titleLen < 30 {
		titleCheck.Recommendation = "Enrich the title with relevant keywords"
	}

	descLen := len([]rune(data.Description))
	descCheck := Check{
		ID:            "feed-description",
		Name:          "Description",
		Description:   "Detailed product description",
		Score:         clampScore(float64(descLen) / 3),
		Value:         "Missing",
		ExpectedValue: ">= 150 characters",
		Impact:        ImpactHigh,
	}
	switch {
	case descLen >= 150:
		descCheck.Status = StatusPassed
	case descLen >= 50:
		descCheck.Status = StatusWarning
	default:
		descCheck.Status = StatusFailed
	}
	if descLen > 0 {
		descCheck.Value = fmt.Sprintf("%d chars", descLen)
	}
	if descLen < 150 {
		descCheck.Recommendation = "Add a detailed description to improve visibility"
	}

	imageCheck := Check{
		ID:            "feed-image",
		Name:          "Primary image",
		Description:   "Quality image for the platforms",
		Status:        StatusFailed,
		Score:         0,
		Value:         "Missing",
		ExpectedValue: "Required",
		Impact:        ImpactHigh,
	}
	if data.ImageURL != "" {
		imageCheck.Status = StatusPassed
		imageCheck.Score = 100
		imageCheck.Value = "Present"
	} else {
		imageCheck.Recommendation = "Add a high-resolution image (min. 800x800px)"
	}

	extraCount := len(data.AdditionalImages)
	extraCheck := Check{
		ID:            "feed-additional-images",
		Name:          "Additional images",
		Description:   "Complete image gallery",
		Score:         clampScore(float64(extraCount) * 25),
		Value:         fmt.Sprintf("%d images", extraCount),
		ExpectedValue: ">= 3 images",
		Impact:        ImpactMedium,
	}
	switch {
	case extraCount >= 3:
		extraCheck.Status = StatusPassed
	case extraCount >= 1:
		extraCheck.Status = StatusWarning
	default:
		extraCheck.Status = StatusFailed
	}
	if extraCount < 3 {
		extraCheck.Recommendation = "Add more images from different angles"
	}

	gtinCheck := Check{
		ID:            "feed-gtin",
		Name:          "GTIN/EAN",
		Description:   "International barcode",
		Status:        StatusWarning,
		Score:         40,
		Value:         "Not provided",
		ExpectedValue: "Required for Google",
		Impact:        ImpactHigh,
	}
	if data.GTIN != "" {
		gtinCheck.Status = StatusPassed
		gtinCheck.Score = 100
		gtinCheck.Value = data.GTIN
	} else {
		gtinCheck.Recommendation = "Add the GTIN to improve Google Shopping visibility"
	}

	brandCheck := Check{
		ID:            "feed-brand",
		Name:          "Brand",
		Description:   "Product brand name",
		Status:        StatusWarning,
		Score:         50,
		Value:         "Not provided",
		ExpectedValue: "Recommended",
		Impact:        ImpactMedium,
	}
	if data.Brand != "" {
		brandCheck.Status = StatusPassed
		brandCheck.Score = 100
		brandCheck.Value = data.Brand
	} else {
		brandCheck.Recommendation = "Provide the brand for marketplace filtering"
	}

	categoryCheck := Check{
		ID:            "feed-category",
		Name:          "Google category",
		Description:   "Google taxonomy category",
		Status:        StatusWarning,
		Score:         40,
		Value:         "Not set",
		ExpectedValue: "Required",
		Impact:        ImpactHigh,
	}
	if data.Category != "" {
		categoryCheck.Status = StatusPassed
		categoryCheck.Score = 100
		categoryCheck.Value = "Set"
	} else {
		categoryCheck.Recommendation = "Map the product to a Google Product Category"
	}

	availabilityCheck := Check{
		ID:            "feed-availability",
		Name:          "Availability",
		Description:   "Stock status",
		Status:        StatusWarning,
		Score:         60,
		Value:         "Not set",
		ExpectedValue: "in_stock / out_of_stock",
		Impact:        ImpactMedium,
	}
	if data.Availability != "" {
		availabilityCheck.Status = StatusPassed
		availabilityCheck.Score = 100
		availabilityCheck.Value = data.Availability
	} else {
		availabilityCheck.Recommendation = "Declare availability in the feed"
	}

	checks := []Check{titleCheck, descCheck, imageCheck, extraCheck, gtinCheck, brandCheck, categoryCheck, availabilityCheck}

	missingRequired := missingFeedFields(map[string]bool{
		"title":        data.Title != "",
		"description":  data.Description != "",
		"imageUrl":     data.ImageURL != "",
		"price":        data.Price > 0,
		"availability": data.Availability != "",
	})
	missingRecommended := missingFeedFields(map[string]bool{
		"gtin":           data.GTIN != "",
		"mpn":            data.MPN != "",
		"brand":          data.Brand != "",
		"category":       data.Category != "",
		"condition":      data.Condition != "",
		"shippingWeight": data.ShippingWeight > 0,
	})

	googleScore := 100 - len(missingRequired)*15 - len(missingRecommended)*5
	metaScore := 100 - len(missingRequired)*12 - len(missingRecommended)*3
	amazonScore := 100 - len(missingRequired)*10 - len(missingRecommended)*8

	fieldsSet := []bool{
		data.Title != "", data.Description != "", data.ImageURL != "",
		len(data.AdditionalImages) > 0, data.Price > 0, data.Availability != "",
		data.GTIN != "", data.MPN != "", data.Brand != "",
		data.Category != "", data.Condition != "", data.ShippingWeight > 0,
	}
	filled := 0
	for _, set := range fieldsSet {
		if set {
			filled++
		}
	}
	completeness := int(math.Round(float64(filled) / float64(len(fieldsSet)) * 100))

	avg := averageCheckScore(checks)
	return FeedResult{
		DimensionResult: DimensionResult{
			Dimension:       DimensionFeed,
			Score:           int(math.Round(avg)),
			Status:          statusFromScore(avg),
			Checks:          checks,
			Recommendations: collectRecommendations(checks),
			Weight:          cfg.Weights.Feed,
		},
		Metrics: FeedMetrics{
			GoogleReadyScore:         int(clampScore(float64(googleScore))),
			MetaReadyScore:           int(clampScore(float64(metaScore))),
			AmazonReadyScore:         int(clampScore(float64(amazonScore))),
			CompletenessScore:        int(clampScore(float64(completeness))),
			MissingRequiredFields:    missingRequired,
			MissingRecommendedFields: missingRecommended,
		},
	}
}

// missingFeedFields returns the unset field names in a stable order.
func missingFeedFields(present map[string]bool) []string {
	order := []string{
		"title", "description", "imageUrl", "price", "availability",
		"gtin", "mpn", "brand", "category", "condition", "shippingWeight",
	}
	missing := []string{}
	for _, name := range order {
		set, known := present[name]
		if known && !set {
			missing = append(missing, name)
		}
	}
	return missing
}
