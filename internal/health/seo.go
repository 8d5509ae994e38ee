package health

import (
	"strings"
	"unicode/utf8"
)

const (
	seoTitleMinLength       = 20
	seoTitleMaxLength       = 60
	seoDescriptionMinLength = 100
	seoDescriptionMaxLength = 160
	seoMinKeywords          = 3
)

func scoreSEO(p ProductData) pillarResult {
	var res pillarResult

	switch length := utf8.RuneCountInString(strings.TrimSpace(p.SEOTitle)); {
	case length == 0:
		res.diagnose(fixable(warningIssue(PillarSEO, "SEO title is missing"), ActionGenerateSEO))
	case length >= seoTitleMinLength && length <= seoTitleMaxLength:
		res.add(30)
	default:
		res.add(15)
		res.diagnose(fixable(infoIssue(PillarSEO, "SEO title length is outside the 20-60 character range"), ActionGenerateSEO))
	}

	switch length := utf8.RuneCountInString(strings.TrimSpace(p.SEODescription)); {
	case length == 0:
		res.diagnose(fixable(warningIssue(PillarSEO, "SEO description is missing"), ActionGenerateSEO))
	case length >= seoDescriptionMinLength && length <= seoDescriptionMaxLength:
		res.add(30)
	default:
		res.add(15)
		res.diagnose(infoIssue(PillarSEO, "SEO description length is outside the 100-160 character range"))
	}

	switch keywords := countNonBlank(p.SEOKeywords); {
	case keywords >= seoMinKeywords:
		res.add(20)
	case keywords >= 1:
		res.add(10)
	case countNonBlank(p.Tags) >= seoMinKeywords:
		// Tags double as weak keyword coverage when no keywords are set.
		res.add(8)
	}

	switch overlap := titleDescriptionOverlap(p); {
	case overlap >= 2:
		res.add(20)
	case overlap == 1:
		res.add(10)
	}

	return res
}

// titleDescriptionOverlap counts the title words longer than three characters
// that also appear in the description.
func titleDescriptionOverlap(p ProductData) int {
	description := strings.ToLower(StripMarkup(p.Description))
	if description == "" {
		return 0
	}
	overlap := 0
	seen := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(p.DisplayTitle())) {
		word = strings.Trim(word, ".,!?:;\"'()")
		if utf8.RuneCountInString(word) <= 3 {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		if strings.Contains(description, word) {
			overlap++
		}
	}
	return overlap
}
