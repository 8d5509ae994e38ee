package health

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	descriptionMinLength = 150
	descriptionMaxLength = 2000
	descriptionMinWords  = 30
)

var (
	markupTagRe       = regexp.MustCompile(`<[^>]+>`)
	structuralHTMLRe  = regexp.MustCompile(`(?i)</?(ul|ol|li|h[1-6]|p|br|strong|em|b)\b`)
	structuralMarkRe  = regexp.MustCompile(`(?m)^\s*([-*•]\s|#{1,6}\s)`)
	digitRe           = regexp.MustCompile(`\d`)
	measurementUnitRe = regexp.MustCompile(`(?i)\b(cm|mm|kg|g|ml|l|w|v)\b`)
)

// StripMarkup removes HTML tags and entities and collapses whitespace,
// leaving the plain text a shopper would read.
func StripMarkup(raw string) string {
	text := markupTagRe.ReplaceAllString(raw, " ")
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}

func scoreDescription(p ProductData) pillarResult {
	var res pillarResult

	raw := p.Description
	stripped := StripMarkup(raw)
	if stripped == "" {
		res.diagnose(fixable(errorIssue(PillarDescription, "Missing product description"), ActionEnrichDescription))
		return res
	}

	length := utf8.RuneCountInString(stripped)
	switch {
	case length >= descriptionMinLength && length <= descriptionMaxLength:
		res.add(35)
	case length < descriptionMinLength:
		res.add(35 * float64(length) / descriptionMinLength)
	default:
		res.add(30)
	}

	words := len(strings.Fields(stripped))
	if words >= descriptionMinWords {
		res.add(20)
	} else {
		res.add(20 * float64(words) / descriptionMinWords)
	}

	switch {
	case hasStructuralMarkup(raw):
		res.add(15)
	case length > 200:
		res.add(8)
	}

	if digitRe.MatchString(stripped) {
		res.add(10)
	}
	if measurementUnitRe.MatchString(stripped) {
		res.add(5)
	}

	if endsWithTerminalPunctuation(stripped) {
		res.add(10)
	} else {
		res.diagnose(infoIssue(PillarDescription, "Description does not end with terminal punctuation"))
	}

	if strings.EqualFold(stripped, p.DisplayTitle()) {
		res.diagnose(warningIssue(PillarDescription, "Description is identical to the title"))
	} else {
		res.add(5)
	}

	return res
}

func hasStructuralMarkup(raw string) bool {
	return structuralHTMLRe.MatchString(raw) || structuralMarkRe.MatchString(raw)
}

func endsWithTerminalPunctuation(text string) bool {
	last, _ := utf8.DecodeLastRuneInString(text)
	switch last {
	case '.', '!', '?':
		return true
	default:
		return false
	}
}
