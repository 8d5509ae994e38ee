package health

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	titleMinLength = 25
	titleMaxLength = 80
	titleMinWords  = 4
	titleMaxWords  = 12
)

var (
	repeatedBangRe   = regexp.MustCompile(`!{2,}`)
	capsRunRe        = regexp.MustCompile(`[A-Z]{5,}`)
	marketingWordsRe = regexp.MustCompile(`\b(FREE|BEST|CHEAP)\b`)
)

// scoreTitle rewards concise, well-formed, marketplace-safe titles using
// cheap explainable heuristics rather than NLP.
func scoreTitle(p ProductData) pillarResult {
	var res pillarResult

	title := p.DisplayTitle()
	if title == "" {
		res.diagnose(fixable(errorIssue(PillarTitle, "Missing product title"), ActionGenerateTitle))
		return res
	}

	length := utf8.RuneCountInString(title)
	switch {
	case length >= titleMinLength && length <= titleMaxLength:
		res.add(35)
	case length < titleMinLength:
		res.add(35 * float64(length) / titleMinLength)
	default:
		res.add(25)
		res.diagnose(infoIssue(PillarTitle, "Title is longer than 80 characters and may be truncated"))
	}

	words := len(strings.Fields(title))
	switch {
	case words >= titleMinWords && words <= titleMaxWords:
		res.add(25)
	case words < titleMinWords:
		res.add(25 * float64(words) / titleMinWords)
	default:
		res.add(20)
	}

	if first, _ := utf8.DecodeRuneInString(title); unicode.IsUpper(first) {
		res.add(15)
	} else {
		res.diagnose(infoIssue(PillarTitle, "Title should start with an uppercase letter"))
	}

	if hasSpamPattern(title) {
		res.diagnose(warningIssue(PillarTitle, "Title contains spammy patterns (repeated punctuation, all-caps or marketing words)"))
	} else {
		res.add(15)
	}

	if !hasSloppyPunctuation(title) {
		res.add(10)
	}

	return res
}

func hasSpamPattern(title string) bool {
	return repeatedBangRe.MatchString(title) ||
		capsRunRe.MatchString(title) ||
		marketingWordsRe.MatchString(title)
}

func hasSloppyPunctuation(title string) bool {
	return strings.Contains(title, "  ") ||
		strings.Contains(title, "???") ||
		strings.Contains(title, "...")
}
