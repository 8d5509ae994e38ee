package health

import (
	"strings"
	"testing"
)

const richDescription = `<p>This stainless steel water bottle keeps drinks cold for 24 hours and hot for 12 hours.</p>` +
	`<ul><li>Capacity: 750 ml</li><li>Weight: 320 g</li><li>Leak-proof lid with carry loop</li></ul>` +
	`<p>The double-wall vacuum insulated bottle is made from food-grade 18/8 stainless steel, free of BPA, ` +
	`and fits most car cup holders. Ideal for gym, office and travel.</p>`

func TestScoreDescriptionMissing(t *testing.T) {
	cases := []struct {
		name string
		desc string
	}{
		{"empty", ""},
		{"markup_only", "<p>   </p><br>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := scoreDescription(ProductData{Description: tc.desc})
			if res.finalScore() != 0 {
				t.Fatalf("expected score 0, got %d", res.finalScore())
			}
			if len(res.issues) != 1 || res.issues[0].Severity != SeverityError {
				t.Fatalf("expected a single error issue, got %+v", res.issues)
			}
			if res.issues[0].AutoFixAction != ActionEnrichDescription {
				t.Fatalf("expected %q action, got %q", ActionEnrichDescription, res.issues[0].AutoFixAction)
			}
		})
	}
}

func TestScoreDescriptionRich(t *testing.T) {
	res := scoreDescription(ProductData{
		Title:       "Stainless Steel Water Bottle 750ml Black",
		Description: richDescription,
	})
	if got := res.finalScore(); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestScoreDescriptionMonotonicInLength(t *testing.T) {
	prev := -1
	for _, n := range []int{0, 10, 40, 80, 120, 150} {
		desc := strings.Repeat("a", n)
		score := scoreDescription(ProductData{Description: desc}).finalScore()
		if score < prev {
			t.Fatalf("score decreased from %d to %d at length %d", prev, score, n)
		}
		prev = score
	}
}

func TestScoreDescriptionIdenticalToTitle(t *testing.T) {
	res := scoreDescription(ProductData{
		Title:       "Stainless Steel Water Bottle",
		Description: "Stainless Steel Water Bottle",
	})
	found := false
	for _, issue := range res.issues {
		if issue.Severity == SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a warning for title-identical description, got %+v", res.issues)
	}
}

func TestScoreDescriptionTerminalPunctuation(t *testing.T) {
	base := strings.Repeat("quality product detail ", 10)
	withDot := scoreDescription(ProductData{Description: base + "done."}).finalScore()
	without := scoreDescription(ProductData{Description: base + "done"}).finalScore()
	if withDot <= without {
		t.Fatalf("expected terminal punctuation to score higher: %d vs %d", withDot, without)
	}
}

func TestStripMarkup(t *testing.T) {
	got := StripMarkup("<p>Hello <strong>world</strong> &amp; more</p>")
	if got != "Hello world & more" {
		t.Fatalf("StripMarkup = %q", got)
	}
}
