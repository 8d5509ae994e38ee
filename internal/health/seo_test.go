package health

import "testing"

func TestScoreSEOComplete(t *testing.T) {
	res := scoreSEO(ProductData{
		Title:          "Stainless Steel Water Bottle 750ml Black",
		Description:    richDescription,
		SEOTitle:       "Insulated Stainless Steel Water Bottle 750ml",
		SEODescription: "Keep drinks cold for 24 hours with this leak-proof insulated stainless steel water bottle. BPA free, fits car cup holders.",
		SEOKeywords:    []string{"water bottle", "insulated", "stainless steel", "750ml"},
	})
	if got := res.finalScore(); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestScoreSEOMissingFieldsFixable(t *testing.T) {
	res := scoreSEO(ProductData{})
	warnings := 0
	for _, issue := range res.issues {
		if issue.Severity == SeverityWarning {
			warnings++
			if issue.AutoFixAction == "" && issue.Pillar == PillarSEO {
				if issue.Message == "SEO title is missing" {
					t.Fatalf("missing SEO title should carry an auto-fix hint: %+v", issue)
				}
			}
		}
	}
	if warnings != 2 {
		t.Fatalf("expected warnings for missing SEO title and description, got %+v", res.issues)
	}
	if res.finalScore() != 0 {
		t.Fatalf("expected 0, got %d", res.finalScore())
	}
}

func TestScoreSEOTitleOutsideRange(t *testing.T) {
	res := scoreSEO(ProductData{SEOTitle: "Too short"})
	if res.finalScore() != 15 {
		t.Fatalf("expected 15 for out-of-range SEO title, got %d", res.finalScore())
	}
	found := false
	for _, issue := range res.issues {
		if issue.Severity == SeverityInfo && issue.Fixable {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected fixable info issue, got %+v", res.issues)
	}
}

func TestScoreSEOKeywordFallbackToTags(t *testing.T) {
	tagged := scoreSEO(ProductData{Tags: []string{"a", "b", "c"}})
	bare := scoreSEO(ProductData{})
	if tagged.finalScore()-bare.finalScore() != 8 {
		t.Fatalf("expected tags fallback worth 8 points, got %d vs %d",
			tagged.finalScore(), bare.finalScore())
	}
}

func TestTitleDescriptionOverlap(t *testing.T) {
	cases := []struct {
		name  string
		p     ProductData
		want  int
	}{
		{
			name: "two_words",
			p: ProductData{
				Title:       "Steel Bottle Large",
				Description: "A steel bottle for hiking.",
			},
			want: 2,
		},
		{
			name: "short_words_ignored",
			p: ProductData{
				Title:       "Big Red Mug Set",
				Description: "big red mug set",
			},
			want: 0,
		},
		{
			name: "no_description",
			p:    ProductData{Title: "Steel Bottle Large"},
			want: 0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := titleDescriptionOverlap(tc.p); got != tc.want {
				t.Fatalf("overlap = %d, want %d", got, tc.want)
			}
		})
	}
}
