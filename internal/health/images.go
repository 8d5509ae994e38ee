package health

import (
	"fmt"
	"strings"
)

// scoreImages scores the gallery built from the images array plus the
// primary image URL. A listing with no images at all cannot be published and
// is not auto-fixable: it needs a real asset upload, not generated text.
func scoreImages(p ProductData) pillarResult {
	var res pillarResult

	images := p.AllImages()
	if len(images) == 0 {
		res.diagnose(errorIssue(PillarImages, "Product has no images"))
		return res
	}

	res.add(30)

	if len(images) >= 3 {
		res.add(30)
	} else {
		res.add(30 * float64(len(images)-1) / 2)
		res.diagnose(warningIssue(PillarImages, fmt.Sprintf("Only %d image(s); marketplaces perform best with at least 3", len(images))))
	}

	switch {
	case len(images) >= 5:
		res.add(20)
	case len(images) >= 3:
		res.add(10)
	}

	if strings.TrimSpace(p.ImageURL) != "" {
		res.add(20)
	} else {
		res.diagnose(warningIssue(PillarImages, "No primary image is set"))
	}

	return res
}
