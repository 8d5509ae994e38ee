package health

import "strings"

// scoreIdentifiers checks the fields marketplaces use to match and classify
// listings. There is no hard-zero case: a product with nothing set still
// scores 0 additively.
func scoreIdentifiers(p ProductData) pillarResult {
	var res pillarResult

	if strings.TrimSpace(p.SKU) != "" {
		res.add(30)
	} else {
		res.diagnose(warningIssue(PillarIdentifiers, "Product has no SKU"))
	}

	if strings.TrimSpace(p.Category) != "" {
		res.add(25)
	} else {
		res.diagnose(fixable(warningIssue(PillarIdentifiers, "Product is not categorized"), ActionCategorize))
	}

	if strings.TrimSpace(p.Brand) != "" {
		res.add(20)
	} else {
		res.diagnose(infoIssue(PillarIdentifiers, "Brand is not set"))
	}

	// Barcode is advisory: present earns points, absent costs nothing more.
	if strings.TrimSpace(p.Barcode) != "" {
		res.add(15)
	}

	switch tags := countNonBlank(p.Tags); {
	case tags >= 2:
		res.add(10)
	case tags == 1:
		res.add(5)
	}

	return res
}

func countNonBlank(values []string) int {
	count := 0
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			count++
		}
	}
	return count
}
