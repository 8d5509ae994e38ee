package health

import (
	"fmt"
	"strings"
)

const minHealthyMarginPercent = 20

// scorePricing evaluates selling price, cost margin, stock level and
// lifecycle status. Unknown stock (nil) earns partial credit: it is not
// penalized as harshly as a confirmed empty shelf.
func scorePricing(p ProductData) pillarResult {
	var res pillarResult

	if p.Price <= 0 {
		res.diagnose(errorIssue(PillarPricing, "Product has no selling price"))
		return res
	}

	res.add(35)

	if p.CostPrice > 0 {
		res.add(15)
		margin := (p.Price - p.CostPrice) / p.Price * 100
		if margin >= minHealthyMarginPercent {
			res.add(10)
		} else {
			res.diagnose(warningIssue(PillarPricing, fmt.Sprintf("Margin is only %.1f%% (target ≥ %d%%)", margin, minHealthyMarginPercent)))
		}
	}

	switch {
	case p.StockQuantity == nil:
		res.add(10)
	case *p.StockQuantity > 5:
		res.add(25)
	case *p.StockQuantity > 0:
		res.add(15)
		res.diagnose(warningIssue(PillarPricing, fmt.Sprintf("Low stock (%d units)", *p.StockQuantity)))
	default:
		res.diagnose(errorIssue(PillarPricing, "Product is out of stock"))
	}

	switch strings.ToLower(strings.TrimSpace(p.Status)) {
	case "active":
		res.add(15)
	case "draft":
		res.add(5)
	}

	return res
}
