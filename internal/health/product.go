package health

import "strings"

// ProductData is the read-only product record the engine scores. It is
// supplied by the caller (typically the products repository) and is never
// mutated; every report is freshly constructed.
type ProductData struct {
	ID             string   `json:"id"`
	Title          string   `json:"title,omitempty"`
	Name           string   `json:"name,omitempty"`
	Description    string   `json:"description,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
	Images         []string `json:"images,omitempty"`
	Price          float64  `json:"price,omitempty"`
	CostPrice      float64  `json:"cost_price,omitempty"`
	StockQuantity  *int     `json:"stock_quantity,omitempty"`
	SKU            string   `json:"sku,omitempty"`
	Barcode        string   `json:"barcode,omitempty"`
	Category       string   `json:"category,omitempty"`
	Brand          string   `json:"brand,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	SEOTitle       string   `json:"seo_title,omitempty"`
	SEODescription string   `json:"seo_description,omitempty"`
	SEOKeywords    []string `json:"seo_keywords,omitempty"`
	Status         string   `json:"status,omitempty"`
}

// DisplayTitle returns the listing title, falling back to the product name.
func (p ProductData) DisplayTitle() string {
	if t := strings.TrimSpace(p.Title); t != "" {
		return t
	}
	return strings.TrimSpace(p.Name)
}

// AllImages returns the image gallery with the primary image URL included
// once. Blank entries are dropped.
func (p ProductData) AllImages() []string {
	out := make([]string, 0, len(p.Images)+1)
	seen := make(map[string]struct{}, len(p.Images)+1)
	for _, img := range p.Images {
		trimmed := strings.TrimSpace(img)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if primary := strings.TrimSpace(p.ImageURL); primary != "" {
		if _, ok := seen[primary]; !ok {
			out = append(out, primary)
		}
	}
	return out
}
