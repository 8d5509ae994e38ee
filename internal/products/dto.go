package products

import "time"

// ProductRequest is the inbound representation used by create and update.
type ProductRequest struct {
	Title          string   `json:"title"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	ImageURL       string   `json:"imageUrl"`
	Images         []string `json:"images"`
	Price          float64  `json:"price"`
	CostPrice      float64  `json:"costPrice"`
	StockQuantity  *int     `json:"stockQuantity"`
	SKU            string   `json:"sku"`
	Barcode        string   `json:"barcode"`
	Category       string   `json:"category"`
	Brand          string   `json:"brand"`
	Tags           []string `json:"tags"`
	SEOTitle       string   `json:"seoTitle"`
	SEODescription string   `json:"seoDescription"`
	SEOKeywords    []string `json:"seoKeywords"`
	Status         string   `json:"status"`
}

func (req ProductRequest) toProduct() Product {
	return Product{
		Title:          req.Title,
		Name:           req.Name,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		Images:         req.Images,
		Price:          req.Price,
		CostPrice:      req.CostPrice,
		StockQuantity:  req.StockQuantity,
		SKU:            req.SKU,
		Barcode:        req.Barcode,
		Category:       req.Category,
		Brand:          req.Brand,
		Tags:           req.Tags,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
		SEOKeywords:    req.SEOKeywords,
		Status:         req.Status,
	}
}

// ProductResponse is the outward-facing representation of a product.
type ProductResponse struct {
	ProductID      string    `json:"productId"`
	Title          string    `json:"title"`
	Name           string    `json:"name,omitempty"`
	Description    string    `json:"description,omitempty"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	Images         []string  `json:"images,omitempty"`
	Price          float64   `json:"price"`
	CostPrice      float64   `json:"costPrice"`
	StockQuantity  *int      `json:"stockQuantity,omitempty"`
	SKU            string    `json:"sku,omitempty"`
	Barcode        string    `json:"barcode,omitempty"`
	Category       string    `json:"category,omitempty"`
	Brand          string    `json:"brand,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	SEOTitle       string    `json:"seoTitle,omitempty"`
	SEODescription string    `json:"seoDescription,omitempty"`
	SEOKeywords    []string  `json:"seoKeywords,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toResponse(p Product) ProductResponse {
	return ProductResponse{
		ProductID:      p.ID,
		Title:          p.Title,
		Name:           p.Name,
		Description:    p.Description,
		ImageURL:       p.ImageURL,
		Images:         p.Images,
		Price:          p.Price,
		CostPrice:      p.CostPrice,
		StockQuantity:  p.StockQuantity,
		SKU:            p.SKU,
		Barcode:        p.Barcode,
		Category:       p.Category,
		Brand:          p.Brand,
		Tags:           p.Tags,
		SEOTitle:       p.SEOTitle,
		SEODescription: p.SEODescription,
		SEOKeywords:    p.SEOKeywords,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
