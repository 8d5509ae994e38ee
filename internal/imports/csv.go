package imports

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"catalog-backend/internal/products"
)

// ErrInvalidFile marks a file that could not be parsed at all, as opposed to
// one with a few bad rows.
var ErrInvalidFile = errors.New("invalid file")

// RowError describes one rejected CSV row. Row numbers are 1-based and count
// the header.
type RowError struct {
	Row   int    `json:"row"`
	Issue string `json:"issue"`
}

// Canonical header names the importer understands, keyed by the aliases seen
// in supplier exports.
var columnAliases = map[string]string{
	"title":           "title",
	"product_title":   "title",
	"name":            "name",
	"product_name":    "name",
	"description":     "description",
	"body":            "description",
	"price":           "price",
	"sell_price":      "price",
	"cost":            "cost_price",
	"cost_price":      "cost_price",
	"stock":           "stock_quantity",
	"stock_quantity":  "stock_quantity",
	"quantity":        "stock_quantity",
	"sku":             "sku",
	"barcode":         "barcode",
	"gtin":            "barcode",
	"ean":             "barcode",
	"brand":           "brand",
	"vendor":          "brand",
	"category":        "category",
	"tags":            "tags",
	"image":           "image_url",
	"image_url":       "image_url",
	"images":          "images",
	"seo_title":       "seo_title",
	"seo_description": "seo_description",
	"seo_keywords":    "seo_keywords",
}

// ParseCSV reads a product export and maps each row onto a draft product.
// Rows that cannot be mapped are reported individually; only an unreadable
// header fails the whole parse.
func ParseCSV(r io.Reader) ([]products.Product, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read header: %v", ErrInvalidFile, err)
	}

	columns := make(map[int]string, len(header))
	for i, name := range header {
		if canonical, ok := columnAliases[normalizeHeader(name)]; ok {
			columns[i] = canonical
		}
	}
	if len(columns) == 0 {
		return nil, nil, fmt.Errorf("%w: no recognized columns in header", ErrInvalidFile)
	}

	var out []products.Product
	var rowErrs []RowError
	row := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: row, Issue: "unreadable row"})
			continue
		}

		p, issue := mapRow(columns, record)
		if issue != "" {
			rowErrs = append(rowErrs, RowError{Row: row, Issue: issue})
			continue
		}
		out = append(out, p)
	}
	return out, rowErrs, nil
}

func mapRow(columns map[int]string, record []string) (products.Product, string) {
	var p products.Product
	p.Status = products.StatusDraft

	for i, canonical := range columns {
		if i >= len(record) {
			continue
		}
		value := strings.TrimSpace(record[i])
		if value == "" {
			continue
		}
		switch canonical {
		case "title":
			p.Title = value
		case "name":
			p.Name = value
		case "description":
			p.Description = value
		case "price":
			parsed, err := parsePrice(value)
			if err != nil {
				return products.Product{}, fmt.Sprintf("invalid price %q", value)
			}
			p.Price = parsed
		case "cost_price":
			parsed, err := parsePrice(value)
			if err != nil {
				return products.Product{}, fmt.Sprintf("invalid cost price %q", value)
			}
			p.CostPrice = parsed
		case "stock_quantity":
			parsed, err := strconv.Atoi(value)
			if err != nil || parsed < 0 {
				return products.Product{}, fmt.Sprintf("invalid stock quantity %q", value)
			}
			p.StockQuantity = &parsed
		case "sku":
			p.SKU = value
		case "barcode":
			p.Barcode = value
		case "brand":
			p.Brand = value
		case "category":
			p.Category = value
		case "tags":
			p.Tags = splitList(value)
		case "image_url":
			p.ImageURL = value
		case "images":
			p.Images = splitList(value)
		case "seo_title":
			p.SEOTitle = value
		case "seo_description":
			p.SEODescription = value
		case "seo_keywords":
			p.SEOKeywords = splitList(value)
		}
	}

	if strings.TrimSpace(p.Title) == "" && strings.TrimSpace(p.Name) == "" {
		return products.Product{}, "missing title"
	}
	return p, ""
}

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}

// parsePrice accepts both dot and comma decimal separators.
func parsePrice(value string) (float64, error) {
	cleaned := strings.ReplaceAll(value, ",", ".")
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("parse price %q", value)
	}
	return parsed, nil
}

func splitList(value string) []string {
	sep := ","
	if strings.Contains(value, "|") {
		sep = "|"
	}
	parts := strings.Split(value, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
