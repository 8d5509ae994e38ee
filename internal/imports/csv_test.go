package imports

import (
	"strings"
	"testing"
)

func TestParseCSVMapsAliasedColumns(t *testing.T) {
	input := strings.Join([]string{
		"Product Title,Body,Sell Price,Cost,Quantity,GTIN,Vendor,Tags,Images",
		`Canvas Tote,"Sturdy cotton tote bag.","24,90",8.5,100,0123456789012,Totely,"eco|cotton","a.jpg|b.jpg"`,
	}, "\n")

	rows, rowErrs, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("unexpected row errors: %v", rowErrs)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	p := rows[0]
	if p.Title != "Canvas Tote" {
		t.Fatalf("unexpected title %q", p.Title)
	}
	if p.Description != "Sturdy cotton tote bag." {
		t.Fatalf("unexpected description %q", p.Description)
	}
	if p.Price != 24.9 {
		t.Fatalf("expected comma decimal parsed as 24.9, got %v", p.Price)
	}
	if p.CostPrice != 8.5 {
		t.Fatalf("unexpected cost price %v", p.CostPrice)
	}
	if p.StockQuantity == nil || *p.StockQuantity != 100 {
		t.Fatalf("unexpected stock quantity %v", p.StockQuantity)
	}
	if p.Barcode != "0123456789012" {
		t.Fatalf("unexpected barcode %q", p.Barcode)
	}
	if p.Brand != "Totely" {
		t.Fatalf("unexpected brand %q", p.Brand)
	}
	if len(p.Tags) != 2 || p.Tags[0] != "eco" {
		t.Fatalf("unexpected tags %v", p.Tags)
	}
	if len(p.Images) != 2 || p.Images[1] != "b.jpg" {
		t.Fatalf("unexpected images %v", p.Images)
	}
	if p.Status != "draft" {
		t.Fatalf("expected draft status, got %q", p.Status)
	}
}

func TestParseCSVReportsBadRows(t *testing.T) {
	input := strings.Join([]string{
		"title,price,stock",
		"Good Mug,9.99,5",
		",9.99,5",
		"Bad Price,abc,5",
		"Bad Stock,9.99,-2",
	}, "\n")

	rows, rowErrs, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 1 || rows[0].Title != "Good Mug" {
		t.Fatalf("expected only the good row, got %v", rows)
	}
	if len(rowErrs) != 3 {
		t.Fatalf("expected 3 row errors, got %v", rowErrs)
	}
	// Row numbers count the header line.
	if rowErrs[0].Row != 3 || rowErrs[0].Issue != "missing title" {
		t.Fatalf("unexpected first error: %+v", rowErrs[0])
	}
	if !strings.Contains(rowErrs[1].Issue, "invalid price") {
		t.Fatalf("unexpected second error: %+v", rowErrs[1])
	}
	if !strings.Contains(rowErrs[2].Issue, "invalid stock quantity") {
		t.Fatalf("unexpected third error: %+v", rowErrs[2])
	}
}

func TestParseCSVRejectsUnknownHeader(t *testing.T) {
	input := "foo,bar\n1,2\n"
	_, _, err := ParseCSV(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected header error")
	}
	if !strings.Contains(err.Error(), "no recognized columns") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizeHeaderStripsBOM(t *testing.T) {
	if got := normalizeHeader("\ufeffTitle"); got != "title" {
		t.Fatalf("expected BOM stripped, got %q", got)
	}
	if got := normalizeHeader(" Cost-Price "); got != "cost_price" {
		t.Fatalf("expected normalized header, got %q", got)
	}
}
