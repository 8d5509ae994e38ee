package extract

import (
	"context"
	"strings"
	"testing"
)

func TestExtractTextFromBytes_SniffsPDFHeader(t *testing.T) {
	// A %PDF- prefix is enough to route through the PDF parser; a truncated
	// body must surface a parser error rather than an unsupported-mime error.
	data := []byte("%PDF-1.4 truncated")

	_, err := ExtractTextFromBytes(context.Background(), data, "application/octet-stream", "sheet.bin")
	if err == nil {
		t.Fatal("expected parser error for truncated pdf")
	}
	if strings.Contains(err.Error(), "unsupported mime type") {
		t.Fatalf("expected pdf routing by sniffed header, got: %v", err)
	}
}

func TestExtractTextFromBytes_RejectsUnknownMime(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("hello"), "text/csv", "rows.csv")
	if err == nil {
		t.Fatal("expected unsupported mime error")
	}
	if !strings.Contains(err.Error(), "unsupported mime type: text/csv") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizeMimeTypeByExtension(t *testing.T) {
	if got := normalizeMimeType("application/octet-stream", "sheet.PDF", nil); got != "application/pdf" {
		t.Fatalf("expected pdf from extension, got %s", got)
	}
	if got := normalizeMimeType("Application/PDF; charset=binary", "sheet.pdf", nil); got != "application/pdf" {
		t.Fatalf("expected normalized pdf mime, got %s", got)
	}
}
