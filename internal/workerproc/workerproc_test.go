package workerproc

import (
	"testing"

	"catalog-backend/internal/queue"
)

func TestParseMessageValid(t *testing.T) {
	body, err := queue.EncodeMessage(queue.Message{ScanID: "scan-1", RequestID: "req-1", Version: 1})
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}

	msg, meta, err := ParseMessage(string(body))
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if msg.ScanID != "scan-1" || msg.RequestID != "req-1" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if meta.BodyLen != len(body) || meta.BodySHA == "" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestParseMessageEmptyBody(t *testing.T) {
	_, _, err := ParseMessage("   ")
	if _, ok := err.(ErrEmptyBody); !ok {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
}

func TestParseMessageBadJSON(t *testing.T) {
	_, _, err := ParseMessage("{not json")
	if _, ok := err.(ErrDecode); !ok {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestParseMessageMissingScanID(t *testing.T) {
	body, _ := queue.EncodeMessage(queue.Message{RequestID: "req-9"})
	_, _, err := ParseMessage(string(body))
	missing, ok := err.(ErrMissingScanID)
	if !ok {
		t.Fatalf("expected ErrMissingScanID, got %v", err)
	}
	if missing.RequestID != "req-9" {
		t.Fatalf("expected request id carried through, got %q", missing.RequestID)
	}
}
