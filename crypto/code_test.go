package crypto

import (
	"strconv"
	"strings"
	"testing"
)

func TestRandomCodeRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := RandomCode()
		if err != nil {
			t.Fatalf("RandomCode failed: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digit code, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric: %v", code, err)
		}
		if n < CodeMin || n > CodeMax {
			t.Fatalf("code %d outside [%d, %d]", n, CodeMin, CodeMax)
		}
	}
}

func TestCodeHmac(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")

	digest := CodeHmac("123456", key)
	if len(digest) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(digest))
	}

	if !CodeHmacEqual(digest, "123456", key) {
		t.Error("expected digest to match its own code")
	}
	if CodeHmacEqual(digest, "123457", key) {
		t.Error("expected different code to mismatch")
	}
	if CodeHmacEqual(digest, "123456", []byte("another-key-another-key-another!")) {
		t.Error("expected different key to mismatch")
	}
	if CodeHmacEqual("", "123456", key) {
		t.Error("expected empty stored digest to mismatch")
	}
}

func TestCodeHmacDeterministic(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	if CodeHmac("654321", key) != CodeHmac("654321", key) {
		t.Error("HMAC of the same code and key must be stable")
	}
}

func TestTrackingAndInvoiceNumbers(t *testing.T) {
	tn, err := TrackingNumber()
	if err != nil {
		t.Fatalf("TrackingNumber failed: %v", err)
	}
	if len(tn) != 14 || !strings.HasPrefix(tn, "ALB") || !strings.HasSuffix(tn, "T") {
		t.Errorf("unexpected tracking number format: %q", tn)
	}

	in, err := InvoiceNumber()
	if err != nil {
		t.Fatalf("InvoiceNumber failed: %v", err)
	}
	if len(in) != 14 || !strings.HasPrefix(in, "ALB") || !strings.HasSuffix(in, "I") {
		t.Errorf("unexpected invoice number format: %q", in)
	}
}
