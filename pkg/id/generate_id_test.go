package id

import (
	"encoding/hex"
	"regexp"
	"testing"
	"time"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

func TestNewID32_FormatAndDecode(t *testing.T) {
	got := NewID32()

	// length
	if len(got) != 32 {
		t.Fatalf("length = %d, want 32 (got=%q)", len(got), got)
	}
	// lowercase hex only (no separators/prefixes)
	if !reHex32.MatchString(got) {
		t.Fatalf("not 32-char lowercase hex: %q", got)
	}
	// decodes to exactly 16 bytes
	b, err := hex.DecodeString(got)
	if err != nil {
		t.Fatalf("hex.DecodeString error: %v", err)
	}
	if len(b) != 16 {
		t.Fatalf("decoded bytes = %d, want 16", len(b))
	}
}

func TestNewID32_Uniqueness(t *testing.T) {
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := NewID32()
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id after %d iterations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewLoanNumber_Format(t *testing.T) {
	at := time.Date(2024, 1, 20, 15, 4, 5, 0, time.UTC)
	got := NewLoanNumber(at)

	re := regexp.MustCompile(`^LN240120\d{4}$`)
	if !re.MatchString(got) {
		t.Fatalf("loan number %q does not match LN<yymmdd><4 digits>", got)
	}
}

func TestNewLoanNumber_DateIsUTC(t *testing.T) {
	// 23:30 on Jan 20 in UTC+8 is Jan 20 15:30 UTC; the encoded date must
	// come from the UTC clock, not the local one.
	loc := time.FixedZone("UTC+8", 8*3600)
	at := time.Date(2024, 1, 21, 7, 30, 0, 0, loc)
	got := NewLoanNumber(at)
	if got[2:8] != "240120" {
		t.Fatalf("loan number %q encodes %q, want UTC date 240120", got, got[2:8])
	}
}

func TestNewReceiptNumber_Format(t *testing.T) {
	got := NewReceiptNumber()
	re := regexp.MustCompile(`^RC[a-f0-9]{10}$`)
	if !re.MatchString(got) {
		t.Fatalf("receipt number %q does not match RC<10 hex>", got)
	}
}
