package id

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewLoanNumber returns a human-readable loan number: "LN" + yymmdd + a
// 4-digit random suffix, e.g. LN2603125731. Uniqueness is enforced by the
// database; callers retry on duplicate-key errors.
func NewLoanNumber(at time.Time) string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	suffix := binary.BigEndian.Uint32(b[:]) % 10000
	return fmt.Sprintf("LN%s%04d", at.UTC().Format("060102"), suffix)
}

// NewReceiptNumber returns "RC" + 10 hex characters, used when the caller
// does not supply an external receipt reference.
func NewReceiptNumber() string {
	b := make([]byte, 5)
	_, _ = rand.Read(b)
	return "RC" + hex.EncodeToString(b)
}
