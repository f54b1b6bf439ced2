package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// One-time codes are short numeric values delivered out of band (email).
// They are never stored in plaintext: only the keyed hash produced by
// CodeHmac is persisted, and verification recomputes the HMAC of the
// presented code and compares digests in constant time.

const (
	// CodeMin and CodeMax bound the 6-digit code range. Codes are drawn
	// uniformly from [CodeMin, CodeMax] and are therefore never
	// zero-padded.
	CodeMin = 100000
	CodeMax = 999999
)

// RandomCode returns a 6-digit one-time code as a string.
func RandomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(CodeMax-CodeMin+1))
	if err != nil {
		return "", fmt.Errorf("failed to draw random code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+CodeMin), nil
}

// CodeHmac returns the hex encoded HMAC-SHA256 digest of code under key.
// This is the only form in which one-time codes are persisted.
func CodeHmac(code string, key []byte) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(code))
	return hex.EncodeToString(h.Sum(nil))
}

// CodeHmacEqual reports whether the stored hex digest matches the HMAC of
// the provided code. The comparison is constant time; a mismatch reveals
// nothing about which bytes differed.
func CodeHmacEqual(storedHex, code string, key []byte) bool {
	computed := CodeHmac(code, key)
	return hmac.Equal([]byte(storedHex), []byte(computed))
}

// randomDigits returns n decimal digits drawn independently.
func randomDigits(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to draw random digit: %w", err)
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}

// TrackingNumber returns an opaque shipment tracking identifier of the form
// ALB<10 digits>T.
func TrackingNumber() (string, error) {
	digits, err := randomDigits(10)
	if err != nil {
		return "", err
	}
	return "ALB" + digits + "T", nil
}

// InvoiceNumber returns an opaque invoice identifier of the form
// ALB<10 digits>I.
func InvoiceNumber() (string, error) {
	digits, err := randomDigits(10)
	if err != nil {
		return "", err
	}
	return "ALB" + digits + "I", nil
}
