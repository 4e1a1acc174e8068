package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signer computes and checks detached signatures over session payloads
type Signer interface {
	// Sign returns the signature of payload
	Sign(payload string) string

	// Verify reports whether signature matches payload, in constant time
	Verify(payload, signature string) bool
}

// HMACSigner implements Signer using symmetric HMAC-SHA256 with lowercase hex output
type HMACSigner struct {
	secret []byte
}

var _ Signer = (*HMACSigner)(nil)

// NewHMACSigner creates a new HMAC signer with the given secret
func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{
		secret: []byte(secret),
	}
}

func (h *HMACSigner) Sign(payload string) string {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func (h *HMACSigner) Verify(payload, signature string) bool {
	expected := h.Sign(payload)
	if len(signature) != len(expected) {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(signature))
}
