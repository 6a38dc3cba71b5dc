package services

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// SignatureService verifies webhook authenticity: the processor sends an
// HMAC-SHA512 of the raw request body, hex encoded, keyed by the shared
// secret.
type SignatureService struct {
	secret []byte
}

func NewSignatureService(secret string) *SignatureService {
	return &SignatureService{secret: []byte(secret)}
}

// Verify checks the signature header against the exact body bytes as
// received on the wire. Re-serializing a parsed structure is not equivalent:
// any formatting difference changes the digest, so callers must pass the
// transport-captured raw body.
func (s *SignatureService) Verify(rawBody []byte, signature string) bool {
	if len(s.secret) == 0 || signature == "" {
		return false
	}
	expected := s.Sign(rawBody)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the lowercase hex HMAC-SHA512 of the body. Used by tests and
// local tooling to produce valid signatures.
func (s *SignatureService) Sign(rawBody []byte) string {
	mac := hmac.New(sha512.New, s.secret)
	mac.Write(rawBody)
	return hex.EncodeToString(mac.Sum(nil))
}
