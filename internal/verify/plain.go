package verify

import (
	"crypto/sha256"
	"crypto/subtle"
)

func init() {
	RegisterFactory("plain", NewPlainVerifier)
}

// PlainVerifier compares presented passwords against a clear-text secret.
// Both sides are hashed before the comparison so that the comparison time
// is independent of the password length and content.
type PlainVerifier struct {
	digest [sha256.Size]byte
}

// NewPlainVerifier creates a verifier for a clear-text expected password.
func NewPlainVerifier(secret string) (Verifier, error) {
	return &PlainVerifier{digest: sha256.Sum256([]byte(secret))}, nil
}

// Name returns the verifier name
func (v *PlainVerifier) Name() string {
	return "plain"
}

// Verify reports whether password matches the configured secret.
func (v *PlainVerifier) Verify(password string) bool {
	digest := sha256.Sum256([]byte(password))
	return subtle.ConstantTimeCompare(v.digest[:], digest[:]) == 1
}
