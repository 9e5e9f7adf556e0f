package verify

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func init() {
	RegisterFactory("bcrypt", NewBcryptVerifier)
}

// BcryptVerifier compares presented passwords against a bcrypt hash,
// so the clear-text admin password never has to reach the process.
// Hashes are generated with the hash-password command.
type BcryptVerifier struct {
	hash []byte
}

// NewBcryptVerifier creates a verifier for a bcrypt-hashed expected password.
// The secret must be a valid bcrypt hash (e.g. "$2a$10$...").
func NewBcryptVerifier(secret string) (Verifier, error) {
	hash := []byte(secret)
	if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("invalid bcrypt hash: %w", err)
	}
	return &BcryptVerifier{hash: hash}, nil
}

// Name returns the verifier name
func (v *BcryptVerifier) Name() string {
	return "bcrypt"
}

// Verify reports whether password matches the configured hash.
func (v *BcryptVerifier) Verify(password string) bool {
	return bcrypt.CompareHashAndPassword(v.hash, []byte(password)) == nil
}
