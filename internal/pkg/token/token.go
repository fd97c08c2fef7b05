package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewVerificationToken generates an opaque 32-character hex token carrying
// 128 bits of randomness. Collisions across users are left to the database's
// uniqueness constraint; they are not retried here.
func NewVerificationToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate verification token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
