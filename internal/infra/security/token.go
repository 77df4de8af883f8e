package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const defaultTokenBytes = 32

// RandomTokenGenerator mints opaque session tokens from the OS entropy
// pool. Tokens are URL-safe so they survive headers and query strings
// without escaping.
type RandomTokenGenerator struct {
	// Size is the number of random bytes per token, not the encoded
	// length. Zero means defaultTokenBytes.
	Size int
}

func (g RandomTokenGenerator) NewToken() (string, error) {
	n := defaultTokenBytes
	if g.Size > 0 {
		n = g.Size
	}
	raw := make([]byte, n)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("security: reading token entropy: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
