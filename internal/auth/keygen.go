// Package auth provides API key generation and request identity helpers.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// KeyBytes is the amount of randomness in a generated API key.
// 32 bytes gives 256 bits of entropy.
const KeyBytes = 32

// GenerateAPIKey creates a new opaque API key: KeyBytes of random data,
// URL-safe base64 encoded without padding. The key is stored as-is and
// matched exactly on lookup.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, KeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
