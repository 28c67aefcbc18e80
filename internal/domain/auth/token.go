package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// NewToken returns TokenBytes of randomness from crypto/rand, hex-encoded.
func NewToken() (string, error) {
	return newTokenFrom(rand.Reader)
}

func newTokenFrom(r io.Reader) (string, error) {
	b := make([]byte, TokenBytes)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
