package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
)

// checkForPRNG panics if no cryptographically secure PRNG is available.
func checkForPRNG() {
	buf := make([]byte, 1)
	_, err := io.ReadFull(rand.Reader, buf)

	if err != nil {
		panic(fmt.Sprintf("crypto/rand is unavailable: Read() failed with %#v", err))
	}
}

// generateToken generates a secure random CSRF token.
func generateToken(length int) []byte {
	bytes := make([]byte, length)

	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		panic(err)
	}

	return bytes
}

// encodeToken encodes a token to a base64 string.
func encodeToken(token []byte) string {
	return base64.URLEncoding.EncodeToString(token)
}

// tokenEqual compares two encoded tokens in constant time.
func tokenEqual(a, b string) bool {
	decodedA, err := base64.URLEncoding.DecodeString(a)
	if err != nil {
		return false
	}
	decodedB, err := base64.URLEncoding.DecodeString(b)
	if err != nil {
		return false
	}
	if len(decodedA) == 0 || len(decodedB) == 0 {
		return false
	}

	return subtle.ConstantTimeCompare(decodedA, decodedB) == 1
}
