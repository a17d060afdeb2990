package client

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the hex-encoded SHA-256 digest of the plaintext.
// The API's registration schema stores this digest, not the plaintext, so
// both register and login submit it. The digest is not a security boundary
// on its own; the server salts and re-hashes it and the channel is TLS.
func HashPassword(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
