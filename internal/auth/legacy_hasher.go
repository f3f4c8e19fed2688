package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// DefaultLegacySalt is the application-wide suffix used by hashes written
// before per-account salting.
const DefaultLegacySalt = "BreakThroughSalt"

// LegacyHasher computes base64(SHA-256(password + suffix)).
// Every account shares the suffix, so identical passwords hash identically.
type LegacyHasher struct {
	suffix string
}

// NewLegacyHasher creates a legacy hasher; an empty suffix selects DefaultLegacySalt.
func NewLegacyHasher(suffix string) *LegacyHasher {
	if suffix == "" {
		suffix = DefaultLegacySalt
	}
	return &LegacyHasher{suffix: suffix}
}

// Hash never fails.
func (h *LegacyHasher) Hash(password string) (string, error) {
	return h.digest(password), nil
}

// Verify recomputes the digest and compares in constant time.
func (h *LegacyHasher) Verify(password, encoded string) bool {
	return subtle.ConstantTimeCompare([]byte(h.digest(password)), []byte(encoded)) == 1
}

func (h *LegacyHasher) digest(password string) string {
	sum := sha256.Sum256([]byte(password + h.suffix))
	return base64.StdEncoding.EncodeToString(sum[:])
}
