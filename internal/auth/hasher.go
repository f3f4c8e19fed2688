package auth

import (
	"fmt"
	"strings"
)

// Supported password hashing algorithms.
const (
	AlgorithmArgon2ID     = "argon2id"
	AlgorithmBcrypt       = "bcrypt"
	AlgorithmSHA256Static = "sha256-static"
)

// Hasher turns plaintext passwords into stored hashes and checks them.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// MultiHasher hashes with a primary algorithm and verifies any supported
// stored format, so accounts keep working after the primary changes.
type MultiHasher struct {
	primary Hasher
	argon2  *Argon2Hasher
	bcrypt  *BcryptHasher
	legacy  *LegacyHasher
}

// Ensure MultiHasher implements Hasher
var _ Hasher = (*MultiHasher)(nil)

// Options configures NewHasher.
type Options struct {
	Algorithm  string
	LegacySalt string
	BcryptCost int
	Argon2     Argon2Params
}

// NewHasher builds a MultiHasher whose primary algorithm is opts.Algorithm.
func NewHasher(opts Options) (*MultiHasher, error) {
	h := &MultiHasher{
		argon2: NewArgon2Hasher(opts.Argon2),
		bcrypt: NewBcryptHasher(opts.BcryptCost),
		legacy: NewLegacyHasher(opts.LegacySalt),
	}

	switch opts.Algorithm {
	case "", AlgorithmArgon2ID:
		h.primary = h.argon2
	case AlgorithmBcrypt:
		h.primary = h.bcrypt
	case AlgorithmSHA256Static:
		h.primary = h.legacy
	default:
		return nil, fmt.Errorf("unknown password hasher %q", opts.Algorithm)
	}
	return h, nil
}

// Hash hashes password with the primary algorithm.
func (h *MultiHasher) Hash(password string) (string, error) {
	return h.primary.Hash(password)
}

// Verify dispatches on the stored hash format.
func (h *MultiHasher) Verify(password, encoded string) bool {
	switch {
	case strings.HasPrefix(encoded, argon2Prefix):
		return h.argon2.Verify(password, encoded)
	case isBcryptHash(encoded):
		return h.bcrypt.Verify(password, encoded)
	default:
		return h.legacy.Verify(password, encoded)
	}
}
