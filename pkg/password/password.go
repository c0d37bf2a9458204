package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// Hasher hashes and verifies user passwords with bcrypt.
// The plaintext is never stored or returned.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using cost, falling back to DefaultCost when cost is
// not positive and clamping it to the range bcrypt accepts.
func NewHasher(cost int) *Hasher {
	switch {
	case cost <= 0:
		cost = DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Cost returns the effective work factor.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns a salted bcrypt hash of plain. Every call uses a fresh salt.
func (h *Hasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plain matches hash.
// A malformed hash is treated as a mismatch.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
