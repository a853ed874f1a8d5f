package random

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// Random provides identifiers and random numbers that can be mocked for testing
type Random interface {
	// ID returns a new unique identifier
	ID() string

	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// CryptoRandom implements Random using crypto/rand and random UUIDs
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// ID returns a random (version 4) UUID string
func (r *CryptoRandom) ID() string {
	return uuid.NewString()
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(result.Int64())
}
