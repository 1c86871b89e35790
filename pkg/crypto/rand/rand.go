// Package rand provides the entropy sources used for commitment randomness
package rand

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// RandomnessSize is the amount of caller randomness a commitment consumes
const RandomnessSize = 32

// Reader is the default cryptographically secure random number generator
var Reader io.Reader = rand.Reader

// GenerateRandomBytes generates n cryptographically secure random bytes
func GenerateRandomBytes(n int) ([]byte, error) {
	return ReadBytes(Reader, n)
}

// ReadBytes reads exactly n bytes from r
func ReadBytes(r io.Reader, n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrInvalidLength
	}
	if r == nil {
		return nil, ErrNilReader
	}

	bytes := make([]byte, n)
	if _, err := io.ReadFull(r, bytes); err != nil {
		return nil, err
	}

	return bytes, nil
}

// GenerateRandomness returns RandomnessSize bytes from Reader
func GenerateRandomness() ([]byte, error) {
	return GenerateRandomBytes(RandomnessSize)
}

// NewDeterministicReader returns a reproducible stream expanded from seed with
// HKDF-SHA256. It is meant for tests and demos; never use it for real keys.
func NewDeterministicReader(seed, info []byte) io.Reader {
	return hkdf.New(sha256.New, seed, nil, info)
}
