// Package hash exposes the digest and key-derivation primitives the signature
// engine ships alongside: SHA-256, SHA-512, BLAKE2b-256, RIPEMD-160,
// Keccak-256, HKDF and an Argon2 KDF. None of these carry protocol logic.
package hash

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for address digests
	"golang.org/x/crypto/sha3"
)

// Algorithm identifies a digest function
type Algorithm int

const (
	// SHA256 uses SHA-256 hash function
	SHA256 Algorithm = iota
	// SHA512 uses SHA-512 hash function
	SHA512
	// Blake2b256 uses unkeyed BLAKE2b with a 32-byte output
	Blake2b256
	// RIPEMD160 uses RIPEMD-160
	RIPEMD160
	// Keccak256 uses the original (pre-SHA3) Keccak-256
	Keccak256
)

var algorithmNames = map[Algorithm]string{
	SHA256:     "sha256",
	SHA512:     "sha512",
	Blake2b256: "blake2b",
	RIPEMD160:  "ripemd160",
	Keccak256:  "keccak256",
}

// String returns the algorithm name
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// ParseAlgorithm maps a name such as "sha256" or "blake2b" to an Algorithm
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for alg, n := range algorithmNames {
		if n == name {
			return alg, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownAlgorithm)
}

// New returns a fresh hash.Hash for the algorithm
func New(alg Algorithm) (hash.Hash, error) {
	switch alg {
	case SHA256:
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	case Blake2b256:
		return blake2b.New256(nil)
	case RIPEMD160:
		return ripemd160.New(), nil
	case Keccak256:
		return sha3.NewLegacyKeccak256(), nil
	default:
		return nil, ErrUnknownAlgorithm
	}
}

// Sum digests the concatenation of data with the given algorithm
func Sum(alg Algorithm, data ...[]byte) ([]byte, error) {
	h, err := New(alg)
	if err != nil {
		return nil, err
	}
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil), nil
}

// Sha256 computes SHA-256 of data
func Sha256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// Sha512 computes SHA-512 of data
func Sha512(data []byte) []byte {
	sum := sha512.Sum512(data)
	return sum[:]
}

// Blake2b computes the 32-byte BLAKE2b digest of data
func Blake2b(data []byte) []byte {
	sum := blake2b.Sum256(data)
	return sum[:]
}

// Ripemd160 computes RIPEMD-160 of data
func Ripemd160(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)
}

// Keccak computes legacy Keccak-256 of data
func Keccak(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// HKDF derives key material using HKDF-SHA256
func HKDF(secret, salt, info []byte, length int) ([]byte, error) {
	if length <= 0 {
		return nil, ErrInvalidLength
	}

	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, salt, info), out); err != nil {
		return nil, err
	}
	return out, nil
}
