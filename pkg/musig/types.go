package musig

import (
	"encoding/hex"
	"fmt"
)

const (
	// SignatureSize is the length of a signature and of a partial signature
	SignatureSize = 64

	// ScalarSize is the length of an encoded scalar
	ScalarSize = 32

	// NonceSize is the length of the nonce half of a signature
	NonceSize = 32
)

// Signature is the final signature: the encoded aggregate nonce followed by
// the aggregate s.
type Signature [SignatureSize]byte

// PartialSignature is one signer's contribution: the encoded aggregate nonce
// followed by that signer's s_i.
type PartialSignature [SignatureSize]byte

// ParseSignature copies a 64-byte signature
func ParseSignature(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureSize {
		return sig, fmt.Errorf("%w: got %d bytes", ErrInvalidSignature, len(b))
	}
	copy(sig[:], b)
	return sig, nil
}

// ParsePartialSignature copies a 64-byte partial signature
func ParsePartialSignature(b []byte) (PartialSignature, error) {
	var ps PartialSignature
	if len(b) != SignatureSize {
		return ps, fmt.Errorf("%w: got %d bytes", ErrInvalidSignature, len(b))
	}
	copy(ps[:], b)
	return ps, nil
}

// Bytes returns a copy of the signature bytes
func (s Signature) Bytes() []byte { return append([]byte(nil), s[:]...) }

// Nonce returns the encoded aggregate nonce
func (s Signature) Nonce() []byte { return append([]byte(nil), s[:NonceSize]...) }

// S returns the scalar half
func (s Signature) S() []byte { return append([]byte(nil), s[NonceSize:]...) }

func (s Signature) String() string { return hex.EncodeToString(s[:]) }

// Bytes returns a copy of the partial signature bytes
func (p PartialSignature) Bytes() []byte { return append([]byte(nil), p[:]...) }

// Nonce returns the encoded aggregate nonce
func (p PartialSignature) Nonce() []byte { return append([]byte(nil), p[:NonceSize]...) }

// S returns this signer's scalar
func (p PartialSignature) S() []byte { return append([]byte(nil), p[NonceSize:]...) }

func (p PartialSignature) String() string { return hex.EncodeToString(p[:]) }
