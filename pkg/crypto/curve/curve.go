// Package curve provides the prime-order group arithmetic used by the
// signature engine. Two curves are supported: secp256k1 (x-only public keys
// with the even-Y convention) and Ed25519.
//
// Scalars and points are opaque values with mutable receivers, in the style of
// math/big: z.Add(a, b) sets z = a + b and returns z. Mixing values from
// different curves panics.
package curve

import (
	"fmt"
	"strings"
)

// CurveType represents the type of elliptic curve
type CurveType int

const (
	// Secp256k1 is the Bitcoin curve, used with x-only keys and even-Y nonces
	Secp256k1 CurveType = iota
	// Ed25519 is the Edwards curve for EdDSA
	Ed25519
)

// String returns the canonical curve name
func (t CurveType) String() string {
	switch t {
	case Secp256k1:
		return "secp256k1"
	case Ed25519:
		return "ed25519"
	default:
		return fmt.Sprintf("curve(%d)", int(t))
	}
}

// ParseCurveType maps a curve name to its CurveType
func ParseCurveType(name string) (CurveType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "secp256k1", "k256":
		return Secp256k1, nil
	case "ed25519", "edwards25519":
		return Ed25519, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, ErrUnsupportedCurve)
	}
}

// Scalar is an element of the scalar field of a curve.
type Scalar interface {
	// Add sets the receiver to a + b
	Add(a, b Scalar) Scalar
	// Mul sets the receiver to a * b
	Mul(a, b Scalar) Scalar
	// Negate sets the receiver to -a
	Negate(a Scalar) Scalar
	// Set copies a into the receiver
	Set(a Scalar) Scalar
	// Bytes returns the 32-byte curve-native encoding
	Bytes() []byte
	IsZero() bool
	Equal(b Scalar) bool
	// Zeroize overwrites the value with zero
	Zeroize()
}

// Point is an element of the prime-order group of a curve.
type Point interface {
	// Add sets the receiver to a + b
	Add(a, b Point) Point
	// Negate sets the receiver to -a
	Negate(a Point) Point
	// ScalarMult sets the receiver to k * p
	ScalarMult(k Scalar, p Point) Point
	// ScalarBaseMult sets the receiver to k * G
	ScalarBaseMult(k Scalar) Point
	// Set copies p into the receiver
	Set(p Point) Point
	IsIdentity() bool
	Equal(q Point) bool
}

// Curve bundles the arithmetic and the curve-specific encodings and hashes
// the signature protocol builds on.
type Curve interface {
	// Type returns the curve identifier
	Type() CurveType

	// Name returns the curve name
	Name() string

	// NewScalar returns the zero scalar
	NewScalar() Scalar

	// NewPoint returns the identity element
	NewPoint() Point

	// Generator returns a fresh copy of the base point
	Generator() Point

	// ScalarSize is the length of an encoded scalar
	ScalarSize() int

	// SecretKeySize is the length of an encoded secret key
	SecretKeySize() int

	// PublicKeySizes lists the accepted public key encodings, default first
	PublicKeySizes() []int

	// PointSizes lists the encodings that preserve the full point (no
	// implicit Y), default first
	PointSizes() []int

	// ParseScalar decodes a canonical scalar; zero is allowed
	ParseScalar(b []byte) (Scalar, error)

	// ParseSecretKey decodes a secret key into its signing scalar.
	// For secp256k1 the key is the scalar itself (non-zero, below the order);
	// for Ed25519 it is an RFC 8032 seed that is hashed and clamped.
	ParseSecretKey(b []byte) (Scalar, error)

	// ParsePoint decodes any encoding listed in PublicKeySizes. The identity
	// is rejected.
	ParsePoint(b []byte) (Point, error)

	// EncodePoint serializes p using the encoding of the given size
	EncodePoint(p Point, size int) ([]byte, error)

	// HashEncoding is the 32-byte form in which a point enters hashes and
	// signatures: the x-coordinate on secp256k1, the point encoding on Ed25519.
	HashEncoding(p Point) []byte

	// KeyHashEncoding extracts the HashEncoding bytes from an encoded public
	// key without decoding it.
	KeyHashEncoding(raw []byte) ([]byte, error)

	// HasOddY reports whether the point has odd Y. Always false on Ed25519.
	HasOddY(p Point) bool

	// CheckNonceEncoding validates the nonce half of a signature
	CheckNonceEncoding(b []byte) error

	// Hash is the digest used by the curve's protocol hashes (SHA-256 for
	// secp256k1, SHA-512 for Ed25519)
	Hash(data ...[]byte) []byte

	// HashToScalar reduces Hash(data...) into a scalar
	HashToScalar(data ...[]byte) Scalar

	// Challenge computes H(nonce || key || msg) mod order, where nonce and
	// key are HashEncoding outputs
	Challenge(nonce, key, msg []byte) Scalar

	// DeriveNonce turns 32 bytes of caller randomness into a commitment
	// nonce. A degenerate result is an error.
	DeriveNonce(randomness []byte) (Scalar, error)

	// SingleSignerNonce derives the nonce for a one-party signature.
	SingleSignerNonce(randomness, msg, seckey []byte, pub Point) (Scalar, error)
}

// NewCurve creates a new curve instance based on the curve type
func NewCurve(curveType CurveType) (Curve, error) {
	switch curveType {
	case Secp256k1:
		return newSecp256k1(), nil
	case Ed25519:
		return newEd25519(), nil
	default:
		return nil, ErrUnsupportedCurve
	}
}

// DefaultPublicKeySize returns the preferred public key encoding for c
func DefaultPublicKeySize(c Curve) int {
	return c.PublicKeySizes()[0]
}

// IsPublicKeySize reports whether size is an accepted public key encoding
func IsPublicKeySize(c Curve, size int) bool {
	return containsSize(c.PublicKeySizes(), size)
}

// IsPointSize reports whether size is a full point encoding
func IsPointSize(c Curve, size int) bool {
	return containsSize(c.PointSizes(), size)
}

func containsSize(sizes []int, size int) bool {
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	return false
}
