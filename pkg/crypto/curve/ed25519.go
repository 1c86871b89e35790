package curve

import (
	"crypto/sha512"

	"filippo.io/edwards25519"

	"github.com/Caqil/krypton/internal/security"
)

const ed25519PointSize = 32

// ed25519Curve implements Curve for Ed25519 using filippo.io/edwards25519.
// Scalars are encoded little-endian as in RFC 8032.
type ed25519Curve struct{}

func newEd25519() Curve {
	return ed25519Curve{}
}

type edScalar struct {
	v edwards25519.Scalar
}

type edPoint struct {
	v edwards25519.Point
}

func toEdScalar(s Scalar) *edScalar {
	v, ok := s.(*edScalar)
	if !ok {
		panic("curve: mixing ed25519 scalar with another curve")
	}
	return v
}

func toEdPoint(p Point) *edPoint {
	v, ok := p.(*edPoint)
	if !ok {
		panic("curve: mixing ed25519 point with another curve")
	}
	return v
}

func newEdPoint() *edPoint {
	p := new(edPoint)
	p.v.Set(edwards25519.NewIdentityPoint())
	return p
}

func (s *edScalar) Add(a, b Scalar) Scalar {
	s.v.Add(&toEdScalar(a).v, &toEdScalar(b).v)
	return s
}

func (s *edScalar) Mul(a, b Scalar) Scalar {
	s.v.Multiply(&toEdScalar(a).v, &toEdScalar(b).v)
	return s
}

func (s *edScalar) Negate(a Scalar) Scalar {
	s.v.Negate(&toEdScalar(a).v)
	return s
}

func (s *edScalar) Set(a Scalar) Scalar {
	s.v.Set(&toEdScalar(a).v)
	return s
}

// Bytes returns the little-endian encoding of the scalar
func (s *edScalar) Bytes() []byte {
	return s.v.Bytes()
}

func (s *edScalar) IsZero() bool {
	return s.v.Equal(edwards25519.NewScalar()) == 1
}

func (s *edScalar) Equal(b Scalar) bool {
	return s.v.Equal(&toEdScalar(b).v) == 1
}

func (s *edScalar) Zeroize() {
	s.v.Set(edwards25519.NewScalar())
}

func (p *edPoint) Add(a, b Point) Point {
	p.v.Add(&toEdPoint(a).v, &toEdPoint(b).v)
	return p
}

func (p *edPoint) Negate(a Point) Point {
	p.v.Negate(&toEdPoint(a).v)
	return p
}

func (p *edPoint) ScalarMult(k Scalar, q Point) Point {
	p.v.ScalarMult(&toEdScalar(k).v, &toEdPoint(q).v)
	return p
}

func (p *edPoint) ScalarBaseMult(k Scalar) Point {
	p.v.ScalarBaseMult(&toEdScalar(k).v)
	return p
}

func (p *edPoint) Set(q Point) Point {
	p.v.Set(&toEdPoint(q).v)
	return p
}

func (p *edPoint) IsIdentity() bool {
	return p.v.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (p *edPoint) Equal(q Point) bool {
	return p.v.Equal(&toEdPoint(q).v) == 1
}

func (ed25519Curve) Type() CurveType { return Ed25519 }

func (ed25519Curve) Name() string { return "ed25519" }

func (ed25519Curve) NewScalar() Scalar { return new(edScalar) }

func (ed25519Curve) NewPoint() Point { return newEdPoint() }

func (ed25519Curve) Generator() Point {
	p := new(edPoint)
	p.v.Set(edwards25519.NewGeneratorPoint())
	return p
}

func (ed25519Curve) ScalarSize() int { return 32 }

func (ed25519Curve) SecretKeySize() int { return 32 }

func (ed25519Curve) PublicKeySizes() []int { return []int{ed25519PointSize} }

func (ed25519Curve) PointSizes() []int { return []int{ed25519PointSize} }

func (ed25519Curve) ParseScalar(b []byte) (Scalar, error) {
	s := new(edScalar)
	if _, err := s.v.SetCanonicalBytes(b); err != nil {
		return nil, ErrInvalidScalar
	}
	return s, nil
}

// ParseSecretKey expands an RFC 8032 seed: the lower half of SHA-512(seed),
// clamped, is the signing scalar.
func (ed25519Curve) ParseSecretKey(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, ErrInvalidSecretKey
	}
	h := sha512.Sum512(b)
	defer security.SecureZero(h[:])

	s := new(edScalar)
	if _, err := s.v.SetBytesWithClamping(h[:32]); err != nil {
		return nil, ErrInvalidSecretKey
	}
	return s, nil
}

func (ed25519Curve) ParsePoint(b []byte) (Point, error) {
	if len(b) != ed25519PointSize {
		return nil, ErrInvalidEncoding
	}
	p := new(edPoint)
	if _, err := p.v.SetBytes(b); err != nil {
		return nil, ErrInvalidPoint
	}
	if p.IsIdentity() {
		return nil, ErrPointAtInfinity
	}
	return p, nil
}

func (ed25519Curve) EncodePoint(p Point, size int) ([]byte, error) {
	if size != ed25519PointSize {
		return nil, ErrInvalidEncodingSize
	}
	ep := toEdPoint(p)
	if ep.IsIdentity() {
		return nil, ErrPointAtInfinity
	}
	return ep.v.Bytes(), nil
}

func (ed25519Curve) HashEncoding(p Point) []byte {
	return toEdPoint(p).v.Bytes()
}

func (ed25519Curve) KeyHashEncoding(raw []byte) ([]byte, error) {
	if len(raw) != ed25519PointSize {
		return nil, ErrInvalidEncoding
	}
	return raw, nil
}

// HasOddY is always false: Ed25519 signatures carry the full point encoding,
// so no parity normalization happens.
func (ed25519Curve) HasOddY(Point) bool {
	return false
}

func (ed25519Curve) CheckNonceEncoding(b []byte) error {
	if len(b) != ed25519PointSize {
		return ErrInvalidEncoding
	}
	if _, err := new(edwards25519.Point).SetBytes(b); err != nil {
		return ErrInvalidEncoding
	}
	return nil
}

func (ed25519Curve) Hash(data ...[]byte) []byte {
	h := sha512.New()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// HashToScalar reduces the 64-byte SHA-512(data...) modulo L
func (c ed25519Curve) HashToScalar(data ...[]byte) Scalar {
	return scalarFromDigest(c.Hash(data...))
}

// scalarFromDigest reduces a 64-byte digest modulo L. The digest may be a
// nonce preimage and is wiped.
func scalarFromDigest(digest []byte) *edScalar {
	defer security.SecureZero(digest)

	s := new(edScalar)
	// SetUniformBytes only fails on input that is not 64 bytes long
	if _, err := s.v.SetUniformBytes(digest); err != nil {
		panic("curve: sha512 digest is not 64 bytes")
	}
	return s
}

func (c ed25519Curve) Challenge(nonce, key, msg []byte) Scalar {
	return c.HashToScalar(nonce, key, msg)
}

// DeriveNonce returns SHA-512(randomness) mod L, rejecting zero.
func (c ed25519Curve) DeriveNonce(randomness []byte) (Scalar, error) {
	k := c.HashToScalar(randomness)
	if k.IsZero() {
		return nil, ErrInvalidScalar
	}
	return k, nil
}

// SingleSignerNonce is the RFC 8032 deterministic nonce
// SHA-512(prefix || msg), where prefix is the upper half of SHA-512(seed).
// The caller randomness is not used.
func (c ed25519Curve) SingleSignerNonce(_, msg, seckey []byte, _ Point) (Scalar, error) {
	if len(seckey) != 32 {
		return nil, ErrInvalidSecretKey
	}
	h := sha512.Sum512(seckey)
	defer security.SecureZero(h[:])

	k := c.HashToScalar(h[32:], msg)
	if k.IsZero() {
		return nil, ErrInvalidScalar
	}
	return k, nil
}
