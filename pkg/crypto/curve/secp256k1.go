package curve

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/Caqil/krypton/internal/security"
)

const (
	secp256k1CompressedSize   = 33
	secp256k1UncompressedSize = 65
	secp256k1XOnlySize        = 32
)

// secp256k1Curve implements Curve for secp256k1 using btcec
type secp256k1Curve struct{}

func newSecp256k1() Curve {
	return secp256k1Curve{}
}

type secpScalar struct {
	v btcec.ModNScalar
}

// secpPoint keeps its coordinates affine and normalized after every
// operation. The identity is stored as X = Y = 0, which btcec treats as the
// point at infinity.
type secpPoint struct {
	j btcec.JacobianPoint
}

func toSecpScalar(s Scalar) *secpScalar {
	v, ok := s.(*secpScalar)
	if !ok {
		panic("curve: mixing secp256k1 scalar with another curve")
	}
	return v
}

func toSecpPoint(p Point) *secpPoint {
	v, ok := p.(*secpPoint)
	if !ok {
		panic("curve: mixing secp256k1 point with another curve")
	}
	return v
}

func (s *secpScalar) Add(a, b Scalar) Scalar {
	s.v.Add2(&toSecpScalar(a).v, &toSecpScalar(b).v)
	return s
}

func (s *secpScalar) Mul(a, b Scalar) Scalar {
	s.v.Mul2(&toSecpScalar(a).v, &toSecpScalar(b).v)
	return s
}

func (s *secpScalar) Negate(a Scalar) Scalar {
	s.v.NegateVal(&toSecpScalar(a).v)
	return s
}

func (s *secpScalar) Set(a Scalar) Scalar {
	s.v.Set(&toSecpScalar(a).v)
	return s
}

// Bytes returns the big-endian encoding of the scalar
func (s *secpScalar) Bytes() []byte {
	b := s.v.Bytes()
	return b[:]
}

func (s *secpScalar) IsZero() bool {
	return s.v.IsZero()
}

func (s *secpScalar) Equal(b Scalar) bool {
	return s.v.Equals(&toSecpScalar(b).v)
}

func (s *secpScalar) Zeroize() {
	s.v.Zero()
}

func (p *secpPoint) normalize() *secpPoint {
	p.j.ToAffine()
	return p
}

func (p *secpPoint) Add(a, b Point) Point {
	btcec.AddNonConst(&toSecpPoint(a).j, &toSecpPoint(b).j, &p.j)
	return p.normalize()
}

func (p *secpPoint) Negate(a Point) Point {
	p.j.Set(&toSecpPoint(a).j)
	if p.IsIdentity() {
		return p
	}
	p.j.Y.Negate(1).Normalize()
	return p
}

func (p *secpPoint) ScalarMult(k Scalar, q Point) Point {
	btcec.ScalarMultNonConst(&toSecpScalar(k).v, &toSecpPoint(q).j, &p.j)
	return p.normalize()
}

func (p *secpPoint) ScalarBaseMult(k Scalar) Point {
	btcec.ScalarBaseMultNonConst(&toSecpScalar(k).v, &p.j)
	return p.normalize()
}

func (p *secpPoint) Set(q Point) Point {
	p.j.Set(&toSecpPoint(q).j)
	return p
}

func (p *secpPoint) IsIdentity() bool {
	return p.j.X.IsZero() && p.j.Y.IsZero()
}

func (p *secpPoint) Equal(q Point) bool {
	o := toSecpPoint(q)
	return p.j.X.Equals(&o.j.X) && p.j.Y.Equals(&o.j.Y)
}

func (secp256k1Curve) Type() CurveType { return Secp256k1 }

func (secp256k1Curve) Name() string { return "secp256k1" }

func (secp256k1Curve) NewScalar() Scalar { return new(secpScalar) }

func (secp256k1Curve) NewPoint() Point { return new(secpPoint) }

func (c secp256k1Curve) Generator() Point {
	var one btcec.ModNScalar
	one.SetInt(1)
	p := new(secpPoint)
	btcec.ScalarBaseMultNonConst(&one, &p.j)
	return p.normalize()
}

func (secp256k1Curve) ScalarSize() int { return 32 }

func (secp256k1Curve) SecretKeySize() int { return 32 }

func (secp256k1Curve) PublicKeySizes() []int {
	return []int{secp256k1CompressedSize, secp256k1UncompressedSize, secp256k1XOnlySize}
}

func (secp256k1Curve) PointSizes() []int {
	return []int{secp256k1CompressedSize, secp256k1UncompressedSize}
}

func (secp256k1Curve) ParseScalar(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, ErrInvalidScalar
	}
	s := new(secpScalar)
	if overflow := s.v.SetByteSlice(b); overflow {
		s.v.Zero()
		return nil, ErrInvalidScalar
	}
	return s, nil
}

func (c secp256k1Curve) ParseSecretKey(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, ErrInvalidSecretKey
	}
	s := new(secpScalar)
	if overflow := s.v.SetByteSlice(b); overflow || s.v.IsZero() {
		s.v.Zero()
		return nil, ErrInvalidSecretKey
	}
	return s, nil
}

func (secp256k1Curve) ParsePoint(b []byte) (Point, error) {
	var raw []byte
	switch len(b) {
	case secp256k1CompressedSize, secp256k1UncompressedSize:
		raw = b
	case secp256k1XOnlySize:
		// x-only keys carry an implicit even Y
		raw = make([]byte, 0, secp256k1CompressedSize)
		raw = append(raw, 0x02)
		raw = append(raw, b...)
	default:
		return nil, ErrInvalidEncoding
	}

	pub, err := btcec.ParsePubKey(raw)
	if err != nil {
		return nil, ErrInvalidPoint
	}

	p := new(secpPoint)
	pub.AsJacobian(&p.j)
	return p.normalize(), nil
}

func (secp256k1Curve) EncodePoint(p Point, size int) ([]byte, error) {
	sp := toSecpPoint(p)
	if sp.IsIdentity() {
		return nil, ErrPointAtInfinity
	}

	switch size {
	case secp256k1CompressedSize:
		x, y := sp.j.X, sp.j.Y
		return btcec.NewPublicKey(&x, &y).SerializeCompressed(), nil
	case secp256k1UncompressedSize:
		x, y := sp.j.X, sp.j.Y
		return btcec.NewPublicKey(&x, &y).SerializeUncompressed(), nil
	case secp256k1XOnlySize:
		x := sp.j.X.Bytes()
		return append([]byte(nil), x[:]...), nil
	default:
		return nil, ErrInvalidEncodingSize
	}
}

func (secp256k1Curve) HashEncoding(p Point) []byte {
	x := toSecpPoint(p).j.X.Bytes()
	return append([]byte(nil), x[:]...)
}

func (secp256k1Curve) KeyHashEncoding(raw []byte) ([]byte, error) {
	switch len(raw) {
	case secp256k1CompressedSize:
		return raw[1:], nil
	case secp256k1UncompressedSize:
		return raw[1:33], nil
	case secp256k1XOnlySize:
		return raw, nil
	default:
		return nil, ErrInvalidEncoding
	}
}

func (secp256k1Curve) HasOddY(p Point) bool {
	return toSecpPoint(p).j.Y.IsOdd()
}

func (secp256k1Curve) CheckNonceEncoding(b []byte) error {
	if len(b) != 32 {
		return ErrInvalidEncoding
	}
	var x btcec.FieldVal
	if overflow := x.SetByteSlice(b); overflow {
		return ErrInvalidEncoding
	}
	return nil
}

func (secp256k1Curve) Hash(data ...[]byte) []byte {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// HashToScalar reduces SHA-256(data...) modulo the group order
func (c secp256k1Curve) HashToScalar(data ...[]byte) Scalar {
	s := new(secpScalar)
	s.v.SetByteSlice(c.Hash(data...))
	return s
}

func (c secp256k1Curve) Challenge(nonce, key, msg []byte) Scalar {
	return c.HashToScalar(nonce, key, msg)
}

// DeriveNonce returns SHA-256(randomness). Digests that overflow the group
// order or are zero are rejected rather than reduced.
func (c secp256k1Curve) DeriveNonce(randomness []byte) (Scalar, error) {
	return nonceFromDigest(c.Hash(randomness))
}

// SingleSignerNonce returns SHA-256(randomness || msg || sk' || x(P)) where sk'
// is the secret key negated when P has odd Y.
func (c secp256k1Curve) SingleSignerNonce(randomness, msg, seckey []byte, pub Point) (Scalar, error) {
	parsed, err := c.ParseSecretKey(seckey)
	if err != nil {
		return nil, err
	}
	sk := toSecpScalar(parsed)
	defer sk.Zeroize()

	if c.HasOddY(pub) {
		sk.v.Negate()
	}
	skBytes := sk.v.Bytes()
	defer security.SecureZero(skBytes[:])

	return nonceFromDigest(c.Hash(randomness, msg, skBytes[:], c.HashEncoding(pub)))
}

// nonceFromDigest interprets a 32-byte digest as a nonce, rejecting values
// that overflow the group order or are zero. The digest is wiped.
func nonceFromDigest(digest []byte) (Scalar, error) {
	defer security.SecureZero(digest)

	k := new(secpScalar)
	if overflow := k.v.SetByteSlice(digest); overflow || k.v.IsZero() {
		k.v.Zero()
		return nil, ErrInvalidScalar
	}
	return k, nil
}
