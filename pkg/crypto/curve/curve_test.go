package curve

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"testing"
)

const (
	secpGeneratorCompressed = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	secpOrder               = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
	edGenerator             = "5866666666666666666666666666666666666666666666666666666666666666"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func allCurves(t *testing.T) []Curve {
	t.Helper()
	var out []Curve
	for _, ct := range []CurveType{Secp256k1, Ed25519} {
		c, err := NewCurve(ct)
		if err != nil {
			t.Fatalf("NewCurve(%v): %v", ct, err)
		}
		out = append(out, c)
	}
	return out
}

// TestNewCurve tests curve construction and lookup by name
func TestNewCurve(t *testing.T) {
	if _, err := NewCurve(CurveType(99)); !errors.Is(err, ErrUnsupportedCurve) {
		t.Fatalf("expected ErrUnsupportedCurve, got %v", err)
	}

	ct, err := ParseCurveType("Ed25519")
	if err != nil || ct != Ed25519 {
		t.Fatalf("ParseCurveType(Ed25519) = %v, %v", ct, err)
	}
	ct, err = ParseCurveType("secp256k1")
	if err != nil || ct != Secp256k1 {
		t.Fatalf("ParseCurveType(secp256k1) = %v, %v", ct, err)
	}
	if _, err := ParseCurveType("p256"); !errors.Is(err, ErrUnsupportedCurve) {
		t.Fatalf("expected ErrUnsupportedCurve, got %v", err)
	}
	if Secp256k1.String() != "secp256k1" || Ed25519.String() != "ed25519" {
		t.Error("unexpected curve names")
	}
}

// TestGeneratorEncoding tests the well-known base point encodings
func TestGeneratorEncoding(t *testing.T) {
	secp, _ := NewCurve(Secp256k1)
	enc, err := secp.EncodePoint(secp.Generator(), 33)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if hex.EncodeToString(enc) != secpGeneratorCompressed {
		t.Errorf("secp256k1 generator = %x", enc)
	}

	ed, _ := NewCurve(Ed25519)
	enc, err = ed.EncodePoint(ed.Generator(), 32)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if hex.EncodeToString(enc) != edGenerator {
		t.Errorf("ed25519 generator = %x", enc)
	}
}

// TestPointRoundTrip tests that every supported encoding parses back to the same point
func TestPointRoundTrip(t *testing.T) {
	for _, c := range allCurves(t) {
		k := c.HashToScalar([]byte("round trip"))
		p := c.NewPoint().ScalarBaseMult(k)

		for _, size := range c.PublicKeySizes() {
			enc, err := c.EncodePoint(p, size)
			if err != nil {
				t.Fatalf("%s: encode %d: %v", c.Name(), size, err)
			}
			if len(enc) != size {
				t.Fatalf("%s: encoded length %d, want %d", c.Name(), len(enc), size)
			}
			q, err := c.ParsePoint(enc)
			if err != nil {
				t.Fatalf("%s: parse %d: %v", c.Name(), size, err)
			}
			if !bytes.Equal(c.HashEncoding(p), c.HashEncoding(q)) {
				t.Errorf("%s: hash encoding changed for size %d", c.Name(), size)
			}
			h, err := c.KeyHashEncoding(enc)
			if err != nil {
				t.Fatalf("%s: key hash encoding: %v", c.Name(), err)
			}
			if !bytes.Equal(h, c.HashEncoding(p)) {
				t.Errorf("%s: KeyHashEncoding differs from HashEncoding for size %d", c.Name(), size)
			}
		}

		if _, err := c.EncodePoint(p, 31); !errors.Is(err, ErrInvalidEncodingSize) {
			t.Errorf("%s: expected ErrInvalidEncodingSize, got %v", c.Name(), err)
		}
	}
}

// TestXOnlyImpliesEvenY tests that 32-byte secp256k1 keys decode with even Y
func TestXOnlyImpliesEvenY(t *testing.T) {
	c, _ := NewCurve(Secp256k1)

	for i := 0; i < 8; i++ {
		p := c.NewPoint().ScalarBaseMult(c.HashToScalar([]byte{byte(i)}))
		q, err := c.ParsePoint(c.HashEncoding(p))
		if err != nil {
			t.Fatalf("parse x-only: %v", err)
		}
		if c.HasOddY(q) {
			t.Fatal("x-only key decoded with odd Y")
		}
		if c.HasOddY(p) {
			if !q.Equal(c.NewPoint().Negate(p)) {
				t.Fatal("x-only decode of odd point is not its negation")
			}
		} else if !q.Equal(p) {
			t.Fatal("x-only decode of even point changed it")
		}
	}
}

// TestIdentityHandling tests that P + (-P) is the identity and is never encoded
func TestIdentityHandling(t *testing.T) {
	for _, c := range allCurves(t) {
		p := c.NewPoint().ScalarBaseMult(c.HashToScalar([]byte("identity")))
		sum := c.NewPoint().Add(p, c.NewPoint().Negate(p))
		if !sum.IsIdentity() {
			t.Fatalf("%s: P + (-P) is not the identity", c.Name())
		}
		if _, err := c.EncodePoint(sum, c.PublicKeySizes()[0]); !errors.Is(err, ErrPointAtInfinity) {
			t.Errorf("%s: expected ErrPointAtInfinity, got %v", c.Name(), err)
		}
		if !c.NewPoint().IsIdentity() {
			t.Errorf("%s: NewPoint is not the identity", c.Name())
		}
		// Identity plus P is P
		if !c.NewPoint().Add(sum, p).Equal(p) {
			t.Errorf("%s: identity is not neutral", c.Name())
		}
	}
}

// TestScalarArithmetic tests basic field identities
func TestScalarArithmetic(t *testing.T) {
	for _, c := range allCurves(t) {
		a := c.HashToScalar([]byte("a"))
		b := c.HashToScalar([]byte("b"))

		zero := c.NewScalar().Add(a, c.NewScalar().Negate(a))
		if !zero.IsZero() {
			t.Errorf("%s: a + (-a) != 0", c.Name())
		}

		ab := c.NewScalar().Mul(a, b)
		ba := c.NewScalar().Mul(b, a)
		if !ab.Equal(ba) {
			t.Errorf("%s: multiplication not commutative", c.Name())
		}

		// (a+b)G == aG + bG
		lhs := c.NewPoint().ScalarBaseMult(c.NewScalar().Add(a, b))
		rhs := c.NewPoint().Add(c.NewPoint().ScalarBaseMult(a), c.NewPoint().ScalarBaseMult(b))
		if !lhs.Equal(rhs) {
			t.Errorf("%s: scalar base mult not linear", c.Name())
		}

		// b * (aG) == (ab)G
		if !c.NewPoint().ScalarMult(b, c.NewPoint().ScalarBaseMult(a)).Equal(c.NewPoint().ScalarBaseMult(ab)) {
			t.Errorf("%s: scalar mult mismatch", c.Name())
		}

		parsed, err := c.ParseScalar(a.Bytes())
		if err != nil || !parsed.Equal(a) {
			t.Errorf("%s: scalar round trip failed: %v", c.Name(), err)
		}

		a.Zeroize()
		if !a.IsZero() {
			t.Errorf("%s: Zeroize left a non-zero scalar", c.Name())
		}
	}
}

// TestParseSecretKeyRejectsInvalid tests secp256k1 secret key range checks
func TestParseSecretKeyRejectsInvalid(t *testing.T) {
	c, _ := NewCurve(Secp256k1)

	if _, err := c.ParseSecretKey(make([]byte, 32)); !errors.Is(err, ErrInvalidSecretKey) {
		t.Errorf("zero key: expected ErrInvalidSecretKey, got %v", err)
	}
	if _, err := c.ParseSecretKey(mustHex(t, secpOrder)); !errors.Is(err, ErrInvalidSecretKey) {
		t.Errorf("key == n: expected ErrInvalidSecretKey, got %v", err)
	}
	if _, err := c.ParseSecretKey(make([]byte, 31)); !errors.Is(err, ErrInvalidSecretKey) {
		t.Errorf("short key: expected ErrInvalidSecretKey, got %v", err)
	}
	if _, err := c.ParseScalar(mustHex(t, secpOrder)); !errors.Is(err, ErrInvalidScalar) {
		t.Errorf("scalar == n: expected ErrInvalidScalar, got %v", err)
	}

	one := make([]byte, 32)
	one[31] = 1
	sk, err := c.ParseSecretKey(one)
	if err != nil {
		t.Fatalf("key 1: %v", err)
	}
	if !c.NewPoint().ScalarBaseMult(sk).Equal(c.Generator()) {
		t.Error("1*G != G")
	}
}

// TestEd25519SecretKeyMatchesStdlib tests that seed expansion agrees with crypto/ed25519
func TestEd25519SecretKeyMatchesStdlib(t *testing.T) {
	c, _ := NewCurve(Ed25519)

	seed := bytes.Repeat([]byte{0x42}, ed25519.SeedSize)
	sk, err := c.ParseSecretKey(seed)
	if err != nil {
		t.Fatalf("parse seed: %v", err)
	}
	pub, err := c.EncodePoint(c.NewPoint().ScalarBaseMult(sk), 32)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	want := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	if !bytes.Equal(pub, want) {
		t.Errorf("public key = %x, want %x", pub, want)
	}
}

// TestCheckNonceEncoding tests the nonce half validation
func TestCheckNonceEncoding(t *testing.T) {
	secp, _ := NewCurve(Secp256k1)
	if err := secp.CheckNonceEncoding(bytes.Repeat([]byte{0xff}, 32)); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("x >= p accepted: %v", err)
	}
	if err := secp.CheckNonceEncoding(make([]byte, 32)); err != nil {
		t.Errorf("x = 0 should pass the field check: %v", err)
	}

	ed, _ := NewCurve(Ed25519)
	if err := ed.CheckNonceEncoding(mustHex(t, edGenerator)); err != nil {
		t.Errorf("generator rejected: %v", err)
	}
	if err := ed.CheckNonceEncoding(make([]byte, 31)); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("short nonce accepted: %v", err)
	}
}

// TestParsePointRejectsGarbage tests malformed point encodings
func TestParsePointRejectsGarbage(t *testing.T) {
	secp, _ := NewCurve(Secp256k1)
	bad := mustHex(t, secpGeneratorCompressed)
	bad[0] = 0x05
	if _, err := secp.ParsePoint(bad); err == nil {
		t.Error("bad prefix accepted")
	}
	if _, err := secp.ParsePoint(make([]byte, 20)); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("expected ErrInvalidEncoding, got %v", err)
	}

	ed, _ := NewCurve(Ed25519)
	identity := make([]byte, 32)
	identity[0] = 1
	if _, err := ed.ParsePoint(identity); !errors.Is(err, ErrPointAtInfinity) {
		t.Errorf("expected ErrPointAtInfinity, got %v", err)
	}
}

// TestNonceDigestsAreWiped tests that nonce preimages are zeroed on both curves
func TestNonceDigestsAreWiped(t *testing.T) {
	ed, _ := NewCurve(Ed25519)
	edDigest := ed.Hash([]byte("randomness"))
	want := ed.HashToScalar([]byte("randomness"))
	got := scalarFromDigest(edDigest)
	if !got.Equal(want) {
		t.Error("ed25519 digest reduced to a different scalar")
	}
	if !bytes.Equal(edDigest, make([]byte, 64)) {
		t.Error("ed25519 digest left in memory")
	}

	secp, _ := NewCurve(Secp256k1)
	secpDigest := secp.Hash([]byte("randomness"))
	wantK, err := secp.DeriveNonce([]byte("randomness"))
	if err != nil {
		t.Fatalf("DeriveNonce failed: %v", err)
	}
	gotK, err := nonceFromDigest(secpDigest)
	if err != nil {
		t.Fatalf("nonceFromDigest failed: %v", err)
	}
	if !gotK.Equal(wantK) {
		t.Error("secp256k1 digest produced a different nonce")
	}
	if !bytes.Equal(secpDigest, make([]byte, 32)) {
		t.Error("secp256k1 digest left in memory")
	}

	overflow := mustHex(t, secpOrder)
	if _, err := nonceFromDigest(overflow); !errors.Is(err, ErrInvalidScalar) {
		t.Errorf("expected ErrInvalidScalar, got %v", err)
	}
	if !bytes.Equal(overflow, make([]byte, 32)) {
		t.Error("rejected digest left in memory")
	}
}
