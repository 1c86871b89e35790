package commitment

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"sync"
	"testing"

	"github.com/Caqil/krypton/pkg/crypto/curve"
	"github.com/Caqil/krypton/pkg/crypto/rand"
)

func testCurves(t *testing.T) []curve.Curve {
	t.Helper()
	secp, err := curve.NewCurve(curve.Secp256k1)
	if err != nil {
		t.Fatal(err)
	}
	ed, err := curve.NewCurve(curve.Ed25519)
	if err != nil {
		t.Fatal(err)
	}
	return []curve.Curve{secp, ed}
}

func randomness(b byte) []byte {
	return bytes.Repeat([]byte{b}, RandomnessSize)
}

// TestCreateDeterministic tests that equal randomness yields equal commitments
func TestCreateDeterministic(t *testing.T) {
	for _, c := range testCurves(t) {
		size := curve.DefaultPublicKeySize(c)
		a, err := Create(c, randomness(1), size)
		if err != nil {
			t.Fatalf("%s: Create: %v", c.Name(), err)
		}
		b, err := Create(c, randomness(1), size)
		if err != nil {
			t.Fatalf("%s: Create: %v", c.Name(), err)
		}
		other, err := Create(c, randomness(2), size)
		if err != nil {
			t.Fatalf("%s: Create: %v", c.Name(), err)
		}

		if len(a.Commitment) != size {
			t.Errorf("%s: commitment length %d, want %d", c.Name(), len(a.Commitment), size)
		}
		if !bytes.Equal(a.Commitment, b.Commitment) {
			t.Errorf("%s: same randomness produced different commitments", c.Name())
		}
		if bytes.Equal(a.Commitment, other.Commitment) {
			t.Errorf("%s: different randomness produced the same commitment", c.Name())
		}
	}
}

// TestCreateNonceDerivation tests that the secp256k1 nonce is SHA-256 of the randomness
func TestCreateNonceDerivation(t *testing.T) {
	c, _ := curve.NewCurve(curve.Secp256k1)
	pair, err := Create(c, randomness(7), 33)
	if err != nil {
		t.Fatal(err)
	}

	exported, err := pair.Nonce.Export()
	if err != nil {
		t.Fatal(err)
	}
	want := sha256.Sum256(randomness(7))
	if !bytes.Equal(exported, want[:]) {
		t.Errorf("nonce = %x, want %x", exported, want)
	}
}

// TestCreateEncodings tests compressed and uncompressed commitments describe the same point
func TestCreateEncodings(t *testing.T) {
	c, _ := curve.NewCurve(curve.Secp256k1)
	compressed, err := Create(c, randomness(3), 33)
	if err != nil {
		t.Fatal(err)
	}
	uncompressed, err := Create(c, randomness(3), 65)
	if err != nil {
		t.Fatal(err)
	}

	p, _ := c.ParsePoint(compressed.Commitment)
	q, _ := c.ParsePoint(uncompressed.Commitment)
	if !p.Equal(q) {
		t.Error("encodings differ in the underlying point")
	}

	if _, err := Create(c, randomness(3), 32); !errors.Is(err, curve.ErrInvalidEncodingSize) {
		t.Errorf("x-only commitment: expected ErrInvalidEncodingSize, got %v", err)
	}
}

// TestCreateRejectsBadRandomness tests randomness length validation
func TestCreateRejectsBadRandomness(t *testing.T) {
	for _, c := range testCurves(t) {
		if _, err := Create(c, make([]byte, 31), curve.DefaultPublicKeySize(c)); !errors.Is(err, ErrInvalidRandomness) {
			t.Errorf("%s: expected ErrInvalidRandomness, got %v", c.Name(), err)
		}
	}
	if _, err := Create(nil, randomness(1), 33); !errors.Is(err, ErrNilCurve) {
		t.Errorf("expected ErrNilCurve, got %v", err)
	}
}

// TestNonceSingleUse tests that a nonce cannot be consumed twice
func TestNonceSingleUse(t *testing.T) {
	for _, c := range testCurves(t) {
		pair, err := Create(c, randomness(4), curve.DefaultPublicKeySize(c))
		if err != nil {
			t.Fatal(err)
		}

		k, err := pair.Nonce.Consume()
		if err != nil {
			t.Fatalf("%s: first Consume: %v", c.Name(), err)
		}
		defer k.Zeroize()

		r := c.NewPoint().ScalarBaseMult(k)
		enc, _ := c.EncodePoint(r, curve.DefaultPublicKeySize(c))
		if !bytes.Equal(enc, pair.Commitment) {
			t.Errorf("%s: k*G does not match the commitment", c.Name())
		}

		if !pair.Nonce.Spent() {
			t.Errorf("%s: nonce not marked spent", c.Name())
		}
		if _, err := pair.Nonce.Consume(); !errors.Is(err, ErrNonceReused) {
			t.Errorf("%s: expected ErrNonceReused, got %v", c.Name(), err)
		}
		if _, err := pair.Nonce.Export(); !errors.Is(err, ErrNonceReused) {
			t.Errorf("%s: export after use: expected ErrNonceReused, got %v", c.Name(), err)
		}
	}
}

// TestNonceConcurrentConsume tests that only one goroutine obtains the nonce
func TestNonceConcurrentConsume(t *testing.T) {
	c, _ := curve.NewCurve(curve.Ed25519)
	pair, err := Create(c, randomness(5), 32)
	if err != nil {
		t.Fatal(err)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := pair.Nonce.Consume(); err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if winners != 1 {
		t.Fatalf("%d goroutines consumed the nonce", winners)
	}
}

// TestNonceDestroy tests that destroyed nonces are unusable
func TestNonceDestroy(t *testing.T) {
	c, _ := curve.NewCurve(curve.Secp256k1)
	pair, err := Create(c, randomness(6), 33)
	if err != nil {
		t.Fatal(err)
	}

	pair.Nonce.Destroy()
	if !pair.Nonce.Spent() {
		t.Error("destroyed nonce not spent")
	}
	if _, err := pair.Nonce.Consume(); !errors.Is(err, ErrNonceReused) {
		t.Errorf("expected ErrNonceReused, got %v", err)
	}

	var nilNonce *Nonce
	if _, err := nilNonce.Consume(); !errors.Is(err, ErrNilNonce) {
		t.Errorf("expected ErrNilNonce, got %v", err)
	}
}

// TestNonceExportImport tests moving a nonce across a boundary
func TestNonceExportImport(t *testing.T) {
	for _, c := range testCurves(t) {
		size := curve.DefaultPublicKeySize(c)
		pair, err := Create(c, randomness(8), size)
		if err != nil {
			t.Fatal(err)
		}

		exported, err := pair.Nonce.Export()
		if err != nil {
			t.Fatalf("%s: Export: %v", c.Name(), err)
		}
		imported, err := ImportNonce(c, exported)
		if err != nil {
			t.Fatalf("%s: ImportNonce: %v", c.Name(), err)
		}

		k, err := imported.Consume()
		if err != nil {
			t.Fatal(err)
		}
		enc, _ := c.EncodePoint(c.NewPoint().ScalarBaseMult(k), size)
		if !bytes.Equal(enc, pair.Commitment) {
			t.Errorf("%s: imported nonce does not match commitment", c.Name())
		}

		if _, err := ImportNonce(c, make([]byte, 32)); !errors.Is(err, ErrInvalidNonce) {
			t.Errorf("%s: zero nonce: expected ErrInvalidNonce, got %v", c.Name(), err)
		}
	}
}

// TestGenerate tests commitment generation from a reader
func TestGenerate(t *testing.T) {
	c, _ := curve.NewCurve(curve.Secp256k1)

	a, err := Generate(c, rand.NewDeterministicReader([]byte("seed"), nil), 33)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(c, rand.NewDeterministicReader([]byte("seed"), nil), 33)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Commitment, b.Commitment) {
		t.Error("deterministic reader produced different commitments")
	}

	fresh, err := Generate(c, nil, 33)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(fresh.Commitment, a.Commitment) {
		t.Error("system randomness collided with deterministic stream")
	}
}

// TestAggregateOrderIndependent tests that the commitment sum ignores order
func TestAggregateOrderIndependent(t *testing.T) {
	for _, c := range testCurves(t) {
		size := curve.DefaultPublicKeySize(c)
		var commitments [][]byte
		for i := byte(1); i <= 3; i++ {
			pair, err := Create(c, randomness(i), size)
			if err != nil {
				t.Fatal(err)
			}
			commitments = append(commitments, pair.Commitment)
		}

		forward, err := Aggregate(c, commitments, size)
		if err != nil {
			t.Fatalf("%s: Aggregate: %v", c.Name(), err)
		}
		reversed, err := Aggregate(c, [][]byte{commitments[2], commitments[0], commitments[1]}, size)
		if err != nil {
			t.Fatalf("%s: Aggregate: %v", c.Name(), err)
		}
		if !bytes.Equal(forward, reversed) {
			t.Errorf("%s: aggregate depends on order", c.Name())
		}
	}
}

// TestAggregateInfinity tests that R + (-R) is rejected
func TestAggregateInfinity(t *testing.T) {
	for _, c := range testCurves(t) {
		size := curve.DefaultPublicKeySize(c)
		pair, err := Create(c, randomness(9), size)
		if err != nil {
			t.Fatal(err)
		}

		r, _ := c.ParsePoint(pair.Commitment)
		negated, err := c.EncodePoint(c.NewPoint().Negate(r), size)
		if err != nil {
			t.Fatal(err)
		}

		if _, err := Aggregate(c, [][]byte{pair.Commitment, negated}, size); !errors.Is(err, ErrAggregateInfinity) {
			t.Errorf("%s: expected ErrAggregateInfinity, got %v", c.Name(), err)
		}
	}
}

// TestAggregateRejectsMalformed tests malformed and empty inputs
func TestAggregateRejectsMalformed(t *testing.T) {
	c, _ := curve.NewCurve(curve.Secp256k1)

	if _, err := Aggregate(c, nil, 33); !errors.Is(err, ErrNoCommitments) {
		t.Errorf("expected ErrNoCommitments, got %v", err)
	}

	bad := make([]byte, 33)
	bad[0] = 0x02
	for i := 1; i < len(bad); i++ {
		bad[i] = 0xff
	}
	if _, err := Aggregate(c, [][]byte{bad}, 33); !errors.Is(err, ErrInvalidCommitment) {
		t.Errorf("expected ErrInvalidCommitment, got %v", err)
	}
	if _, err := Aggregate(c, [][]byte{make([]byte, 32)}, 33); !errors.Is(err, ErrInvalidCommitment) {
		t.Errorf("x-only commitment: expected ErrInvalidCommitment, got %v", err)
	}
}
