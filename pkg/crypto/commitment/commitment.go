// Package commitment implements the first round of the multi-party signature
// protocol: each signer derives a secret nonce k from fresh randomness and
// publishes the commitment R = k*G. Commitments from all signers are summed
// into the aggregate commitment used by every partial signature.
package commitment

import (
	"fmt"
	"io"
	"sync"

	"github.com/Caqil/krypton/internal/security"
	"github.com/Caqil/krypton/pkg/crypto/curve"
	"github.com/Caqil/krypton/pkg/crypto/rand"
)

// RandomnessSize is the number of random bytes a commitment consumes
const RandomnessSize = rand.RandomnessSize

// Nonce is the secret half of a commitment. It can be consumed exactly once;
// afterwards the scalar is gone and any further use fails with ErrNonceReused.
type Nonce struct {
	mu    sync.Mutex
	curve curve.Curve
	k     curve.Scalar
	spent bool
}

// Pair is a secret nonce together with its public commitment
type Pair struct {
	// Nonce must stay with the signer that created it
	Nonce *Nonce

	// Commitment is the encoded point R = k*G, safe to publish
	Commitment []byte
}

func newNonce(c curve.Curve, k curve.Scalar) *Nonce {
	return &Nonce{curve: c, k: k}
}

// Curve returns the curve the nonce belongs to
func (n *Nonce) Curve() curve.Curve {
	return n.curve
}

// Consume hands out the nonce scalar and marks the nonce spent. The caller
// owns the returned scalar and must Zeroize it when done.
func (n *Nonce) Consume() (curve.Scalar, error) {
	if n == nil {
		return nil, ErrNilNonce
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.spent {
		return nil, ErrNonceReused
	}
	k := n.k
	n.k = nil
	n.spent = true
	return k, nil
}

// Spent reports whether the nonce has been consumed or destroyed
func (n *Nonce) Spent() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.spent
}

// Destroy wipes an unused nonce, for example when a signing session is
// abandoned after round one.
func (n *Nonce) Destroy() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.k != nil {
		n.k.Zeroize()
		n.k = nil
	}
	n.spent = true
}

// Export moves the scalar out as bytes so it can cross a process boundary.
// The nonce is spent afterwards. The returned buffer is secret.
func (n *Nonce) Export() ([]byte, error) {
	k, err := n.Consume()
	if err != nil {
		return nil, err
	}
	defer k.Zeroize()
	return append([]byte(nil), k.Bytes()...), nil
}

// ImportNonce rebuilds a nonce exported with Export
func ImportNonce(c curve.Curve, b []byte) (*Nonce, error) {
	if c == nil {
		return nil, ErrNilCurve
	}
	k, err := c.ParseScalar(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNonce, err)
	}
	if k.IsZero() {
		return nil, ErrInvalidNonce
	}
	return newNonce(c, k), nil
}

// Create derives a commitment from exactly RandomnessSize bytes of caller
// randomness. size selects the encoding of the published point.
func Create(c curve.Curve, randomness []byte, size int) (*Pair, error) {
	if c == nil {
		return nil, ErrNilCurve
	}
	if err := security.ValidateLength("randomness", randomness, RandomnessSize); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRandomness, err)
	}
	if !curve.IsPointSize(c, size) {
		return nil, fmt.Errorf("%w: %d", curve.ErrInvalidEncodingSize, size)
	}

	k, err := c.DeriveNonce(randomness)
	if err != nil {
		return nil, ErrDegenerateNonce
	}

	r := c.NewPoint().ScalarBaseMult(k)
	encoded, err := c.EncodePoint(r, size)
	if err != nil {
		k.Zeroize()
		return nil, err
	}

	return &Pair{
		Nonce:      newNonce(c, k),
		Commitment: encoded,
	}, nil
}

// Generate reads fresh randomness from r (rand.Reader when nil) and creates
// a commitment from it.
func Generate(c curve.Curve, r io.Reader, size int) (*Pair, error) {
	if r == nil {
		r = rand.Reader
	}
	randomness, err := rand.ReadBytes(r, RandomnessSize)
	if err != nil {
		return nil, err
	}
	defer security.SecureZero(randomness)

	return Create(c, randomness, size)
}

// Aggregate sums the commitments of all signers. The sum is order
// independent. A result at infinity is rejected.
func Aggregate(c curve.Curve, commitments [][]byte, size int) ([]byte, error) {
	if c == nil {
		return nil, ErrNilCurve
	}
	if len(commitments) == 0 {
		return nil, ErrNoCommitments
	}
	if !curve.IsPointSize(c, size) {
		return nil, fmt.Errorf("%w: %d", curve.ErrInvalidEncodingSize, size)
	}

	sum := c.NewPoint()
	for i, raw := range commitments {
		if !curve.IsPointSize(c, len(raw)) {
			return nil, fmt.Errorf("commitment %d: %w", i, ErrInvalidCommitment)
		}
		r, err := c.ParsePoint(raw)
		if err != nil {
			return nil, fmt.Errorf("commitment %d: %w: %v", i, ErrInvalidCommitment, err)
		}
		sum.Add(sum, r)
	}

	if sum.IsIdentity() {
		return nil, ErrAggregateInfinity
	}
	return c.EncodePoint(sum, size)
}
