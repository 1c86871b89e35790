package musig

import (
	"bytes"
	"fmt"
)

// AddScalars returns a + b mod order. Both inputs must be canonical and
// non-zero, and so must the sum. On failure the result is all zeros.
func (e *Engine) AddScalars(a, b []byte) ([ScalarSize]byte, error) {
	var out [ScalarSize]byte
	c := e.curve

	sa, err := c.ParseScalar(a)
	if err != nil || sa.IsZero() {
		return out, e.reject("add_scalars", fmt.Errorf("%w: first operand", ErrInvalidScalar))
	}
	sb, err := c.ParseScalar(b)
	if err != nil || sb.IsZero() {
		return out, e.reject("add_scalars", fmt.Errorf("%w: second operand", ErrInvalidScalar))
	}

	sum := c.NewScalar().Add(sa, sb)
	if sum.IsZero() {
		return out, e.reject("add_scalars", ErrZeroScalar)
	}
	copy(out[:], sum.Bytes())
	return out, nil
}

// CombinePartialSignatures sums the partial signatures of all signers into
// the final signature. Every partial must carry the same aggregate nonce.
func (e *Engine) CombinePartialSignatures(partials []PartialSignature) (Signature, error) {
	const op = "combine_partial_signatures"

	var sig Signature
	if len(partials) == 0 {
		return sig, e.reject(op, ErrNoPartialSignatures)
	}

	nonce := partials[0].Nonce()
	sum := e.curve.NewScalar()
	for i, p := range partials {
		if !bytes.Equal(p.Nonce(), nonce) {
			return sig, e.reject(op, fmt.Errorf("partial %d: %w", i, ErrNonceMismatch))
		}
		s, err := e.curve.ParseScalar(p.S())
		if err != nil {
			return sig, e.reject(op, fmt.Errorf("partial %d: %w", i, ErrInvalidScalar))
		}
		sum.Add(sum, s)
	}
	if sum.IsZero() {
		return sig, e.reject(op, ErrZeroScalar)
	}

	copy(sig[:NonceSize], nonce)
	copy(sig[NonceSize:], sum.Bytes())
	return sig, nil
}
