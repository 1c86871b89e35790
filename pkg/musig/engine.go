// Package musig implements delinearized multi-party Schnorr signatures over
// secp256k1 and Ed25519.
//
// PROTOCOL OVERVIEW:
//
// Key setup:
//   - Every signer i holds a secret key sk_i and public key P_i.
//   - The ordered key set is hashed: C = H(P_1 || ... || P_n).
//   - Each key is weighted by a delinearization factor a_i = H(C || P_i),
//     which defeats rogue-key attacks.
//   - The aggregate key is P_agg = Σ a_i * P_i.
//
// Signing (2 rounds):
//
//	Round 1 - Commitment:
//	  Each signer derives k_i from 32 fresh random bytes and publishes
//	  R_i = k_i * G (commitment.Create / Engine.CreateCommitment).
//	  Any party sums them: R = Σ R_i (Engine.AggregateCommitments).
//
//	Round 2 - Partial signature:
//	  Each signer computes e = H(R || P_agg || m) and
//	  s_i = k_i + e * a_i * sk_i (Engine.PartialSign).
//	  Any party sums s = Σ s_i (Engine.CombinePartialSignatures).
//
// The result (R, s) is an ordinary single-key signature for P_agg and is
// checked with Engine.Verify. On secp256k1 points are normalized to even Y by
// negating secrets; on Ed25519 the signature is a standard RFC 8032
// signature.
//
// The key order used for C must be identical at every signer. The engine
// never reorders keys; use SortPublicKeys when a canonical order is wanted.
package musig

import (
	"io"

	"github.com/Caqil/krypton/pkg/crypto/curve"
	"github.com/Caqil/krypton/pkg/crypto/rand"
	"github.com/Caqil/krypton/pkg/logger"
)

// Engine carries the curve and collaborators for all signature operations.
// It is immutable after construction and safe for concurrent use.
type Engine struct {
	curve       curve.Curve
	log         *logger.Logger
	random      io.Reader
	keyEncoding int
	keySetSize  int
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger for rejected-input diagnostics
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithRandom sets the entropy source used by Sign and GenerateCommitment
func WithRandom(r io.Reader) Option {
	return func(e *Engine) {
		if r != nil {
			e.random = r
		}
	}
}

// WithKeyEncoding sets the default output encoding for public keys and
// commitments
func WithKeyEncoding(size int) Option {
	return func(e *Engine) {
		e.keyEncoding = size
	}
}

// NewEngine creates an engine for the given curve
func NewEngine(ct curve.CurveType, opts ...Option) (*Engine, error) {
	c, err := curve.NewCurve(ct)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		curve:       c,
		log:         logger.Nop(),
		random:      rand.Reader,
		keyEncoding: curve.DefaultPublicKeySize(c),
		keySetSize:  len(c.Hash()),
	}
	for _, opt := range opts {
		opt(e)
	}

	if !curve.IsPointSize(c, e.keyEncoding) {
		return nil, curve.ErrInvalidEncodingSize
	}
	e.log = e.log.With().Str("curve", c.Name()).Logger()

	return e, nil
}

// Curve returns the engine's curve
func (e *Engine) Curve() curve.Curve {
	return e.curve
}

// KeyEncoding returns the default public key and commitment encoding size
func (e *Engine) KeyEncoding() int {
	return e.keyEncoding
}

// KeySetHashSize is the length of the key-set hash C
func (e *Engine) KeySetHashSize() int {
	return e.keySetSize
}

// encodingSize maps a requested output size of zero to the engine default
func (e *Engine) encodingSize(size int) int {
	if size == 0 {
		return e.keyEncoding
	}
	return size
}

func (e *Engine) reject(op string, err error) error {
	e.log.DebugEvent().Str("op", op).Err(err).Msg("operation rejected")
	return err
}

// rejectKey is reject for failures tied to one public key, which is logged
// as a fingerprint
func (e *Engine) rejectKey(op string, pubkey []byte, err error) error {
	e.log.DebugEvent().Str("op", op).Fingerprint("pubkey", pubkey).Err(err).Msg("operation rejected")
	return err
}
