package musig

import (
	"fmt"

	"github.com/Caqil/krypton/internal/security"
	"github.com/Caqil/krypton/pkg/crypto/commitment"
	"github.com/Caqil/krypton/pkg/crypto/curve"
	"github.com/Caqil/krypton/pkg/crypto/rand"
)

// CreateCommitment derives a commitment from 32 bytes of caller randomness
func (e *Engine) CreateCommitment(randomness []byte, size int) (*commitment.Pair, error) {
	pair, err := commitment.Create(e.curve, randomness, e.encodingSize(size))
	if err != nil {
		return nil, e.reject("create_commitment", err)
	}
	return pair, nil
}

// GenerateCommitment creates a commitment from the engine's entropy source
// using the default encoding
func (e *Engine) GenerateCommitment() (*commitment.Pair, error) {
	pair, err := commitment.Generate(e.curve, e.random, e.keyEncoding)
	if err != nil {
		return nil, e.reject("create_commitment", err)
	}
	return pair, nil
}

// AggregateCommitments sums the commitments of all signers
func (e *Engine) AggregateCommitments(commitments [][]byte, size int) ([]byte, error) {
	agg, err := commitment.Aggregate(e.curve, commitments, e.encodingSize(size))
	if err != nil {
		return nil, e.reject("aggregate_commitments", err)
	}
	return agg, nil
}

// PartialSign produces this signer's share of the signature on msg.
//
// aggCommitment is the sum of every signer's commitment, nonce is this
// signer's own secret from round one, pubkeys is the ordered key set shared by
// all signers and pubkey/seckey is this signer's key pair. The nonce is
// consumed by the call whether or not it succeeds.
func (e *Engine) PartialSign(msg, aggCommitment []byte, nonce *commitment.Nonce, pubkeys [][]byte, pubkey, seckey []byte) (PartialSignature, error) {
	const op = "partial_sign"

	scope := security.NewScope()
	defer scope.Wipe()

	if nonce == nil {
		return PartialSignature{}, e.reject(op, commitment.ErrNilNonce)
	}
	k, err := nonce.Consume()
	if err != nil {
		return PartialSignature{}, e.reject(op, err)
	}
	scope.Add(k)
	if nonce.Curve().Type() != e.curve.Type() {
		return PartialSignature{}, e.reject(op, ErrCurveMismatch)
	}

	r, err := e.parseAggregateCommitment(aggCommitment)
	if err != nil {
		return PartialSignature{}, e.reject(op, err)
	}

	c, err := e.HashPublicKeys(pubkeys)
	if err != nil {
		return PartialSignature{}, err
	}
	if err := e.checkKeyPair(pubkey, seckey); err != nil {
		return PartialSignature{}, e.rejectKey(op, pubkey, err)
	}
	entry, err := e.memberEntry(pubkeys, pubkey, seckey)
	if err != nil {
		return PartialSignature{}, e.rejectKey(op, pubkey, err)
	}

	// The parity of the secret follows the set entry, which is what the
	// aggregate key is built from.
	sk, err := e.delinearizedSecret(scope, c, entry, seckey)
	if err != nil {
		return PartialSignature{}, e.reject(op, err)
	}

	aggKey, err := e.aggregateKeys(c, pubkeys)
	if err != nil {
		return PartialSignature{}, e.reject(op, err)
	}

	return PartialSignature(e.createSignature(scope, msg, r, k, aggKey, sk)), nil
}

// Sign produces a single-party signature on msg. The nonce is derived from
// fresh randomness, the message and the key; on Ed25519 it follows RFC 8032
// and the output equals crypto/ed25519.Sign.
func (e *Engine) Sign(msg, pubkey, seckey []byte) (Signature, error) {
	const op = "sign"

	scope := security.NewScope()
	defer scope.Wipe()

	p, err := e.parsePublicKey(pubkey)
	if err != nil {
		return Signature{}, e.reject(op, err)
	}
	sk, err := e.parseSecretKey(seckey)
	if err != nil {
		return Signature{}, e.reject(op, err)
	}
	scope.Add(sk)

	if err := e.alignSecret(p, len(pubkey), sk); err != nil {
		return Signature{}, e.reject(op, err)
	}

	randomness, err := rand.ReadBytes(e.random, rand.RandomnessSize)
	if err != nil {
		return Signature{}, e.reject(op, err)
	}
	scope.Bytes(randomness)

	k, err := e.curve.SingleSignerNonce(randomness, msg, seckey, p)
	if err != nil {
		return Signature{}, e.reject(op, fmt.Errorf("derive nonce: %w", err))
	}
	scope.Add(k)

	r := e.curve.NewPoint().ScalarBaseMult(k)
	return e.createSignature(scope, msg, r, k, p, sk), nil
}

// createSignature computes enc(R) || k + e*sk with e = H(enc(R) || enc(P) || msg).
// k and sk are negated in place when R or P has odd Y; both must already be
// registered with scope.
func (e *Engine) createSignature(scope *security.Scope, msg []byte, r curve.Point, k curve.Scalar, p curve.Point, sk curve.Scalar) Signature {
	c := e.curve

	if c.HasOddY(p) {
		sk.Negate(sk)
	}
	if c.HasOddY(r) {
		k.Negate(k)
	}

	rEnc := c.HashEncoding(r)
	ch := c.Challenge(rEnc, c.HashEncoding(p), msg)

	esk := c.NewScalar().Mul(ch, sk)
	scope.Add(esk)
	s := c.NewScalar().Add(k, esk)
	scope.Add(s)

	var sig Signature
	copy(sig[:NonceSize], rEnc)
	copy(sig[NonceSize:], s.Bytes())
	return sig
}

func (e *Engine) parseAggregateCommitment(raw []byte) (curve.Point, error) {
	if !curve.IsPointSize(e.curve, len(raw)) {
		return nil, fmt.Errorf("%w: aggregate commitment has %d bytes", commitment.ErrInvalidCommitment, len(raw))
	}
	r, err := e.curve.ParsePoint(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", commitment.ErrInvalidCommitment, err)
	}
	return r, nil
}

// memberEntry returns the key set entry that belongs to the signer. Entries
// are matched on their hash encoding, so a signer may name its key in another
// encoding than the set does; the matched entry must still decode to the
// signer's point.
func (e *Engine) memberEntry(pubkeys [][]byte, pubkey, seckey []byte) ([]byte, error) {
	own, err := e.keyHashEncoding(pubkey)
	if err != nil {
		return nil, err
	}
	found := false
	for _, pk := range pubkeys {
		enc, err := e.curve.KeyHashEncoding(pk)
		if err != nil || !security.ConstantTimeCompare(enc, own) {
			continue
		}
		found = true
		if e.checkKeyPair(pk, seckey) == nil {
			return pk, nil
		}
	}
	if found {
		return nil, ErrKeyMismatch
	}
	return nil, ErrSignerNotInSet
}

func (e *Engine) checkKeyPair(pubkey, seckey []byte) error {
	p, err := e.parsePublicKey(pubkey)
	if err != nil {
		return err
	}
	sk, err := e.parseSecretKey(seckey)
	if err != nil {
		return err
	}
	defer sk.Zeroize()
	return e.alignSecret(p, len(pubkey), sk)
}

// alignSecret checks that sk*G is p. An x-only key decodes with even Y, so
// for such keys sk is negated in place when sk*G is -p.
func (e *Engine) alignSecret(p curve.Point, encodedSize int, sk curve.Scalar) error {
	c := e.curve
	q := c.NewPoint().ScalarBaseMult(sk)
	if q.Equal(p) {
		return nil
	}
	if !curve.IsPointSize(c, encodedSize) && c.NewPoint().Negate(q).Equal(p) {
		sk.Negate(sk)
		return nil
	}
	return ErrKeyMismatch
}
