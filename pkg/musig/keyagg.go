package musig

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/Caqil/krypton/internal/security"
	"github.com/Caqil/krypton/pkg/crypto/curve"
)

// HashPublicKeys computes the key-set hash C over the keys in the given
// order. Reordering the keys changes C.
func (e *Engine) HashPublicKeys(pubkeys [][]byte) ([]byte, error) {
	parts, err := e.keyHashEncodings(pubkeys)
	if err != nil {
		return nil, e.reject("hash_pubkeys", err)
	}
	return e.curve.Hash(parts...), nil
}

// DelinearizePublicKey returns H(C || P) * P encoded with size bytes, or the
// engine default when size is zero
func (e *Engine) DelinearizePublicKey(c, pubkey []byte, size int) ([]byte, error) {
	const op = "delinearize_pubkey"
	size = e.encodingSize(size)

	if err := e.checkKeySetHash(c); err != nil {
		return nil, e.reject(op, err)
	}
	if !curve.IsPublicKeySize(e.curve, size) {
		return nil, e.reject(op, curve.ErrInvalidEncodingSize)
	}

	p, err := e.parsePublicKey(pubkey)
	if err != nil {
		return nil, e.reject(op, err)
	}
	a, err := e.factor(c, pubkey)
	if err != nil {
		return nil, e.reject(op, err)
	}

	out, err := e.curve.EncodePoint(e.curve.NewPoint().ScalarMult(a, p), size)
	if err != nil {
		return nil, e.reject(op, err)
	}
	return out, nil
}

// DeriveDelinearizedSecretKey returns H(C || P) * sk. The result is secret;
// the caller should wipe it after use.
func (e *Engine) DeriveDelinearizedSecretKey(c, pubkey, seckey []byte) ([]byte, error) {
	scope := security.NewScope()
	defer scope.Wipe()

	sk, err := e.delinearizedSecret(scope, c, pubkey, seckey)
	if err != nil {
		return nil, e.reject("derive_delinearized_seckey", err)
	}
	return append([]byte(nil), sk.Bytes()...), nil
}

// AggregateDelinearizedPublicKeys returns Σ H(C || P_i) * P_i encoded with
// size bytes
func (e *Engine) AggregateDelinearizedPublicKeys(c []byte, pubkeys [][]byte, size int) ([]byte, error) {
	const op = "aggregate_delinearized_pubkeys"
	size = e.encodingSize(size)

	if !curve.IsPublicKeySize(e.curve, size) {
		return nil, e.reject(op, curve.ErrInvalidEncodingSize)
	}

	sum, err := e.aggregateKeys(c, pubkeys)
	if err != nil {
		return nil, e.reject(op, err)
	}

	out, err := e.curve.EncodePoint(sum, size)
	if err != nil {
		return nil, e.reject(op, err)
	}
	return out, nil
}

// AggregatePublicKeys hashes the key set and aggregates it in one call
func (e *Engine) AggregatePublicKeys(pubkeys [][]byte, size int) ([]byte, error) {
	c, err := e.HashPublicKeys(pubkeys)
	if err != nil {
		return nil, err
	}
	return e.AggregateDelinearizedPublicKeys(c, pubkeys, size)
}

// PublicKey derives the public key of seckey encoded with size bytes
func (e *Engine) PublicKey(seckey []byte, size int) ([]byte, error) {
	const op = "pubkey_create"
	size = e.encodingSize(size)

	sk, err := e.parseSecretKey(seckey)
	if err != nil {
		return nil, e.reject(op, err)
	}
	defer sk.Zeroize()

	if !curve.IsPublicKeySize(e.curve, size) {
		return nil, e.reject(op, curve.ErrInvalidEncodingSize)
	}
	return e.curve.EncodePoint(e.curve.NewPoint().ScalarBaseMult(sk), size)
}

// SortPublicKeys returns a lexicographically sorted copy of pubkeys. Signers
// that agree to use it obtain the same C regardless of how the key list was
// assembled.
func SortPublicKeys(pubkeys [][]byte) [][]byte {
	sorted := make([][]byte, len(pubkeys))
	for i, pk := range pubkeys {
		sorted[i] = append([]byte(nil), pk...)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i], sorted[j]) < 0
	})
	return sorted
}

func (e *Engine) keyHashEncodings(pubkeys [][]byte) ([][]byte, error) {
	if len(pubkeys) == 0 {
		return nil, ErrNoPublicKeys
	}

	parts := make([][]byte, len(pubkeys))
	for i, pk := range pubkeys {
		enc, err := e.keyHashEncoding(pk)
		if err != nil {
			return nil, fmt.Errorf("public key %d: %w", i, err)
		}
		parts[i] = enc
	}
	return parts, nil
}

func (e *Engine) keyHashEncoding(pubkey []byte) ([]byte, error) {
	if err := security.ValidateLengthOneOf("public key", pubkey, e.curve.PublicKeySizes()...); err != nil {
		return nil, err
	}
	enc, err := e.curve.KeyHashEncoding(pubkey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return enc, nil
}

func (e *Engine) checkKeySetHash(c []byte) error {
	if len(c) != e.keySetSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeySetHash, len(c), e.keySetSize)
	}
	return nil
}

// factor computes the delinearization factor H(C || enc(P))
func (e *Engine) factor(c, pubkey []byte) (curve.Scalar, error) {
	enc, err := e.keyHashEncoding(pubkey)
	if err != nil {
		return nil, err
	}
	return e.curve.HashToScalar(c, enc), nil
}

func (e *Engine) parsePublicKey(pubkey []byte) (curve.Point, error) {
	if err := security.ValidateLengthOneOf("public key", pubkey, e.curve.PublicKeySizes()...); err != nil {
		return nil, err
	}
	p, err := e.curve.ParsePoint(pubkey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return p, nil
}

func (e *Engine) parseSecretKey(seckey []byte) (curve.Scalar, error) {
	sk, err := e.curve.ParseSecretKey(seckey)
	if err != nil {
		return nil, err
	}
	return sk, nil
}

// delinearizedSecret returns H(C || P) * sk registered with scope. For an
// x-only key the secret is first negated if needed so that sk*G has even Y,
// matching how the key decodes.
func (e *Engine) delinearizedSecret(scope *security.Scope, c, pubkey, seckey []byte) (curve.Scalar, error) {
	if err := e.checkKeySetHash(c); err != nil {
		return nil, err
	}

	sk, err := e.parseSecretKey(seckey)
	if err != nil {
		return nil, err
	}
	scope.Add(sk)

	if curve.IsPublicKeySize(e.curve, len(pubkey)) && !curve.IsPointSize(e.curve, len(pubkey)) {
		if e.curve.HasOddY(e.curve.NewPoint().ScalarBaseMult(sk)) {
			sk.Negate(sk)
		}
	}

	a, err := e.factor(c, pubkey)
	if err != nil {
		return nil, err
	}

	out := e.curve.NewScalar().Mul(a, sk)
	scope.Add(out)
	return out, nil
}

// aggregateKeys computes Σ H(C || P_i) * P_i
func (e *Engine) aggregateKeys(c []byte, pubkeys [][]byte) (curve.Point, error) {
	if err := e.checkKeySetHash(c); err != nil {
		return nil, err
	}
	if len(pubkeys) == 0 {
		return nil, ErrNoPublicKeys
	}

	sum := e.curve.NewPoint()
	for i, pk := range pubkeys {
		p, err := e.parsePublicKey(pk)
		if err != nil {
			return nil, fmt.Errorf("public key %d: %w", i, err)
		}
		a, err := e.factor(c, pk)
		if err != nil {
			return nil, fmt.Errorf("public key %d: %w", i, err)
		}
		sum.Add(sum, e.curve.NewPoint().ScalarMult(a, p))
	}

	if sum.IsIdentity() {
		return nil, ErrAggregateInfinity
	}
	return sum, nil
}
