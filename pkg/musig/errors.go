package musig

import "errors"

var (
	// ErrNoPublicKeys is returned when a key set is empty
	ErrNoPublicKeys = errors.New("no public keys")

	// ErrInvalidKeySetHash is returned when the key-set hash has the wrong size
	ErrInvalidKeySetHash = errors.New("invalid public key set hash")

	// ErrInvalidPublicKey is returned when a public key does not decode
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrAggregateInfinity is returned when delinearized keys sum to the identity
	ErrAggregateInfinity = errors.New("aggregate public key is the point at infinity")

	// ErrKeyMismatch is returned when a public key does not belong to the secret key
	ErrKeyMismatch = errors.New("public key does not match secret key")

	// ErrSignerNotInSet is returned when the signer's key is missing from the key set
	ErrSignerNotInSet = errors.New("signer public key not in key set")

	// ErrCurveMismatch is returned when a nonce was created on another curve
	ErrCurveMismatch = errors.New("nonce belongs to a different curve")

	// ErrInvalidScalar is returned when a scalar is zero or not canonical
	ErrInvalidScalar = errors.New("invalid scalar")

	// ErrZeroScalar is returned when a scalar sum is zero
	ErrZeroScalar = errors.New("scalar sum is zero")

	// ErrNoPartialSignatures is returned when combining an empty set
	ErrNoPartialSignatures = errors.New("no partial signatures")

	// ErrNonceMismatch is returned when partial signatures commit to different nonces
	ErrNonceMismatch = errors.New("partial signatures use different aggregate commitments")

	// ErrInvalidSignature is returned when a signature has the wrong size
	ErrInvalidSignature = errors.New("invalid signature encoding")
)
