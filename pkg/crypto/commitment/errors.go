package commitment

import "errors"

var (
	// ErrNilCurve is returned when a nil curve is provided
	ErrNilCurve = errors.New("curve cannot be nil")

	// ErrNilNonce is returned when a nil nonce is provided
	ErrNilNonce = errors.New("nonce cannot be nil")

	// ErrInvalidRandomness is returned when commitment randomness has the wrong size
	ErrInvalidRandomness = errors.New("invalid commitment randomness")

	// ErrDegenerateNonce is returned when randomness maps to an unusable nonce
	ErrDegenerateNonce = errors.New("degenerate commitment nonce")

	// ErrInvalidNonce is returned when an imported nonce does not decode
	ErrInvalidNonce = errors.New("invalid nonce")

	// ErrNonceReused is returned when a nonce is used a second time
	ErrNonceReused = errors.New("nonce already used")

	// ErrNoCommitments is returned when aggregating an empty set
	ErrNoCommitments = errors.New("no commitments to aggregate")

	// ErrInvalidCommitment is returned when a commitment is invalid
	ErrInvalidCommitment = errors.New("invalid commitment")

	// ErrAggregateInfinity is returned when commitments sum to the identity
	ErrAggregateInfinity = errors.New("aggregate commitment is the point at infinity")
)
