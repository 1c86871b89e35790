package hash

import "errors"

var (
	// ErrInvalidLength is returned when an invalid length is specified
	ErrInvalidLength = errors.New("length must be positive")

	// ErrUnknownAlgorithm is returned for an unsupported digest name or id
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

	// ErrEmptySalt is returned when KDF is called without a salt
	ErrEmptySalt = errors.New("salt cannot be empty")
)
