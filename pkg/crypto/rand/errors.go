package rand

import "errors"

var (
	// ErrInvalidLength is returned when requested length is invalid
	ErrInvalidLength = errors.New("invalid length: must be positive")

	// ErrNilReader is returned when no entropy source is given
	ErrNilReader = errors.New("reader cannot be nil")
)
