package security

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength is returned when an input buffer has the wrong size
	ErrInvalidLength = errors.New("invalid input length")

	// ErrEmptyInput is returned when a required input is empty
	ErrEmptyInput = errors.New("empty input")
)

// ValidateLength checks that data is exactly want bytes long.
func ValidateLength(name string, data []byte, want int) error {
	if len(data) != want {
		return fmt.Errorf("%s: got %d bytes, want %d: %w", name, len(data), want, ErrInvalidLength)
	}
	return nil
}

// ValidateLengthOneOf checks that data has one of the allowed sizes.
func ValidateLengthOneOf(name string, data []byte, allowed ...int) error {
	for _, n := range allowed {
		if len(data) == n {
			return nil
		}
	}
	return fmt.Errorf("%s: got %d bytes, want one of %v: %w", name, len(data), allowed, ErrInvalidLength)
}

// ValidateNonEmpty checks that data is not empty.
func ValidateNonEmpty(name string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%s: %w", name, ErrEmptyInput)
	}
	return nil
}
