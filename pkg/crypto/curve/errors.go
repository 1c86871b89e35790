package curve

import "errors"

var (
	// ErrUnsupportedCurve is returned when an unsupported curve is requested
	ErrUnsupportedCurve = errors.New("unsupported curve type")

	// ErrInvalidPoint is returned when bytes do not decode to a curve point
	ErrInvalidPoint = errors.New("invalid point: not on curve")

	// ErrInvalidScalar is returned when a scalar is not canonical (>= order)
	ErrInvalidScalar = errors.New("invalid scalar value")

	// ErrInvalidSecretKey is returned when a secret key is zero, >= order or
	// has the wrong length
	ErrInvalidSecretKey = errors.New("invalid secret key")

	// ErrPointAtInfinity is returned when the identity appears where a
	// proper point is required
	ErrPointAtInfinity = errors.New("point at infinity")

	// ErrInvalidEncoding is returned when an encoding has the wrong shape
	ErrInvalidEncoding = errors.New("invalid point encoding")

	// ErrInvalidEncodingSize is returned when an output encoding size is not
	// supported by the curve
	ErrInvalidEncodingSize = errors.New("unsupported point encoding size")

	// ErrScalarZero is returned when a scalar is zero but shouldn't be
	ErrScalarZero = errors.New("scalar is zero")
)
