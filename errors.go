package cryptonight

import "errors"

var (
	// ErrShortInput the input does not cover the variant 1 tweak window
	ErrShortInput = errors.New("cryptonight: variant 1 requires at least 43 bytes of input")
	// ErrShortState prehashed callers must supply a full 200-byte sponge state
	ErrShortState = errors.New("cryptonight: prehashed state must be at least 200 bytes")
	// ErrUnknownVariant the variant selector is not one of V0..V3, R
	ErrUnknownVariant = errors.New("cryptonight: unknown variant")

	// ErrPageSize reported by Parameters.Verify
	ErrPageSize = errors.New("cryptonight: page size must be a power of two, 128 bytes or larger")
	// ErrInitSize reported by Parameters.Verify
	ErrInitSize = errors.New("cryptonight: init size must be a positive multiple of 128 no larger than the page size")
	// ErrIterations reported by Parameters.Verify
	ErrIterations = errors.New("cryptonight: iteration count must be positive and even")
)
