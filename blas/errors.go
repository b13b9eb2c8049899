package blas

import "errors"

// Sentinel errors returned by the public constructors and operations. Every message is
// prefixed "blas: " for easy grepping; callers should match with
// errors.Is, not string comparison.
var (
	// ErrNilSource is returned when a dense-construction call is given a
	// nil source slice.
	ErrNilSource = errors.New("blas: nil source slice")

	// ErrShapeMismatch is returned when a source slice is shorter than
	// its declared shape and leading dimension require.
	ErrShapeMismatch = errors.New("blas: source shape mismatch")

	// ErrBlockSizeTooLarge is returned when bs exceeds MaxBlockSize.
	ErrBlockSizeTooLarge = errors.New("blas: block size too large")

	// ErrInvalidBlockSize is returned when bs < 1.
	ErrInvalidBlockSize = errors.New("blas: block size must be >= 1")

	// ErrBorrowedStreamTooShort is returned when a borrowed stream is
	// shorter than the shape's computed footprint.
	ErrBorrowedStreamTooShort = errors.New("blas: borrowed stream too short")

	// ErrVectorTooShort is returned when an x or y argument is shorter
	// than the shape requires.
	ErrVectorTooShort = errors.New("blas: vector argument too short")

	// ErrZeroExtent is never returned to a caller — a zero-extent
	// dimension is a valid no-op call, not a failure. It names the
	// early-return path in frame's debug log so the condition is
	// grep-able the same way an actual error would be.
	ErrZeroExtent = errors.New("blas: zero-extent dimension, no-op")
)
