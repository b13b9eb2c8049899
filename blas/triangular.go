package blas

import (
	"fmt"

	"github.com/flwende/fp/codec"
	"github.com/flwende/fp/internal/geometry"
	"github.com/flwende/fp/internal/kernel"
	"github.com/flwende/fp/internal/store"
)

// TriangularMatrix is an immutable, block-compressed N×N upper- or
// lower-triangular matrix. Only the declared triangle is stored.
type TriangularMatrix[T Float] struct {
	shape geometry.TriangularShape
	cont  *store.Container[T]
	ops   kernel.BLAS2[T]
}

// NewTriangularMatrix compresses the declared triangle of a dense n×n
// source (row major, leading dimension ld) into a new TriangularMatrix.
func NewTriangularMatrix[T Float](src []T, n, ld, bs int, orientation geometry.Orientation, format codec.Format[T]) (*TriangularMatrix[T], error) {
	if err := validateBlockSize(bs); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, ErrNilSource
	}
	if n > 0 {
		if ld < n {
			return nil, fmt.Errorf("%w: leading dimension %d smaller than n %d", ErrShapeMismatch, ld, n)
		}
		if need := (n-1)*ld + n; len(src) < need {
			return nil, fmt.Errorf("%w: source has %d elements, need %d for n=%d ld=%d", ErrShapeMismatch, len(src), need, n, ld)
		}
	}
	shape := geometry.TriangularShape{N: n, BS: bs, Orientation: orientation}
	cont := store.BuildTriangular(src, ld, format, shape)
	return &TriangularMatrix[T]{shape: shape, cont: cont, ops: kernel.For[T]()}, nil
}

// BorrowTriangularMatrix wraps an already-compressed stream, borrowing
// it. The caller must have produced it with the same shape and codec
// format and keep it alive for the TriangularMatrix's lifetime.
func BorrowTriangularMatrix[T Float](stream []byte, n, bs int, orientation geometry.Orientation, format codec.Format[T]) (*TriangularMatrix[T], error) {
	if err := validateBlockSize(bs); err != nil {
		return nil, err
	}
	if need := MemoryFootprintBytesTriangular[T](n, bs, orientation, format); len(stream) < need {
		return nil, fmt.Errorf("%w: stream has %d bytes, need %d", ErrBorrowedStreamTooShort, len(stream), need)
	}
	shape := geometry.TriangularShape{N: n, BS: bs, Orientation: orientation}
	cont := store.Borrow[T](shape, format, stream)
	return &TriangularMatrix[T]{shape: shape, cont: cont, ops: kernel.For[T]()}, nil
}

// MemoryFootprintElements returns the total packed element count.
func (t *TriangularMatrix[T]) MemoryFootprintElements() int { return t.cont.MemoryFootprintElements() }

// MemoryFootprintBytes returns the total stream size in bytes.
func (t *TriangularMatrix[T]) MemoryFootprintBytes() int { return t.cont.MemoryFootprintBytes() }

func (t *TriangularMatrix[T]) uplo() kernel.Uplo {
	if t.shape.Orientation == geometry.Lower {
		return kernel.Lower
	}
	return kernel.Upper
}
