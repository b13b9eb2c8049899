package blas

import (
	"fmt"

	"github.com/flwende/fp/codec"
	"github.com/flwende/fp/internal/cpuinfo"
	"github.com/flwende/fp/internal/geometry"
	"github.com/flwende/fp/internal/kernel"
	"github.com/flwende/fp/internal/store"
)

// Matrix is an immutable, block-compressed M×N dense matrix.
type Matrix[T Float] struct {
	shape geometry.FullShape
	cont  *store.Container[T]
	ops   kernel.BLAS2[T]
}

func validateBlockSize(bs int) error {
	if bs < 1 {
		return ErrInvalidBlockSize
	}
	if bs > MaxBlockSize {
		return ErrBlockSizeTooLarge
	}
	return nil
}

// NewMatrix compresses a dense m×n source (row major, leading dimension
// ld) into a new Matrix, taking ownership of the resulting stream.
func NewMatrix[T Float](src []T, m, n, ld, bs int, format codec.Format[T]) (*Matrix[T], error) {
	if err := validateBlockSize(bs); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, ErrNilSource
	}
	if m > 0 && n > 0 {
		if ld < n {
			return nil, fmt.Errorf("%w: leading dimension %d smaller than n %d", ErrShapeMismatch, ld, n)
		}
		if need := (m-1)*ld + n; len(src) < need {
			return nil, fmt.Errorf("%w: source has %d elements, need %d for m=%d n=%d ld=%d", ErrShapeMismatch, len(src), need, m, n, ld)
		}
	}
	shape := geometry.FullShape{M: m, N: n, BS: bs}
	cont := store.BuildFull(src, ld, bs, format, shape)
	return &Matrix[T]{shape: shape, cont: cont, ops: kernel.For[T]()}, nil
}

// BorrowMatrix wraps an already-compressed stream, borrowing it. The
// caller must have produced it with the same shape and codec format and
// keep it alive for the Matrix's lifetime.
func BorrowMatrix[T Float](stream []byte, m, n, bs int, format codec.Format[T]) (*Matrix[T], error) {
	if err := validateBlockSize(bs); err != nil {
		return nil, err
	}
	if need := MemoryFootprintBytesFull[T](m, n, bs, format); len(stream) < need {
		return nil, fmt.Errorf("%w: stream has %d bytes, need %d", ErrBorrowedStreamTooShort, len(stream), need)
	}
	shape := geometry.FullShape{M: m, N: n, BS: bs}
	cont := store.Borrow[T](shape, format, stream)
	return &Matrix[T]{shape: shape, cont: cont, ops: kernel.For[T]()}, nil
}

// MemoryFootprintElements returns the total packed element count.
func (mat *Matrix[T]) MemoryFootprintElements() int { return mat.cont.MemoryFootprintElements() }

// MemoryFootprintBytes returns the total stream size in bytes.
func (mat *Matrix[T]) MemoryFootprintBytes() int { return mat.cont.MemoryFootprintBytes() }

// MatrixVector computes y := alpha*op(A)*x + beta*y, where op(A) is A or
// Aᵀ depending on transpose.
func (mat *Matrix[T]) MatrixVector(transpose bool, alpha T, x []T, beta T, y []T) error {
	m, n := mat.shape.M, mat.shape.N
	xLen, yLen := n, m
	if transpose {
		xLen, yLen = m, n
	}
	if len(x) < xLen {
		return fmt.Errorf("%w: x has length %d, need %d", ErrVectorTooShort, len(x), xLen)
	}
	if len(y) < yLen {
		return fmt.Errorf("%w: y has length %d, need %d", ErrVectorTooShort, len(y), yLen)
	}

	bs := mat.shape.BS

	op := func(xIn, yOut []T) {
		scratch := cpuinfo.AlignedSlice[T](bs * bs)
		mat.cont.Blocks(func(b geometry.Block, byteOff, logical int) bool {
			rows, cols := fullBlockDims(mat.shape, b.Region)
			if rows == 0 || cols == 0 {
				return true
			}
			blk := scratch[:logical]
			mat.cont.DecompressAt(byteOff, logical, blk)

			rowBase, colBase := b.BJ*bs, b.BI*bs
			accumulateGemv(mat.ops, transpose, alpha, rows, cols, blk, rowBase, colBase, xIn, yOut)
			return true
		})
	}
	frame(transpose, alpha, beta, m, n, x, y, op)
	return nil
}
