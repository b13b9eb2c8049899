package blas

import (
	"fmt"

	"github.com/flwende/fp/internal/cpuinfo"
	"github.com/flwende/fp/internal/geometry"
	"github.com/flwende/fp/internal/kernel"
)

// Solve computes xOut such that (alpha*A)·xOut = yRHS (or its transpose
// system), where A is the triangle t stores. Each block row is solved
// against an implicit alpha=1 system — accumulating already-solved
// neighbor contributions via Gemv, subtracting from the right-hand side,
// then running a packed Tpsv on the diagonal block — and the entire
// solution is scaled by 1/alpha once every row has been solved.
//
// The block sweep order depends jointly on orientation and transpose so
// that every block a row's accumulation step reads has already been
// solved by an earlier iteration; see blockDirection.
func (t *TriangularMatrix[T]) Solve(transpose bool, alpha T, xOut, yRHS []T) error {
	n := t.shape.N
	if len(xOut) < n {
		return fmt.Errorf("%w: xOut has length %d, need %d", ErrVectorTooShort, len(xOut), n)
	}
	if len(yRHS) < n {
		return fmt.Errorf("%w: yRHS has length %d, need %d", ErrVectorTooShort, len(yRHS), n)
	}

	bs := t.shape.BS
	rn := t.shape.Remainder()
	bn := n / bs
	total := bn
	if rn > 0 {
		total++
	}
	ul := t.uplo()
	tA := kernel.NoTrans
	if transpose {
		tA = kernel.Trans
	}
	descending := (t.shape.Orientation == geometry.Upper) != transpose

	outer := blockDirection(total, descending)
	var one T = 1

	accBuf := cpuinfo.AlignedSlice[T](bs)
	blockBuf := cpuinfo.AlignedSlice[T](bs * bs)
	diagBuf := cpuinfo.AlignedSlice[T](bs * (bs + 1) / 2)

	for bj := range outer {
		rows := triBlockDim(t.shape, bj)
		base := bj * bs
		acc := accBuf[:rows]
		for i := range acc {
			acc[i] = 0
		}

		for bi := range innerDirection(bj, total, descending) {
			sbj, sbi := bj, bi
			if transpose {
				sbj, sbi = bi, bj
			}
			rowsStored, colsStored := triBlockDims(t.shape, geometry.Block{BJ: sbj, BI: sbi})
			block := t.cont.BlockSliceInto(sbj, sbi, rowsStored*colsStored, blockBuf)

			biExtent := triBlockDim(t.shape, bi)
			biBase := bi * bs
			t.ops.Gemv(tA, rowsStored, colsStored, one, block, colsStored, xOut[biBase:biBase+biExtent], 1, one, acc, 1)
		}

		for i := 0; i < rows; i++ {
			xOut[base+i] = yRHS[base+i] - acc[i]
		}

		diag := t.cont.BlockSliceInto(bj, bj, rows*(rows+1)/2, diagBuf)
		t.ops.Tpsv(ul, tA, kernel.NonUnit, rows, diag, xOut[base:base+rows], 1)
	}

	invAlpha := one / alpha
	for i := 0; i < n; i++ {
		xOut[i] *= invAlpha
	}
	return nil
}

// blockDirection yields block-row indices 0..total-1 in ascending order,
// or total-1..0 when descending is set.
func blockDirection(total int, descending bool) func(yield func(int) bool) {
	return func(yield func(int) bool) {
		if descending {
			for i := total - 1; i >= 0; i-- {
				if !yield(i) {
					return
				}
			}
			return
		}
		for i := 0; i < total; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// innerDirection yields the already-solved neighbor indices for block
// row bj: total-1 down to bj+1 when descending, 0 up to bj-1 otherwise.
func innerDirection(bj, total int, descending bool) func(yield func(int) bool) {
	return func(yield func(int) bool) {
		if descending {
			for i := total - 1; i > bj; i-- {
				if !yield(i) {
					return
				}
			}
			return
		}
		for i := 0; i < bj; i++ {
			if !yield(i) {
				return
			}
		}
	}
}
