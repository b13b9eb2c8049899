package blas

import (
	"fmt"

	"github.com/flwende/fp/internal/cpuinfo"
	"github.com/flwende/fp/internal/geometry"
)

// SymmetricMatrixVector computes y := alpha*A*x + beta*y, treating the
// triangle t stores as one half of a full symmetric matrix: each
// off-diagonal block contributes twice, once directly and once
// transposed, standing in for the unstored mirror block.
func (t *TriangularMatrix[T]) SymmetricMatrixVector(alpha T, x []T, beta T, y []T) error {
	n := t.shape.N
	if len(x) < n {
		return fmt.Errorf("%w: x has length %d, need %d", ErrVectorTooShort, len(x), n)
	}
	if len(y) < n {
		return fmt.Errorf("%w: y has length %d, need %d", ErrVectorTooShort, len(y), n)
	}

	bs := t.shape.BS
	ul := t.uplo()

	op := func(xIn, yOut []T) {
		packed := cpuinfo.AlignedSlice[T](bs * (bs + 1) / 2)
		scratch := cpuinfo.AlignedSlice[T](bs * bs)

		t.cont.Blocks(func(b geometry.Block, byteOff, logical int) bool {
			rows, cols := triBlockDims(t.shape, b)
			if rows == 0 {
				return true
			}
			switch b.Region {
			case geometry.RegionA, geometry.RegionD:
				pk := packed[:logical]
				t.cont.DecompressAt(byteOff, logical, pk)
				base := b.BJ * bs
				t.ops.Spmv(ul, rows, alpha, pk, xIn[base:base+rows], 1, 1, yOut[base:base+rows], 1)
			default:
				if cols == 0 {
					return true
				}
				blk := scratch[:logical]
				t.cont.DecompressAt(byteOff, logical, blk)
				rowBase, colBase := b.BJ*bs, b.BI*bs
				accumulateGemv(t.ops, false, alpha, rows, cols, blk, rowBase, colBase, xIn, yOut)
				accumulateGemv(t.ops, true, alpha, rows, cols, blk, rowBase, colBase, xIn, yOut)
			}
			return true
		})
	}
	frame(false, alpha, beta, n, n, x, y, op)
	return nil
}
