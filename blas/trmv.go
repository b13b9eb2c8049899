package blas

import (
	"fmt"

	"github.com/flwende/fp/internal/cpuinfo"
	"github.com/flwende/fp/internal/geometry"
	"github.com/flwende/fp/internal/kernel"
)

// MatrixVector computes y := alpha*op(A)*x + beta*y, where A is the
// triangle t stores and op(A) is A or Aᵀ depending on transpose.
//
// Each diagonal block contributes via a packed triangular multiply
// (Tpmv) against a private copy of its x segment, scaled by alpha and
// added into y. Each off-diagonal block contributes via a dense Gemv
// accumulation, exactly as Matrix.MatrixVector does for its own blocks.
// The stream is walked twice: diagonal blocks in the first pass,
// off-diagonal blocks in the second.
func (t *TriangularMatrix[T]) MatrixVector(transpose bool, alpha T, x []T, beta T, y []T) error {
	n := t.shape.N
	if len(x) < n {
		return fmt.Errorf("%w: x has length %d, need %d", ErrVectorTooShort, len(x), n)
	}
	if len(y) < n {
		return fmt.Errorf("%w: y has length %d, need %d", ErrVectorTooShort, len(y), n)
	}

	bs := t.shape.BS
	tA := kernel.NoTrans
	if transpose {
		tA = kernel.Trans
	}
	ul := t.uplo()

	op := func(xIn, yOut []T) {
		packed := cpuinfo.AlignedSlice[T](bs * (bs + 1) / 2)
		seg := cpuinfo.AlignedSlice[T](bs)
		scratch := cpuinfo.AlignedSlice[T](bs * bs)

		diagPass := true
		visit := func(b geometry.Block, byteOff, logical int) bool {
			rows, cols := triBlockDims(t.shape, b)
			if rows == 0 {
				return true
			}
			if diag := b.Region == geometry.RegionA || b.Region == geometry.RegionD; diag != diagPass {
				return true
			}
			switch b.Region {
			case geometry.RegionA, geometry.RegionD:
				pk := packed[:logical]
				t.cont.DecompressAt(byteOff, logical, pk)

				base := b.BJ * bs
				sg := seg[:rows]
				copy(sg, xIn[base:base+rows])
				t.ops.Tpmv(ul, tA, kernel.NonUnit, rows, pk, sg, 1)
				for i := 0; i < rows; i++ {
					yOut[base+i] += alpha * sg[i]
				}
			default:
				if cols == 0 {
					return true
				}
				blk := scratch[:logical]
				t.cont.DecompressAt(byteOff, logical, blk)
				rowBase, colBase := b.BJ*bs, b.BI*bs
				accumulateGemv(t.ops, transpose, alpha, rows, cols, blk, rowBase, colBase, xIn, yOut)
			}
			return true
		}
		t.cont.Blocks(visit)
		diagPass = false
		t.cont.Blocks(visit)
	}
	frame(transpose, alpha, beta, n, n, x, y, op)
	return nil
}
