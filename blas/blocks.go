package blas

import (
	"github.com/flwende/fp/internal/geometry"
	"github.com/flwende/fp/internal/kernel"
)

// accumulateGemv adds alpha*op(block)*xIn into yOut for one rows×cols
// dense block at (rowBase, colBase), where op is identity or transpose
// depending on transpose. beta is always 1: the caller (frame's op
// closure) only ever accumulates, never scales yOut's prior contents.
func accumulateGemv[T Float](ops kernel.BLAS2[T], transpose bool, alpha T, rows, cols int, block []T, rowBase, colBase int, xIn, yOut []T) {
	tA := kernel.NoTrans
	if transpose {
		tA = kernel.Trans
	}
	if !transpose {
		ops.Gemv(tA, rows, cols, alpha, block, cols, xIn[colBase:colBase+cols], 1, 1, yOut[rowBase:rowBase+rows], 1)
	} else {
		ops.Gemv(tA, rows, cols, alpha, block, cols, xIn[rowBase:rowBase+rows], 1, 1, yOut[colBase:colBase+cols], 1)
	}
}

// fullBlockDims returns the row/column extent of block region r within a
// FullShape.
func fullBlockDims(shape geometry.FullShape, r geometry.Region) (rows, cols int) {
	rm, rn := shape.Remainder()
	switch r {
	case geometry.RegionA:
		return shape.BS, shape.BS
	case geometry.RegionB:
		return shape.BS, rn
	case geometry.RegionC:
		return rm, shape.BS
	case geometry.RegionD:
		return rm, rn
	default:
		return 0, 0
	}
}

// triBlockDims returns the row/column extent of block (bj, bi) within a
// TriangularShape. Diagonal blocks (bj==bi) always have rows==cols.
func triBlockDims(shape geometry.TriangularShape, b geometry.Block) (rows, cols int) {
	bn := shape.N / shape.BS
	rn := shape.Remainder()
	rows = shape.BS
	if b.BJ == bn {
		rows = rn
	}
	cols = shape.BS
	if b.BI == bn {
		cols = rn
	}
	return
}

// triBlockDim returns the row/column extent of the diagonal block at
// index idx (used by Solve, which addresses blocks by a single index
// rather than a (bj, bi) pair).
func triBlockDim(shape geometry.TriangularShape, idx int) int {
	bn := shape.N / shape.BS
	if idx == bn {
		return shape.Remainder()
	}
	return shape.BS
}
