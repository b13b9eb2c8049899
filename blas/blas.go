// Package blas implements the block-compressed dense linear algebra
// engine's public surface: Matrix (full rectangular) and
// TriangularMatrix (upper/lower), each backed by a compressed stream
// (package internal/store) and a dense Level-2 BLAS-2 adapter
// (package internal/kernel). Every operation decompresses one block at a
// time into a scratch buffer and dispatches a single call to the
// external BLAS primitive for that block, accumulating the result.
package blas

import (
	"github.com/flwende/fp/codec"
	"github.com/flwende/fp/internal/store"
)

// Float is the set of scalar types Matrix and TriangularMatrix support.
type Float = codec.Float

// MaxBlockSize bounds bs. Go has no variable-length stack arrays, so a
// fixed upper bound stands in for the original's stack-sized scratch
// block; a larger bs is a configuration error, not a programming fault,
// and is returned as ErrBlockSizeTooLarge.
const MaxBlockSize = store.MaxBlockSize
