// Package store owns the compressed byte stream backing a blocked matrix:
// it builds the stream from a dense source at construction time, or
// borrows an externally-produced stream, and answers block-offset and
// block-slice queries against it. It knows nothing about BLAS-2 kernels;
// package blas drives traversal by iterating Blocks and calling
// DecompressAt.
package store

import (
	"github.com/flwende/fp/codec"
	"github.com/flwende/fp/internal/geometry"
)

// MaxBlockSize bounds bs. Go has no variable-length stack arrays; the
// per-call scratch block is a slice allocated at bs×bs, and this bound
// caps its size. Callers exceeding it get a boundary error from package
// blas before a Container is ever built.
const MaxBlockSize = 256

// Shape is the geometry surface store needs: both geometry.FullShape and
// geometry.TriangularShape satisfy it without modification.
type Shape interface {
	Counts() geometry.Counts
	LogicalEntries() geometry.Sizes
	Blocks(yield func(geometry.Block) bool)
	Offset(sizes geometry.Sizes, bj, bi int) int
}

// Container owns or borrows the compressed byte stream for one blocked
// matrix.
type Container[T codec.Float] struct {
	shape  Shape
	format codec.Format[T]
	counts geometry.Counts
	sizes  geometry.Sizes
	stream []byte
	owns   bool
}

// PackedSizes maps a shape's logical (pre-codec) per-region entry counts
// through format to get packed per-region element counts, letting
// callers compute a footprint without building a Container.
func PackedSizes[T codec.Float](format codec.Format[T], logical geometry.Sizes) geometry.Sizes {
	return geometry.Sizes{
		EA: format.MemoryFootprintElements(logical.EA),
		EB: format.MemoryFootprintElements(logical.EB),
		EC: format.MemoryFootprintElements(logical.EC),
		ED: format.MemoryFootprintElements(logical.ED),
	}
}

// Borrow wraps an externally-produced stream verbatim. The caller is
// responsible for having produced it with the same shape and codec
// format; a stream shorter than the computed footprint is a configuration
// mismatch and panics rather than silently reading garbage.
func Borrow[T codec.Float](shape Shape, format codec.Format[T], stream []byte) *Container[T] {
	counts := shape.Counts()
	sizes := PackedSizes(format, shape.LogicalEntries())
	need := geometry.FootprintElements(counts, sizes) * codec.ElementBytes[T]()
	if len(stream) < need {
		panic("store: borrowed stream shorter than computed footprint")
	}
	return &Container[T]{shape: shape, format: format, counts: counts, sizes: sizes, stream: stream, owns: false}
}

// BuildFull compresses a dense m×n source (row major, leading dimension
// ld) into a newly-owned Container blocked at edge length bs.
func BuildFull[T codec.Float](src []T, ld, bs int, format codec.Format[T], shape geometry.FullShape) *Container[T] {
	logical := shape.LogicalEntries()
	sizes := PackedSizes(format, logical)
	counts := shape.Counts()
	elemBytes := codec.ElementBytes[T]()
	stream := make([]byte, geometry.FootprintElements(counts, sizes)*elemBytes)

	rm, rn := shape.Remainder()
	scratch := make([]T, shape.BS*shape.BS)
	cursor := 0
	shape.Blocks(func(b geometry.Block) bool {
		rows, cols := fullBlockExtent(shape.BS, rm, rn, b.Region)
		copyDenseBlock(src, ld, b.BJ*shape.BS, b.BI*shape.BS, rows, cols, scratch)

		n := rows * cols
		byteOff := cursor * elemBytes
		format.Compress(stream[byteOff:], scratch[:n], n)
		cursor += sizes.Of(b.Region)
		return true
	})

	return &Container[T]{shape: shape, format: format, counts: counts, sizes: sizes, stream: stream, owns: true}
}

func fullBlockExtent(bs, rm, rn int, r geometry.Region) (rows, cols int) {
	switch r {
	case geometry.RegionA:
		return bs, bs
	case geometry.RegionB:
		return bs, rn
	case geometry.RegionC:
		return rm, bs
	case geometry.RegionD:
		return rm, rn
	default:
		return 0, 0
	}
}

// BuildTriangular compresses a dense n×n source (row major, leading
// dimension ld) into a newly-owned Container, storing only shape's
// triangle. Diagonal blocks are packed row by row (upper triangle for
// Upper, lower triangle for Lower); off-diagonal blocks are stored dense.
func BuildTriangular[T codec.Float](src []T, ld int, format codec.Format[T], shape geometry.TriangularShape) *Container[T] {
	logical := shape.LogicalEntries()
	sizes := PackedSizes(format, logical)
	counts := shape.Counts()
	elemBytes := codec.ElementBytes[T]()
	stream := make([]byte, geometry.FootprintElements(counts, sizes)*elemBytes)

	bs := shape.BS
	bn := shape.N / bs
	rn := shape.Remainder()
	scratch := make([]T, bs*bs)
	cursor := 0
	shape.Blocks(func(b geometry.Block) bool {
		rowBase, colBase := b.BJ*bs, b.BI*bs
		rows, cols := triBlockExtent(bs, rn, bn, b)

		switch b.Region {
		case geometry.RegionA, geometry.RegionD:
			copyPackedDiagonal(src, ld, rowBase, colBase, rows, shape.Orientation, scratch)
		default:
			copyDenseBlock(src, ld, rowBase, colBase, rows, cols, scratch)
		}

		n := rows * cols
		if b.Region == geometry.RegionA || b.Region == geometry.RegionD {
			n = rows * (rows + 1) / 2
		}
		byteOff := cursor * elemBytes
		format.Compress(stream[byteOff:], scratch[:n], n)
		cursor += sizes.Of(b.Region)
		return true
	})

	return &Container[T]{shape: shape, format: format, counts: counts, sizes: sizes, stream: stream, owns: true}
}

func triBlockExtent(bs, rn, bn int, b geometry.Block) (rows, cols int) {
	rows = bs
	if b.BJ == bn {
		rows = rn
	}
	cols = bs
	if b.BI == bn {
		cols = rn
	}
	return
}

func copyDenseBlock[T any](src []T, ld, rowBase, colBase, rows, cols int, scratch []T) {
	for r := 0; r < rows; r++ {
		srcOff := (rowBase+r)*ld + colBase
		copy(scratch[r*cols:r*cols+cols], src[srcOff:srcOff+cols])
	}
}

// copyPackedDiagonal copies an n×n diagonal block into row-major packed
// triangular form: for Upper, row r contributes n-r entries starting at
// column r; for Lower, row r contributes r+1 entries starting at column 0.
func copyPackedDiagonal[T any](src []T, ld, rowBase, colBase, n int, orientation geometry.Orientation, scratch []T) {
	idx := 0
	for r := 0; r < n; r++ {
		switch orientation {
		case geometry.Upper:
			cnt := n - r
			srcOff := (rowBase+r)*ld + colBase + r
			copy(scratch[idx:idx+cnt], src[srcOff:srcOff+cnt])
			idx += cnt
		case geometry.Lower:
			cnt := r + 1
			srcOff := (rowBase+r)*ld + colBase
			copy(scratch[idx:idx+cnt], src[srcOff:srcOff+cnt])
			idx += cnt
		}
	}
}

// BlockOffset returns the stream element index of block (bj, bi).
func (c *Container[T]) BlockOffset(bj, bi int) int {
	return c.shape.Offset(c.sizes, bj, bi)
}

// BlockSliceInto decompresses the nLogical values of block (bj, bi) into
// dst, which must have length >= nLogical, and returns dst[:nLogical].
// Callers that visit many blocks per call should allocate dst once and
// reuse it across iterations rather than allocating per block.
func (c *Container[T]) BlockSliceInto(bj, bi, nLogical int, dst []T) []T {
	off := c.BlockOffset(bj, bi) * codec.ElementBytes[T]()
	byteLen := c.format.MemoryFootprintElements(nLogical) * codec.ElementBytes[T]()
	c.format.Decompress(dst[:nLogical], c.stream[off:off+byteLen], nLogical)
	return dst[:nLogical]
}

// DecompressAt decompresses nLogical values starting at byteOffset into
// dst, which must have length >= nLogical.
func (c *Container[T]) DecompressAt(byteOffset, nLogical int, dst []T) {
	byteLen := c.format.MemoryFootprintElements(nLogical) * codec.ElementBytes[T]()
	c.format.Decompress(dst[:nLogical], c.stream[byteOffset:byteOffset+byteLen], nLogical)
}

// Blocks iterates every block in the shape's traversal order, yielding
// each block's coordinates/region alongside its byte offset into the
// stream and its logical (pre-codec) entry count.
func (c *Container[T]) Blocks(yield func(b geometry.Block, byteOffset, logicalEntries int) bool) {
	logical := c.shape.LogicalEntries()
	elemBytes := codec.ElementBytes[T]()
	cursor := 0
	c.shape.Blocks(func(b geometry.Block) bool {
		byteOff := cursor * elemBytes
		ok := yield(b, byteOff, logical.Of(b.Region))
		cursor += c.sizes.Of(b.Region)
		return ok
	})
}

// MemoryFootprintElements returns the total packed element count.
func (c *Container[T]) MemoryFootprintElements() int {
	return geometry.FootprintElements(c.counts, c.sizes)
}

// MemoryFootprintBytes returns the total stream size in bytes.
func (c *Container[T]) MemoryFootprintBytes() int {
	return c.MemoryFootprintElements() * codec.ElementBytes[T]()
}

// Owns reports whether the Container allocated its own stream.
func (c *Container[T]) Owns() bool { return c.owns }
