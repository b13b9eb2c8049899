package blas

import (
	"github.com/flwende/fp/codec"
	"github.com/flwende/fp/internal/geometry"
	"github.com/flwende/fp/internal/store"
)

// MemoryFootprintElementsFull returns the packed element count a Matrix
// of shape m×n blocked at bs would occupy under format, without
// building one. Callers can use this to pre-size a borrowed stream.
func MemoryFootprintElementsFull[T Float](m, n, bs int, format codec.Format[T]) int {
	shape := geometry.FullShape{M: m, N: n, BS: bs}
	sizes := store.PackedSizes(format, shape.LogicalEntries())
	return geometry.FootprintElements(shape.Counts(), sizes)
}

// MemoryFootprintBytesFull is MemoryFootprintElementsFull in bytes.
func MemoryFootprintBytesFull[T Float](m, n, bs int, format codec.Format[T]) int {
	return MemoryFootprintElementsFull[T](m, n, bs, format) * codec.ElementBytes[T]()
}

// MemoryFootprintElementsTriangular returns the packed element count a
// TriangularMatrix of order n blocked at bs would occupy under format.
func MemoryFootprintElementsTriangular[T Float](n, bs int, orientation geometry.Orientation, format codec.Format[T]) int {
	shape := geometry.TriangularShape{N: n, BS: bs, Orientation: orientation}
	sizes := store.PackedSizes(format, shape.LogicalEntries())
	return geometry.FootprintElements(shape.Counts(), sizes)
}

// MemoryFootprintBytesTriangular is MemoryFootprintElementsTriangular in
// bytes.
func MemoryFootprintBytesTriangular[T Float](n, bs int, orientation geometry.Orientation, format codec.Format[T]) int {
	return MemoryFootprintElementsTriangular[T](n, bs, orientation, format) * codec.ElementBytes[T]()
}
