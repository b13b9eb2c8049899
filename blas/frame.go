package blas

import (
	"unsafe"

	"github.com/flwende/fp/internal/fplog"
)

// frame is the shared kernel preamble/postamble: it short-circuits a
// zero-extent or alpha=0 call, decides whether x and y may alias (real
// overlap detection on the underlying memory, not a caller-supplied
// flag), and routes op's output through a scratch buffer when they do.
//
// op must only ADD its contribution into yOut — it never reads or scales
// yOut's prior contents, so the same op serves both the buffered and
// direct-write paths.
func frame[T Float](transpose bool, alpha, beta T, m, n int, x, y []T, op func(xIn, yOut []T)) {
	if m == 0 || n == 0 {
		fplog.Default().Debug(ErrZeroExtent.Error(), "m", m, "n", n)
		return
	}
	mn := m
	if transpose {
		mn = n
	}
	var zero T
	if alpha == zero {
		scaleInPlace(y[:mn], beta)
		return
	}
	if slicesOverlap(x, y) {
		buf := make([]T, mn)
		op(x, buf)
		mergeBuffer(y[:mn], buf, beta)
		return
	}
	scaleInPlace(y[:mn], beta)
	op(x, y[:mn])
}

func scaleInPlace[T Float](y []T, beta T) {
	var zero, one T
	one = 1
	switch {
	case beta == zero:
		for i := range y {
			y[i] = zero
		}
	case beta == one:
		// leave y untouched
	default:
		for i := range y {
			y[i] *= beta
		}
	}
}

func mergeBuffer[T Float](y, buf []T, beta T) {
	var zero, one T
	one = 1
	switch {
	case beta == zero:
		copy(y, buf)
	case beta == one:
		for i := range y {
			y[i] += buf[i]
		}
	default:
		for i := range y {
			y[i] = buf[i] + beta*y[i]
		}
	}
}

// slicesOverlap reports whether a and b's underlying memory ranges
// intersect, so the frame can decide between buffering and a direct
// write. This replaces the source's pointer-difference-vs-max(m,n)
// heuristic with an exact check.
func slicesOverlap[T any](a, b []T) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	var probe T
	size := unsafe.Sizeof(probe)
	aStart := uintptr(unsafe.Pointer(&a[0]))
	aEnd := aStart + uintptr(len(a))*size
	bStart := uintptr(unsafe.Pointer(&b[0]))
	bEnd := bStart + uintptr(len(b))*size
	return aStart < bEnd && bStart < aEnd
}
