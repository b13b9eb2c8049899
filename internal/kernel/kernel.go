// Package kernel wraps gonum's dense Level-2 BLAS implementation behind a
// generic interface so the tiled traversal in package blas can call GEMV,
// TPMV, TPSV, and SPMV without caring whether the scalar type is float32
// or float64. Two small non-generic adapters are selected by a runtime
// type switch, the same any(...)-dispatch idiom used elsewhere in this
// module for generic float branching.
package kernel

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/gonum"
)

// Re-exported so callers of this package need not import gonum/blas
// directly.
type (
	Transpose = blas.Transpose
	Uplo      = blas.Uplo
	Diag      = blas.Diag
)

const (
	NoTrans = blas.NoTrans
	Trans   = blas.Trans
)

const (
	Upper = blas.Upper
	Lower = blas.Lower
)

const (
	NonUnit = blas.NonUnit
	Unit    = blas.Unit
)

// Float is the set of scalar types the kernel layer supports.
type Float interface {
	~float32 | ~float64
}

// BLAS2 is the dense Level-2 BLAS surface the tiled kernels need, row
// major, matching gonum's own convention.
type BLAS2[T Float] interface {
	Gemv(tA Transpose, m, n int, alpha T, a []T, lda int, x []T, incX int, beta T, y []T, incY int)
	Tpmv(ul Uplo, tA Transpose, d Diag, n int, ap []T, x []T, incX int)
	Tpsv(ul Uplo, tA Transpose, d Diag, n int, ap []T, x []T, incX int)
	Spmv(ul Uplo, n int, alpha T, ap []T, x []T, incX int, beta T, y []T, incY int)
}

// For returns the BLAS2 adapter for T, resolved once at matrix
// construction time rather than per block.
func For[T Float]() BLAS2[T] {
	var zero T
	switch any(zero).(type) {
	case float64:
		return any(float64Impl{}).(BLAS2[T])
	case float32:
		return any(float32Impl{}).(BLAS2[T])
	default:
		panic("kernel: unsupported element type")
	}
}

type float64Impl struct{}

func (float64Impl) Gemv(tA Transpose, m, n int, alpha float64, a []float64, lda int, x []float64, incX int, beta float64, y []float64, incY int) {
	gonum.Implementation{}.Dgemv(tA, m, n, alpha, a, lda, x, incX, beta, y, incY)
}

func (float64Impl) Tpmv(ul Uplo, tA Transpose, d Diag, n int, ap []float64, x []float64, incX int) {
	gonum.Implementation{}.Dtpmv(ul, tA, d, n, ap, x, incX)
}

func (float64Impl) Tpsv(ul Uplo, tA Transpose, d Diag, n int, ap []float64, x []float64, incX int) {
	gonum.Implementation{}.Dtpsv(ul, tA, d, n, ap, x, incX)
}

func (float64Impl) Spmv(ul Uplo, n int, alpha float64, ap []float64, x []float64, incX int, beta float64, y []float64, incY int) {
	gonum.Implementation{}.Dspmv(ul, n, alpha, ap, x, incX, beta, y, incY)
}

type float32Impl struct{}

func (float32Impl) Gemv(tA Transpose, m, n int, alpha float32, a []float32, lda int, x []float32, incX int, beta float32, y []float32, incY int) {
	gonum.Implementation{}.Sgemv(tA, m, n, alpha, a, lda, x, incX, beta, y, incY)
}

func (float32Impl) Tpmv(ul Uplo, tA Transpose, d Diag, n int, ap []float32, x []float32, incX int) {
	gonum.Implementation{}.Stpmv(ul, tA, d, n, ap, x, incX)
}

func (float32Impl) Tpsv(ul Uplo, tA Transpose, d Diag, n int, ap []float32, x []float32, incX int) {
	gonum.Implementation{}.Stpsv(ul, tA, d, n, ap, x, incX)
}

func (float32Impl) Spmv(ul Uplo, n int, alpha float32, ap []float32, x []float32, incX int, beta float32, y []float32, incY int) {
	gonum.Implementation{}.Sspmv(ul, n, alpha, ap, x, incX, beta, y, incY)
}
