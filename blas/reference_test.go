package blas

import "math"

// refGemv computes y := alpha*op(A)*x + beta*y directly against a dense
// row-major m×n matrix, independent of any block-compressed path. Used
// as the exact oracle for default-format (identity codec) comparisons.
func refGemv(transpose bool, alpha float64, a []float64, m, n int, x []float64, beta float64, y []float64) {
	if transpose {
		for j := 0; j < n; j++ {
			y[j] *= beta
		}
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				y[j] += alpha * a[i*n+j] * x[i]
			}
		}
		return
	}
	for i := 0; i < m; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += a[i*n+j] * x[j]
		}
		y[i] = alpha*sum + beta*y[i]
	}
}

// refTrmv computes y := alpha*op(A)*x + beta*y against a dense n×n
// triangular matrix (only the declared triangle of a is meaningful).
func refTrmv(upper, transpose bool, alpha float64, a []float64, n int, x []float64, beta float64, y []float64) {
	dense := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if (upper && j >= i) || (!upper && j <= i) {
				dense[i*n+j] = a[i*n+j]
			}
		}
	}
	refGemv(transpose, alpha, dense, n, n, x, beta, y)
}

// refSymv computes y := alpha*S*x + beta*y where S is the symmetric
// matrix whose triangle (upper or lower) is stored in a.
func refSymv(upper bool, alpha float64, a []float64, n int, x []float64, beta float64, y []float64) {
	dense := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if (upper && j >= i) || (!upper && j <= i) {
				dense[i*n+j] = a[i*n+j]
				dense[j*n+i] = a[i*n+j]
			}
		}
	}
	refGemv(false, alpha, dense, n, n, x, beta, y)
}

func maxAbsDiff(a, b []float64) float64 {
	worst := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > worst {
			worst = d
		}
	}
	return worst
}

// deterministicSeries fills a slice with a reproducible pseudo-random
// sequence in [-1,1], avoiding any dependency on math/rand's stream
// stability across Go versions within a single test run.
func deterministicSeries(n int, seed uint64) []float64 {
	v := make([]float64, n)
	state := seed | 1
	for i := range v {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		v[i] = float64(state%2001)/1000.0 - 1.0
	}
	return v
}

// spdFromRandom builds a symmetric positive-definite n×n dense matrix by
// forming A·Aᵀ + n·I from a random A, then returns it as a row-major
// n×n array holding only its lower triangle (upper entries left zero,
// irrelevant to a Lower TriangularMatrix).
func spdFromRandom(n int, seed uint64) []float64 {
	raw := deterministicSeries(n*n, seed)
	dense := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += raw[i*n+k] * raw[j*n+k]
			}
			if i == j {
				sum += float64(n)
			}
			dense[i*n+j] = sum
		}
	}
	tri := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			tri[i*n+j] = dense[i*n+j]
		}
	}
	return tri
}

// wellConditionedTriangular builds a triangular n×n dense matrix (upper
// or lower) with a diagonal comfortably away from zero, safe to invert.
func wellConditionedTriangular(n int, upper bool, seed uint64) []float64 {
	raw := deterministicSeries(n*n, seed)
	a := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if (upper && j >= i) || (!upper && j <= i) {
				if i == j {
					a[i*n+j] = 10.0 + math.Abs(raw[i*n+j])
				} else {
					a[i*n+j] = raw[i*n+j]
				}
			}
		}
	}
	return a
}
