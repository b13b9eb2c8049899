package codec

import (
	"math"
	"testing"
)

func TestDefaultFormatIsIdentity(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100} {
		if got := DefaultFormat[float32]().MemoryFootprintElements(n); got != n {
			t.Errorf("float32 MemoryFootprintElements(%d) = %d, want %d", n, got, n)
		}
		if got := DefaultFormat[float64]().MemoryFootprintElements(n); got != n {
			t.Errorf("float64 MemoryFootprintElements(%d) = %d, want %d", n, got, n)
		}
	}
}

func TestRoundTripDefaultFormatFloat64(t *testing.T) {
	f := DefaultFormat[float64]()
	src := []float64{0, -0.0, 1, -1, 3.5, -123456.789, math.Pi, math.Inf(1), math.Inf(-1)}
	dst := make([]byte, f.MemoryFootprintElements(len(src))*ElementBytes[float64]())
	f.Compress(dst, src, len(src))

	got := make([]float64, len(src))
	f.Decompress(got, dst, len(src))

	for i, want := range src {
		if got[i] != want {
			t.Errorf("index %d: got %v, want %v", i, got[i], want)
		}
	}
}

func TestRoundTripDefaultFormatFloat32(t *testing.T) {
	f := DefaultFormat[float32]()
	src := []float32{0, 1, -1, 2.5, -99.25}
	dst := make([]byte, f.MemoryFootprintElements(len(src))*ElementBytes[float32]())
	f.Compress(dst, src, len(src))

	got := make([]float32, len(src))
	f.Decompress(got, dst, len(src))

	for i, want := range src {
		if got[i] != want {
			t.Errorf("index %d: got %v, want %v", i, got[i], want)
		}
	}
}

func TestRoundTripReducedFormatWithinTolerance(t *testing.T) {
	f := NewFormat[float64](8, 10)
	src := []float64{1.0, 2.0, 3.14159, -42.0, 0.001}
	dst := make([]byte, f.MemoryFootprintElements(len(src))*ElementBytes[float64]())
	f.Compress(dst, src, len(src))

	got := make([]float64, len(src))
	f.Decompress(got, dst, len(src))

	tolerance := math.Pow(2, -10)
	for i, want := range src {
		rel := math.Abs(got[i]-want) / math.Abs(want)
		if rel > tolerance {
			t.Errorf("index %d: relative error %v exceeds tolerance %v (got %v, want %v)", i, rel, tolerance, got[i], want)
		}
	}
}

func TestMemoryFootprintElementsFormula(t *testing.T) {
	tests := []struct {
		be, bm uint32
		n      int
		want   int
	}{
		{11, 52, 0, 0},
		{11, 52, 1, 1},
		{8, 23, 4, 2},
		{8, 10, 8, 3},
	}
	for _, tt := range tests {
		f := Format[float64]{BE: tt.be, BM: tt.bm}
		if got := f.MemoryFootprintElements(tt.n); got != tt.want {
			t.Errorf("MemoryFootprintElements(be=%d,bm=%d,n=%d) = %d, want %d", tt.be, tt.bm, tt.n, got, tt.want)
		}
	}
}

func TestCompressNilSourceReturnsZero(t *testing.T) {
	f := DefaultFormat[float64]()
	dst := make([]byte, 64)
	if got := f.Compress(dst, nil, 4); got != 0 {
		t.Errorf("Compress with nil source = %d, want 0", got)
	}
}

func TestNewFormatPanicsOnOversizeWidths(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for be+bm exceeding 64 bits")
		}
	}()
	NewFormat[float64](20, 50)
}
