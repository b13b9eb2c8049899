package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFullShapeCounts(t *testing.T) {
	tests := []struct {
		name   string
		m, n   int
		bs     int
		counts Counts
	}{
		{"exact multiple", 64, 64, 32, Counts{NA: 4}},
		{"right border only", 64, 40, 32, Counts{NA: 2, NB: 2}},
		{"bottom border only", 40, 64, 32, Counts{NA: 2, NC: 2}},
		{"all four regions", 40, 40, 32, Counts{NA: 1, NB: 1, NC: 1, ND: 1}},
		{"zero rows", 0, 40, 32, Counts{}},
		{"zero cols", 40, 0, 32, Counts{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FullShape{M: tt.m, N: tt.n, BS: tt.bs}.Counts()
			if diff := cmp.Diff(tt.counts, got); diff != "" {
				t.Errorf("Counts() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFullShapeFootprintMatchesBlockSum(t *testing.T) {
	shapes := []FullShape{
		{M: 32, N: 32, BS: 32},
		{M: 40, N: 40, BS: 32},
		{M: 64, N: 40, BS: 32},
		{M: 40, N: 64, BS: 32},
		{M: 256, N: 256, BS: 32},
	}
	for _, s := range shapes {
		counts := s.Counts()
		sizes := s.LogicalEntries()
		want := FootprintElements(counts, sizes)

		got := 0
		s.Blocks(func(b Block) bool {
			got += sizeOf(b.Region, sizes)
			return true
		})
		if got != want {
			t.Errorf("%+v: block-sum footprint = %d, want %d", s, got, want)
		}
	}
}

func TestFullShapeOffsetConsistency(t *testing.T) {
	s := FullShape{M: 100, N: 90, BS: 32}
	sizes := s.LogicalEntries()

	running := 0
	s.Blocks(func(b Block) bool {
		got := s.Offset(sizes, b.BJ, b.BI)
		if got != running {
			t.Fatalf("Offset(%d,%d) = %d, want running total %d", b.BJ, b.BI, got, running)
		}
		running += sizeOf(b.Region, sizes)
		return true
	})
}

func TestTriangularShapeCounts(t *testing.T) {
	tests := []struct {
		name   string
		n, bs  int
		counts Counts
	}{
		{"exact multiple", 64, 32, Counts{NA: 2, NB: 1}},
		{"with border", 100, 32, Counts{NA: 3, NB: 3, NC: 3, ND: 1}},
		{"single block", 20, 32, Counts{NA: 0, ND: 1}},
		{"zero", 0, 32, Counts{}},
	}
	for _, tt := range tests {
		for _, o := range []Orientation{Upper, Lower} {
			t.Run(tt.name+"/"+o.String(), func(t *testing.T) {
				got := TriangularShape{N: tt.n, BS: tt.bs, Orientation: o}.Counts()
				if diff := cmp.Diff(tt.counts, got); diff != "" {
					t.Errorf("Counts() mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestTriangularShapeOffsetConsistency(t *testing.T) {
	for _, o := range []Orientation{Upper, Lower} {
		s := TriangularShape{N: 100, BS: 32, Orientation: o}
		sizes := s.LogicalEntries()

		running := 0
		s.Blocks(func(b Block) bool {
			got := s.Offset(sizes, b.BJ, b.BI)
			if got != running {
				t.Fatalf("%s Offset(%d,%d) = %d, want running total %d", o, b.BJ, b.BI, got, running)
			}
			running += sizeOf(b.Region, sizes)
			return true
		})
	}
}

func TestTriangularShapeUpperLowerSymmetricFootprint(t *testing.T) {
	upper := TriangularShape{N: 100, BS: 32, Orientation: Upper}
	lower := TriangularShape{N: 100, BS: 32, Orientation: Lower}
	if diff := cmp.Diff(upper.Counts(), lower.Counts()); diff != "" {
		t.Errorf("counts differ between orientations (-upper +lower):\n%s", diff)
	}
}
