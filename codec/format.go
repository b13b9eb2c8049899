// Package codec implements the module's default reduced-precision
// floating-point codec: a bit-packed format parameterized at runtime by
// exponent width (BE) and mantissa width (BM), with the canonical IEEE
// widths as the identity case.
//
// Go generics have no non-type template parameters, so BE and BM cannot
// be compile-time parameters the way they are in a C++ template; Format[T]
// instead carries them as ordinary struct fields, resolved once when the
// caller builds the format and reused for every block.
package codec

import (
	"math"

	"github.com/flwende/fp/internal/fplog"
)

// Float is the set of scalar types the codec supports.
type Float interface {
	~float32 | ~float64
}

// Format packs and unpacks values of T using BE exponent bits and BM
// mantissa bits per value, plus one sign bit.
type Format[T Float] struct {
	BE, BM uint32
}

// DefaultFormat returns the canonical IEEE widths for T: BE=8, BM=23 for
// float32; BE=11, BM=52 for float64. At these widths Compress/Decompress
// round-trip every finite value, NaN, and Inf exactly, and
// MemoryFootprintElements(n) == n.
func DefaultFormat[T Float]() Format[T] {
	var zero T
	switch any(zero).(type) {
	case float32:
		return Format[T]{BE: 8, BM: 23}
	case float64:
		return Format[T]{BE: 11, BM: 52}
	default:
		panic("codec: unsupported element type")
	}
}

// NewFormat builds a Format with explicit widths. The caller is
// responsible for 1+be+bm <= 64; wider formats are a programming fault.
func NewFormat[T Float](be, bm uint32) Format[T] {
	if 1+be+bm > 64 {
		panic("codec: format width exceeds 64 bits")
	}
	if be == 0 || be > 11 || bm > 52 {
		panic("codec: format widths must fit within the float64 working range (1 <= be <= 11, bm <= 52)")
	}
	return Format[T]{BE: be, BM: bm}
}

func sizeofBits[T Float]() int {
	var zero T
	switch any(zero).(type) {
	case float32:
		return 32
	case float64:
		return 64
	default:
		panic("codec: unsupported element type")
	}
}

func sizeofBytes[T Float]() int {
	return sizeofBits[T]() / 8
}

// ElementBytes returns sizeof(T) in bytes: 4 for float32, 8 for float64.
func ElementBytes[T Float]() int {
	return sizeofBytes[T]()
}

// MemoryFootprintElements returns the number of T-sized storage slots
// needed to hold n packed values: ceil(n*(1+BE+BM) / (8*sizeof(T))). It is
// a pure function of (BE, BM, n).
func (f Format[T]) MemoryFootprintElements(n int) int {
	if n <= 0 {
		return 0
	}
	totalBits := n * int(1+f.BE+f.BM)
	elemBits := sizeofBits[T]()
	return (totalBits + elemBits - 1) / elemBits
}

// width returns the number of bits one packed value occupies.
func (f Format[T]) width() uint32 {
	return 1 + f.BE + f.BM
}

func (f Format[T]) bias() int64 {
	return int64(1)<<(f.BE-1) - 1
}

// Compress bit-packs n values from src into dst starting at dst[0] (a byte
// boundary), returning the number of T-sized slots consumed. A nil src
// logs a diagnostic and returns 0 without touching dst. dst must be at
// least MemoryFootprintElements(n)*sizeof(T) bytes; a shorter dst is a
// programming fault and panics.
func (f Format[T]) Compress(dst []byte, src []T, n int) int {
	if n <= 0 {
		return 0
	}
	if src == nil {
		fplog.Default().Warn("codec: compress called with nil source", "n", n)
		return 0
	}
	elements := f.MemoryFootprintElements(n)
	needBytes := elements * sizeofBytes[T]()
	if len(dst) < needBytes {
		panic("codec: destination buffer too small for compress")
	}

	w := newBitWriter(dst)
	width := f.width()
	bias := f.bias()
	for i := 0; i < n; i++ {
		w.writeBits(encode(float64(src[i]), f.BE, f.BM, bias), width)
	}
	return elements
}

// Decompress unpacks n values from src into dst, returning the number of
// T-sized slots consumed from src. A nil src logs a diagnostic and returns
// 0 without touching dst.
func (f Format[T]) Decompress(dst []T, src []byte, n int) int {
	if n <= 0 {
		return 0
	}
	if src == nil {
		fplog.Default().Warn("codec: decompress called with nil source", "n", n)
		return 0
	}

	r := newBitReader(src)
	width := f.width()
	bias := f.bias()
	for i := 0; i < n; i++ {
		dst[i] = T(decode(r.readBits(width), f.BE, f.BM, bias))
	}
	return f.MemoryFootprintElements(n)
}

// encode rebiases and truncates the IEEE-754 double representation of v
// into a be-exponent/bm-mantissa packed value with an explicit sign bit.
func encode(v float64, be, bm uint32, bias int64) uint64 {
	bits := math.Float64bits(v)
	sign := bits >> 63
	srcExp := (bits >> 52) & 0x7FF
	mant := bits & (1<<52 - 1)

	maxExp := int64(1)<<be - 1
	targetMant := mant >> (52 - uint64(bm))
	var targetExp int64
	switch srcExp {
	case 0x7FF:
		targetExp = maxExp
	default:
		targetExp = int64(srcExp) - 1023 + bias
		if targetExp <= 0 && srcExp != 0 {
			// Below the packed format's normal range: store a subnormal,
			// the significand (leading bit included) shifted right.
			targetMant = 0
			if shift := int64(52-bm) + 1 - targetExp; shift < 64 {
				targetMant = (mant | 1<<52) >> uint64(shift)
			}
		}
		if targetExp < 0 {
			targetExp = 0
		}
		if targetExp > maxExp {
			targetExp = maxExp
		}
	}

	return sign<<(uint64(be)+uint64(bm)) | uint64(targetExp)<<bm | targetMant
}

// decode is the inverse of encode: it rebiases a packed value back onto
// the IEEE-754 double exponent range and widens it to float64.
func decode(packed uint64, be, bm uint32, bias int64) float64 {
	sign := packed >> (uint64(be) + uint64(bm))
	exp := int64((packed >> bm) & (1<<be - 1))
	mant := packed & (1<<bm - 1)

	maxExp := int64(1)<<be - 1
	var outExp uint64
	switch {
	case exp == maxExp:
		outExp = 0x7FF
	case exp == 0:
		// Zero or subnormal in the packed format: mant·2^(1-bias-bm).
		v := math.Ldexp(float64(mant), int(1-bias)-int(bm))
		if sign == 1 {
			v = math.Copysign(v, -1)
		}
		return v
	default:
		unbiased := exp - bias
		signed := unbiased + 1023
		if signed < 0 {
			signed = 0
		}
		if signed > 0x7FE {
			signed = 0x7FE
		}
		outExp = uint64(signed)
	}
	outMant := mant << (52 - uint64(bm))
	outBits := sign<<63 | outExp<<52 | outMant
	return math.Float64frombits(outBits)
}
