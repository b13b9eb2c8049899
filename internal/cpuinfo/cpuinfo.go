// Package cpuinfo picks the SIMD scratch-buffer alignment the kernel layer
// should use, based on the ISA features golang.org/x/sys/cpu detects on the
// running machine.
package cpuinfo

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// BaseAlignment is the default scratch-buffer alignment in bytes.
const BaseAlignment = 32

// WideAlignment is used when a wider-than-baseline SIMD ISA is present.
const WideAlignment = 64

// ScratchAlignment returns the byte alignment external BLAS-2 calls should
// be able to assume for decompressed scratch blocks: 64 when the host CPU
// exposes an AVX-512-class or SVE-class ISA, 32 otherwise.
func ScratchAlignment() int {
	if hasWideISA() {
		return WideAlignment
	}
	return BaseAlignment
}

func hasWideISA() bool {
	switch runtime.GOARCH {
	case "amd64":
		return cpu.X86.HasAVX512F
	case "arm64":
		return cpu.ARM64.HasSVE
	default:
		return false
	}
}

// AlignedSlice returns a length-n slice whose first element sits at a
// ScratchAlignment()-byte boundary, for scratch buffers external BLAS-2
// calls decompress into. It over-allocates just enough headroom to find
// an aligned start within the backing array, the same bounded pointer-
// arithmetic idiom blas/frame.go's slicesOverlap uses for address
// comparison: no pointer is ever constructed outside the buffer it
// returns a subslice of.
func AlignedSlice[T any](n int) []T {
	if n <= 0 {
		return nil
	}
	align := uintptr(ScratchAlignment())
	var probe T
	size := unsafe.Sizeof(probe)
	headroom := int((align + size - 1) / size)
	buf := make([]T, n+headroom)
	addr := uintptr(unsafe.Pointer(&buf[0]))
	offset := 0
	if rem := addr % align; rem != 0 {
		offset = int((align - rem) / size)
	}
	return buf[offset : offset+n : offset+n]
}
