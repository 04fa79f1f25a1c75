// Package memalign allocates cache-line-aligned buffers for array signal
// storage, so that a large ArraySignal's backing slice does not straddle
// cache lines at a hostile offset when two signals happen to sit next to
// each other on the Go heap.
package memalign

import "unsafe"

// CacheLineSize is a common cache line size, typically 64 bytes on x86-64
// and arm64.
const CacheLineSize = 64

// AlignedBytes allocates a byte slice whose backing array starts on a
// cache line boundary, by over-allocating and slicing to the first
// aligned offset.
func AlignedBytes(size int) []byte {
	if size == 0 {
		return nil
	}
	buf := make([]byte, size+CacheLineSize-1)
	ptr := uintptr(unsafe.Pointer(&buf[0]))
	offset := uintptr(0)
	if mod := ptr % CacheLineSize; mod != 0 {
		offset = CacheLineSize - mod
	}
	return buf[offset : offset+uintptr(size)]
}

// Float64s allocates a cache-line-aligned float64 slice of length n,
// zero-valued.
func Float64s(n int) []float64 {
	if n == 0 {
		return nil
	}
	b := AlignedBytes(n * 8)
	return unsafe.Slice((*float64)(unsafe.Pointer(&b[0])), n)
}
