package ut

// DefaultAlignment is the alignment used for allocator-returned buffers.
// 64 bytes covers a cache line and the widest SIMD loads the kernel
// backend issues.
const DefaultAlignment = 64

// RoundUp rounds n up to the next multiple of align. align must be a
// power of two.
func RoundUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// IsAligned reports whether addr is a multiple of align.
func IsAligned(addr uintptr, align int) bool {
	return addr&uintptr(align-1) == 0
}

// NextPow2 returns the smallest power of two >= n. n must be positive.
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Pow2Exp returns the exponent e such that 1<<e == n for a power of
// two n, or -1 when n is not a power of two.
func Pow2Exp(n int) int {
	if n <= 0 || n&(n-1) != 0 {
		return -1
	}
	e := 0
	for n > 1 {
		n >>= 1
		e++
	}
	return e
}
