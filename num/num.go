// Package num implements various utility functions regarding numeric types.
package num

import "math/bits"

// AddMod returns x + y mod q.
// x and y should be in [0, q).
func AddMod(x, y, q uint64) uint64 {
	s, carry := bits.Add64(x, y, 0)
	if carry != 0 || s >= q {
		s -= q
	}
	return s
}

// MulMod returns x * y mod q, using the full 128-bit product.
func MulMod(x, y, q uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	return bits.Rem64(hi, lo, q)
}

// NextPowerOfTwo returns the smallest power of two greater than or equal to x.
// Returns 1 for x <= 1.
func NextPowerOfTwo(x int) int {
	if x <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(x-1))
}

// IsPowerOfTwo returns true if x is a positive power of two.
func IsPowerOfTwo(x int) bool {
	return x > 0 && x&(x-1) == 0
}

// BitReverseInPlace reorders v into bit-reversal order in-place.
func BitReverseInPlace[T any](v []T) {
	var bit, j int
	for i := 1; i < len(v); i++ {
		bit = len(v) >> 1
		for j >= bit {
			j -= bit
			bit >>= 1
		}
		j += bit
		if i < j {
			v[i], v[j] = v[j], v[i]
		}
	}
}
