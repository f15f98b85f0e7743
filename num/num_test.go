package num_test

import (
	"math"
	"testing"

	"github.com/sp301415/bluecommit/num"
	"github.com/stretchr/testify/assert"
)

func TestModArith(t *testing.T) {
	q := uint64(math.MaxUint64 - 58) // largest 64-bit prime

	assert.Equal(t, uint64(3), num.AddMod(1, 2, 17))
	assert.Equal(t, uint64(0), num.AddMod(16, 1, 17))
	assert.Equal(t, q-3, num.AddMod(q-1, q-2, q))

	assert.Equal(t, uint64(1), num.MulMod(16, 16, 17))
	assert.Equal(t, uint64(1), num.MulMod(q-1, q-1, q))
}

func TestPowerOfTwo(t *testing.T) {
	assert.Equal(t, 1, num.NextPowerOfTwo(0))
	assert.Equal(t, 1, num.NextPowerOfTwo(1))
	assert.Equal(t, 8, num.NextPowerOfTwo(7))
	assert.Equal(t, 512, num.NextPowerOfTwo(511))
	assert.Equal(t, 512, num.NextPowerOfTwo(512))

	assert.True(t, num.IsPowerOfTwo(64))
	assert.False(t, num.IsPowerOfTwo(0))
	assert.False(t, num.IsPowerOfTwo(96))
}

func TestBitReverseInPlace(t *testing.T) {
	v := []int{0, 1, 2, 3, 4, 5, 6, 7}
	num.BitReverseInPlace(v)
	assert.Equal(t, []int{0, 4, 2, 6, 1, 5, 3, 7}, v)
}
