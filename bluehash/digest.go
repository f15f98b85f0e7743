package bluehash

import (
	"hash"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/crypto/blake2b"
)

// digest adapts BlueHash to [hash.Hash].
// The chunk boundaries depend on the total length,
// so the message is buffered until Sum.
type digest struct {
	size DigestSize
	buf  []byte
}

// New returns a [hash.Hash] computing BlueHash with the given digest size.
// Panics if size is not valid.
func New(size DigestSize) hash.Hash {
	if !size.Valid() {
		panic("invalid digest size")
	}
	return &digest{size: size}
}

func (d *digest) Write(p []byte) (int, error) {
	d.buf = append(d.buf, p...)
	return len(p), nil
}

func (d *digest) Sum(b []byte) []byte {
	return append(b, Sum(d.size, d.buf)...)
}

func (d *digest) Reset() {
	d.buf = d.buf[:0]
}

func (d *digest) Size() int {
	return int(d.size)
}

func (d *digest) BlockSize() int {
	return blake2b.BlockSize
}

// Distance returns the number of differing bits between a and b.
// The shorter input is padded with zero bits.
func Distance(a, b []byte) int {
	return int(toBitSet(a).SymmetricDifference(toBitSet(b)).Count())
}

func toBitSet(b []byte) *bitset.BitSet {
	words := make([]uint64, (len(b)+7)/8)
	for i, x := range b {
		words[i/8] |= uint64(x) << (8 * (i % 8))
	}
	return bitset.From(words)
}
