package reveler

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"slices"
)

// ResidueSize is the width in bytes of one encoded residue.
const ResidueSize = 8

// Vector is a sequence of residues mod Q.
type Vector []uint64

// Matrix is a row-major matrix of residues mod Q.
type Matrix [][]uint64

// NewMatrix creates a new zero N x N Matrix.
func NewMatrix(N int) Matrix {
	backing := make([]uint64, N*N)
	m := make(Matrix, N)
	for i := 0; i < N; i++ {
		m[i] = backing[i*N : (i+1)*N : (i+1)*N]
	}
	return m
}

// Commitment is the pair {C, H(C)} exchanged between committer and verifier.
type Commitment struct {
	// Point is the commitment point C.
	Point Vector
	// Digest is the BlueHash digest of the canonical encoding of Point.
	Digest []byte
}

// Equal checks if two Commitments are equal.
// The digests are compared in constant time.
func (c Commitment) Equal(other Commitment) bool {
	if !slices.Equal(c.Point, other.Point) {
		return false
	}
	return subtle.ConstantTimeCompare(c.Digest, other.Digest) == 1
}

// Copy returns a deep copy of c.
func (c Commitment) Copy() Commitment {
	return Commitment{
		Point:  slices.Clone(c.Point),
		Digest: slices.Clone(c.Digest),
	}
}

// EncodePoint returns the canonical encoding of a commitment point:
// every residue as a big-endian uint64, in index order, without separators.
func EncodePoint(point Vector) []byte {
	buf := make([]byte, 0, ResidueSize*len(point))
	for _, x := range point {
		buf = binary.BigEndian.AppendUint64(buf, x)
	}
	return buf
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
// The layout is uint32(N) || EncodePoint(Point) || uint8(len(Digest)) || Digest.
func (c Commitment) MarshalBinary() ([]byte, error) {
	if len(c.Digest) > 0xff {
		return nil, fmt.Errorf("%w: digest of %d bytes", ErrMalformed, len(c.Digest))
	}
	if uint64(len(c.Point)) > 0xffffffff {
		return nil, fmt.Errorf("%w: point of %d residues", ErrMalformed, len(c.Point))
	}

	buf := make([]byte, 0, 4+ResidueSize*len(c.Point)+1+len(c.Digest))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(c.Point)))
	buf = append(buf, EncodePoint(c.Point)...)
	buf = append(buf, byte(len(c.Digest)))
	buf = append(buf, c.Digest...)
	return buf, nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
// It only checks the layout; use Verifier.Verify to check the contents.
func (c *Commitment) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("%w: short header", ErrMalformed)
	}
	N := uint64(binary.BigEndian.Uint32(data))
	data = data[4:]

	if uint64(len(data)) < N*ResidueSize+1 {
		return fmt.Errorf("%w: short point", ErrMalformed)
	}
	point := make(Vector, N)
	for i := range point {
		point[i] = binary.BigEndian.Uint64(data[i*ResidueSize:])
	}
	data = data[N*ResidueSize:]

	digestLen := int(data[0])
	data = data[1:]
	if len(data) != digestLen {
		return fmt.Errorf("%w: digest has %d bytes, header says %d", ErrMalformed, len(data), digestLen)
	}

	c.Point = point
	c.Digest = slices.Clone(data)
	return nil
}
