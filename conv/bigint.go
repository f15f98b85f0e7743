package conv

import (
	"math/big"

	"github.com/sp301415/bluecommit/bigring"
)

// BigIntConvolver computes cyclic convolutions with a bigring.CyclicRing
// over the smallest NTT-friendly prime above N(Q-1)^2.
// It has no upper limit on Q, at the cost of big.Int arithmetic.
type BigIntConvolver struct {
	degree  int
	modulus uint64

	ringP *bigring.CyclicRing

	buffer bigIntBuffer
}

type bigIntBuffer struct {
	p0    bigring.BigPoly
	p1    bigring.BigPoly
	n0    bigring.BigNTTPoly
	n1    bigring.BigNTTPoly
	lin   []uint64
	coeff *big.Int
	mod   *big.Int
}

// NewBigIntConvolver creates a new BigIntConvolver.
func NewBigIntConvolver(N int, Q uint64) (*BigIntConvolver, error) {
	M := transformSize(N)
	P := bigring.FindNTTPrime(M, LinearBound(N, Q))
	ringP := bigring.NewCyclicRing(M, P)

	return &BigIntConvolver{
		degree:  N,
		modulus: Q,

		ringP: ringP,

		buffer: newBigIntBuffer(ringP, N, Q),
	}, nil
}

func newBigIntBuffer(ringP *bigring.CyclicRing, N int, Q uint64) bigIntBuffer {
	return bigIntBuffer{
		p0:    ringP.NewPoly(),
		p1:    ringP.NewPoly(),
		n0:    ringP.NewNTTPoly(),
		n1:    ringP.NewNTTPoly(),
		lin:   make([]uint64, 2*N-1),
		coeff: big.NewInt(0),
		mod:   big.NewInt(0).SetUint64(Q),
	}
}

// Degree returns N.
func (c *BigIntConvolver) Degree() int {
	return c.degree
}

// Modulus returns Q.
func (c *BigIntConvolver) Modulus() uint64 {
	return c.modulus
}

// TransformModulus returns the prime the transform runs over.
func (c *BigIntConvolver) TransformModulus() *big.Int {
	return c.ringP.Modulus()
}

// ShallowCopy returns a copy of c that is thread-safe.
func (c *BigIntConvolver) ShallowCopy() Convolver {
	ringP := c.ringP.ShallowCopy()
	return &BigIntConvolver{
		degree:  c.degree,
		modulus: c.modulus,

		ringP: ringP,

		buffer: newBigIntBuffer(ringP, c.degree, c.modulus),
	}
}

// Convolve returns the cyclic convolution of row and v mod Q.
func (c *BigIntConvolver) Convolve(row, v []uint64) ([]uint64, error) {
	vOut := make([]uint64, c.degree)
	if err := c.ConvolveAssign(row, v, vOut); err != nil {
		return nil, err
	}
	return vOut, nil
}

// ConvolveAssign computes the cyclic convolution of row and v mod Q and writes it to vOut.
func (c *BigIntConvolver) ConvolveAssign(row, v, vOut []uint64) error {
	if err := checkInputs(c.degree, c.modulus, row, v, vOut); err != nil {
		return err
	}

	c.buffer.p0.SetUint64s(row)
	c.buffer.p1.SetUint64s(v)

	c.ringP.ToNTTPolyAssign(c.buffer.p0, c.buffer.n0)
	c.ringP.ToNTTPolyAssign(c.buffer.p1, c.buffer.n1)
	c.ringP.MulNTTAssign(c.buffer.n0, c.buffer.n1, c.buffer.n0)
	c.ringP.ToPolyAssign(c.buffer.n0, c.buffer.p0)

	for k := range c.buffer.lin {
		c.buffer.lin[k] = c.buffer.coeff.Mod(c.buffer.p0.Coeffs[k], c.buffer.mod).Uint64()
	}
	foldAssign(c.buffer.lin, c.modulus, vOut)

	return nil
}
