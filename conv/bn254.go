package conv

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
)

// BN254Convolver computes cyclic convolutions with gnark-crypto's FFT
// over the BN254 scalar field.
// It supports every N, Q with N(Q-1)^2 below the field modulus.
type BN254Convolver struct {
	degree  int
	modulus uint64

	domain *fft.Domain

	buffer bn254Buffer
}

type bn254Buffer struct {
	a     []fr.Element
	b     []fr.Element
	lin   []uint64
	coeff *big.Int
	mod   *big.Int
}

// NewBN254Convolver creates a new BN254Convolver.
func NewBN254Convolver(N int, Q uint64) (*BN254Convolver, error) {
	if bound := LinearBound(N, Q); bound.Cmp(fr.Modulus()) >= 0 {
		return nil, fmt.Errorf("%w: %v exceeds the bn254 scalar field", ErrUnsupported, bound)
	}

	M := transformSize(N)
	domain := fft.NewDomain(uint64(M))

	return &BN254Convolver{
		degree:  N,
		modulus: Q,

		domain: domain,

		buffer: newBN254Buffer(M, N, Q),
	}, nil
}

func newBN254Buffer(M, N int, Q uint64) bn254Buffer {
	return bn254Buffer{
		a:     make([]fr.Element, M),
		b:     make([]fr.Element, M),
		lin:   make([]uint64, 2*N-1),
		coeff: big.NewInt(0),
		mod:   big.NewInt(0).SetUint64(Q),
	}
}

// Degree returns N.
func (c *BN254Convolver) Degree() int {
	return c.degree
}

// Modulus returns Q.
func (c *BN254Convolver) Modulus() uint64 {
	return c.modulus
}

// ShallowCopy returns a copy of c that is thread-safe.
func (c *BN254Convolver) ShallowCopy() Convolver {
	return &BN254Convolver{
		degree:  c.degree,
		modulus: c.modulus,

		domain: c.domain,

		buffer: newBN254Buffer(len(c.buffer.a), c.degree, c.modulus),
	}
}

// Convolve returns the cyclic convolution of row and v mod Q.
func (c *BN254Convolver) Convolve(row, v []uint64) ([]uint64, error) {
	vOut := make([]uint64, c.degree)
	if err := c.ConvolveAssign(row, v, vOut); err != nil {
		return nil, err
	}
	return vOut, nil
}

// ConvolveAssign computes the cyclic convolution of row and v mod Q and writes it to vOut.
func (c *BN254Convolver) ConvolveAssign(row, v, vOut []uint64) error {
	if err := checkInputs(c.degree, c.modulus, row, v, vOut); err != nil {
		return err
	}

	embedElements(row, c.buffer.a)
	embedElements(v, c.buffer.b)

	// DIF leaves both transforms in bit-reversed order,
	// which DIT undoes on the way back.
	c.domain.FFT(c.buffer.a, fft.DIF)
	c.domain.FFT(c.buffer.b, fft.DIF)
	for i := range c.buffer.a {
		c.buffer.a[i].Mul(&c.buffer.a[i], &c.buffer.b[i])
	}
	c.domain.FFTInverse(c.buffer.a, fft.DIT)

	for k := range c.buffer.lin {
		c.buffer.a[k].BigInt(c.buffer.coeff)
		c.buffer.lin[k] = c.buffer.coeff.Mod(c.buffer.coeff, c.buffer.mod).Uint64()
	}
	foldAssign(c.buffer.lin, c.modulus, vOut)

	return nil
}

func embedElements(v []uint64, eOut []fr.Element) {
	for i := range v {
		eOut[i].SetUint64(v[i])
	}
	for i := len(v); i < len(eOut); i++ {
		eOut[i].SetZero()
	}
}
