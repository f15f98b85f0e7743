package conv

import "github.com/sp301415/bluecommit/num"

// DirectConvolver computes cyclic convolutions from the definition.
type DirectConvolver struct {
	degree  int
	modulus uint64
}

// NewDirectConvolver creates a new DirectConvolver.
func NewDirectConvolver(N int, Q uint64) *DirectConvolver {
	return &DirectConvolver{
		degree:  N,
		modulus: Q,
	}
}

// Degree returns N.
func (c *DirectConvolver) Degree() int {
	return c.degree
}

// Modulus returns Q.
func (c *DirectConvolver) Modulus() uint64 {
	return c.modulus
}

// ShallowCopy returns c itself, since DirectConvolver has no buffers.
func (c *DirectConvolver) ShallowCopy() Convolver {
	return c
}

// Convolve returns the cyclic convolution of row and v mod Q.
func (c *DirectConvolver) Convolve(row, v []uint64) ([]uint64, error) {
	vOut := make([]uint64, c.degree)
	if err := c.ConvolveAssign(row, v, vOut); err != nil {
		return nil, err
	}
	return vOut, nil
}

// ConvolveAssign computes vOut[k] = sum_j row[j] * v[k-j mod N] mod Q.
func (c *DirectConvolver) ConvolveAssign(row, v, vOut []uint64) error {
	if err := checkInputs(c.degree, c.modulus, row, v, vOut); err != nil {
		return err
	}

	N := c.degree
	for k := 0; k < N; k++ {
		var acc uint64
		for j := 0; j < N; j++ {
			acc = num.AddMod(acc, num.MulMod(row[j], v[(k-j+N)%N], c.modulus), c.modulus)
		}
		vOut[k] = acc
	}
	return nil
}
