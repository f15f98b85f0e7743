package reveler

import (
	"fmt"

	"github.com/sp301415/bluecommit/bluehash"
	"github.com/sp301415/bluecommit/conv"
)

var (
	// ParamsN256Q65535 uses dimension 256 and modulus 2^16 - 1.
	ParamsN256Q65535 = ParametersLiteral{
		Degree:     256,
		Modulus:    65535,
		Transform:  conv.KindRNS,
		DigestSize: bluehash.Bit256,
	}

	// ParamsN512Q12289 uses dimension 512 and the NTT-friendly prime 12289.
	ParamsN512Q12289 = ParametersLiteral{
		Degree:     512,
		Modulus:    12289,
		Transform:  conv.KindRNS,
		DigestSize: bluehash.Bit256,
	}
)

// ParametersLiteral is a structure for commitment parameters.
type ParametersLiteral struct {
	// Degree is the dimension N of every row, vector and commitment point.
	Degree int
	// Modulus is the modulus Q. Every residue lies in [0, Q).
	Modulus uint64

	// Transform selects the convolution backend.
	// Every backend is exact, so the choice does not change any commitment.
	Transform conv.Kind
	// DigestSize is the width of the commitment digest.
	// Zero means bluehash.Bit256.
	DigestSize bluehash.DigestSize
}

// Compile transforms ParametersLiteral to read-only Parameters.
func (p ParametersLiteral) Compile() (Parameters, error) {
	if p.DigestSize == 0 {
		p.DigestSize = bluehash.Bit256
	}

	switch {
	case p.Degree < 1:
		return Parameters{}, fmt.Errorf("%w: degree %d is not positive", ErrConfiguration, p.Degree)
	case p.Modulus < 2:
		return Parameters{}, fmt.Errorf("%w: modulus %d is less than 2", ErrConfiguration, p.Modulus)
	case !p.DigestSize.Valid():
		return Parameters{}, fmt.Errorf("%w: digest size %d", ErrConfiguration, p.DigestSize)
	}

	convolver, err := conv.NewConvolver(p.Transform, p.Degree, p.Modulus)
	if err != nil {
		return Parameters{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return Parameters{
		degree:  p.Degree,
		modulus: p.Modulus,

		transform:  p.Transform,
		digestSize: p.DigestSize,

		convolver: convolver,
	}, nil
}

// MustCompile is like Compile, but panics on invalid literals.
func (p ParametersLiteral) MustCompile() Parameters {
	params, err := p.Compile()
	if err != nil {
		panic(err)
	}
	return params
}

// Parameters is a read-only structure for commitment parameters.
type Parameters struct {
	degree  int
	modulus uint64

	transform  conv.Kind
	digestSize bluehash.DigestSize

	// convolver is a prototype; users take a ShallowCopy.
	convolver conv.Convolver
}

// Degree returns the dimension N.
func (p Parameters) Degree() int {
	return p.degree
}

// Modulus returns the modulus Q.
func (p Parameters) Modulus() uint64 {
	return p.modulus
}

// Transform returns the convolution backend.
func (p Parameters) Transform() conv.Kind {
	return p.transform
}

// DigestSize returns the width of the commitment digest.
func (p Parameters) DigestSize() bluehash.DigestSize {
	return p.digestSize
}

// Literal returns the ParametersLiteral of p.
func (p Parameters) Literal() ParametersLiteral {
	return ParametersLiteral{
		Degree:     p.degree,
		Modulus:    p.modulus,
		Transform:  p.transform,
		DigestSize: p.digestSize,
	}
}

// NewConvolver returns a convolver for p, safe to use in a single goroutine.
func (p Parameters) NewConvolver() conv.Convolver {
	return p.convolver.ShallowCopy()
}
