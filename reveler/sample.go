package reveler

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/sp301415/bluecommit/csprng"
)

// GenParams samples the public matrices A and B from crypto/rand.
func GenParams(params Parameters) (A, B Matrix, err error) {
	return GenParamsFrom(params, rand.Reader)
}

// GenParamsFrom samples the public matrices A and B uniformly from [0, Q)^(N x N).
// A and B are expanded by two stream samplers keyed by separate reads of entropy.
func GenParamsFrom(params Parameters, entropy io.Reader) (A, B Matrix, err error) {
	if A, err = genMatrix(params, entropy); err != nil {
		return nil, nil, err
	}
	if B, err = genMatrix(params, entropy); err != nil {
		return nil, nil, err
	}
	return A, B, nil
}

func genMatrix(params Parameters, entropy io.Reader) (Matrix, error) {
	us, err := csprng.NewStreamSampler(entropy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomness, err)
	}

	mat := NewMatrix(params.degree)
	for i := range mat {
		us.SampleVectorAssign(params.modulus, mat[i])
	}
	return mat, nil
}

// SampleVector samples a secret vector from crypto/rand.
func SampleVector(params Parameters) (Vector, error) {
	return SampleVectorFrom(params, rand.Reader)
}

// SampleVectorFrom samples a secret vector uniformly from [0, Q)^N,
// seeding a fresh sampler from entropy.
func SampleVectorFrom(params Parameters, entropy io.Reader) (Vector, error) {
	us, err := csprng.NewUniformSampler(entropy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomness, err)
	}

	v := make(Vector, params.degree)
	us.SampleVectorAssign(params.modulus, v)
	return v, nil
}
