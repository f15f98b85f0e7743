// Package csprng implements cryptographically secure samplers of uniform residues.
package csprng

import (
	"fmt"
	"io"
	"math"

	"golang.org/x/crypto/blake2b"
)

const (
	// bufSize is the default buffer size of the samplers.
	bufSize = 8192
	// SeedSize is the number of entropy bytes a UniformSampler draws.
	SeedSize = 32
)

// UniformSampler samples values from uniform distribution.
// This uses blake2b as a underlying prng.
type UniformSampler struct {
	prng blake2b.XOF

	buf [bufSize]byte
	ptr int
}

// NewUniformSampler creates a new UniformSampler seeded from entropy.
// Returns an error if entropy cannot supply SeedSize bytes.
func NewUniformSampler(entropy io.Reader) (*UniformSampler, error) {
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(entropy, seed); err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return NewUniformSamplerWithSeed(seed), nil
}

// NewUniformSamplerWithSeed creates a new UniformSampler, with user supplied seed.
// Two samplers with the same seed output the same stream.
//
// Panics when blake2b initialization fails.
func NewUniformSamplerWithSeed(seed []byte) *UniformSampler {
	prng, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, nil)
	if err != nil {
		panic(err)
	}

	if _, err = prng.Write(seed); err != nil {
		panic(err)
	}

	return &UniformSampler{
		prng: prng,

		buf: [bufSize]byte{},
		ptr: bufSize,
	}
}

// Read implements the [io.Reader] interface.
func (s *UniformSampler) Read(p []byte) (n int, err error) {
	return s.prng.Read(p)
}

// Sample uniformly samples a random uint64.
func (s *UniformSampler) Sample() uint64 {
	if s.ptr == bufSize {
		if _, err := s.prng.Read(s.buf[:]); err != nil {
			panic(err)
		}
		s.ptr = 0
	}

	res := leUint64(s.buf[s.ptr:])
	s.ptr += 8

	return res
}

// SampleN uniformly samples a random integer in [0, N).
func (s *UniformSampler) SampleN(N uint64) uint64 {
	return sampleN(s, N)
}

// SampleVectorAssign fills vOut with uniform values in [0, N).
func (s *UniformSampler) SampleVectorAssign(N uint64, vOut []uint64) {
	for i := range vOut {
		vOut[i] = s.SampleN(N)
	}
}

type sampler interface {
	Sample() uint64
}

// sampleN rejects the top partial interval so that the result is unbiased.
func sampleN(s sampler, N uint64) uint64 {
	bound := math.MaxUint64 - (math.MaxUint64 % N)
	for {
		res := s.Sample()
		if res < bound {
			return res % N
		}
	}
}

func leUint64(b []byte) uint64 {
	var res uint64
	res |= uint64(b[0])
	res |= uint64(b[1]) << 8
	res |= uint64(b[2]) << 16
	res |= uint64(b[3]) << 24
	res |= uint64(b[4]) << 32
	res |= uint64(b[5]) << 40
	res |= uint64(b[6]) << 48
	res |= uint64(b[7]) << 56
	return res
}
