package csprng

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"
)

const (
	// StreamKeySize is the AES-256 key size drawn from entropy.
	StreamKeySize = 32
)

// StreamSampler sample values from uniform distribution.
// This uses AES-256 in CTR mode as a underlying prng.
type StreamSampler struct {
	prng cipher.Stream

	buf [bufSize]byte
	ptr int
}

// NewStreamSampler creates a new StreamSampler.
// The key and IV are read from entropy, so two samplers built from
// the same reader never share key material.
func NewStreamSampler(entropy io.Reader) (*StreamSampler, error) {
	key := make([]byte, StreamKeySize)
	if _, err := io.ReadFull(entropy, key); err != nil {
		return nil, fmt.Errorf("read key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	iv := make([]byte, block.BlockSize())
	if _, err := io.ReadFull(entropy, iv); err != nil {
		return nil, fmt.Errorf("read iv: %w", err)
	}

	return &StreamSampler{
		prng: cipher.NewCTR(block, iv),

		buf: [bufSize]byte{},
		ptr: bufSize,
	}, nil
}

// Read implements the [io.Reader] interface.
func (s *StreamSampler) Read(p []byte) (n int, err error) {
	clear(p)
	s.prng.XORKeyStream(p, p)
	return len(p), nil
}

// Sample uniformly samples a random uint64.
func (s *StreamSampler) Sample() uint64 {
	if s.ptr == bufSize {
		clear(s.buf[:])
		s.prng.XORKeyStream(s.buf[:], s.buf[:])
		s.ptr = 0
	}

	res := leUint64(s.buf[s.ptr:])
	s.ptr += 8

	return res
}

// SampleN uniformly samples a random integer in [0, N).
func (s *StreamSampler) SampleN(N uint64) uint64 {
	return sampleN(s, N)
}

// SampleVectorAssign fills vOut with uniform values in [0, N).
func (s *StreamSampler) SampleVectorAssign(N uint64, vOut []uint64) {
	for i := range vOut {
		vOut[i] = s.SampleN(N)
	}
}
