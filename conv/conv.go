// Package conv implements exact cyclic convolution of residue vectors.
//
// Every transform backend computes the integer linear convolution of its
// inputs modulo a transform modulus P > N(Q-1)^2, so the transformed result
// equals the true integer coefficient and no rounding takes place.
// The linear convolution is then folded modulo X^N - 1 and reduced mod Q.
package conv

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/sp301415/bluecommit/num"
)

var (
	// ErrLength is returned when an input vector does not have length N.
	ErrLength = errors.New("vector length mismatch")
	// ErrRange is returned when an input entry is not in [0, Q).
	ErrRange = errors.New("entry out of range")
	// ErrUnsupported is returned when a backend cannot hold the given N and Q exactly.
	ErrUnsupported = errors.New("unsupported convolution parameters")
)

// Kind selects a convolution backend.
type Kind int

const (
	// KindRNS transforms over a chain of word-sized NTT primes using lattigo.
	KindRNS Kind = iota
	// KindBN254 transforms over the BN254 scalar field using gnark-crypto.
	KindBN254
	// KindBigInt transforms over a single big prime using bigring.
	KindBigInt
	// KindDirect computes the O(N^2) definition.
	KindDirect
)

// String implements the [fmt.Stringer] interface.
func (k Kind) String() string {
	switch k {
	case KindRNS:
		return "rns"
	case KindBN254:
		return "bn254"
	case KindBigInt:
		return "bigint"
	case KindDirect:
		return "direct"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the name of a Kind, as returned by String.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{KindRNS, KindBN254, KindBigInt, KindDirect} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown backend %q", ErrUnsupported, s)
}

// Convolver computes cyclic convolutions in Z_Q[X]/(X^N - 1).
//
// A Convolver owns scratch buffers and is not safe for concurrent use.
// Use ShallowCopy to obtain one per goroutine.
type Convolver interface {
	// Degree returns N.
	Degree() int
	// Modulus returns Q.
	Modulus() uint64
	// Convolve returns the cyclic convolution of row and v mod Q.
	Convolve(row, v []uint64) ([]uint64, error)
	// ConvolveAssign computes the cyclic convolution of row and v mod Q and writes it to vOut.
	ConvolveAssign(row, v, vOut []uint64) error
	// ShallowCopy returns a copy sharing read-only tables, safe to use in another goroutine.
	ShallowCopy() Convolver
}

// NewConvolver creates a new Convolver of the given kind.
func NewConvolver(kind Kind, N int, Q uint64) (Convolver, error) {
	if N < 1 {
		return nil, fmt.Errorf("%w: degree %d", ErrUnsupported, N)
	}
	if Q < 2 {
		return nil, fmt.Errorf("%w: modulus %d", ErrUnsupported, Q)
	}

	switch kind {
	case KindRNS:
		return NewRNSConvolver(N, Q)
	case KindBN254:
		return NewBN254Convolver(N, Q)
	case KindBigInt:
		return NewBigIntConvolver(N, Q)
	case KindDirect:
		return NewDirectConvolver(N, Q), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupported, kind)
}

// LinearBound returns N(Q-1)^2, the largest value a coefficient of
// the linear convolution of two vectors in [0, Q)^N can take.
func LinearBound(N int, Q uint64) *big.Int {
	b := big.NewInt(0).SetUint64(Q - 1)
	b.Mul(b, b)
	b.Mul(b, big.NewInt(int64(N)))
	return b
}

// transformSize returns the smallest power of two
// that holds a linear convolution of two length N vectors.
func transformSize(N int) int {
	return max(2, num.NextPowerOfTwo(2*N-1))
}

func checkInputs(N int, Q uint64, row, v, vOut []uint64) error {
	if len(row) != N || len(v) != N || len(vOut) != N {
		return fmt.Errorf("%w: got (%d, %d, %d), want %d", ErrLength, len(row), len(v), len(vOut), N)
	}
	for i := 0; i < N; i++ {
		if row[i] >= Q || v[i] >= Q {
			return fmt.Errorf("%w: index %d", ErrRange, i)
		}
	}
	return nil
}

// foldAssign writes lin[k] + lin[k+N] mod Q to vOut[k].
// lin should already be reduced mod Q and have length at least 2N - 1.
func foldAssign(lin []uint64, Q uint64, vOut []uint64) {
	N := len(vOut)
	for k := 0; k < N; k++ {
		vOut[k] = lin[k]
		if k+N < 2*N-1 {
			vOut[k] = num.AddMod(vOut[k], lin[k+N], Q)
		}
	}
}
