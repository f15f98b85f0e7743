package conv

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/sp301415/bluecommit/bigring"
	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/ring"
)

const (
	// rnsLogPrime is the bit size of each prime in the RNS chain.
	rnsLogPrime = 55
	// rnsMinRingDegree is the smallest ring degree handed to lattigo.
	rnsMinRingDegree = 16
)

// RNSConvolver computes cyclic convolutions with lattigo's NTT
// over a chain of primes whose product exceeds N(Q-1)^2.
//
// Inputs are embedded in Z_P[X]/(X^M + 1) with M >= 2N - 1,
// so the negacyclic product never wraps and equals the linear convolution.
type RNSConvolver struct {
	degree  int
	modulus uint64

	ringQ         *ring.Ring
	reconstructor *RNSReconstructor

	buffer rnsBuffer
}

type rnsBuffer struct {
	p0  ring.Poly
	p1  ring.Poly
	lin []uint64
}

// NewRNSConvolver creates a new RNSConvolver.
func NewRNSConvolver(N int, Q uint64) (*RNSConvolver, error) {
	M := max(rnsMinRingDegree, transformSize(N))
	bound := LinearBound(N, Q)

	// Each prime is at least 2^(rnsLogPrime-1).
	primeCount := bound.BitLen()/(rnsLogPrime-1) + 1
	logQ := make([]int, primeCount)
	for i := range logQ {
		logQ[i] = rnsLogPrime
	}

	logNthRoot := bits.Len(uint(M))
	q, _, err := rlwe.GenModuli(logNthRoot, logQ, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}

	ringQ, err := ring.NewRing(M, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}

	if ringQ.Modulus().Cmp(bound) <= 0 {
		return nil, fmt.Errorf("%w: rns modulus does not exceed %v", ErrUnsupported, bound)
	}

	return &RNSConvolver{
		degree:  N,
		modulus: Q,

		ringQ:         ringQ,
		reconstructor: NewRNSReconstructor(ringQ, Q),

		buffer: newRNSBuffer(ringQ, N),
	}, nil
}

func newRNSBuffer(ringQ *ring.Ring, N int) rnsBuffer {
	return rnsBuffer{
		p0:  ringQ.NewPoly(),
		p1:  ringQ.NewPoly(),
		lin: make([]uint64, 2*N-1),
	}
}

// Degree returns N.
func (c *RNSConvolver) Degree() int {
	return c.degree
}

// Modulus returns Q.
func (c *RNSConvolver) Modulus() uint64 {
	return c.modulus
}

// RingQ returns the underlying lattigo ring.
func (c *RNSConvolver) RingQ() *ring.Ring {
	return c.ringQ
}

// ShallowCopy returns a copy of c that is thread-safe.
func (c *RNSConvolver) ShallowCopy() Convolver {
	return &RNSConvolver{
		degree:  c.degree,
		modulus: c.modulus,

		ringQ:         c.ringQ,
		reconstructor: c.reconstructor.ShallowCopy(),

		buffer: newRNSBuffer(c.ringQ, c.degree),
	}
}

// Convolve returns the cyclic convolution of row and v mod Q.
func (c *RNSConvolver) Convolve(row, v []uint64) ([]uint64, error) {
	vOut := make([]uint64, c.degree)
	if err := c.ConvolveAssign(row, v, vOut); err != nil {
		return nil, err
	}
	return vOut, nil
}

// ConvolveAssign computes the cyclic convolution of row and v mod Q and writes it to vOut.
func (c *RNSConvolver) ConvolveAssign(row, v, vOut []uint64) error {
	if err := checkInputs(c.degree, c.modulus, row, v, vOut); err != nil {
		return err
	}

	c.embedAssign(row, c.buffer.p0)
	c.embedAssign(v, c.buffer.p1)

	c.ringQ.NTT(c.buffer.p0, c.buffer.p0)
	c.ringQ.NTT(c.buffer.p1, c.buffer.p1)
	c.ringQ.MulCoeffsBarrett(c.buffer.p0, c.buffer.p1, c.buffer.p0)
	c.ringQ.INTT(c.buffer.p0, c.buffer.p0)

	for k := range c.buffer.lin {
		c.buffer.lin[k] = c.reconstructor.ReconstructMod(c.buffer.p0, k)
	}
	foldAssign(c.buffer.lin, c.modulus, vOut)

	return nil
}

// embedAssign writes v into every RNS limb of pOut, padding with zeros.
func (c *RNSConvolver) embedAssign(v []uint64, pOut ring.Poly) {
	for j := 0; j <= c.ringQ.Level(); j++ {
		qj := c.ringQ.SubRings[j].Modulus
		for i := range v {
			pOut.Coeffs[j][i] = v[i] % qj
		}
		clear(pOut.Coeffs[j][len(v):])
	}
}

// RNSReconstructor lifts a coefficient from its RNS representation
// to an integer in [0, P) and reduces it mod Q.
type RNSReconstructor struct {
	ringQ   *ring.Ring
	reducer *bigring.Reducer

	rnsGadget []*big.Int
	modulus   uint64

	buffer rnsReconstructorBuffer
}

type rnsReconstructorBuffer struct {
	mul   *big.Int
	coeff *big.Int
	value *big.Int
	mod   *big.Int
}

// NewRNSReconstructor creates a new RNSReconstructor.
func NewRNSReconstructor(ringQ *ring.Ring, Q uint64) *RNSReconstructor {
	rnsGadget := make([]*big.Int, ringQ.ModuliChainLength())
	qFull := ringQ.Modulus()
	for i := 0; i <= ringQ.Level(); i++ {
		qi := big.NewInt(0).SetUint64(ringQ.SubRings[i].Modulus)
		qDiv := big.NewInt(0).Div(qFull, qi)
		qInv := big.NewInt(0).ModInverse(qDiv, qi)
		rnsGadget[i] = big.NewInt(0).Mul(qDiv, qInv)
	}

	return &RNSReconstructor{
		ringQ:   ringQ,
		reducer: bigring.NewReducer(qFull),

		rnsGadget: rnsGadget,
		modulus:   Q,

		buffer: newRNSReconstructorBuffer(Q),
	}
}

func newRNSReconstructorBuffer(Q uint64) rnsReconstructorBuffer {
	return rnsReconstructorBuffer{
		mul:   big.NewInt(0),
		coeff: big.NewInt(0),
		value: big.NewInt(0),
		mod:   big.NewInt(0).SetUint64(Q),
	}
}

// ShallowCopy returns a shallow copy of the RNSReconstructor that is thread-safe.
func (r *RNSReconstructor) ShallowCopy() *RNSReconstructor {
	return &RNSReconstructor{
		ringQ:   r.ringQ,
		reducer: r.reducer.ShallowCopy(),

		rnsGadget: r.rnsGadget,
		modulus:   r.modulus,

		buffer: newRNSReconstructorBuffer(r.modulus),
	}
}

// ReconstructMod returns the i-th coefficient of p, lifted to [0, P), mod Q.
// p should be in coefficient form.
func (r *RNSReconstructor) ReconstructMod(p ring.Poly, i int) uint64 {
	// A value below every prime has identical residues.
	c0 := p.Coeffs[0][i]
	isSmall := true
	for j := 1; j <= r.ringQ.Level(); j++ {
		if p.Coeffs[j][i] != c0 {
			isSmall = false
			break
		}
	}
	if isSmall {
		return c0 % r.modulus
	}

	r.buffer.value.SetInt64(0)
	for j := 0; j <= r.ringQ.Level(); j++ {
		r.buffer.mul.SetUint64(p.Coeffs[j][i])
		r.buffer.coeff.Mul(r.buffer.mul, r.rnsGadget[j])
		r.buffer.value.Add(r.buffer.value, r.buffer.coeff)
		r.reducer.Reduce(r.buffer.value)
	}

	return r.buffer.value.Mod(r.buffer.value, r.buffer.mod).Uint64()
}
