package reveler_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/sp301415/bluecommit/bluehash"
	"github.com/sp301415/bluecommit/conv"
	"github.com/sp301415/bluecommit/csprng"
	"github.com/sp301415/bluecommit/reveler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	params = reveler.ParametersLiteral{
		Degree:     32,
		Modulus:    65535,
		Transform:  conv.KindRNS,
		DigestSize: bluehash.Bit256,
	}.MustCompile()

	allKinds = []conv.Kind{conv.KindRNS, conv.KindBN254, conv.KindBigInt, conv.KindDirect}
)

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

// fixture deterministically samples (A, B, m, r) for params.
func fixture(params reveler.Parameters, seed string) (A, B reveler.Matrix, m, r reveler.Vector) {
	us := csprng.NewUniformSamplerWithSeed([]byte(seed))
	N, Q := params.Degree(), params.Modulus()

	A, B = reveler.NewMatrix(N), reveler.NewMatrix(N)
	for i := 0; i < N; i++ {
		us.SampleVectorAssign(Q, A[i])
		us.SampleVectorAssign(Q, B[i])
	}
	m, r = make(reveler.Vector, N), make(reveler.Vector, N)
	us.SampleVectorAssign(Q, m)
	us.SampleVectorAssign(Q, r)
	return
}

func TestEndToEnd(t *testing.T) {
	A := reveler.Matrix{
		{1, 2, 3, 4},
		{0, 1, 0, 0},
		{5, 0, 0, 1},
		{16, 16, 16, 16},
	}
	B := reveler.Matrix{
		{1, 0, 0, 0},
		{2, 3, 0, 1},
		{0, 0, 0, 0},
		{7, 1, 4, 2},
	}
	m := reveler.Vector{1, 2, 0, 3}
	r := reveler.Vector{4, 0, 1, 16}

	// Row contributions from the definition:
	//  A*m = (15, 13, 2, 13) + (3, 1, 2, 0) + (7, 10, 3, 16) + (11, 11, 11, 11)
	//  B*r = (4, 0, 1, 16) + (5, 13, 1, 5) + (0, 0, 0, 0) + (14, 2, 4, 2)
	wantPoint := reveler.Vector{8, 16, 7, 12}
	wantDigest := "6ec39970f6c04c1d9c501b15a9c639c09368edfb05a7b28e594813c453e44950"

	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			params := reveler.ParametersLiteral{
				Degree:    4,
				Modulus:   17,
				Transform: kind,
			}.MustCompile()
			committer := reveler.NewCommitter(params)
			verifier := reveler.NewVerifier(params)

			com, err := committer.Commit(A, B, m, r)
			require.NoError(t, err)
			assert.Equal(t, wantPoint, com.Point)
			assert.Equal(t, wantDigest, hex.EncodeToString(com.Digest))

			again, err := committer.Commit(A, B, m, r)
			require.NoError(t, err)
			assert.True(t, com.Equal(again))

			assert.True(t, verifier.Verify(com))

			tampered := com.Copy()
			tampered.Point[2] = (tampered.Point[2] + 1) % 17
			assert.False(t, verifier.Verify(tampered))
		})
	}
}

func TestCommit(t *testing.T) {
	committer := reveler.NewCommitter(params)
	verifier := reveler.NewVerifier(params)
	A, B, m, r := fixture(params, "commit")

	com, err := committer.Commit(A, B, m, r)
	require.NoError(t, err)

	t.Run("Deterministic", func(t *testing.T) {
		again, err := committer.Commit(A, B, m, r)
		require.NoError(t, err)
		assert.Equal(t, com, again)
	})

	t.Run("Verify", func(t *testing.T) {
		assert.True(t, verifier.Verify(com))
		assert.Len(t, com.Digest, int(params.DigestSize()))
		for _, x := range com.Point {
			assert.Less(t, x, params.Modulus())
		}
	})

	t.Run("CommitParallel", func(t *testing.T) {
		for _, workers := range []int{0, 1, 3, 8, 1024} {
			got, err := committer.CommitParallel(A, B, m, r, workers)
			require.NoError(t, err)
			assert.Equal(t, com, got, "workers = %d", workers)
		}
	})

	t.Run("TransformIndependent", func(t *testing.T) {
		for _, kind := range allKinds {
			lit := params.Literal()
			lit.Transform = kind
			got, err := reveler.NewCommitter(lit.MustCompile()).Commit(A, B, m, r)
			require.NoError(t, err)
			assert.Equal(t, com, got, "transform = %v", kind)
		}
	})

	t.Run("InputsUnchanged", func(t *testing.T) {
		A0, B0, m0, r0 := fixture(params, "commit")
		_, err := committer.CommitParallel(A, B, m, r, 4)
		require.NoError(t, err)
		assert.Equal(t, A0, A)
		assert.Equal(t, B0, B)
		assert.Equal(t, m0, m)
		assert.Equal(t, r0, r)
	})

	t.Run("TamperPoint", func(t *testing.T) {
		for i := range com.Point {
			for b := 0; b < 64; b++ {
				tampered := com.Copy()
				tampered.Point[i] ^= 1 << b
				assert.False(t, verifier.Verify(tampered), "point[%d] bit %d", i, b)
			}
		}
	})

	t.Run("TamperDigest", func(t *testing.T) {
		for i := range com.Digest {
			for b := 0; b < 8; b++ {
				tampered := com.Copy()
				tampered.Digest[i] ^= 1 << b
				assert.False(t, verifier.Verify(tampered), "digest[%d] bit %d", i, b)
			}
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		assert.False(t, verifier.Verify(reveler.Commitment{}))
		assert.False(t, verifier.Verify(reveler.Commitment{Point: com.Point[1:], Digest: com.Digest}))
		assert.False(t, verifier.Verify(reveler.Commitment{Point: com.Point, Digest: com.Digest[1:]}))

		outOfRange := com.Copy()
		outOfRange.Point[0] = params.Modulus()
		outOfRange.Digest = reveler.HashPoint(params, outOfRange.Point)
		assert.False(t, verifier.Verify(outOfRange))
	})

	t.Run("VerifyOpening", func(t *testing.T) {
		assert.True(t, verifier.VerifyOpening(A, B, m, r, com))

		mAlt := slices.Clone(m)
		mAlt[0] = (mAlt[0] + 1) % params.Modulus()
		assert.False(t, verifier.VerifyOpening(A, B, mAlt, r, com))
		assert.False(t, verifier.VerifyOpening(A, B, m[1:], r, com))
	})
}

func TestCommitErrors(t *testing.T) {
	committer := reveler.NewCommitter(params)
	A, B, m, r := fixture(params, "errors")

	t.Run("Shape", func(t *testing.T) {
		_, err := committer.Commit(A[1:], B, m, r)
		assert.ErrorIs(t, err, reveler.ErrConfiguration)

		_, err = committer.Commit(A, B, m, r[1:])
		assert.ErrorIs(t, err, reveler.ErrConfiguration)

		ragged := slices.Clone(B)
		ragged[3] = ragged[3][1:]
		_, err = committer.CommitParallel(A, ragged, m, r, 4)
		assert.ErrorIs(t, err, reveler.ErrConfiguration)
	})

	t.Run("Range", func(t *testing.T) {
		mBad := slices.Clone(m)
		mBad[5] = params.Modulus()
		_, err := committer.Commit(A, B, mBad, r)
		assert.ErrorIs(t, err, reveler.ErrConfiguration)
	})

	t.Run("Compile", func(t *testing.T) {
		for _, lit := range []reveler.ParametersLiteral{
			{Degree: 0, Modulus: 17},
			{Degree: 4, Modulus: 1},
			{Degree: 4, Modulus: 17, DigestSize: 20},
			{Degree: 4, Modulus: 17, Transform: conv.Kind(9)},
		} {
			_, err := lit.Compile()
			assert.ErrorIs(t, err, reveler.ErrConfiguration, "%+v", lit)
		}

		assert.Panics(t, func() { reveler.ParametersLiteral{}.MustCompile() })
	})
}

func TestSample(t *testing.T) {
	t.Run("GenParams", func(t *testing.T) {
		A, B, err := reveler.GenParams(params)
		require.NoError(t, err)
		require.Len(t, A, params.Degree())
		require.Len(t, B, params.Degree())

		for i := 0; i < params.Degree(); i++ {
			require.Len(t, A[i], params.Degree())
			require.Len(t, B[i], params.Degree())
			for j := 0; j < params.Degree(); j++ {
				assert.Less(t, A[i][j], params.Modulus())
				assert.Less(t, B[i][j], params.Modulus())
			}
		}
		assert.NotEqual(t, A, B)
	})

	t.Run("IndependentEntropy", func(t *testing.T) {
		// A and B consume disjoint key material from the same reader.
		entropy := bytes.NewReader(bytes.Repeat([]byte{0}, 2*(csprng.StreamKeySize+16)))
		A, B, err := reveler.GenParamsFrom(params, entropy)
		require.NoError(t, err)
		assert.Equal(t, A, B)

		entropy = bytes.NewReader(append(bytes.Repeat([]byte{0}, csprng.StreamKeySize+16), bytes.Repeat([]byte{1}, csprng.StreamKeySize+16)...))
		A, B, err = reveler.GenParamsFrom(params, entropy)
		require.NoError(t, err)
		assert.NotEqual(t, A, B)
	})

	t.Run("SampleVector", func(t *testing.T) {
		v, err := reveler.SampleVector(params)
		require.NoError(t, err)
		require.Len(t, v, params.Degree())
		for _, x := range v {
			assert.Less(t, x, params.Modulus())
		}
	})

	t.Run("EntropyFailure", func(t *testing.T) {
		_, _, err := reveler.GenParamsFrom(params, failingReader{})
		assert.ErrorIs(t, err, reveler.ErrRandomness)

		// Enough entropy for A only.
		_, _, err = reveler.GenParamsFrom(params, bytes.NewReader(make([]byte, csprng.StreamKeySize+16)))
		assert.ErrorIs(t, err, reveler.ErrRandomness)

		_, err = reveler.SampleVectorFrom(params, failingReader{})
		assert.ErrorIs(t, err, reveler.ErrRandomness)
	})
}

func TestSoundness(t *testing.T) {
	small := reveler.ParametersLiteral{Degree: 8, Modulus: 97}.MustCompile()
	committer := reveler.NewCommitter(small)
	verifier := reveler.NewVerifier(small)
	A, B, _, _ := fixture(small, "soundness")

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)
	properties.Property("verify(commit(m, r))", prop.ForAll(
		func(m, r []uint64) bool {
			com, err := committer.Commit(A, B, m, r)
			if err != nil {
				return false
			}
			for _, x := range com.Point {
				if x >= small.Modulus() {
					return false
				}
			}
			return verifier.Verify(com) && verifier.VerifyOpening(A, B, m, r, com)
		},
		gen.SliceOfN(small.Degree(), gen.UInt64Range(0, small.Modulus()-1)),
		gen.SliceOfN(small.Degree(), gen.UInt64Range(0, small.Modulus()-1)),
	))
	properties.TestingRun(t)
}

func TestMarshalBinary(t *testing.T) {
	committer := reveler.NewCommitter(params)
	verifier := reveler.NewVerifier(params)
	com, err := committer.Commit(fixture(params, "marshal"))
	require.NoError(t, err)

	data, err := com.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, 4+reveler.ResidueSize*params.Degree()+1+int(params.DigestSize()))
	assert.Equal(t, reveler.EncodePoint(com.Point), data[4:4+reveler.ResidueSize*params.Degree()])

	var decoded reveler.Commitment
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.True(t, decoded.Equal(com))
	assert.True(t, verifier.Verify(decoded))

	t.Run("Truncated", func(t *testing.T) {
		for _, n := range []int{0, 3, 10, len(data) - 1} {
			var c reveler.Commitment
			assert.ErrorIs(t, c.UnmarshalBinary(data[:n]), reveler.ErrMalformed)
		}
	})

	t.Run("Untrusted", func(t *testing.T) {
		// A well-formed encoding of the wrong dimension decodes but does not verify.
		short := reveler.Commitment{Point: com.Point[:4], Digest: com.Digest}
		data, err := short.MarshalBinary()
		require.NoError(t, err)

		var c reveler.Commitment
		require.NoError(t, c.UnmarshalBinary(data))
		assert.False(t, verifier.Verify(c))
	})
}
