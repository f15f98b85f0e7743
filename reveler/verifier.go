package reveler

import "crypto/subtle"

// Verifier checks commitments.
type Verifier struct {
	Parameters Parameters

	committer *Committer
}

// NewVerifier creates a new Verifier.
func NewVerifier(params Parameters) *Verifier {
	return &Verifier{
		Parameters: params,

		committer: NewCommitter(params),
	}
}

// ShallowCopy creates a copy of Verifier that is thread-safe.
func (v *Verifier) ShallowCopy() *Verifier {
	return &Verifier{
		Parameters: v.Parameters,

		committer: v.committer.ShallowCopy(),
	}
}

// Verify returns true if com.Digest is the digest of com.Point.
// It returns false for malformed commitments instead of failing.
func (v *Verifier) Verify(com Commitment) bool {
	if len(com.Point) != v.Parameters.degree || len(com.Digest) != int(v.Parameters.digestSize) {
		return false
	}
	for _, x := range com.Point {
		if x >= v.Parameters.modulus {
			return false
		}
	}

	return subtle.ConstantTimeCompare(HashPoint(v.Parameters, com.Point), com.Digest) == 1
}

// VerifyOpening returns true if com is a valid commitment
// and (A, B, m, r) opens to it.
func (v *Verifier) VerifyOpening(A, B Matrix, m, r Vector, com Commitment) bool {
	if !v.Verify(com) {
		return false
	}

	recomputed, err := v.committer.Commit(A, B, m, r)
	if err != nil {
		return false
	}
	return recomputed.Equal(com)
}
