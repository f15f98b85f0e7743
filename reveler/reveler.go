// Package reveler implements a commit-then-reveal scheme over residue vectors.
//
// A committer combines two public random matrices A, B with secret vectors m, r
// into the commitment point C = sum_i (A_i * m + B_i * r) mod Q, where * is the
// cyclic convolution in Z_Q[X]/(X^N - 1), and binds C with its BlueHash digest.
// Every operation is a deterministic function of its inputs, except for
// parameter and secret sampling.
package reveler

import "errors"

var (
	// ErrConfiguration is returned when inputs do not match the parameters,
	// either by shape or by an entry outside [0, Q).
	ErrConfiguration = errors.New("configuration error")
	// ErrRandomness is returned when the entropy source fails.
	// Sampling never falls back to a weaker source.
	ErrRandomness = errors.New("randomness error")
	// ErrMalformed is returned when decoding a Commitment fails.
	ErrMalformed = errors.New("malformed commitment")
)
