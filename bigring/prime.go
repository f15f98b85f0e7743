package bigring

import "math/big"

// FindNTTPrime returns the smallest prime P > bound with P = 1 mod 2N.
// Such P admits a primitive Nth root of unity for every power-of-two N.
func FindNTTPrime(N int, bound *big.Int) *big.Int {
	step := big.NewInt(int64(2 * N))

	k := big.NewInt(0).Div(bound, step)
	P := big.NewInt(0).Mul(k, step)
	P.Add(P, big.NewInt(1))
	for P.Cmp(bound) <= 0 {
		P.Add(P, step)
	}

	for !P.ProbablyPrime(20) {
		P.Add(P, step)
	}
	return P
}
