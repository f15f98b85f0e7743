package bigring

// MulNTT returns pOut = p0 * p1.
func (r *baseBigRing) MulNTT(p0, p1 BigNTTPoly) BigNTTPoly {
	pOut := NewBigNTTPoly(r.degree)
	r.MulNTTAssign(p0, p1, pOut)
	return pOut
}

// MulNTTAssign assigns pOut = p0 * p1.
func (r *baseBigRing) MulNTTAssign(p0, p1, pOut BigNTTPoly) {
	for i := 0; i < r.degree; i++ {
		r.mul.Mul(p0.Coeffs[i], p1.Coeffs[i])
		r.Reduce(r.mul)
		pOut.Coeffs[i].Set(r.mul)
	}
}
