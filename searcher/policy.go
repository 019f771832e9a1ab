package searcher

import "math"

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N int) uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return uct{numerator: cSquared * math.Log(float64(N))}
}

// evaluate computes q/n ± sqrt(c^2*ln(N)/n), the sign picks the bound the
// choosing player looks at.
func (u uct) evaluate(q float64, n int, sign float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	return q/float64(n) + sign*math.Sqrt(u.numerator/float64(n))
}
