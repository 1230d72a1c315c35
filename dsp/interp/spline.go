package interp

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// bSpline is a degree-k B-spline without interior knots, i.e. a single
// polynomial of degree k over [lo, hi] in B-spline form.
type bSpline struct {
	k     int
	knots []float64
	coef  []float64
	lo    float64
	hi    float64
}

// newSmoothingSpline fits a spline of degree order to (xs, ys) by least
// squares. With more samples than order+1 the curve does not pass through
// the samples, so noise on the flanks of a gap is averaged out rather than
// amplified across it. With exactly order+1 samples it interpolates.
func newSmoothingSpline(order int, xs, ys []float64) (*bSpline, error) {
	if order < 1 || order > MaxSplineOrder {
		return nil, fmt.Errorf("%w: %d not in [1,%d]", ErrInvalidOrder, order, MaxSplineOrder)
	}
	n := len(xs)
	if n < order+1 {
		return nil, fmt.Errorf("%w: spline of order %d needs %d, got %d", ErrTooFewPoints, order, order+1, n)
	}

	lo, hi := xs[0], xs[n-1]
	knots := splineKnots(order, lo, hi)
	a := mat.NewDense(n, order+1, nil)
	for j, x := range xs {
		a.SetRow(j, basis(knots, order, x))
	}

	var c mat.VecDense
	if err := c.SolveVec(a, mat.NewVecDense(n, slices.Clone(ys))); err != nil {
		return nil, fmt.Errorf("interp: spline least squares: %w", err)
	}

	coef := make([]float64, order+1)
	for i := range coef {
		coef[i] = c.AtVec(i)
	}
	return &bSpline{k: order, knots: knots, coef: coef, lo: lo, hi: hi}, nil
}

// splineKnots returns the clamped knot vector of a degree-k spline on [lo, hi].
func splineKnots(k int, lo, hi float64) []float64 {
	knots := make([]float64, 0, 2*k+2)
	for range k + 1 {
		knots = append(knots, lo)
	}
	for range k + 1 {
		knots = append(knots, hi)
	}
	return knots
}

// basis evaluates all degree-k B-spline basis functions at x (Cox–de Boor).
func basis(knots []float64, k int, x float64) []float64 {
	m := len(knots) - 1
	n := make([]float64, m)

	last := -1
	for i := 0; i < m; i++ {
		if knots[i] < knots[i+1] {
			last = i
			if knots[i] <= x && x < knots[i+1] {
				n[i] = 1
			}
		}
	}
	// Close the final non-empty interval on the right.
	if last >= 0 && x == knots[last+1] {
		n[last] = 1
	}

	for d := 1; d <= k; d++ {
		for i := 0; i < m-d; i++ {
			v := 0.0
			if den := knots[i+d] - knots[i]; den != 0 {
				v += (x - knots[i]) / den * n[i]
			}
			if den := knots[i+d+1] - knots[i+1]; den != 0 {
				v += (knots[i+d+1] - x) / den * n[i+1]
			}
			n[i] = v
		}
	}
	return n[:m-k]
}

func (s *bSpline) At(x float64) float64 {
	switch {
	case x < s.lo:
		x = s.lo
	case x > s.hi:
		x = s.hi
	}
	sum := 0.0
	for i, b := range basis(s.knots, s.k, x) {
		sum += s.coef[i] * b
	}
	return sum
}
