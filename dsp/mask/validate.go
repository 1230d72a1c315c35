package mask

import (
	"fmt"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

// group selects which half of the target layout a mask is checked against.
type group int

const (
	navigationGroup group = iota
	signalGroup
)

func (g group) String() string {
	if g == navigationGroup {
		return "navigation"
	}
	return "signal"
}

// shapes returns the compared shape and the orthogonal shape of l for group g.
func (g group) shapes(l Layout) (own, orthogonal []int) {
	if g == navigationGroup {
		return l.NavigationShape(), l.SignalShape()
	}
	return l.SignalShape(), l.NavigationShape()
}

// ValidateNavigation checks that m holds exactly one boolean per navigation
// position of target.
func ValidateNavigation(target Layout, m Input) error {
	return validate(target, m, navigationGroup)
}

// ValidateSignal checks that m holds exactly one boolean per sample of a
// spectrum of target.
func ValidateSignal(target Layout, m Input) error {
	return validate(target, m, signalGroup)
}

func validate(target Layout, m Input, g group) error {
	want, _ := g.shapes(target)

	switch v := m.(type) {
	case Layout:
		got, orthogonal := g.shapes(v)
		if len(orthogonal) != 0 {
			return fmt.Errorf("%w: the %s mask signal must have the `%s_dimension` equal to 0, got %d",
				ErrDimensionMismatch, g, otherGroup(g), len(orthogonal))
		}
		if !core.EqualShape(got, want) {
			return fmt.Errorf("%w: the %s mask signal must have the same %s shape as the target signal: got %v, want %v",
				ErrShapeMismatch, g, g, got, want)
		}
	case *Array:
		if v == nil {
			return fmt.Errorf("%w: nil %s mask array", ErrUnsupported, g)
		}
		if !core.EqualShape(v.Shape, want) {
			return fmt.Errorf("%w: the shape of the %s mask array must match the %s shape of the target signal: got %v, want %v",
				ErrShapeMismatch, g, g, v.Shape, want)
		}
		if len(v.Data) != core.Product(v.Shape) {
			return fmt.Errorf("%w: %s mask array holds %d elements for shape %v",
				ErrShapeMismatch, g, len(v.Data), v.Shape)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, describe(m))
	}
	return nil
}

func otherGroup(g group) group {
	if g == navigationGroup {
		return signalGroup
	}
	return navigationGroup
}
