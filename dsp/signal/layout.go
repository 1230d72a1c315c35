// Package signal provides an in-memory multidimensional signal container.
//
// A [Signal] stores a dense row-major float64 array whose axes are split into
// navigation axes (which spectrum is "current") and signal axes (the samples of
// one spectrum). Navigation axes come first in memory, so every spectrum is a
// contiguous slice that can be read and repaired in place.
//
// A [Mask] has the same navigation/signal split but holds booleans. It is the
// result of comparisons such as [Signal.Greater] and is accepted wherever a
// navigation or signal mask is expected.
package signal

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

// layout describes the navigation/signal split shared by Signal and Mask.
// Shapes are in array order: slowest axis first, fastest axis last.
type layout struct {
	nav []int
	sig []int
}

func newLayout(navShape, sigShape []int) (layout, error) {
	for _, n := range navShape {
		if n <= 0 {
			return layout{}, fmt.Errorf("%w: navigation extent must be > 0: %v", ErrShape, navShape)
		}
	}
	for _, n := range sigShape {
		if n <= 0 {
			return layout{}, fmt.Errorf("%w: signal extent must be > 0: %v", ErrShape, sigShape)
		}
	}
	return layout{nav: slices.Clone(navShape), sig: slices.Clone(sigShape)}, nil
}

// NavigationShape returns the extents of the navigation axes.
func (l layout) NavigationShape() []int { return slices.Clone(l.nav) }

// SignalShape returns the extents of the signal axes.
func (l layout) SignalShape() []int { return slices.Clone(l.sig) }

// NavigationDimension returns the number of navigation axes.
func (l layout) NavigationDimension() int { return len(l.nav) }

// SignalDimension returns the number of signal axes.
func (l layout) SignalDimension() int { return len(l.sig) }

// NavigationSize returns the number of navigation positions.
func (l layout) NavigationSize() int { return core.Product(l.nav) }

// SignalSize returns the number of samples per navigation position.
func (l layout) SignalSize() int { return core.Product(l.sig) }

// DataShape returns the full array shape, navigation extents followed by signal extents.
func (l layout) DataShape() []int {
	return append(slices.Clone(l.nav), l.sig...)
}

func (l layout) transposed() layout {
	return layout{nav: slices.Clone(l.sig), sig: slices.Clone(l.nav)}
}

// swapBlocks reorders an [n][s] row-major block into [s][n].
func swapBlocks[T any](data []T, n, s int) []T {
	out := make([]T, len(data))
	for i := 0; i < n; i++ {
		for j := 0; j < s; j++ {
			out[j*n+i] = data[i*s+j]
		}
	}
	return out
}

// cropAxis keeps [start, end) along dimension dim of a row-major array.
func cropAxis[T any](data []T, shape []int, dim, start, end int) ([]T, error) {
	if dim < 0 || dim >= len(shape) {
		return nil, fmt.Errorf("%w: axis %d not in [0,%d)", ErrIndex, dim, len(shape))
	}
	if start < 0 || end > shape[dim] || start >= end {
		return nil, fmt.Errorf("%w: crop range [%d,%d) invalid for extent %d", ErrIndex, start, end, shape[dim])
	}

	outer := core.Product(shape[:dim])
	inner := core.Product(shape[dim+1:])
	width := end - start
	out := make([]T, 0, outer*width*inner)
	for o := 0; o < outer; o++ {
		base := (o*shape[dim] + start) * inner
		out = append(out, data[base:base+width*inner]...)
	}
	return out, nil
}
