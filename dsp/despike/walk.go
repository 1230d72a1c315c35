package despike

import (
	"iter"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-spectra/dsp/mask"
)

// walker enumerates navigation positions in cyclic row-major order.
type walker struct {
	shape []int
	size  int
	nav   mask.Input
}

func newWalker(shape []int, nav mask.Input) walker {
	return walker{shape: shape, size: core.Product(shape), nav: nav}
}

// cycle yields every unmasked flat position once, starting next to start in
// direction dir and ending on start itself.
func (w walker) cycle(start int, dir Direction) iter.Seq[int] {
	return func(yield func(int) bool) {
		for step := 1; step <= w.size; step++ {
			pos := start + step
			if dir == Backward {
				pos = start - step
			}
			pos = ((pos % w.size) + w.size) % w.size
			if mask.Excluded(w.nav, pos) {
				continue
			}
			if !yield(pos) {
				return
			}
		}
	}
}

// all yields every unmasked position from the first one.
func (w walker) all() iter.Seq[int] {
	return w.cycle(w.size-1, Forward)
}

func (w walker) indices(pos int) []int {
	return core.Unravel(w.shape, pos)
}

func (w walker) position(idx []int) int {
	return core.Ravel(w.shape, idx)
}
