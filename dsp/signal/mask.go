package signal

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

// Mask is a boolean signal. True marks an excluded element.
type Mask struct {
	layout
	data []bool
}

// NewMask returns an all-false Mask with the given navigation and signal shapes.
func NewMask(navShape, sigShape []int) (*Mask, error) {
	l, err := newLayout(navShape, sigShape)
	if err != nil {
		return nil, err
	}
	return &Mask{layout: l, data: make([]bool, l.NavigationSize()*l.SignalSize())}, nil
}

// Len returns the number of elements.
func (m *Mask) Len() int { return len(m.data) }

// At reports the flat element i.
func (m *Mask) At(i int) bool { return m.data[i] }

// Data returns the backing array.
func (m *Mask) Data() []bool { return m.data }

// Set assigns the element at full array index idx.
func (m *Mask) Set(v bool, idx ...int) error {
	off := core.Ravel(m.DataShape(), idx)
	if off < 0 {
		return fmt.Errorf("%w: index %v for shape %v", ErrIndex, idx, m.DataShape())
	}
	m.data[off] = v
	return nil
}

// Transpose swaps the roles of navigation and signal axes.
func (m *Mask) Transpose() *Mask {
	return &Mask{
		layout: m.transposed(),
		data:   swapBlocks(m.data, m.NavigationSize(), m.SignalSize()),
	}
}

// CropNavigation keeps positions [start, end) of navigation axis dim.
func (m *Mask) CropNavigation(dim, start, end int) (*Mask, error) {
	return m.crop(dim, start, end)
}

// CropSignal keeps samples [start, end) of signal axis dim.
func (m *Mask) CropSignal(dim, start, end int) (*Mask, error) {
	return m.crop(len(m.nav)+dim, start, end)
}

func (m *Mask) crop(dim, start, end int) (*Mask, error) {
	shape := m.DataShape()
	data, err := cropAxis(m.data, shape, dim, start, end)
	if err != nil {
		return nil, err
	}
	shape[dim] = end - start
	nav := slices.Clone(shape[:len(m.nav)])
	return &Mask{layout: layout{nav: nav, sig: shape[len(m.nav):]}, data: data}, nil
}
