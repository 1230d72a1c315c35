package signal

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

// Axis describes one array dimension.
type Axis struct {
	Name     string
	Size     int
	Scale    float64
	Offset   float64
	Units    string
	Navigate bool
}

// Value returns the calibrated coordinate of sample i.
func (a Axis) Value(i int) float64 {
	return a.Offset + float64(i)*a.Scale
}

// Signal is a dense multidimensional array with a navigation/signal split and
// a current navigation index.
type Signal struct {
	layout
	data  []float64
	axes  []Axis
	index []int

	noiseVariance float64
}

// New wraps data (row-major, navigation axes first) in a Signal.
// The data slice is used without copying.
func New(data []float64, navShape, sigShape []int) (*Signal, error) {
	l, err := newLayout(navShape, sigShape)
	if err != nil {
		return nil, err
	}
	if want := l.NavigationSize() * l.SignalSize(); len(data) != want {
		return nil, fmt.Errorf("%w: %d samples for shape %v|%v (want %d)", ErrShape, len(data), navShape, sigShape, want)
	}

	s := &Signal{
		layout:        l,
		data:          data,
		index:         make([]int, len(l.nav)),
		noiseVariance: math.NaN(),
	}
	s.axes = defaultAxes(l)
	return s, nil
}

// New1D wraps data whose last dimension is the signal axis and whose leading
// dimensions are navigation axes.
func New1D(data []float64, shape ...int) (*Signal, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: one-dimensional signal needs at least one extent", ErrShape)
	}
	return New(data, shape[:len(shape)-1], shape[len(shape)-1:])
}

// Full returns a Signal with every sample set to value.
func Full(value float64, navShape, sigShape []int) (*Signal, error) {
	data := make([]float64, core.Product(navShape)*core.Product(sigShape))
	core.Fill(data, value)
	return New(data, navShape, sigShape)
}

func defaultAxes(l layout) []Axis {
	axes := make([]Axis, 0, len(l.nav)+len(l.sig))
	for i, n := range l.nav {
		axes = append(axes, Axis{Name: fmt.Sprintf("nav%d", i), Size: n, Scale: 1, Navigate: true})
	}
	for i, n := range l.sig {
		axes = append(axes, Axis{Name: fmt.Sprintf("sig%d", i), Size: n, Scale: 1})
	}
	return axes
}

// Data returns the backing array. Writes are visible to the Signal.
func (s *Signal) Data() []float64 { return s.data }

// Axes returns a copy of the axis descriptors in array order.
func (s *Signal) Axes() []Axis { return slices.Clone(s.axes) }

// Calibrate sets scale, offset and units of the axis at array position dim.
func (s *Signal) Calibrate(dim int, scale, offset float64, units string) error {
	if dim < 0 || dim >= len(s.axes) {
		return fmt.Errorf("%w: axis %d not in [0,%d)", ErrIndex, dim, len(s.axes))
	}
	s.axes[dim].Scale = scale
	s.axes[dim].Offset = offset
	s.axes[dim].Units = units
	return nil
}

// Indices returns a copy of the current navigation index.
func (s *Signal) Indices() []int { return slices.Clone(s.index) }

// SetIndices moves the current navigation index.
func (s *Signal) SetIndices(idx []int) error {
	if core.Ravel(s.nav, idx) < 0 {
		return fmt.Errorf("%w: navigation index %v for shape %v", ErrIndex, idx, s.nav)
	}
	copy(s.index, idx)
	return nil
}

// Current returns the spectrum at the current navigation index as a view.
func (s *Signal) Current() []float64 {
	n := s.SignalSize()
	off := core.Ravel(s.nav, s.index) * n
	return s.data[off : off+n : off+n]
}

// At returns the spectrum at navigation index idx as a view.
func (s *Signal) At(idx []int) ([]float64, error) {
	pos := core.Ravel(s.nav, idx)
	if pos < 0 {
		return nil, fmt.Errorf("%w: navigation index %v for shape %v", ErrIndex, idx, s.nav)
	}
	n := s.SignalSize()
	return s.data[pos*n : (pos+1)*n : (pos+1)*n], nil
}

// Flat returns the offset into Data of the full array index idx.
func (s *Signal) Flat(idx ...int) (int, error) {
	off := core.Ravel(s.DataShape(), idx)
	if off < 0 {
		return 0, fmt.Errorf("%w: index %v for shape %v", ErrIndex, idx, s.DataShape())
	}
	return off, nil
}

// Positions iterates navigation positions in row-major order, yielding the
// flat position and its multi-index.
func (s *Signal) Positions() iter.Seq2[int, []int] {
	return func(yield func(int, []int) bool) {
		for pos := range s.NavigationSize() {
			if !yield(pos, core.Unravel(s.nav, pos)) {
				return
			}
		}
	}
}

// NoiseVariance returns the white-noise variance recorded in the metadata.
func (s *Signal) NoiseVariance() (float64, bool) {
	return s.noiseVariance, !math.IsNaN(s.noiseVariance)
}

// SetNoiseVariance records the white-noise variance of the data.
// NaN clears the entry.
func (s *Signal) SetNoiseVariance(v float64) {
	s.noiseVariance = v
}

// Clone returns a deep copy.
func (s *Signal) Clone() *Signal {
	out := *s
	out.layout = layout{nav: slices.Clone(s.nav), sig: slices.Clone(s.sig)}
	out.data = slices.Clone(s.data)
	out.axes = slices.Clone(s.axes)
	out.index = slices.Clone(s.index)
	return &out
}

// Transpose swaps the roles of navigation and signal axes.
func (s *Signal) Transpose() *Signal {
	l := s.transposed()
	out := &Signal{
		layout:        l,
		data:          swapBlocks(s.data, s.NavigationSize(), s.SignalSize()),
		index:         make([]int, len(l.nav)),
		noiseVariance: s.noiseVariance,
	}
	out.axes = defaultAxes(l)
	return out
}

// SumSignal sums over all signal axes, leaving one value per navigation position.
func (s *Signal) SumSignal() *Signal {
	n := s.SignalSize()
	out := make([]float64, s.NavigationSize())
	for pos := range out {
		for _, v := range s.data[pos*n : (pos+1)*n] {
			out[pos] += v
		}
	}
	sum, _ := New(out, s.nav, nil)
	return sum
}

// SumNavigation sums over all navigation axes, leaving one spectrum.
func (s *Signal) SumNavigation() *Signal {
	n := s.SignalSize()
	out := make([]float64, n)
	for pos := range s.NavigationSize() {
		for i, v := range s.data[pos*n : (pos+1)*n] {
			out[i] += v
		}
	}
	sum, _ := New(out, nil, s.sig)
	return sum
}

// Greater returns a Mask that is true where the data exceeds threshold.
func (s *Signal) Greater(threshold float64) *Mask {
	m := &Mask{layout: layout{nav: slices.Clone(s.nav), sig: slices.Clone(s.sig)}, data: make([]bool, len(s.data))}
	for i, v := range s.data {
		m.data[i] = v > threshold
	}
	return m
}

// CropNavigation keeps positions [start, end) of navigation axis dim.
func (s *Signal) CropNavigation(dim, start, end int) (*Signal, error) {
	return s.crop(dim, start, end)
}

// CropSignal keeps samples [start, end) of signal axis dim.
func (s *Signal) CropSignal(dim, start, end int) (*Signal, error) {
	return s.crop(len(s.nav)+dim, start, end)
}

func (s *Signal) crop(dim, start, end int) (*Signal, error) {
	shape := s.DataShape()
	data, err := cropAxis(s.data, shape, dim, start, end)
	if err != nil {
		return nil, err
	}
	shape[dim] = end - start
	out, err := New(data, shape[:len(s.nav)], shape[len(s.nav):])
	if err != nil {
		return nil, err
	}
	for i := range out.axes {
		a := s.axes[i]
		a.Size = shape[i]
		if i == dim {
			a.Offset = a.Value(start)
		}
		out.axes[i] = a
	}
	out.noiseVariance = s.noiseVariance
	return out, nil
}
