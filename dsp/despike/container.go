package despike

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectra/dsp/mask"
)

// Container is the view of a multi-dimensional signal the spike tools need.
// *signal.Signal implements it.
type Container interface {
	NavigationShape() []int
	SignalShape() []int
	Indices() []int
	SetIndices(idx []int) error
	// Current returns the spectrum at the current index. Writes go to the container.
	Current() []float64
	NoiseVariance() (float64, bool)
}

// target is the validated state shared by Session, Run and Diagnose.
type target struct {
	c       Container
	walk    walker
	exclude []bool
}

func newTarget(c Container, s settings) (target, error) {
	sig := c.SignalShape()
	if len(sig) != 1 {
		return target{}, fmt.Errorf("%w: got %d", ErrNotSignal1D, len(sig))
	}
	if s.navMask != nil {
		if err := mask.ValidateNavigation(c, s.navMask); err != nil {
			return target{}, err
		}
	}

	exclude := make([]bool, sig[0])
	if s.sigMask != nil {
		if err := mask.ValidateSignal(c, s.sigMask); err != nil {
			return target{}, err
		}
		for i := range exclude {
			exclude[i] = s.sigMask.At(i)
		}
	}

	return target{c: c, walk: newWalker(c.NavigationShape(), s.navMask), exclude: exclude}, nil
}

// resolveThreshold returns the configured threshold, or the diagnosed one when
// AutoThreshold is set.
func (t target) resolveThreshold(s settings) (float64, error) {
	if !s.AutoThreshold {
		if err := checkThreshold(s.Threshold); err != nil {
			return 0, err
		}
		return s.Threshold, nil
	}
	h, err := t.histogram(s.HistogramBins)
	if err != nil {
		return 0, err
	}
	return h.Threshold(), nil
}

// repairer builds a Repairer from the current settings.
func (t target) repairer(s settings) Repairer {
	r := Repairer{
		Width:       s.SpikeWidth,
		Kind:        s.Interpolator,
		SplineOrder: s.SplineOrder,
		AddNoise:    s.AddNoise,
		Variance:    math.NaN(),
		Rand:        s.rng,
	}
	if !s.AddNoise {
		return r
	}
	switch v, ok := t.c.NoiseVariance(); {
	case s.NoiseVariance != nil:
		r.Variance = *s.NoiseVariance
	case ok:
		r.Variance = v
	}
	return r
}

func checkThreshold(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidThreshold, v)
	}
	return nil
}
