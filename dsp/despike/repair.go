package despike

import (
	"fmt"
	"math"
	"math/rand"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-spectra/dsp/interp"
	"github.com/cwbudde/algo-spectra/dsp/noise"
)

// Window is an inclusive range of repaired samples.
type Window struct {
	Lo, Hi int
}

// Len returns the number of samples in w.
func (w Window) Len() int { return w.Hi - w.Lo + 1 }

// Repairer replaces the samples around a spike.
type Repairer struct {
	Width       int
	Kind        interp.Kind
	SplineOrder int
	AddNoise    bool
	// Variance of the injected noise. NaN estimates it from the repaired spectrum.
	Variance float64
	Rand     *rand.Rand
}

// Repair overwrites [location-Width, location+Width] (clipped to the spectrum)
// with an interpolant through the samples flanking the window. A window that
// reaches either end of the spectrum is filled with the mean of the opposite
// flank. On error the spectrum is left untouched.
func (r Repairer) Repair(spectrum []float64, location int) (Window, error) {
	n := len(spectrum)
	if r.Width < 1 {
		return Window{}, fmt.Errorf("%w: %d", ErrInvalidWidth, r.Width)
	}
	if location < 0 || location >= n {
		return Window{}, fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidLocation, location, n)
	}
	if !r.Kind.Valid() {
		return Window{}, fmt.Errorf("%w: %s", interp.ErrUnknownKind, r.Kind)
	}
	if r.Kind == interp.KindSpline && (r.SplineOrder < 1 || r.SplineOrder > interp.MaxSplineOrder) {
		return Window{}, fmt.Errorf("%w: %d", interp.ErrInvalidOrder, r.SplineOrder)
	}

	w := Window{
		Lo: core.ClampIndex(location-r.Width, 0, n-1),
		Hi: core.ClampIndex(location+r.Width, 0, n-1),
	}
	if w.Lo == 0 && w.Hi == n-1 {
		return Window{}, fmt.Errorf("%w: window [%d,%d] of %d samples", ErrWindowCoversSpectrum, w.Lo, w.Hi, n)
	}

	pad := interp.Pad(r.Kind, r.SplineOrder)
	leftStart := max(0, w.Lo-pad)
	rightEnd := min(n, w.Hi+1+pad)

	work := slices.Clone(spectrum)
	gap := work[w.Lo : w.Hi+1]
	switch {
	case w.Lo == 0:
		level, err := flankMean(spectrum[w.Hi+1 : rightEnd])
		if err != nil {
			return Window{}, err
		}
		core.Fill(gap, level)
	case w.Hi == n-1:
		level, err := flankMean(spectrum[leftStart:w.Lo])
		if err != nil {
			return Window{}, err
		}
		core.Fill(gap, level)
	default:
		f, err := r.fit(spectrum, leftStart, w, rightEnd)
		if err != nil {
			return Window{}, err
		}
		for i := range gap {
			gap[i] = f.At(float64(w.Lo + i))
		}
	}

	if r.AddNoise {
		variance := r.Variance
		if math.IsNaN(variance) {
			est, err := noise.EstimateVariance(work)
			if err != nil {
				return Window{}, fmt.Errorf("despike: noise variance: %w", err)
			}
			variance = est
		}
		rng := r.Rand
		if rng == nil {
			rng = rand.New(rand.NewSource(1))
		}
		if err := noise.Inject(gap, variance, rng); err != nil {
			return Window{}, fmt.Errorf("despike: add noise: %w", err)
		}
	}

	copy(spectrum, work)
	return w, nil
}

// flankMean is the level used to fill a window touching an end of the spectrum.
func flankMean(flank []float64) (float64, error) {
	if len(flank) == 0 {
		return 0, fmt.Errorf("despike: %w: empty flank", interp.ErrTooFewPoints)
	}
	return stat.Mean(flank, nil), nil
}

func (r Repairer) fit(spectrum []float64, leftStart int, w Window, rightEnd int) (interp.Func, error) {
	count := (w.Lo - leftStart) + (rightEnd - w.Hi - 1)
	xs := make([]float64, 0, count)
	ys := make([]float64, 0, count)
	for i := leftStart; i < w.Lo; i++ {
		xs = append(xs, float64(i))
		ys = append(ys, spectrum[i])
	}
	for i := w.Hi + 1; i < rightEnd; i++ {
		xs = append(xs, float64(i))
		ys = append(ys, spectrum[i])
	}

	order := r.SplineOrder
	if r.Kind == interp.KindSpline && order > len(xs)-1 {
		order = len(xs) - 1
	}
	f, err := interp.Fit(r.Kind, order, xs, ys)
	if err != nil {
		return nil, fmt.Errorf("despike: interpolate [%d,%d]: %w", w.Lo, w.Hi, err)
	}
	return f, nil
}
