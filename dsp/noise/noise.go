package noise

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-spectra/dsp/window"
)

var (
	errInvalidVariance = errors.New("noise: variance must be finite and >= 0")
	errTooShort        = errors.New("noise: spectrum too short for estimate")
)

// MinEstimateLength is the shortest spectrum EstimateVariance accepts.
const MinEstimateLength = 8

// Inject adds zero-mean Gaussian noise with the given variance to dst.
func Inject(dst []float64, variance float64, rng *rand.Rand) error {
	if math.IsNaN(variance) || math.IsInf(variance, 0) || variance < 0 {
		return fmt.Errorf("%w: %v", errInvalidVariance, variance)
	}
	if variance == 0 || len(dst) == 0 {
		return nil
	}

	draws := make([]float64, len(dst))
	for i := range draws {
		draws[i] = rng.NormFloat64()
	}
	scaled := make([]float64, len(dst))
	vecmath.ScaleBlock(scaled, draws, math.Sqrt(variance))
	vecmath.AddBlockInPlace(dst, scaled)
	return nil
}

// EstimateVariance estimates the white-noise variance of spectrum.
//
// The mean is removed, a Hann taper applied and the periodogram computed on a
// zero-padded power-of-two grid. For white noise every bin of the upper half
// band is exponentially distributed around sigma² * sum(w²), so the median
// divided by ln 2 is a robust estimate that ignores a few outlier bins.
func EstimateVariance(spectrum []float64) (float64, error) {
	n := len(spectrum)
	if n < MinEstimateLength {
		return 0, fmt.Errorf("%w: %d < %d", errTooShort, n, MinEstimateLength)
	}

	size := nextPowerOf2(n)
	taper, err := window.Hann(n)
	if err != nil {
		return 0, fmt.Errorf("noise: taper: %w", err)
	}
	mean := stat.Mean(spectrum, nil)
	centered := make([]float64, n)
	for i, v := range spectrum {
		centered[i] = v - mean
	}
	tapered, err := window.ApplyCoefficients(centered, taper)
	if err != nil {
		return 0, fmt.Errorf("noise: taper: %w", err)
	}
	sumW2 := floats.Dot(taper, taper)

	in := make([]complex128, size)
	for i, v := range tapered {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return 0, fmt.Errorf("noise: fft plan: %w", err)
	}
	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return 0, fmt.Errorf("noise: fft: %w", err)
	}

	band := out[size/4 : size/2]
	re := make([]float64, len(band))
	im := make([]float64, len(band))
	for i, c := range band {
		re[i] = real(c)
		im[i] = imag(c)
	}
	power := make([]float64, len(band))
	vecmath.Power(power, re, im)

	sort.Float64s(power)
	median := stat.Quantile(0.5, stat.Empirical, power, nil)
	return median / (sumW2 * math.Ln2), nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
