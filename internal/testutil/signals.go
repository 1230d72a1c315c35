package testutil

import (
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-spectra/dsp/signal"
)

// Spike is an outlier placed into a fixture cube.
type Spike struct {
	Nav       []int
	Sample    int
	Amplitude float64
}

// SpikyCube returns a stack of flat spectra of value 1 with navigation shape
// nav and length samples each. Seeded Gaussian noise of standard deviation
// std is added before the spikes. The noise variance metadata is not set.
func SpikyCube(t testing.TB, nav []int, length int, std float64, seed int64, spikes ...Spike) *signal.Signal {
	t.Helper()
	s, err := signal.Full(1, nav, []int{length})
	if err != nil {
		t.Fatalf("spiky cube: %v", err)
	}
	if std > 0 {
		if err := signal.NewGenerator(signal.WithSeed(seed)).AddGaussianNoise(s, std); err != nil {
			t.Fatalf("spiky cube noise: %v", err)
		}
	}
	for _, sp := range spikes {
		if err := signal.AddSpike(s, sp.Nav, sp.Sample, sp.Amplitude); err != nil {
			t.Fatalf("spiky cube spike %v: %v", sp, err)
		}
	}
	return s
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates an impulse of the given height at pos on a zero baseline.
func Impulse(length, pos int, height float64) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = height
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}
