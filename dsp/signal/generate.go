package signal

import (
	"fmt"
	"math/rand"
)

// Generator adds deterministic synthetic content to signals.
type Generator struct {
	seed int64
	rng  *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	g.rng = rand.New(rand.NewSource(g.seed))
	return g
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// AddGaussianNoise adds zero-mean Gaussian noise with standard deviation std
// to every sample of s. The noise variance metadata is left untouched.
func (g *Generator) AddGaussianNoise(s *Signal, std float64) error {
	if std < 0 {
		return fmt.Errorf("noise standard deviation must be >= 0: %f", std)
	}
	for i := range s.data {
		s.data[i] += g.rng.NormFloat64() * std
	}
	return nil
}

// AddSpike adds amplitude to one sample of the spectrum at navigation index nav.
func AddSpike(s *Signal, nav []int, sample int, amplitude float64) error {
	spectrum, err := s.At(nav)
	if err != nil {
		return err
	}
	if sample < 0 || sample >= len(spectrum) {
		return fmt.Errorf("%w: sample %d not in [0,%d)", ErrIndex, sample, len(spectrum))
	}
	spectrum[sample] += amplitude
	return nil
}
