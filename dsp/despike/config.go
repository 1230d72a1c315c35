package despike

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-spectra/dsp/interp"
	"github.com/cwbudde/algo-spectra/dsp/mask"
)

// Config holds the spike removal parameters. It round-trips through YAML.
type Config struct {
	// Threshold is the first-difference magnitude above which a jump is a spike.
	Threshold float64 `yaml:"threshold"`

	// AutoThreshold derives Threshold from the derivative histogram of the data.
	AutoThreshold bool `yaml:"auto_threshold"`

	// HistogramBins caps the number of bins used by the automatic threshold.
	HistogramBins int `yaml:"histogram_bins"`

	// SpikeWidth is the half-width of the repaired window, in samples.
	SpikeWidth int `yaml:"spike_width"`

	// Interpolator selects how the window is bridged.
	Interpolator interp.Kind `yaml:"interpolator"`

	// SplineOrder is used only by the spline interpolator.
	SplineOrder int `yaml:"spline_order"`

	// AddNoise adds Gaussian noise to repaired windows.
	AddNoise bool `yaml:"add_noise"`

	// NoiseVariance overrides the variance taken from the container metadata.
	NoiseVariance *float64 `yaml:"noise_variance,omitempty"`

	// Seed seeds the noise source when no explicit one is supplied.
	Seed int64 `yaml:"seed"`

	// MaxRepairsPerSpectrum bounds batch repairs per spectrum. Zero means the spectrum length.
	MaxRepairsPerSpectrum int `yaml:"max_repairs_per_spectrum"`
}

// DefaultConfig returns the defaults: automatic threshold, a 5-sample
// half-width, linear interpolation and noise injection enabled.
func DefaultConfig() Config {
	return Config{
		AutoThreshold: true,
		HistogramBins: 1000,
		SpikeWidth:    5,
		Interpolator:  interp.KindLinear,
		SplineOrder:   1,
		AddNoise:      true,
		Seed:          1,
	}
}

// ParseConfig decodes YAML on top of DefaultConfig. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("despike: parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("despike: read config: %w", err)
	}
	return ParseConfig(data)
}

// Marshal encodes cfg as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// settings is Config plus the runtime collaborators that do not serialize.
type settings struct {
	Config
	rng     *rand.Rand
	navMask mask.Input
	sigMask mask.Input
	logger  *slog.Logger
}

// Option configures a Session or a batch Run.
type Option func(*settings)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.Config = cfg
	}
}

// WithThreshold sets a fixed threshold and disables the automatic one.
func WithThreshold(threshold float64) Option {
	return func(s *settings) {
		s.Threshold = threshold
		s.AutoThreshold = false
	}
}

// WithAutoThreshold derives the threshold from the data.
func WithAutoThreshold() Option {
	return func(s *settings) {
		s.AutoThreshold = true
	}
}

// WithSpikeWidth sets the half-width of the repaired window.
func WithSpikeWidth(width int) Option {
	return func(s *settings) {
		s.SpikeWidth = width
	}
}

// WithInterpolator selects the interpolator kind and spline order.
func WithInterpolator(kind interp.Kind, splineOrder int) Option {
	return func(s *settings) {
		s.Interpolator = kind
		s.SplineOrder = splineOrder
	}
}

// WithAddNoise toggles noise injection into repaired windows.
func WithAddNoise(add bool) Option {
	return func(s *settings) {
		s.AddNoise = add
	}
}

// WithNoiseVariance fixes the variance of injected noise.
func WithNoiseVariance(variance float64) Option {
	return func(s *settings) {
		s.NoiseVariance = &variance
	}
}

// WithSeed seeds the noise source.
func WithSeed(seed int64) Option {
	return func(s *settings) {
		s.Seed = seed
		s.rng = nil
	}
}

// WithRand supplies the noise source directly.
func WithRand(rng *rand.Rand) Option {
	return func(s *settings) {
		s.rng = rng
	}
}

// WithNavigationMask excludes navigation positions whose mask element is true.
func WithNavigationMask(m mask.Input) Option {
	return func(s *settings) {
		s.navMask = m
	}
}

// WithSignalMask excludes samples whose mask element is true from detection.
func WithSignalMask(m mask.Input) Option {
	return func(s *settings) {
		s.sigMask = m
	}
}

// WithMaxRepairs bounds batch repairs per spectrum.
func WithMaxRepairs(n int) Option {
	return func(s *settings) {
		s.MaxRepairsPerSpectrum = n
	}
}

// WithLogger sets the structured logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func applyOptions(opts []Option) settings {
	s := settings{Config: DefaultConfig()}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.Seed))
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}
