package despike_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-spectra/dsp/despike"
	"github.com/cwbudde/algo-spectra/dsp/interp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := despike.DefaultConfig()
	require.True(t, cfg.AutoThreshold)
	require.Equal(t, 5, cfg.SpikeWidth)
	require.Equal(t, interp.KindLinear, cfg.Interpolator)
	require.True(t, cfg.AddNoise)
	require.Nil(t, cfg.NoiseVariance)
}

func TestParseConfig(t *testing.T) {
	cfg, err := despike.ParseConfig([]byte(`
threshold: 0.8
auto_threshold: false
interpolator: Spline
spline_order: 3
noise_variance: 0.01
`))
	require.NoError(t, err)
	require.Equal(t, 0.8, cfg.Threshold)
	require.False(t, cfg.AutoThreshold)
	require.Equal(t, interp.KindSpline, cfg.Interpolator)
	require.Equal(t, 3, cfg.SplineOrder)
	require.NotNil(t, cfg.NoiseVariance)
	require.Equal(t, 0.01, *cfg.NoiseVariance)

	// Unset keys keep their defaults.
	require.Equal(t, 5, cfg.SpikeWidth)
	require.True(t, cfg.AddNoise)
	require.Equal(t, int64(1), cfg.Seed)
}

func TestParseConfigRejectsBadInput(t *testing.T) {
	_, err := despike.ParseConfig([]byte("spike_widht: 3\n"))
	require.Error(t, err)

	_, err = despike.ParseConfig([]byte("interpolator: cubic\n"))
	require.Error(t, err)
}

func TestConfigRoundTrip(t *testing.T) {
	v := 2.5
	cfg := despike.DefaultConfig()
	cfg.Threshold = 3
	cfg.AutoThreshold = false
	cfg.Interpolator = interp.KindNearest
	cfg.NoiseVariance = &v
	cfg.MaxRepairsPerSpectrum = 4

	data, err := cfg.Marshal()
	require.NoError(t, err)
	require.Contains(t, string(data), "interpolator: nearest")

	got, err := despike.ParseConfig(data)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "despike.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threshold: 1.5\nauto_threshold: false\nadd_noise: false\n"), 0o600))

	cfg, err := despike.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 1.5, cfg.Threshold)
	require.False(t, cfg.AddNoise)

	s := spikyCube(t, 1e-7)
	sess, err := despike.NewSession(s, despike.WithConfig(cfg))
	require.NoError(t, err)
	require.Equal(t, 1.5, sess.Threshold())

	found, err := sess.Find(despike.Forward)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []int{1, 0}, s.Indices())

	_, err = despike.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
