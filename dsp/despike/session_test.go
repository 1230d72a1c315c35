package despike_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-spectra/dsp/despike"
	"github.com/cwbudde/algo-spectra/dsp/interp"
	"github.com/cwbudde/algo-spectra/dsp/mask"
	"github.com/cwbudde/algo-spectra/dsp/signal"
	"github.com/cwbudde/algo-spectra/internal/testutil"
)

// spikyCube is a 2x3 stack of flat 30-sample spectra with three spikes:
// a large one at the start of (1,0), one at the end of (0,2) and one in the
// middle of (1,2).
func spikyCube(t *testing.T, std float64) *signal.Signal {
	t.Helper()
	return testutil.SpikyCube(t, []int{2, 3}, 30, std, 3,
		testutil.Spike{Nav: []int{1, 0}, Sample: 1, Amplitude: 2},
		testutil.Spike{Nav: []int{0, 2}, Sample: 29, Amplitude: 1},
		testutil.Spike{Nav: []int{1, 2}, Sample: 14, Amplitude: 1},
	)
}

func sample(t *testing.T, s *signal.Signal, nav []int, i int) float64 {
	t.Helper()
	spectrum, err := s.At(nav)
	require.NoError(t, err)
	return spectrum[i]
}

func spectrumCopy(t *testing.T, s *signal.Signal, nav []int) []float64 {
	t.Helper()
	spectrum, err := s.At(nav)
	require.NoError(t, err)
	return slices.Clone(spectrum)
}

func requireSpikeAt(t *testing.T, sess *despike.Session, s *signal.Signal, nav []int, location int) {
	t.Helper()
	require.Equal(t, despike.SpikeFound, sess.State())
	require.Equal(t, nav, s.Indices())
	spike, ok := sess.Spike()
	require.True(t, ok)
	require.Equal(t, location, spike.Location)
}

func TestSessionInteractiveWorkflow(t *testing.T) {
	s := spikyCube(t, 1e-5)
	sess, err := despike.NewSession(s, despike.WithThreshold(1.5), despike.WithAddNoise(false))
	require.NoError(t, err)
	require.Equal(t, despike.Idle, sess.State())
	_, ok := sess.Spike()
	require.False(t, ok)

	// Only the large spike exceeds 1.5.
	found, err := sess.Find(despike.Forward)
	require.NoError(t, err)
	require.True(t, found)
	requireSpikeAt(t, sess, s, []int{1, 0}, 1)

	// Lowering the threshold does not move the index.
	require.NoError(t, sess.SetThreshold(0.5))
	require.Equal(t, []int{1, 0}, s.Indices())

	found, err = sess.Find(despike.Forward)
	require.NoError(t, err)
	require.True(t, found)
	requireSpikeAt(t, sess, s, []int{1, 2}, 14)

	// Wraps around to the first row.
	found, err = sess.Find(despike.Forward)
	require.NoError(t, err)
	require.True(t, found)
	requireSpikeAt(t, sess, s, []int{0, 2}, 29)

	found, err = sess.Find(despike.Backward)
	require.NoError(t, err)
	require.True(t, found)
	requireSpikeAt(t, sess, s, []int{1, 2}, 14)

	sess.SetInterpolator(interp.KindSpline)
	sess.SetSplineOrder(3)
	sess.SetSpikeWidth(3)
	found, err = sess.Apply()
	require.NoError(t, err)
	require.True(t, found)
	// The least-squares fit averages the flank noise instead of amplifying it.
	require.InDelta(t, 1, sample(t, s, []int{1, 2}, 14), 5e-5)
	requireSpikeAt(t, sess, s, []int{0, 2}, 29)

	before := spectrumCopy(t, s, []int{0, 2})
	sess.SetInterpolator(interp.KindLinear)
	sess.SetSpikeWidth(5)
	found, err = sess.Apply()
	require.NoError(t, err)
	require.True(t, found)
	require.InDelta(t, before[23], sample(t, s, []int{0, 2}, 29), 1e-12)
	require.InDelta(t, 1, sample(t, s, []int{0, 2}, 29), 1e-4)
	requireSpikeAt(t, sess, s, []int{1, 0}, 1)

	sess.SetAddNoise(true)
	found, err = sess.Apply()
	require.NoError(t, err)
	require.False(t, found)
	testutil.RequireAlmostEqual(t, sample(t, s, []int{1, 0}, 1), 1, 3)
	require.Equal(t, despike.NoSpike, sess.State())
	require.Equal(t, []int{1, 0}, s.Indices())

	_, err = sess.Apply()
	require.ErrorIs(t, err, despike.ErrNoSpikeSelected)
}

func TestSessionRaisingThresholdSkipsSpikes(t *testing.T) {
	s := spikyCube(t, 1e-5)
	sess, err := despike.NewSession(s, despike.WithThreshold(0.5))
	require.NoError(t, err)

	found, err := sess.Find(despike.Forward)
	require.NoError(t, err)
	require.True(t, found)
	requireSpikeAt(t, sess, s, []int{0, 2}, 29)

	require.NoError(t, sess.SetThreshold(1.5))
	found, err = sess.Find(despike.Forward)
	require.NoError(t, err)
	require.True(t, found)
	requireSpikeAt(t, sess, s, []int{1, 0}, 1)

	require.NoError(t, sess.SetThreshold(5))
	found, err = sess.Find(despike.Backward)
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, despike.NoSpike, sess.State())
	require.Equal(t, []int{1, 0}, s.Indices())
}

func TestSessionApplyBeforeFind(t *testing.T) {
	s := spikyCube(t, 0)
	before := append([]float64(nil), s.Data()...)

	sess, err := despike.NewSession(s, despike.WithThreshold(0.5))
	require.NoError(t, err)
	_, err = sess.Apply()
	require.ErrorIs(t, err, despike.ErrNoSpikeSelected)
	require.Equal(t, before, s.Data())
	require.Equal(t, despike.Idle, sess.State())
}

func TestSessionApplyValidatesLazily(t *testing.T) {
	s := spikyCube(t, 0)
	sess, err := despike.NewSession(s, despike.WithThreshold(0.5), despike.WithAddNoise(false))
	require.NoError(t, err)

	// Invalid settings are accepted until Apply.
	sess.SetInterpolator(interp.Kind(9))
	found, err := sess.Find(despike.Forward)
	require.NoError(t, err)
	require.True(t, found)
	before := append([]float64(nil), s.Data()...)

	_, err = sess.Apply()
	require.ErrorIs(t, err, interp.ErrUnknownKind)
	require.Equal(t, before, s.Data())
	require.Equal(t, despike.SpikeFound, sess.State())

	sess.SetInterpolator(interp.KindSpline)
	sess.SetSplineOrder(0)
	_, err = sess.Apply()
	require.ErrorIs(t, err, interp.ErrInvalidOrder)

	sess.SetSplineOrder(2)
	sess.SetSpikeWidth(0)
	_, err = sess.Apply()
	require.ErrorIs(t, err, despike.ErrInvalidWidth)

	sess.SetSpikeWidth(2)
	_, err = sess.Apply()
	require.NoError(t, err)
	require.Equal(t, []int{1, 0}, s.Indices())
}

func TestSessionMasks(t *testing.T) {
	s := spikyCube(t, 1e-5)
	nav := mask.NewArray(2, 3)
	nav.Set(true, 1, 0)
	sig := mask.NewArray(30)
	sig.Set(true, 28)
	sig.Set(true, 29)

	sess, err := despike.NewSession(s,
		despike.WithThreshold(0.5),
		despike.WithNavigationMask(nav),
		despike.WithSignalMask(sig))
	require.NoError(t, err)

	for range 3 {
		found, err := sess.Find(despike.Forward)
		require.NoError(t, err)
		require.True(t, found)
		requireSpikeAt(t, sess, s, []int{1, 2}, 14)
	}
}

func TestSessionAutoThreshold(t *testing.T) {
	s := spikyCube(t, 1e-5)
	h, err := despike.Diagnose(s)
	require.NoError(t, err)

	sess, err := despike.NewSession(s)
	require.NoError(t, err)
	require.Equal(t, h.Threshold(), sess.Threshold())
	require.True(t, sess.Config().AutoThreshold)

	found, err := sess.Find(despike.Forward)
	require.NoError(t, err)
	require.True(t, found)
	requireSpikeAt(t, sess, s, []int{0, 2}, 29)
}

func TestNewSessionErrors(t *testing.T) {
	s := spikyCube(t, 0)

	_, err := despike.NewSession(s, despike.WithThreshold(0))
	require.ErrorIs(t, err, despike.ErrInvalidThreshold)

	_, err = despike.NewSession(s, despike.WithNavigationMask(mask.NewArray(3, 2)))
	require.ErrorIs(t, err, mask.ErrShapeMismatch)

	_, err = despike.NewSession(s, despike.WithSignalMask(mask.NewArray(29)))
	require.ErrorIs(t, err, mask.ErrShapeMismatch)

	image, err := signal.New(make([]float64, 2*3*4), []int{2}, []int{3, 4})
	require.NoError(t, err)
	_, err = despike.NewSession(image, despike.WithThreshold(1))
	require.ErrorIs(t, err, despike.ErrNotSignal1D)

	sess, err := despike.NewSession(s, despike.WithThreshold(1))
	require.NoError(t, err)
	require.ErrorIs(t, sess.SetThreshold(-1), despike.ErrInvalidThreshold)
	require.Equal(t, 1.0, sess.Threshold())
}

func TestSessionConfig(t *testing.T) {
	s := spikyCube(t, 0)
	sess, err := despike.NewSession(s,
		despike.WithThreshold(0.7),
		despike.WithSpikeWidth(4),
		despike.WithInterpolator(interp.KindSpline, 2),
		despike.WithNoiseVariance(0.25))
	require.NoError(t, err)

	sess.SetAddNoise(false)
	cfg := sess.Config()
	require.Equal(t, 0.7, cfg.Threshold)
	require.False(t, cfg.AutoThreshold)
	require.Equal(t, 4, cfg.SpikeWidth)
	require.Equal(t, interp.KindSpline, cfg.Interpolator)
	require.Equal(t, 2, cfg.SplineOrder)
	require.False(t, cfg.AddNoise)
	require.NotNil(t, cfg.NoiseVariance)
	require.Equal(t, 0.25, *cfg.NoiseVariance)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "idle", despike.Idle.String())
	require.Equal(t, "spike found", despike.SpikeFound.String())
	require.Equal(t, "no spike", despike.NoSpike.String())
	require.Equal(t, "unknown", despike.State(7).String())
}
