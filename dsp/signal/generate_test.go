package signal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddGaussianNoiseDeterministic(t *testing.T) {
	a, err := Full(1, []int{2}, []int{16})
	require.NoError(t, err)
	b, err := Full(1, []int{2}, []int{16})
	require.NoError(t, err)

	require.NoError(t, NewGenerator(WithSeed(42)).AddGaussianNoise(a, 1e-3))
	require.NoError(t, NewGenerator(WithSeed(42)).AddGaussianNoise(b, 1e-3))
	require.Equal(t, a.Data(), b.Data())

	_, ok := a.NoiseVariance()
	require.False(t, ok, "noise metadata must stay unset")
}

func TestAddGaussianNoiseDifferentSeeds(t *testing.T) {
	a, _ := Full(0, nil, []int{16})
	b, _ := Full(0, nil, []int{16})

	require.NoError(t, NewGenerator(WithSeed(1)).AddGaussianNoise(a, 1))
	require.NoError(t, NewGenerator(WithSeed(2)).AddGaussianNoise(b, 1))
	require.NotEqual(t, a.Data(), b.Data())
}

func TestAddGaussianNoiseRejectsNegativeStd(t *testing.T) {
	s, _ := Full(0, nil, []int{4})
	require.Error(t, NewGenerator().AddGaussianNoise(s, -1))
}

func TestGeneratorDefaultSeed(t *testing.T) {
	require.Equal(t, int64(1), NewGenerator().Seed())
	require.Equal(t, int64(7), NewGenerator(WithSeed(7)).Seed())
}

func TestAddSpike(t *testing.T) {
	s, err := Full(1, []int{2, 3}, []int{30})
	require.NoError(t, err)

	require.NoError(t, AddSpike(s, []int{1, 0}, 1, 2))
	off, err := s.Flat(1, 0, 1)
	require.NoError(t, err)
	require.Equal(t, 3.0, s.Data()[off])

	require.ErrorIs(t, AddSpike(s, []int{2, 0}, 1, 2), ErrIndex)
	require.ErrorIs(t, AddSpike(s, []int{0, 0}, 30, 2), ErrIndex)
}
