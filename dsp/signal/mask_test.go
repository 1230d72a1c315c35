package signal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMaskAndSet(t *testing.T) {
	m, err := NewMask([]int{2, 3}, nil)
	require.NoError(t, err)
	require.Equal(t, 6, m.Len())

	require.NoError(t, m.Set(true, 1, 0))
	require.True(t, m.At(3))
	require.ErrorIs(t, m.Set(true, 2, 0), ErrIndex)

	_, err = NewMask([]int{-1}, nil)
	require.ErrorIs(t, err, ErrShape)
}

func TestMaskTransposeAndCrop(t *testing.T) {
	m, _ := NewMask([]int{2}, []int{3})
	require.NoError(t, m.Set(true, 0, 2))

	tr := m.Transpose()
	require.Equal(t, []int{3}, tr.NavigationShape())
	require.Equal(t, []int{2}, tr.SignalShape())
	require.True(t, tr.At(2*2+0))

	c, err := m.CropSignal(0, 1, 3)
	require.NoError(t, err)
	require.Equal(t, []int{2}, c.SignalShape())
	require.Equal(t, []bool{false, true, false, false}, c.Data())

	c, err = m.CropNavigation(0, 1, 2)
	require.NoError(t, err)
	require.Equal(t, []int{1}, c.NavigationShape())
}
