package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMask_InvalidDimensions(t *testing.T) {
	_, err := NewMask(0, 10)
	require.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewFrame(10, -1)
	require.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestMaskPercentageAndOr(t *testing.T) {
	a, err := NewMask(10, 10)
	require.NoError(t, err)
	b, err := NewMask(10, 10)
	require.NoError(t, err)

	a.Set(0, 0, true)
	a.Set(1, 0, true)
	b.Set(1, 0, true)
	b.Set(9, 9, true)

	or, err := a.Or(b)
	require.NoError(t, err)
	require.Equal(t, 3, or.Count())
	require.InDelta(t, 3.0, or.Percentage(), 1e-9)
	require.Equal(t, 2, a.Count(), "inputs are not mutated")

	c, err := NewMask(5, 5)
	require.NoError(t, err)
	_, err = a.Or(c)
	require.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestMaskAtOutOfBounds(t *testing.T) {
	m, err := NewMask(3, 3)
	require.NoError(t, err)
	m.Set(2, 2, true)

	require.True(t, m.At(2, 2))
	require.False(t, m.At(3, 2))
	require.False(t, m.At(-1, 0))

	clone := m.Clone()
	require.True(t, clone.Equal(m))
	clone.Set(0, 0, true)
	require.False(t, clone.Equal(m))
}

func TestMaskGrayRoundTrip(t *testing.T) {
	m, err := NewMask(4, 3)
	require.NoError(t, err)
	m.Set(0, 0, true)
	m.Set(3, 2, true)

	img := m.Gray()
	require.Equal(t, uint8(255), img.GrayAt(0, 0).Y)
	require.Equal(t, uint8(0), img.GrayAt(1, 0).Y)
	require.Equal(t, uint8(255), img.GrayAt(3, 2).Y)

	back, err := MaskFromGray(img)
	require.NoError(t, err)
	require.True(t, m.Equal(back))
}
