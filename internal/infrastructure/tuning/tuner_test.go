package tuning

import (
	"testing"

	"github.com/stretchr/testify/require"

	"leafcheck/internal/domain/entity"
)

func TestParseEvent(t *testing.T) {
	e, err := ParseEvent("HMin=12")
	require.NoError(t, err)
	require.Equal(t, Event{Slider: "hmin", Value: 12}, e)

	_, err = ParseEvent("hmin")
	require.Error(t, err)

	_, err = ParseEvent("hmin=abc")
	require.Error(t, err)
}

func TestTuner_ApplyAndReset(t *testing.T) {
	brown := entity.DefaultThresholds().Brown
	tuner := NewTuner(brown)
	require.Equal(t, brown, tuner.Threshold())

	require.NoError(t, tuner.Apply(Event{Slider: "hmin", Value: 12}))
	require.NoError(t, tuner.Apply(Event{Slider: "vmax", Value: 200}))

	got := tuner.Threshold()
	require.Equal(t, entity.PresetBrown, got.Name)
	require.Equal(t, entity.HSVBound{H: 12, S: 60, V: 20}, got.Lower)
	require.Equal(t, entity.HSVBound{H: 20, S: 180, V: 200}, got.Upper)

	tuner.Reset()
	require.Equal(t, brown, tuner.Threshold())
}

func TestTuner_Clamps(t *testing.T) {
	tuner := NewTuner(entity.DefaultThresholds().Yellow)

	require.NoError(t, tuner.Apply(Event{Slider: "hmax", Value: 400}))
	require.NoError(t, tuner.Apply(Event{Slider: "smin", Value: -5}))
	require.NoError(t, tuner.Apply(Event{Slider: "vmin", Value: 300}))

	require.Equal(t, 179, tuner.HMax)
	require.Equal(t, 0, tuner.SMin)
	require.Equal(t, 255, tuner.VMin)
}

func TestTuner_UnknownSlider(t *testing.T) {
	tuner := NewTuner(entity.DefaultThresholds().Brown)

	err := tuner.Apply(Event{Slider: "hue", Value: 1})
	require.ErrorIs(t, err, ErrUnknownSlider)
	require.Equal(t, entity.DefaultThresholds().Brown, tuner.Threshold())
}
