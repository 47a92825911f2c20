package main

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"leafcheck/config"
	"leafcheck/internal/domain/entity"
	"leafcheck/internal/infrastructure/tuning"
	"leafcheck/internal/infrastructure/vision"
)

// leafImage зелёный квадрат 20x20 с бурым пятном 6x6 на белом фоне.
func leafImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			c := color.RGBA{R: 255, G: 255, B: 255, A: 255}
			switch {
			case x >= 5 && x < 25 && y >= 5 && y < 25:
				c = color.RGBA{R: 32, G: 150, B: 32, A: 255}
			case x >= 30 && x < 36 && y >= 30 && y < 36:
				c = color.RGBA{R: 110, G: 70, B: 40, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestSliderFlags(t *testing.T) {
	var s sliderFlags
	require.NoError(t, s.Set("hmin=12"))
	require.NoError(t, s.Set("vmax=200"))
	require.Error(t, s.Set("oops"))
	require.Equal(t, "hmin=12,vmax=200", s.String())
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	img := leafImage()

	frame, err := vision.FrameFromImage(img)
	require.NoError(t, err)
	report, err := vision.NewAnalyzer(entity.DefaultThresholds(), 5, 0).Analyze(context.Background(), frame)
	require.NoError(t, err)

	require.NoError(t, writeArtifacts(dir, img, report))

	data, err := os.ReadFile(filepath.Join(dir, "leaf_conditions.json"))
	require.NoError(t, err)
	var regions []map[string]any
	require.NoError(t, json.Unmarshal(data, &regions))
	require.Len(t, regions, 1)
	require.Equal(t, "fresh", regions[0]["condition"])
	require.Contains(t, regions[0], "mean_hue")

	require.FileExists(t, filepath.Join(dir, "symptom_mask.png"))
	require.FileExists(t, filepath.Join(dir, "detection_result.jpg"))
}

func TestTune(t *testing.T) {
	dir := t.TempDir()
	frame, err := vision.FrameFromImage(leafImage())
	require.NoError(t, err)

	cfg := &config.Config{
		Thresholds:     entity.DefaultThresholds(),
		ThresholdsFile: filepath.Join(dir, "thresholds.env"),
	}
	analyzer := vision.NewAnalyzer(cfg.Thresholds, 5, 0)
	notes := filepath.Join(dir, "notes.txt")
	sliders := []tuning.Event{{Slider: "hmin", Value: 12}, {Slider: "vmax", Value: 200}}

	require.NoError(t, tune(cfg, analyzer, frame, "leaf.png", dir, notes, entity.PresetBrown, sliders, true))

	require.FileExists(t, filepath.Join(dir, "brown_mask.png"))
	text, err := os.ReadFile(notes)
	require.NoError(t, err)
	require.Contains(t, string(text), "Lower Bound: (12, 60, 20)")
	require.Contains(t, string(text), "Upper Bound: (20, 180, 200)")

	saved, err := config.LoadThresholds(cfg.ThresholdsFile)
	require.NoError(t, err)
	require.Equal(t, entity.HSVBound{H: 12, S: 60, V: 20}, saved.Brown.Lower)
	require.Equal(t, entity.DefaultThresholds().Yellow, saved.Yellow)
}

func TestTune_UnknownPreset(t *testing.T) {
	frame, err := vision.FrameFromImage(leafImage())
	require.NoError(t, err)
	cfg := &config.Config{Thresholds: entity.DefaultThresholds()}

	err = tune(cfg, vision.NewAnalyzer(cfg.Thresholds, 5, 0), frame, "leaf.png", t.TempDir(), filepath.Join(t.TempDir(), "n.txt"), "purple", nil, false)
	require.Error(t, err)
}
