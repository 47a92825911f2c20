package vision

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"leafcheck/internal/domain/entity"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func findByArea(t *testing.T, features []entity.RegionFeature, area int) entity.RegionFeature {
	t.Helper()
	for _, f := range features {
		if f.Area == area {
			return f
		}
	}
	t.Fatalf("no region with area %d", area)
	return entity.RegionFeature{}
}

func TestAnalyzer_Analyze(t *testing.T) {
	frame, err := FrameFromImage(sceneImage())
	require.NoError(t, err)

	a := NewAnalyzer(entity.DefaultThresholds(), DefaultKernelSize, 0)
	report, err := a.Analyze(context.Background(), frame)
	require.NoError(t, err)

	require.Equal(t, 40, report.ImageWidth)
	require.Equal(t, 40, report.ImageHeight)

	require.Len(t, report.Regions, 2)
	leaf := findByArea(t, report.Regions, 400)
	require.Equal(t, entity.ConditionFresh, leaf.Condition)
	require.Equal(t, image.Rect(5, 5, 25, 25), leaf.Bounds)
	spot := findByArea(t, report.Regions, 64)
	require.Equal(t, entity.ConditionUnknown, spot.Condition)

	require.InDelta(t, 2.25, report.Symptoms.BrownPercentage, 1e-9)
	require.InDelta(t, 4.0, report.Symptoms.YellowPercentage, 1e-9)
	require.InDelta(t, 6.25, report.Symptoms.TotalPercentage, 1e-9)
	require.Equal(t, entity.SymptomYellow, report.Symptoms.Dominant)
	require.Equal(t, entity.SeverityModerate, report.Severity)
	require.InDelta(t, 25.0, report.LeafCoverage, 1e-9)
	require.True(t, report.HasSymptoms)
	require.Equal(t, 100, report.SymptomMask.Count())
}

func TestAnalyzer_EmptyScene(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	paint(img, img.Bounds(), background)
	frame, err := FrameFromImage(img)
	require.NoError(t, err)

	report, err := NewAnalyzer(entity.DefaultThresholds(), 0, 0).Analyze(context.Background(), frame)
	require.NoError(t, err)
	require.Empty(t, report.Regions)
	require.Zero(t, report.Symptoms.TotalPercentage)
	require.Equal(t, entity.SymptomMixed, report.Symptoms.Dominant)
	require.Equal(t, entity.SeverityHealthy, report.Severity)
	require.False(t, report.HasSymptoms)
}

func TestAnalyzer_MinRegionArea(t *testing.T) {
	frame, err := FrameFromImage(sceneImage())
	require.NoError(t, err)

	a := NewAnalyzer(entity.DefaultThresholds(), DefaultKernelSize, 0)
	a.MinRegionArea = 100
	features, err := a.ClassifyRegions(frame)
	require.NoError(t, err)
	require.Len(t, features, 1)
	require.Equal(t, 400, features[0].Area)
}

func TestAnalyzer_Errors(t *testing.T) {
	a := NewAnalyzer(entity.DefaultThresholds(), DefaultKernelSize, 0)

	_, err := a.Analyze(context.Background(), nil)
	require.ErrorIs(t, err, entity.ErrInvalidDimensions)

	_, err = a.Inspect(context.Background(), []byte("not an image"))
	require.ErrorIs(t, err, entity.ErrLoadFailure)

	frame, err := FrameFromImage(sceneImage())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.Analyze(ctx, frame)
	require.ErrorIs(t, err, context.Canceled)

	a.KernelSize = 4
	_, err = a.Analyze(context.Background(), frame)
	require.ErrorIs(t, err, entity.ErrInvalidKernel)
}

func TestAnalyzer_InspectBytes(t *testing.T) {
	data := encodePNG(t, sceneImage())

	report, err := NewAnalyzer(entity.DefaultThresholds(), DefaultKernelSize, 0).Inspect(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, report.Regions, 2)
	require.Equal(t, entity.SeverityModerate, report.Severity)

	small, err := NewAnalyzer(entity.DefaultThresholds(), DefaultKernelSize, 20).Inspect(context.Background(), data)
	require.NoError(t, err)
	require.Equal(t, 20, small.ImageWidth)
	require.Equal(t, 20, small.ImageHeight)
}

func TestAnalyzer_HighlightSymptoms(t *testing.T) {
	data := encodePNG(t, sceneImage())
	a := NewAnalyzer(entity.DefaultThresholds(), DefaultKernelSize, 0)

	report, err := a.Inspect(context.Background(), data)
	require.NoError(t, err)

	out, err := a.HighlightSymptoms(data, report)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 40, img.Bounds().Dx())
	require.Equal(t, 40, img.Bounds().Dy())
}

func TestBlend(t *testing.T) {
	got := blend(color.RGBA{R: 111, G: 70, B: 40, A: 255}, red, overlayAlpha)
	require.Equal(t, uint8(154), got.R)
	require.Equal(t, uint8(49), got.G)
	require.Equal(t, uint8(28), got.B)
	require.Equal(t, uint8(255), got.A)
}
