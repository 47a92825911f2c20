package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"leafcheck/internal/domain/entity"
)

// Цвета тестовой сцены и их HSV в конвенции OpenCV.
var (
	leafGreen  = color.RGBA{R: 32, G: 150, B: 32, A: 255}  // (60, 201, 150)
	brownSpot  = color.RGBA{R: 110, G: 70, B: 40, A: 255}  // (13, 162, 110)
	yellowSpot = color.RGBA{R: 220, G: 200, B: 40, A: 255} // (27, 209, 220)
	background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func newTestMask(t *testing.T, w, h int) *entity.Mask {
	t.Helper()
	m, err := entity.NewMask(w, h)
	require.NoError(t, err)
	return m
}

func fillRect(m *entity.Mask, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.Set(x, y, true)
		}
	}
}

func paint(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// sceneImage 40x40: лист 20x20, жёлтое пятно 8x8 и бурое пятно 6x6 на белом фоне.
func sceneImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	paint(img, img.Bounds(), background)
	paint(img, image.Rect(5, 5, 25, 25), leafGreen)
	paint(img, image.Rect(30, 2, 38, 10), yellowSpot)
	paint(img, image.Rect(30, 30, 36, 36), brownSpot)
	return img
}

func hsvFrame(t *testing.T, pixels []entity.HSV) *entity.Frame {
	t.Helper()
	f, err := entity.NewFrame(len(pixels), 1)
	require.NoError(t, err)
	copy(f.HSV, pixels)
	return f
}
