package vision

import (
	"image"
	"math"

	"leafcheck/internal/domain/entity"
)

// bgrToHSV переводит пиксель в HSV по 8-битной конвенции OpenCV:
// H = градусы/2 в [0,179], S = 255*(max-min)/max, V = max.
func bgrToHSV(p entity.BGR) entity.HSV {
	r, g, b := int(p.R), int(p.G), int(p.B)
	v := max(r, g, b)
	diff := v - min(r, g, b)

	var s int
	if v > 0 {
		s = int(math.Floor(255*float64(diff)/float64(v) + 0.5))
	}

	var h int
	if diff > 0 {
		var num int
		switch v {
		case r:
			num = g - b
		case g:
			num = b - r + 2*diff
		default:
			num = r - g + 4*diff
		}
		h = int(math.Floor(30*float64(num)/float64(diff) + 0.5))
		if h < 0 {
			h += 180
		}
		if h >= 180 {
			h -= 180
		}
	}

	return entity.HSV{H: uint8(h), S: uint8(s), V: uint8(v)}
}

// FrameFromImage переводит изображение в кадр с BGR- и HSV-сетками.
func FrameFromImage(img image.Image) (*entity.Frame, error) {
	bounds := img.Bounds()
	frame, err := entity.NewFrame(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			px := entity.BGR{B: uint8(b >> 8), G: uint8(g >> 8), R: uint8(r >> 8)}
			i := frame.Index(x, y)
			frame.BGR[i] = px
			frame.HSV[i] = bgrToHSV(px)
		}
	}

	return frame, nil
}
