package vision

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"leafcheck/internal/domain/entity"
)

const overlayAlpha = 0.3

var (
	red    = color.RGBA{R: 255, A: 255}
	green  = color.RGBA{G: 255, A: 255}
	orange = color.RGBA{R: 255, G: 165, A: 255}
	yellow = color.RGBA{R: 255, G: 255, A: 255}
)

var severityColors = map[entity.Severity]color.RGBA{
	entity.SeveritySevere:   red,
	entity.SeverityModerate: orange,
	entity.SeverityMild:     yellow,
	entity.SeverityHealthy:  green,
}

// Highlight накладывает полупрозрачную красную маску симптомов, красные контуры симптомов,
// зелёные контуры областей с подписью состояния и строки статуса.
func Highlight(img image.Image, report *entity.LeafReport) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	if report == nil {
		return dst
	}

	if m := report.SymptomMask; m != nil && m.Width == b.Dx() && m.Height == b.Dy() {
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				if m.At(x, y) {
					dst.SetRGBA(x, y, blend(dst.RGBAAt(x, y), red, overlayAlpha))
				}
			}
		}
		for _, r := range ExtractRegions(m) {
			drawContour(dst, r.Boundary, red, 2)
		}
	}

	for _, f := range report.Regions {
		drawContour(dst, f.Boundary, green, 2)
		drawText(dst, f.Bounds.Min.X, f.Bounds.Min.Y-4, string(f.Condition), red)
	}

	drawText(dst, 10, 20, fmt.Sprintf("Symptom Area: %.2f%%", report.Symptoms.TotalPercentage), red)
	drawText(dst, 10, 40, "Status: "+strings.ToUpper(string(report.Severity)), severityColors[report.Severity])

	return dst
}

func blend(base, over color.RGBA, alpha float64) color.RGBA {
	mix := func(a, b uint8) uint8 {
		return uint8(alpha*float64(b) + (1-alpha)*float64(a) + 0.5)
	}
	return color.RGBA{R: mix(base.R, over.R), G: mix(base.G, over.G), B: mix(base.B, over.B), A: 255}
}

// drawContour обводит контур: каждая точка закрашивается квадратом thickness×thickness.
// Соседние точки контура смежны, поэтому линия получается непрерывной.
func drawContour(dst *image.RGBA, contour []image.Point, c color.RGBA, thickness int) {
	for _, p := range contour {
		dot := image.Rect(p.X, p.Y, p.X+thickness, p.Y+thickness).Intersect(dst.Bounds())
		for y := dot.Min.Y; y < dot.Max.Y; y++ {
			for x := dot.Min.X; x < dot.Max.X; x++ {
				dst.SetRGBA(x, y, c)
			}
		}
	}
}

func drawText(dst *image.RGBA, x, y int, text string, c color.RGBA) {
	if y < basicfont.Face7x13.Ascent {
		y = basicfont.Face7x13.Ascent
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
