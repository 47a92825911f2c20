package vision

import (
	"gonum.org/v1/gonum/stat"

	"leafcheck/internal/domain/entity"
)

// ExtractFeatures считает средние HSV и BGR по залитому внешнему контуру каждой области
// (дыры вроде тёмных пятен внутри листа учитываются) и классифицирует её состояние.
// Пустой список областей даёт пустой список признаков.
func ExtractFeatures(frame *entity.Frame, regions []entity.Region) []entity.RegionFeature {
	features := make([]entity.RegionFeature, 0, len(regions))

	for _, r := range regions {
		pixels := r.Interior
		if pixels == nil {
			pixels = r.Pixels
		}
		n := len(pixels)
		if n == 0 {
			continue
		}

		var ch [6][]float64
		for c := range ch {
			ch[c] = make([]float64, 0, n)
		}
		for _, p := range pixels {
			i := frame.Index(p.X, p.Y)
			hsv, bgr := frame.HSV[i], frame.BGR[i]
			ch[0] = append(ch[0], float64(hsv.H))
			ch[1] = append(ch[1], float64(hsv.S))
			ch[2] = append(ch[2], float64(hsv.V))
			ch[3] = append(ch[3], float64(bgr.B))
			ch[4] = append(ch[4], float64(bgr.G))
			ch[5] = append(ch[5], float64(bgr.R))
		}

		f := entity.RegionFeature{
			MeanHue:        stat.Mean(ch[0], nil),
			MeanSaturation: stat.Mean(ch[1], nil),
			MeanValue:      stat.Mean(ch[2], nil),
			MeanBlue:       stat.Mean(ch[3], nil),
			MeanGreen:      stat.Mean(ch[4], nil),
			MeanRed:        stat.Mean(ch[5], nil),
			Area:           n,
			Bounds:         r.Bounds,
			Boundary:       r.Boundary,
		}
		f.Condition = entity.ClassifyCondition(f.MeanHue, f.MeanSaturation, f.MeanValue)
		features = append(features, f)
	}

	return features
}
