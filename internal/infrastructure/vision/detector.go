//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"strings"

	"gocv.io/x/gocv"

	"leafcheck/internal/domain/entity"
	"leafcheck/internal/domain/port"
)

// GoCVEnabled сообщает, собран ли бинарник с OpenCV.
const GoCVEnabled = true

// GoCVInspector тот же конвейер, что и Analyzer, но на OpenCV.
type GoCVInspector struct {
	Thresholds    entity.ThresholdSet
	KernelSize    int
	MaxSide       int
	MinRegionArea int
}

// NewGoCVInspector создаёт инспектор на OpenCV.
func NewGoCVInspector(thresholds entity.ThresholdSet, kernelSize, maxSide int) *GoCVInspector {
	if kernelSize == 0 {
		kernelSize = DefaultKernelSize
	}
	return &GoCVInspector{
		Thresholds: thresholds,
		KernelSize: kernelSize,
		MaxSide:    maxSide,
	}
}

// Inspect запускает анализ изображения и возвращает отчёт.
func (d *GoCVInspector) Inspect(ctx context.Context, imageData []byte) (*entity.LeafReport, error) {
	if err := validateKernel(d.KernelSize); err != nil {
		return nil, err
	}

	mat, err := d.decode(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(mat, &hsv, gocv.ColorBGRToHSV)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(d.KernelSize, d.KernelSize))
	defer kernel.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Области листа и их средний цвет.
	foliage := cleanedMask(hsv, kernel, d.Thresholds.Foliage)
	defer foliage.Close()

	contours := gocv.FindContours(foliage, gocv.RetrievalExternal, gocv.ChainApproxNone)
	defer contours.Close()

	features := make([]entity.RegionFeature, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		region := gocv.Zeros(mat.Rows(), mat.Cols(), gocv.MatTypeCV8U)
		gocv.DrawContours(&region, contours, i, color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)
		area := gocv.CountNonZero(region)
		if area == 0 || area < d.MinRegionArea {
			region.Close()
			continue
		}

		meanHSV := hsv.MeanWithMask(region)
		meanBGR := mat.MeanWithMask(region)
		region.Close()

		f := entity.RegionFeature{
			MeanHue:        meanHSV.Val1,
			MeanSaturation: meanHSV.Val2,
			MeanValue:      meanHSV.Val3,
			MeanBlue:       meanBGR.Val1,
			MeanGreen:      meanBGR.Val2,
			MeanRed:        meanBGR.Val3,
			Area:           area,
			Bounds:         gocv.BoundingRect(contours.At(i)),
			Boundary:       contours.At(i).ToPoints(),
		}
		f.Condition = entity.ClassifyCondition(f.MeanHue, f.MeanSaturation, f.MeanValue)
		features = append(features, f)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Симптомы: отдельные маски для долей и объединённая для общей площади.
	brown := cleanedMask(hsv, kernel, d.Thresholds.Brown)
	defer brown.Close()
	yellow := cleanedMask(hsv, kernel, d.Thresholds.Yellow)
	defer yellow.Close()
	combined := cleanedMask(hsv, kernel, d.Thresholds.Brown, d.Thresholds.Yellow)
	defer combined.Close()
	leaf := cleanedMask(hsv, kernel, d.Thresholds.LeafGreen)
	defer leaf.Close()

	brownPct, yellowPct := percentOfMask(brown), percentOfMask(yellow)
	total := percentOfMask(combined)

	symptomMask, err := matToMask(combined)
	if err != nil {
		return nil, err
	}

	return &entity.LeafReport{
		ImageWidth:  mat.Cols(),
		ImageHeight: mat.Rows(),
		Regions:     features,
		Symptoms: entity.SymptomSummary{
			BrownPercentage:  brownPct,
			YellowPercentage: yellowPct,
			Dominant:         entity.DominantSymptom(brownPct, yellowPct),
			TotalPercentage:  total,
		},
		Severity:     entity.ClassifySeverity(total),
		LeafCoverage: percentOfMask(leaf),
		SymptomMask:  symptomMask,
		HasSymptoms:  gocv.CountNonZero(combined) > 0,
	}, nil
}

// HighlightSymptoms рисует маску и контуры симптомов, контуры областей и статус, возвращает JPEG.
func (d *GoCVInspector) HighlightSymptoms(imageData []byte, report *entity.LeafReport) ([]byte, error) {
	mat, err := d.decode(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	if report == nil {
		return encodeMat(mat)
	}

	if m := report.SymptomMask; m != nil && m.Width == mat.Cols() && m.Height == mat.Rows() {
		overlay := mat.Clone()
		defer overlay.Close()
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				if m.At(x, y) {
					overlay.SetUCharAt(y, x*3+0, 0)
					overlay.SetUCharAt(y, x*3+1, 0)
					overlay.SetUCharAt(y, x*3+2, 255)
				}
			}
		}
		gocv.AddWeighted(overlay, overlayAlpha, mat, 1-overlayAlpha, 0, &mat)

		// Внешние контуры симптомов
		maskMat, err := gocv.NewMatFromBytes(m.Height, m.Width, gocv.MatTypeCV8U, m.Gray().Pix)
		if err != nil {
			return nil, err
		}
		defer maskMat.Close()
		symptomContours := gocv.FindContours(maskMat, gocv.RetrievalExternal, gocv.ChainApproxSimple)
		defer symptomContours.Close()
		gocv.DrawContours(&mat, symptomContours, -1, red, 2)
	}

	outlines := make([][]image.Point, 0, len(report.Regions))
	for _, f := range report.Regions {
		if len(f.Boundary) > 0 {
			outlines = append(outlines, f.Boundary)
		}
	}
	if len(outlines) > 0 {
		regionContours := gocv.NewPointsVectorFromPoints(outlines)
		defer regionContours.Close()
		gocv.DrawContours(&mat, regionContours, -1, green, 2)
	}
	for _, f := range report.Regions {
		gocv.PutText(&mat, string(f.Condition), image.Pt(f.Bounds.Min.X, f.Bounds.Min.Y-10),
			gocv.FontHersheySimplex, 0.6, red, 2)
	}

	status := severityColors[report.Severity]
	gocv.PutText(&mat, fmt.Sprintf("Symptom Area: %.2f%%", report.Symptoms.TotalPercentage),
		image.Pt(10, 30), gocv.FontHersheySimplex, 0.7, red, 2)
	gocv.PutText(&mat, "Status: "+strings.ToUpper(string(report.Severity)),
		image.Pt(10, 60), gocv.FontHersheySimplex, 0.7, status, 2)

	return encodeMat(mat)
}

// encodeMat кодирует изображение в JPEG.
func encodeMat(mat gocv.Mat) ([]byte, error) {
	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decode превращает байты в gocv.Mat и уменьшает большие изображения.
func (d *GoCVInspector) decode(imageData []byte) (gocv.Mat, error) {
	mat, err := decodeToMat(imageData)
	if err != nil {
		return mat, err
	}
	if d.MaxSide > 0 && (mat.Cols() > d.MaxSide || mat.Rows() > d.MaxSide) {
		scale := float64(d.MaxSide) / float64(max(mat.Cols(), mat.Rows()))
		newW := int(float64(mat.Cols()) * scale)
		newH := int(float64(mat.Rows()) * scale)
		resized := gocv.NewMat()
		gocv.Resize(mat, &resized, image.Pt(newW, newH), 0, 0, gocv.InterpolationArea)
		mat.Close()
		mat = resized
	}
	return mat, nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), fmt.Errorf("%w: decode", entity.ErrLoadFailure)
}

// cleanedMask строит маску по диапазонам (ИЛИ), затем открывает и закрывает её.
func cleanedMask(hsv gocv.Mat, kernel gocv.Mat, thresholds ...entity.Threshold) gocv.Mat {
	mask := gocv.Zeros(hsv.Rows(), hsv.Cols(), gocv.MatTypeCV8U)
	part := gocv.NewMat()
	defer part.Close()

	for _, t := range thresholds {
		lower, upper := t.Bounds()
		lb := gocv.NewScalar(float64(lower.H), float64(lower.S), float64(lower.V), 0)
		ub := gocv.NewScalar(float64(upper.H), float64(upper.S), float64(upper.V), 0)
		gocv.InRangeWithScalar(hsv, lb, ub, &part)
		gocv.BitwiseOr(mask, part, &mask)
	}

	gocv.MorphologyEx(mask, &mask, gocv.MorphOpen, kernel)
	gocv.MorphologyEx(mask, &mask, gocv.MorphClose, kernel)
	return mask
}

func percentOfMask(mask gocv.Mat) float64 {
	total := mask.Cols() * mask.Rows()
	if total <= 0 {
		return 0
	}
	return 100 * float64(gocv.CountNonZero(mask)) / float64(total)
}

func matToMask(mat gocv.Mat) (*entity.Mask, error) {
	if mat.Empty() {
		return nil, errors.New("empty mask")
	}
	mask, err := entity.NewMask(mat.Cols(), mat.Rows())
	if err != nil {
		return nil, err
	}
	for y := 0; y < mat.Rows(); y++ {
		for x := 0; x < mat.Cols(); x++ {
			mask.Set(x, y, mat.GetUCharAt(y, x) > 0)
		}
	}
	return mask, nil
}

// Проверка реализации интерфейса
var _ port.LeafInspector = (*GoCVInspector)(nil)
