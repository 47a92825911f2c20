package vision

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"

	"leafcheck/internal/domain/entity"
	"leafcheck/internal/domain/port"
)

// Analyzer конвейер анализа листа на чистом Go:
// порог HSV → морфологическая очистка → области → признаки и сводка симптомов.
type Analyzer struct {
	Thresholds    entity.ThresholdSet
	KernelSize    int
	MaxSide       int
	MinRegionArea int
}

// NewAnalyzer создаёт анализатор с заданными пресетами.
func NewAnalyzer(thresholds entity.ThresholdSet, kernelSize, maxSide int) *Analyzer {
	if kernelSize == 0 {
		kernelSize = DefaultKernelSize
	}
	return &Analyzer{
		Thresholds: thresholds,
		KernelSize: kernelSize,
		MaxSide:    maxSide,
	}
}

// Inspect декодирует изображение и строит отчёт.
func (a *Analyzer) Inspect(ctx context.Context, imageData []byte) (*entity.LeafReport, error) {
	img, err := Decode(imageData, a.MaxSide)
	if err != nil {
		return nil, err
	}
	frame, err := FrameFromImage(img)
	if err != nil {
		return nil, err
	}
	return a.Analyze(ctx, frame)
}

// Analyze строит отчёт по уже декодированному кадру.
func (a *Analyzer) Analyze(ctx context.Context, frame *entity.Frame) (*entity.LeafReport, error) {
	if frame == nil || frame.Pixels() == 0 {
		return nil, fmt.Errorf("analyze: %w", entity.ErrInvalidDimensions)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	features, err := a.ClassifyRegions(frame)
	if err != nil {
		return nil, fmt.Errorf("classify regions: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	summary, symptomMask, err := a.DetectSymptoms(frame)
	if err != nil {
		return nil, fmt.Errorf("detect symptoms: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	leaf, err := a.cleanMask(frame, a.Thresholds.LeafGreen)
	if err != nil {
		return nil, fmt.Errorf("leaf mask: %w", err)
	}

	return &entity.LeafReport{
		ImageWidth:   frame.Width,
		ImageHeight:  frame.Height,
		Regions:      features,
		Symptoms:     summary,
		Severity:     entity.ClassifySeverity(summary.TotalPercentage),
		LeafCoverage: leaf.Percentage(),
		SymptomMask:  symptomMask,
		HasSymptoms:  symptomMask.Count() > 0,
	}, nil
}

// ClassifyRegions выделяет области листа по пресету foliage и классифицирует каждую.
func (a *Analyzer) ClassifyRegions(frame *entity.Frame) ([]entity.RegionFeature, error) {
	mask, err := a.cleanMask(frame, a.Thresholds.Foliage)
	if err != nil {
		return nil, err
	}

	regions := ExtractRegions(mask)
	if a.MinRegionArea > 0 {
		kept := regions[:0]
		for _, r := range regions {
			if r.Area() >= a.MinRegionArea {
				kept = append(kept, r)
			}
		}
		regions = kept
	}

	return ExtractFeatures(frame, regions), nil
}

// DetectSymptoms считает доли бурых и жёлтых симптомов по независимо очищенным маскам
// и общую долю по объединённой маске.
func (a *Analyzer) DetectSymptoms(frame *entity.Frame) (entity.SymptomSummary, *entity.Mask, error) {
	brown, err := a.cleanMask(frame, a.Thresholds.Brown)
	if err != nil {
		return entity.SymptomSummary{}, nil, err
	}
	yellow, err := a.cleanMask(frame, a.Thresholds.Yellow)
	if err != nil {
		return entity.SymptomSummary{}, nil, err
	}
	combined, err := a.cleanMask(frame, a.Thresholds.Brown, a.Thresholds.Yellow)
	if err != nil {
		return entity.SymptomSummary{}, nil, err
	}

	brownPct, yellowPct := brown.Percentage(), yellow.Percentage()
	return entity.SymptomSummary{
		BrownPercentage:  brownPct,
		YellowPercentage: yellowPct,
		Dominant:         entity.DominantSymptom(brownPct, yellowPct),
		TotalPercentage:  combined.Percentage(),
	}, combined, nil
}

// SymptomMask возвращает очищенную маску для произвольного набора диапазонов.
func (a *Analyzer) SymptomMask(frame *entity.Frame, thresholds ...entity.Threshold) (*entity.Mask, error) {
	return a.cleanMask(frame, thresholds...)
}

func (a *Analyzer) cleanMask(frame *entity.Frame, thresholds ...entity.Threshold) (*entity.Mask, error) {
	raw, err := Segment(frame, thresholds...)
	if err != nil {
		return nil, err
	}
	return Clean(raw, a.KernelSize)
}

// HighlightSymptoms рисует симптомы и области на исходном изображении и кодирует JPEG.
func (a *Analyzer) HighlightSymptoms(imageData []byte, report *entity.LeafReport) ([]byte, error) {
	img, err := Decode(imageData, a.MaxSide)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, Highlight(img, report), imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encode highlight: %w", err)
	}
	return buf.Bytes(), nil
}

// Проверка реализации интерфейса
var _ port.LeafInspector = (*Analyzer)(nil)
