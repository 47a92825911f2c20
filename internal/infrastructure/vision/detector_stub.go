//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"leafcheck/internal/domain/entity"
	"leafcheck/internal/domain/port"
)

// GoCVEnabled сообщает, собран ли бинарник с OpenCV.
const GoCVEnabled = false

// GoCVInspector заглушка для сборки без OpenCV.
type GoCVInspector struct {
	Thresholds    entity.ThresholdSet
	KernelSize    int
	MaxSide       int
	MinRegionArea int
}

// NewGoCVInspector создаёт инспектор-заглушку (без OpenCV).
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

// Inspect возвращает ошибку, если сборка без тега gocv.
func (d *GoCVInspector) Inspect(ctx context.Context, imageData []byte) (*entity.LeafReport, error) {
	_ = ctx
	_ = imageData
	return nil, entity.ErrInspectorDisabled
}

// HighlightSymptoms возвращает ошибку, если сборка без тега gocv.
func (d *GoCVInspector) HighlightSymptoms(imageData []byte, report *entity.LeafReport) ([]byte, error) {
	_ = imageData
	_ = report
	return nil, entity.ErrInspectorDisabled
}

var _ port.LeafInspector = (*GoCVInspector)(nil)
