package vision

import "leafcheck/internal/domain/entity"

// Segment строит маску: пиксель попадает в передний план, если входит
// хотя бы в один из диапазонов. Несколько диапазонов эквивалентны ИЛИ их масок.
func Segment(frame *entity.Frame, thresholds ...entity.Threshold) (*entity.Mask, error) {
	mask, err := entity.NewMask(frame.Width, frame.Height)
	if err != nil {
		return nil, err
	}

	for i, p := range frame.HSV {
		for _, t := range thresholds {
			if t.Contains(p) {
				mask.Bits[i] = true
				break
			}
		}
	}

	return mask, nil
}

// SegmentRange строит маску по одной паре границ.
func SegmentRange(frame *entity.Frame, lower, upper entity.HSVBound) (*entity.Mask, error) {
	return Segment(frame, entity.Threshold{Lower: lower, Upper: upper})
}
