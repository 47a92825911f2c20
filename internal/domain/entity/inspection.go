package entity

import "time"

// LeafReport итог анализа одного изображения листа.
type LeafReport struct {
	ImageWidth   int             `json:"image_width"`
	ImageHeight  int             `json:"image_height"`
	Regions      []RegionFeature `json:"regions"`
	Symptoms     SymptomSummary  `json:"symptoms"`
	Severity     Severity        `json:"severity"`
	LeafCoverage float64         `json:"leaf_coverage"` // доля зелёной ткани, %
	SymptomMask  *Mask           `json:"-"`
	HasSymptoms  bool            `json:"has_symptoms"`
}

// CountByCondition считает области по состояниям.
func (r *LeafReport) CountByCondition() map[Condition]int {
	counts := make(map[Condition]int)
	for _, f := range r.Regions {
		counts[f.Condition]++
	}
	return counts
}

// Description текстовое описание отчёта для пользователя.
type Description struct {
	Text string
}

// ReportRecord сохранённый отчёт из истории пользователя.
type ReportRecord struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	Report    LeafReport
}
