package entity

// SymptomKind преобладающий тип симптома.
type SymptomKind string

const (
	SymptomBrown  SymptomKind = "brown"
	SymptomYellow SymptomKind = "yellow"
	SymptomMixed  SymptomKind = "mixed"
)

// SymptomSummary сводка по симптомам на всём изображении.
type SymptomSummary struct {
	BrownPercentage  float64     `json:"brown_percentage"`
	YellowPercentage float64     `json:"yellow_percentage"`
	Dominant         SymptomKind `json:"dominant_symptom"`
	TotalPercentage  float64     `json:"total_percentage"`
}

// DominantSymptom выбирает преобладающий симптом; равенство (включая 0 и 0) даёт Mixed.
func DominantSymptom(brown, yellow float64) SymptomKind {
	switch {
	case brown > yellow:
		return SymptomBrown
	case yellow > brown:
		return SymptomYellow
	default:
		return SymptomMixed
	}
}
