package entity

// Severity степень поражения листа по доле площади симптомов.
type Severity string

const (
	SeverityHealthy  Severity = "healthy"
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// severityTiers отсортированы по убыванию порога; граница не включается.
var severityTiers = []struct {
	above float64
	tier  Severity
}{
	{10, SeveritySevere},
	{5, SeverityModerate},
	{1, SeverityMild},
}

// ClassifySeverity возвращает степень поражения для процента площади [0,100].
func ClassifySeverity(percentage float64) Severity {
	for _, t := range severityTiers {
		if percentage > t.above {
			return t.tier
		}
	}
	return SeverityHealthy
}
