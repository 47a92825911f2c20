package telegram

import (
	"testing"

	"github.com/stretchr/testify/require"

	app "leafcheck/internal/application"
	"leafcheck/internal/domain/entity"
)

func TestReportText(t *testing.T) {
	report := &entity.LeafReport{
		Symptoms: entity.SymptomSummary{TotalPercentage: 12.5},
		Severity: entity.SeveritySevere,
	}

	require.Equal(t, "Площадь симптомов: 12.50% (severe)", reportText(&app.InspectionOutput{Report: report}))

	out := &app.InspectionOutput{Report: report, Description: &entity.Description{Text: "готово"}}
	require.Equal(t, "готово", reportText(out))
}
