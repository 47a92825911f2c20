package describe

import (
	"context"
	"fmt"
	"strings"

	"leafcheck/internal/domain/entity"
	"leafcheck/internal/domain/port"
)

var severityText = map[entity.Severity]string{
	entity.SeverityHealthy:  "🟢 Здоров",
	entity.SeverityMild:     "🟡 Лёгкое поражение",
	entity.SeverityModerate: "🟠 Среднее поражение",
	entity.SeveritySevere:   "🔴 Сильное поражение",
}

var symptomText = map[entity.SymptomKind]string{
	entity.SymptomBrown:  "коричневые пятна (некроз)",
	entity.SymptomYellow: "пожелтение (хлороз)",
	entity.SymptomMixed:  "смешанные",
}

var conditionText = map[entity.Condition]string{
	entity.ConditionFresh:   "свежих",
	entity.ConditionWilted:  "увядших",
	entity.ConditionRotten:  "гнилых",
	entity.ConditionUnknown: "неопределённых",
}

// TextDescriber собирает текст отчёта без внешних сервисов.
type TextDescriber struct{}

func NewTextDescriber() *TextDescriber {
	return &TextDescriber{}
}

// Describe формирует сообщение для пользователя по отчёту.
func (d *TextDescriber) Describe(ctx context.Context, report *entity.LeafReport) (*entity.Description, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if report == nil {
		return nil, fmt.Errorf("describe: nil report")
	}

	var b strings.Builder
	b.WriteString("🍅 Результат анализа листа\n\n")
	fmt.Fprintf(&b, "Состояние: %s\n", severityText[report.Severity])
	fmt.Fprintf(&b, "Площадь симптомов: %.2f%%\n", report.Symptoms.TotalPercentage)
	fmt.Fprintf(&b, "• коричневые: %.2f%%\n", report.Symptoms.BrownPercentage)
	fmt.Fprintf(&b, "• жёлтые: %.2f%%\n", report.Symptoms.YellowPercentage)
	if report.HasSymptoms {
		fmt.Fprintf(&b, "Преобладают: %s\n", symptomText[report.Symptoms.Dominant])
	}
	fmt.Fprintf(&b, "Зелёная ткань: %.2f%%\n", report.LeafCoverage)

	if len(report.Regions) > 0 {
		counts := report.CountByCondition()
		parts := make([]string, 0, len(counts))
		for _, c := range []entity.Condition{entity.ConditionFresh, entity.ConditionWilted, entity.ConditionRotten, entity.ConditionUnknown} {
			if n := counts[c]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", n, conditionText[c]))
			}
		}
		fmt.Fprintf(&b, "Области листа: %s\n", strings.Join(parts, ", "))
	} else {
		b.WriteString("Лист на фото не найден.\n")
	}

	return &entity.Description{Text: strings.TrimRight(b.String(), "\n")}, nil
}

// History формирует короткий список прошлых проверок.
func History(records []entity.ReportRecord) string {
	if len(records) == 0 {
		return "📭 История проверок пуста."
	}

	var b strings.Builder
	b.WriteString("🗂 Последние проверки:\n")
	for _, rec := range records {
		fmt.Fprintf(&b, "%s — %s, симптомы %.2f%%\n",
			rec.CreatedAt.Local().Format("02.01.2006 15:04"),
			severityText[rec.Report.Severity],
			rec.Report.Symptoms.TotalPercentage)
	}
	return strings.TrimRight(b.String(), "\n")
}

var _ port.ReportDescriber = (*TextDescriber)(nil)
