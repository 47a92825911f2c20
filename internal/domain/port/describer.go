package port

import (
	"context"

	"leafcheck/internal/domain/entity"
)

// ReportDescriber интерфейс описателя отчётов
type ReportDescriber interface {
	// Describe генерирует текстовое описание отчёта
	Describe(ctx context.Context, report *entity.LeafReport) (*entity.Description, error)
}
