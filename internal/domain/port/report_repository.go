package port

import (
	"context"

	"leafcheck/internal/domain/entity"
)

// ReportRepository интерфейс хранилища истории отчётов
type ReportRepository interface {
	// Save сохраняет отчёт пользователя и возвращает его ID
	Save(ctx context.Context, userID int64, report *entity.LeafReport) (int64, error)

	// ListByUser возвращает последние отчёты пользователя, новые первыми
	ListByUser(ctx context.Context, userID int64, limit int) ([]entity.ReportRecord, error)
}
