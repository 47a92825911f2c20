package port

import (
	"context"

	"leafcheck/internal/domain/entity"
)

// LeafInspector интерфейс анализатора листа
type LeafInspector interface {
	// Inspect анализирует изображение и возвращает отчёт о состоянии листа
	Inspect(ctx context.Context, imageData []byte) (*entity.LeafReport, error)

	// HighlightSymptoms создаёт изображение с подсветкой симптомов и областей
	HighlightSymptoms(imageData []byte, report *entity.LeafReport) ([]byte, error)
}
