package app

import (
	"context"
	"errors"
	"fmt"

	"leafcheck/internal/domain/entity"
	"leafcheck/internal/domain/port"
)

// HistoryLimit сколько последних проверок показывать по умолчанию.
const HistoryLimit = 5

var (
	ErrInspectorNotConfigured = errors.New("inspector is not configured")
	ErrHistoryDisabled        = errors.New("report history is not configured")
)

type InspectionService struct {
	users     *UserService
	inspector port.LeafInspector
	describer port.ReportDescriber
	reports   port.ReportRepository
}

// InspectionOutput содержит отчёт, его описание и картинку с подсветкой.
type InspectionOutput struct {
	Report      *entity.LeafReport
	Description *entity.Description
	Highlighted []byte
	ReportID    int64

	// HighlightErr ошибка подсветки; отчёт при этом остаётся действительным.
	HighlightErr error
}

// NewInspectionService создаёт сервис проверки листьев. describer и reports могут быть nil.
func NewInspectionService(users *UserService, inspector port.LeafInspector, describer port.ReportDescriber, reports port.ReportRepository) *InspectionService {
	return &InspectionService{
		users:     users,
		inspector: inspector,
		describer: describer,
		reports:   reports,
	}
}

// ProcessLeafPhoto анализирует фото листа, сохраняет отчёт и возвращает пользователя в главное меню.
func (s *InspectionService) ProcessLeafPhoto(ctx context.Context, userID, chatID int64, photo []byte) (out *InspectionOutput, err error) {
	if s.inspector == nil {
		return nil, ErrInspectorNotConfigured
	}

	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		return nil, err
	}
	defer func() {
		// Состояние сбрасываем даже при ошибке анализа
		if _, stateErr := s.users.SetState(ctx, userID, chatID, entity.StateMainMenu); stateErr != nil && err == nil {
			out, err = nil, stateErr
		}
	}()

	report, err := s.inspector.Inspect(ctx, photo)
	if err != nil {
		return nil, fmt.Errorf("inspect leaf: %w", err)
	}

	out = &InspectionOutput{Report: report}

	if s.describer != nil {
		desc, err := s.describer.Describe(ctx, report)
		if err != nil {
			return nil, fmt.Errorf("describe report: %w", err)
		}
		out.Description = desc
	}

	// Подсветка не обязательна: без неё пользователь всё равно получит текст
	out.Highlighted, out.HighlightErr = s.inspector.HighlightSymptoms(photo, report)

	if s.reports != nil {
		id, err := s.reports.Save(ctx, userID, report)
		if err != nil {
			return nil, fmt.Errorf("save report: %w", err)
		}
		out.ReportID = id
	}

	return out, nil
}

// History возвращает последние отчёты пользователя, новые первыми.
func (s *InspectionService) History(ctx context.Context, userID int64, limit int) ([]entity.ReportRecord, error) {
	if s.reports == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = HistoryLimit
	}
	return s.reports.ListByUser(ctx, userID, limit)
}
