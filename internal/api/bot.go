package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "leafcheck/internal/application"
	"leafcheck/internal/container"
	"leafcheck/internal/domain/entity"
	"leafcheck/internal/infrastructure/describe"
	"leafcheck/internal/logger"
)

const (
	msgStart = `👋 Привет! Я бот для проверки листьев томата.

📸 Отправьте мне фото листа, и я оценю пятна, пожелтение и степень поражения.

📋 Команды:
/check — начать проверку листа
/history — последние проверки
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото листа
2️⃣ Бот проанализирует изображение
3️⃣ Вы получите результат: текст + фото с подсветкой симптомов

💡 Рекомендации:
• Снимайте при дневном освещении
• Лист должен занимать большую часть кадра
• Используйте однотонный светлый фон

📋 Команды:
/check — начать проверку
/history — последние проверки
/cancel — отменить операцию`

	msgAwaitingPhoto   = "📸 Отправьте фото листа для проверки."
	msgCancelled       = "❌ Операция отменена. Отправьте /check для новой проверки."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото листа для проверки."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
	msgHistoryError    = "⚠️ Не удалось получить историю проверок."

	// Лимит подписи к фото в Telegram
	maxCaptionLength = 1024
)

// Bot представляет Telegram-бота
type Bot struct {
	api *tgbotapi.BotAPI
	app *container.Container
	log *logger.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, log *logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api: api,
		app: c,
		log: log,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	user, err := b.app.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.log.Error("Error getting user: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg, user)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	switch msg.Command() {
	case "start":
		b.setState(ctx, user, entity.StateMainMenu)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "check":
		if _, err := b.app.UserService.BeginCheck(ctx, user.ID, user.ChatID); err != nil {
			b.log.Error("Error starting check for %d: %v", user.ID, err)
		}
		b.sendMessage(msg.Chat.ID, msgAwaitingPhoto)

	case "cancel":
		if _, err := b.app.UserService.Cancel(ctx, user.ID, user.ChatID); err != nil {
			b.log.Error("Error cancelling for %d: %v", user.ID, err)
		}
		b.sendMessage(msg.Chat.ID, msgCancelled)

	case "history":
		b.handleHistory(ctx, msg, user)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handlePhoto обрабатывает входящее фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	b.sendMessage(msg.Chat.ID, msgProcessing)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		b.log.Error("Error downloading photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		b.setState(ctx, user, entity.StateMainMenu)
		return
	}
	b.log.Info("Received image from %d: %d bytes", user.ID, len(imageData))

	out, err := b.app.InspectionService.ProcessLeafPhoto(ctx, user.ID, user.ChatID, imageData)
	if err != nil {
		if errors.Is(err, entity.ErrLoadFailure) {
			b.log.Warning("Undecodable photo from %d: %v", user.ID, err)
		} else {
			b.log.Error("Error processing photo from %d: %v", user.ID, err)
		}
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	b.log.Info("Report #%d for %d: severity=%s total=%.2f%%",
		out.ReportID, user.ID, out.Report.Severity, out.Report.Symptoms.TotalPercentage)

	if out.HighlightErr != nil {
		b.log.Warning("Highlight failed for report #%d: %v", out.ReportID, out.HighlightErr)
	}

	text := reportText(out)
	if len(out.Highlighted) == 0 {
		b.sendMessage(msg.Chat.ID, text)
		return
	}

	reply := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "leaf.jpg", Bytes: out.Highlighted})
	if len([]rune(text)) <= maxCaptionLength {
		reply.Caption = text
		text = ""
	}
	if _, err := b.api.Send(reply); err != nil {
		b.log.Error("Error sending photo: %v", err)
	}
	if text != "" {
		b.sendMessage(msg.Chat.ID, text)
	}
}

// handleHistory отправляет последние проверки пользователя
func (b *Bot) handleHistory(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	records, err := b.app.InspectionService.History(ctx, user.ID, app.HistoryLimit)
	if err != nil {
		b.log.Error("Error loading history for %d: %v", user.ID, err)
		b.sendMessage(msg.Chat.ID, msgHistoryError)
		return
	}
	b.sendMessage(msg.Chat.ID, describe.History(records))
}

// reportText возвращает текст результата проверки
func reportText(out *app.InspectionOutput) string {
	if out.Description != nil && out.Description.Text != "" {
		return out.Description.Text
	}
	return fmt.Sprintf("Площадь симптомов: %.2f%% (%s)", out.Report.Symptoms.TotalPercentage, out.Report.Severity)
}

func (b *Bot) setState(ctx context.Context, user *entity.User, state entity.UserState) {
	if _, err := b.app.UserService.SetState(ctx, user.ID, user.ChatID, state); err != nil {
		b.log.Error("Error saving state for %d: %v", user.ID, err)
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("Error sending message: %v", err)
	}
}
