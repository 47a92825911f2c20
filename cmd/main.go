package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"leafcheck/config"
	telegram "leafcheck/internal/api"
	"leafcheck/internal/container"
	"leafcheck/internal/domain/port"
	"leafcheck/internal/infrastructure/describe"
	"leafcheck/internal/infrastructure/storage"
	"leafcheck/internal/infrastructure/vision"
	"leafcheck/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

// run собирает зависимости и крутит бота до отмены контекста; ресурсы закрываются при любом выходе.
func run(ctx context.Context, cfg *config.Config) error {
	if cfg.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN is required")
	}

	logg, err := logger.New(cfg.LogDirectory)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logg.Close()

	// Создаём хранилища
	userRepo := storage.NewMemoryUserRepository()
	reportRepo, err := storage.NewSQLiteReportRepository(cfg.DatabasePath)
	if err != nil {
		logg.Error("Failed to open database %s: %v", cfg.DatabasePath, err)
		return err
	}
	defer reportRepo.Close()

	// Собираем сервисы приложения
	appContainer := container.New(userRepo, newInspector(cfg, logg), describe.NewTextDescriber(), reportRepo)

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, logg)
	if err != nil {
		logg.Error("Failed to create bot: %v", err)
		return err
	}

	logg.Info("Bot is running (vision backend: %s)...", cfg.VisionBackend)
	if err := bot.Run(ctx); err != nil {
		logg.Error("Bot error: %v", err)
		return err
	}
	logg.Info("Bot stopped")
	return nil
}

// newInspector выбирает реализацию анализа по VISION_BACKEND.
func newInspector(cfg *config.Config, logg *logger.Logger) port.LeafInspector {
	switch cfg.VisionBackend {
	case config.BackendGoCV:
		if vision.GoCVEnabled {
			d := vision.NewGoCVInspector(cfg.Thresholds, cfg.KernelSize, cfg.MaxSide)
			d.MinRegionArea = cfg.MinRegionArea
			return d
		}
		logg.Warning("VISION_BACKEND=gocv, but binary is built without the gocv tag; using native pipeline")
	case config.BackendNative:
	default:
		logg.Warning("Unknown VISION_BACKEND %q; using native pipeline", cfg.VisionBackend)
	}

	a := vision.NewAnalyzer(cfg.Thresholds, cfg.KernelSize, cfg.MaxSide)
	a.MinRegionArea = cfg.MinRegionArea
	return a
}
