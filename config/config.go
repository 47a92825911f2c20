package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"leafcheck/internal/domain/entity"
)

// Бэкенды анализа изображений.
const (
	BackendNative = "native"
	BackendGoCV   = "gocv"
)

type Config struct {
	TelegramToken  string
	DatabasePath   string
	LogDirectory   string
	KernelSize     int
	MaxSide        int
	MinRegionArea  int
	VisionBackend  string
	ThresholdsFile string
	Thresholds     entity.ThresholdSet
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		DatabasePath:   getEnv("DB_PATH", "leafcheck.db"),
		LogDirectory:   getEnv("LOG_DIR", "logs"),
		KernelSize:     getEnvAsInt("KERNEL_SIZE", 5),
		MaxSide:        getEnvAsInt("MAX_SIDE", 1024),
		MinRegionArea:  getEnvAsInt("MIN_REGION_AREA", 0),
		VisionBackend:  getEnv("VISION_BACKEND", BackendNative),
		ThresholdsFile: getEnv("THRESHOLDS_FILE", "thresholds.env"),
	}

	thresholds, err := LoadThresholds(cfg.ThresholdsFile)
	if err != nil {
		return nil, err
	}
	cfg.Thresholds = thresholds

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
