package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"leafcheck/internal/domain/entity"
)

const thresholdsHeader = "# HSV threshold presets: h,s,v (H 0-179, S/V 0-255), bounds inclusive\n"

// thresholdKey возвращает ключ файла пресетов, например THRESHOLD_LEAF_GREEN_LOWER.
func thresholdKey(name, side string) string {
	return "THRESHOLD_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_")) + "_" + side
}

// LoadThresholds читает пресеты из файла (если он есть), переменные окружения имеют приоритет.
// Ключи, которых нет ни там, ни там, берутся из значений по умолчанию.
func LoadThresholds(path string) (entity.ThresholdSet, error) {
	values := map[string]string{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			values, err = godotenv.Read(path)
			if err != nil {
				return entity.ThresholdSet{}, fmt.Errorf("read thresholds %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return entity.ThresholdSet{}, fmt.Errorf("stat thresholds %s: %w", path, err)
		}
	}

	set := entity.DefaultThresholds()
	for _, t := range set.All() {
		tuned := t
		for _, side := range []string{"LOWER", "UPPER"} {
			key := thresholdKey(t.Name, side)
			raw, ok := os.LookupEnv(key)
			if !ok {
				raw, ok = values[key]
			}
			if !ok {
				continue
			}
			b, err := entity.ParseBound(raw)
			if err != nil {
				return entity.ThresholdSet{}, fmt.Errorf("%s: %w", key, err)
			}
			if side == "LOWER" {
				tuned.Lower = b
			} else {
				tuned.Upper = b
			}
		}
		set, _ = set.WithPreset(tuned)
	}

	return set, nil
}

// SaveThresholds перезаписывает файл пресетов в фиксированном формате.
func SaveThresholds(path string, set entity.ThresholdSet) error {
	values := make(map[string]string)
	for _, t := range set.All() {
		values[thresholdKey(t.Name, "LOWER")] = t.Lower.Text()
		values[thresholdKey(t.Name, "UPPER")] = t.Upper.Text()
	}

	body, err := godotenv.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal thresholds: %w", err)
	}

	if err := os.WriteFile(path, []byte(thresholdsHeader+body+"\n"), 0644); err != nil {
		return fmt.Errorf("write thresholds %s: %w", path, err)
	}
	return nil
}
