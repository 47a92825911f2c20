package tuning

import (
	"fmt"
	"os"
	"time"

	"github.com/disintegration/imaging"

	"leafcheck/internal/domain/entity"
)

// Note запись журнала подбора порогов.
type Note struct {
	Time      time.Time
	Image     string
	Threshold entity.Threshold
}

// AppendNotes дописывает запись в журнал, создавая файл при необходимости.
func AppendNotes(path string, note Note) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open notes %s: %w", path, err)
	}
	defer f.Close()

	lower, upper := note.Threshold.Bounds()
	_, err = fmt.Fprintf(f,
		"\n--- RESEARCH DATA (%s) ---\nImage: %s\nPreset: %s\nLower Bound: %s\nUpper Bound: %s\n-------------------------------------\n",
		note.Time.Format("2006-01-02 15:04:05"), note.Image, note.Threshold.Name, lower, upper)
	if err != nil {
		return fmt.Errorf("write notes %s: %w", path, err)
	}
	return nil
}

// SaveMask сохраняет маску как изображение; формат определяется расширением.
func SaveMask(path string, m *entity.Mask) error {
	if m == nil || m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("save mask %s: %w", path, entity.ErrInvalidDimensions)
	}
	if err := imaging.Save(m.Gray(), path); err != nil {
		return fmt.Errorf("save mask %s: %w", path, err)
	}
	return nil
}
