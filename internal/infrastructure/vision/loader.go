package vision

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"leafcheck/internal/domain/entity"
)

// Decode декодирует байты изображения с учётом EXIF-ориентации
// и уменьшает его так, чтобы большая сторона не превышала maxSide (0 — без ограничения).
func Decode(imageData []byte, maxSide int) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrLoadFailure, err)
	}
	return fitMaxSide(img, maxSide), nil
}

// LoadFile читает изображение с диска.
func LoadFile(path string, maxSide int) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrLoadFailure, path, err)
	}
	return fitMaxSide(img, maxSide), nil
}

func fitMaxSide(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	if maxSide <= 0 || (b.Dx() <= maxSide && b.Dy() <= maxSide) {
		return img
	}
	// Приводим изображение к стандартному размеру для стабильной морфологии.
	return imaging.Fit(img, maxSide, maxSide, imaging.Box)
}
