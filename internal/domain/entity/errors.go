package entity

import "errors"

var (
	// ErrLoadFailure изображение не удалось прочитать или декодировать.
	ErrLoadFailure = errors.New("failed to load image")

	// ErrInvalidDimensions изображение или маска нулевого размера, либо размеры не совпадают.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrInvalidKernel размер ядра морфологии меньше 1 или чётный.
	ErrInvalidKernel = errors.New("kernel size must be odd and >= 1")

	// ErrInvalidBound строку границы HSV не удалось разобрать.
	ErrInvalidBound = errors.New("invalid hsv bound")

	// ErrInspectorDisabled запрошен gocv-бэкенд в сборке без тега gocv.
	ErrInspectorDisabled = errors.New("gocv build tag is not enabled")
)
