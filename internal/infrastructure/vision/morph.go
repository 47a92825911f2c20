package vision

import (
	"fmt"
	"image"

	"github.com/disintegration/gift"

	"leafcheck/internal/domain/entity"
)

// DefaultKernelSize сторона квадратного ядра очистки масок.
const DefaultKernelSize = 5

func validateKernel(size int) error {
	if size < 1 || size%2 == 0 {
		return fmt.Errorf("kernel %d: %w", size, entity.ErrInvalidKernel)
	}
	return nil
}

// Erode сужает передний план квадратным ядром size×size.
// Края изображения повторяются, поэтому пиксели за границей не уменьшают результат.
func Erode(m *entity.Mask, size int) (*entity.Mask, error) {
	return morph(m, size, gift.Minimum(size, false))
}

// Dilate расширяет передний план квадратным ядром size×size.
func Dilate(m *entity.Mask, size int) (*entity.Mask, error) {
	return morph(m, size, gift.Maximum(size, false))
}

// Open эрозия, затем дилатация: убирает мелкие пятна переднего плана.
func Open(m *entity.Mask, size int) (*entity.Mask, error) {
	return morph(m, size, gift.Minimum(size, false), gift.Maximum(size, false))
}

// Close дилатация, затем эрозия: закрывает мелкие дыры внутри областей.
func Close(m *entity.Mask, size int) (*entity.Mask, error) {
	return morph(m, size, gift.Maximum(size, false), gift.Minimum(size, false))
}

// Clean сначала открывает, потом закрывает маску.
// Обратный порядок сначала закрыл бы дыры и не дал бы убрать шум.
func Clean(m *entity.Mask, size int) (*entity.Mask, error) {
	return morph(m, size,
		gift.Minimum(size, false), gift.Maximum(size, false),
		gift.Maximum(size, false), gift.Minimum(size, false))
}

// morph прогоняет маску через цепочку минимум/максимум фильтров по квадратному окну.
func morph(m *entity.Mask, size int, filters ...gift.Filter) (*entity.Mask, error) {
	if err := validateKernel(size); err != nil {
		return nil, err
	}
	src := m.Gray()
	g := gift.New(filters...)
	dst := image.NewGray(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return entity.MaskFromGray(dst)
}
