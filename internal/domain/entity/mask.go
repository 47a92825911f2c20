package entity

import (
	"fmt"
	"image"
)

// Mask бинарная маска того же размера, что и исходный кадр.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

// NewMask создаёт маску, заполненную фоном.
func NewMask(width, height int) (*Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("mask %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	return &Mask{
		Width:  width,
		Height: height,
		Bits:   make([]bool, width*height),
	}, nil
}

// At сообщает, является ли пиксель (x, y) передним планом.
// Точки за пределами маски считаются фоном.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Bits[y*m.Width+x]
}

// Set помечает пиксель (x, y).
func (m *Mask) Set(x, y int, v bool) {
	m.Bits[y*m.Width+x] = v
}

// Count возвращает число пикселей переднего плана.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Percentage доля переднего плана от площади маски, в процентах.
func (m *Mask) Percentage() float64 {
	return 100 * float64(m.Count()) / float64(m.Width*m.Height)
}

// Or объединяет две маски одного размера.
func (m *Mask) Or(other *Mask) (*Mask, error) {
	if m.Width != other.Width || m.Height != other.Height {
		return nil, fmt.Errorf("or %dx%d with %dx%d: %w",
			m.Width, m.Height, other.Width, other.Height, ErrInvalidDimensions)
	}
	out := &Mask{Width: m.Width, Height: m.Height, Bits: make([]bool, len(m.Bits))}
	for i := range m.Bits {
		out.Bits[i] = m.Bits[i] || other.Bits[i]
	}
	return out, nil
}

// Clone возвращает независимую копию маски.
func (m *Mask) Clone() *Mask {
	bits := make([]bool, len(m.Bits))
	copy(bits, m.Bits)
	return &Mask{Width: m.Width, Height: m.Height, Bits: bits}
}

// Equal сравнивает маски попиксельно.
func (m *Mask) Equal(other *Mask) bool {
	if m.Width != other.Width || m.Height != other.Height {
		return false
	}
	for i := range m.Bits {
		if m.Bits[i] != other.Bits[i] {
			return false
		}
	}
	return true
}

// Gray переводит маску в полутоновое изображение: передний план 255, фон 0.
func (m *Mask) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+m.Width]
		for x := range row {
			if m.Bits[y*m.Width+x] {
				row[x] = 255
			}
		}
	}
	return img
}

// MaskFromGray строит маску по изображению: передний план там, где яркость не меньше 128.
func MaskFromGray(img *image.Gray) (*Mask, error) {
	b := img.Bounds()
	m, err := NewMask(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.Bits[y*m.Width+x] = img.GrayAt(b.Min.X+x, b.Min.Y+y).Y >= 128
		}
	}
	return m, nil
}
