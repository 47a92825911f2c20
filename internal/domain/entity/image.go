package entity

import "fmt"

// BGR пиксель в порядке каналов OpenCV.
type BGR struct {
	B, G, R uint8
}

// HSV пиксель в 8-битной конвенции: H в [0,179], S и V в [0,255].
type HSV struct {
	H, S, V uint8
}

// Frame кадр, хранящий исходные BGR-пиксели и их HSV-представление.
// Пиксели лежат построчно: индекс = y*Width + x.
type Frame struct {
	Width  int
	Height int
	BGR    []BGR
	HSV    []HSV
}

// NewFrame создаёт пустой кадр заданного размера.
func NewFrame(width, height int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("frame %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	n := width * height
	return &Frame{
		Width:  width,
		Height: height,
		BGR:    make([]BGR, n),
		HSV:    make([]HSV, n),
	}, nil
}

// Index возвращает индекс пикселя (x, y).
func (f *Frame) Index(x, y int) int {
	return y*f.Width + x
}

// Pixels возвращает общее число пикселей кадра.
func (f *Frame) Pixels() int {
	return f.Width * f.Height
}
