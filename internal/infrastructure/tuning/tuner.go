package tuning

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"leafcheck/internal/domain/entity"
)

// Границы каналов в 8-битном соглашении OpenCV.
const (
	maxHue     = 179
	maxChannel = 255
)

var ErrUnknownSlider = errors.New("unknown slider")

// Event изменение одного ползунка: hmin, smin, vmin, hmax, smax, vmax.
type Event struct {
	Slider string
	Value  int
}

// ParseEvent разбирает запись вида "hmin=12".
func ParseEvent(s string) (Event, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return Event{}, fmt.Errorf("event %q: expected slider=value", s)
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Event{}, fmt.Errorf("event %q: %w", s, err)
	}
	return Event{Slider: strings.ToLower(strings.TrimSpace(name)), Value: v}, nil
}

// Tuner хранит положение шести ползунков HSV для одного пресета.
type Tuner struct {
	HMin, SMin, VMin int
	HMax, SMax, VMax int

	start entity.Threshold
}

// NewTuner выставляет ползунки по стартовому пресету.
func NewTuner(start entity.Threshold) *Tuner {
	t := &Tuner{start: start}
	t.Reset()
	return t
}

// Apply двигает ползунок, значение зажимается в диапазон канала.
func (t *Tuner) Apply(e Event) error {
	switch e.Slider {
	case "hmin":
		t.HMin = clamp(e.Value, maxHue)
	case "smin":
		t.SMin = clamp(e.Value, maxChannel)
	case "vmin":
		t.VMin = clamp(e.Value, maxChannel)
	case "hmax":
		t.HMax = clamp(e.Value, maxHue)
	case "smax":
		t.SMax = clamp(e.Value, maxChannel)
	case "vmax":
		t.VMax = clamp(e.Value, maxChannel)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSlider, e.Slider)
	}
	return nil
}

// Reset возвращает ползунки к стартовому пресету.
func (t *Tuner) Reset() {
	t.HMin, t.SMin, t.VMin = t.start.Lower.H, t.start.Lower.S, t.start.Lower.V
	t.HMax, t.SMax, t.VMax = t.start.Upper.H, t.start.Upper.S, t.start.Upper.V
}

// Threshold текущий диапазон под именем стартового пресета.
func (t *Tuner) Threshold() entity.Threshold {
	return entity.Threshold{
		Name:  t.start.Name,
		Lower: entity.HSVBound{H: t.HMin, S: t.SMin, V: t.VMin},
		Upper: entity.HSVBound{H: t.HMax, S: t.SMax, V: t.VMax},
	}
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
