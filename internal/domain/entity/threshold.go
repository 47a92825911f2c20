package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// HSVBound одна граница диапазона по каналам H, S, V.
// Значения не валидируются: выход за [0,179]/[0,255] просто никогда не совпадёт с пикселем.
type HSVBound struct {
	H, S, V int
}

// String форматирует границу как "(h, s, v)".
func (b HSVBound) String() string {
	return fmt.Sprintf("(%d, %d, %d)", b.H, b.S, b.V)
}

// Text форматирует границу как "h,s,v" для файла пресетов.
func (b HSVBound) Text() string {
	return fmt.Sprintf("%d,%d,%d", b.H, b.S, b.V)
}

// ParseBound разбирает границу из строки "h,s,v".
func ParseBound(s string) (HSVBound, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return HSVBound{}, fmt.Errorf("%q: %w", s, ErrInvalidBound)
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return HSVBound{}, fmt.Errorf("%q: %w", s, ErrInvalidBound)
		}
		vals[i] = v
	}
	return HSVBound{H: vals[0], S: vals[1], V: vals[2]}, nil
}

// Threshold именованный диапазон HSV, границы включительные.
type Threshold struct {
	Name  string
	Lower HSVBound
	Upper HSVBound
}

// Bounds возвращает нижнюю и верхнюю границы.
func (t Threshold) Bounds() (lower, upper HSVBound) {
	return t.Lower, t.Upper
}

// Contains проверяет, попадает ли пиксель в диапазон по всем трём каналам.
// Перевёрнутые границы (lower > upper) не совпадают ни с одним пикселем.
func (t Threshold) Contains(p HSV) bool {
	h, s, v := int(p.H), int(p.S), int(p.V)
	return h >= t.Lower.H && h <= t.Upper.H &&
		s >= t.Lower.S && s <= t.Upper.S &&
		v >= t.Lower.V && v <= t.Upper.V
}

// Имена пресетов.
const (
	PresetBrown     = "brown"
	PresetYellow    = "yellow"
	PresetLeafGreen = "leaf-green"
	PresetFoliage   = "foliage"
)

// ThresholdSet набор пресетов, передаваемый в конвейер по значению.
type ThresholdSet struct {
	Brown     Threshold // бурые пятна, некроз
	Yellow    Threshold // пожелтение, хлороз
	LeafGreen Threshold // здоровая зелёная ткань
	Foliage   Threshold // широкий диапазон листа для классификации состояния
}

// DefaultThresholds возвращает пресеты, подобранные вручную.
func DefaultThresholds() ThresholdSet {
	return ThresholdSet{
		Brown: Threshold{
			Name:  PresetBrown,
			Lower: HSVBound{H: 10, S: 60, V: 20},
			Upper: HSVBound{H: 20, S: 180, V: 120},
		},
		Yellow: Threshold{
			Name:  PresetYellow,
			Lower: HSVBound{H: 20, S: 80, V: 80},
			Upper: HSVBound{H: 35, S: 255, V: 255},
		},
		LeafGreen: Threshold{
			Name:  PresetLeafGreen,
			Lower: HSVBound{H: 35, S: 40, V: 40},
			Upper: HSVBound{H: 85, S: 255, V: 255},
		},
		Foliage: Threshold{
			Name:  PresetFoliage,
			Lower: HSVBound{H: 25, S: 30, V: 30},
			Upper: HSVBound{H: 90, S: 255, V: 255},
		},
	}
}

// All возвращает пресеты в фиксированном порядке.
func (s ThresholdSet) All() []Threshold {
	return []Threshold{s.Brown, s.Yellow, s.LeafGreen, s.Foliage}
}

// Preset ищет пресет по имени.
func (s ThresholdSet) Preset(name string) (Threshold, bool) {
	for _, t := range s.All() {
		if t.Name == name {
			return t, true
		}
	}
	return Threshold{}, false
}

// WithPreset возвращает копию набора с заменённым пресетом.
func (s ThresholdSet) WithPreset(t Threshold) (ThresholdSet, bool) {
	switch t.Name {
	case PresetBrown:
		s.Brown = t
	case PresetYellow:
		s.Yellow = t
	case PresetLeafGreen:
		s.LeafGreen = t
	case PresetFoliage:
		s.Foliage = t
	default:
		return s, false
	}
	return s, true
}
