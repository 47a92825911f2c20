package entity

import "image"

// Region связная область переднего плана маски (8-связность).
// Действительна только для маски, из которой получена.
type Region struct {
	Boundary []image.Point   // внешний контур по часовой стрелке
	Pixels   []image.Point   // пиксели переднего плана области
	Interior []image.Point   // всё внутри внешнего контура, включая дыры
	Bounds   image.Rectangle // описывающий прямоугольник
}

// Area площадь залитого внешнего контура: пиксели области вместе с дырами.
// Без заполненного Interior считается по пикселям переднего плана.
func (r Region) Area() int {
	if r.Interior != nil {
		return len(r.Interior)
	}
	return len(r.Pixels)
}

// Center возвращает координаты центра описывающего прямоугольника.
func (r Region) Center() (x, y int) {
	return r.Bounds.Min.X + r.Bounds.Dx()/2, r.Bounds.Min.Y + r.Bounds.Dy()/2
}

// RegionFeature цветовые признаки области и её состояние.
type RegionFeature struct {
	MeanHue        float64         `json:"mean_hue"`
	MeanSaturation float64         `json:"mean_saturation"`
	MeanValue      float64         `json:"mean_value"`
	MeanBlue       float64         `json:"mean_blue"`
	MeanGreen      float64         `json:"mean_green"`
	MeanRed        float64         `json:"mean_red"`
	Condition      Condition       `json:"condition"`
	Area           int             `json:"-"`
	Bounds         image.Rectangle `json:"-"`
	Boundary       []image.Point   `json:"-"`
}
