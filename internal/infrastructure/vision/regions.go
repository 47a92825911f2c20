package vision

import (
	"image"

	"leafcheck/internal/domain/entity"
)

// neighbours8 соседи по часовой стрелке, начиная с запада (ось Y направлена вниз).
var neighbours8 = [8]image.Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// neighbours4 соседи по стороне; фон вокруг 8-связной области связен по сторонам.
var neighbours4 = [4]image.Point{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}

// ExtractRegions находит 8-связные области переднего плана и их внешние контуры.
// Дыры внутри областей отдельными областями не считаются, но входят в Interior.
// Порядок областей не гарантируется.
func ExtractRegions(m *entity.Mask) []entity.Region {
	labels := make([]int, len(m.Bits))
	regions := make([]entity.Region, 0)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			i := y*m.Width + x
			if !m.Bits[i] || labels[i] != 0 {
				continue
			}
			// Первая точка в порядке развёртки: сосед слева заведомо фон.
			id := len(regions) + 1
			start := image.Pt(x, y)
			pixels := floodFill(m, labels, id, start)
			bounds := boundsOf(pixels)
			regions = append(regions, entity.Region{
				Boundary: traceBoundary(m, start),
				Pixels:   pixels,
				Interior: fillInterior(labels, m.Width, id, bounds),
				Bounds:   bounds,
			})
		}
	}

	return regions
}

func floodFill(m *entity.Mask, labels []int, id int, start image.Point) []image.Point {
	labels[start.Y*m.Width+start.X] = id
	queue := []image.Point{start}
	pixels := make([]image.Point, 0, 64)

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		pixels = append(pixels, p)

		for _, d := range neighbours8 {
			q := p.Add(d)
			if !m.At(q.X, q.Y) {
				continue
			}
			j := q.Y*m.Width + q.X
			if labels[j] != 0 {
				continue
			}
			labels[j] = id
			queue = append(queue, q)
		}
	}

	return pixels
}

// fillInterior заливает внешний контур области id: фон заливается от рамки вокруг
// bounds, стенами служат только пиксели самой области. Всё, куда заливка не дошла,
// лежит внутри контура, включая дыры и вложенные в них другие области.
func fillInterior(labels []int, width, id int, bounds image.Rectangle) []image.Point {
	outer := bounds.Inset(-1)
	w, h := outer.Dx(), outer.Dy()
	outside := make([]bool, w*h)
	wall := func(p image.Point) bool {
		return p.In(bounds) && labels[p.Y*width+p.X] == id
	}

	// Рамка outer целиком вне bounds и связна, поэтому достаточно одного угла.
	outside[0] = true
	queue := []image.Point{outer.Min}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range neighbours4 {
			q := p.Add(d)
			if !q.In(outer) || wall(q) {
				continue
			}
			j := (q.Y-outer.Min.Y)*w + q.X - outer.Min.X
			if outside[j] {
				continue
			}
			outside[j] = true
			queue = append(queue, q)
		}
	}

	interior := make([]image.Point, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !outside[(y-outer.Min.Y)*w+x-outer.Min.X] {
				interior = append(interior, image.Pt(x, y))
			}
		}
	}
	return interior
}

// traceBoundary обходит внешний контур области методом соседей Мура.
// Обход завершается, когда из стартовой точки снова делается первый шаг.
func traceBoundary(m *entity.Mask, start image.Point) []image.Point {
	var boundary []image.Point
	cur := start
	back := start.Add(neighbours8[0])
	var first image.Point
	limit := 4*len(m.Bits) + 8

	for step := 0; step < limit; step++ {
		next, prev, ok := nextBoundaryPixel(m, cur, back)
		if !ok {
			break
		}
		if step == 0 {
			first = next
		} else if cur == start && next == first {
			break
		}
		boundary = append(boundary, cur)
		cur, back = next, prev
	}

	if len(boundary) == 0 {
		return []image.Point{start}
	}
	return boundary
}

// nextBoundaryPixel ищет по часовой стрелке от back первого соседа cur из переднего плана.
// prev — последний просмотренный фоновый сосед, он становится новой точкой возврата.
func nextBoundaryPixel(m *entity.Mask, cur, back image.Point) (next, prev image.Point, ok bool) {
	k := directionOf(back.Sub(cur))
	prev = back
	for i := 1; i <= 8; i++ {
		q := cur.Add(neighbours8[(k+i)%8])
		if m.At(q.X, q.Y) {
			return q, prev, true
		}
		prev = q
	}
	return cur, back, false
}

func directionOf(d image.Point) int {
	for i, n := range neighbours8 {
		if n == d {
			return i
		}
	}
	return 0
}

func boundsOf(pixels []image.Point) image.Rectangle {
	r := image.Rectangle{Min: pixels[0], Max: pixels[0].Add(image.Pt(1, 1))}
	for _, p := range pixels[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}
