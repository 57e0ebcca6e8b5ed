package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	particleRune = '●'
	lineRune     = '·'
)

// cell is one terminal cell of the frame. weight orders competing writes:
// particles beat lines and brighter lines beat fainter ones.
type cell struct {
	r      rune
	fg     colorful.Color
	weight float64
}

// buffer is a particle.Surface that rasterizes the field into terminal
// cells, each covering cellW x cellH canvas units.
type buffer struct {
	cols, rows   int
	cellW, cellH float64
	cells        []cell
}

func newBuffer(cols, rows int, cellW, cellH float64) *buffer {
	b := &buffer{cellW: cellW, cellH: cellH}
	b.resize(cols, rows)
	return b
}

func (b *buffer) resize(cols, rows int) {
	b.cols, b.rows = max(cols, 0), max(rows, 0)
	b.cells = make([]cell, b.cols*b.rows)
}

func (b *buffer) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= b.cols || y >= b.rows {
		return nil
	}
	return &b.cells[y*b.cols+x]
}

func (b *buffer) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / b.cellW)), int(math.Floor(y / b.cellH))
}

func (b *buffer) Clear() {
	clear(b.cells)
}

func (b *buffer) FillCircle(cx, cy, _ float64, c color.NRGBA) {
	x, y := b.toCell(cx, cy)
	if p := b.at(x, y); p != nil {
		*p = cell{r: particleRune, fg: blend(c, 1), weight: 2}
	}
}

// StrokeLine walks the cells between the endpoints with Bresenham's
// algorithm. Line width is ignored at cell resolution.
func (b *buffer) StrokeLine(x0, y0, x1, y1, _ float64, c color.NRGBA, alpha float64) {
	cx0, cy0 := b.toCell(x0, y0)
	cx1, cy1 := b.toCell(x1, y1)
	fg := blend(c, alpha)
	weight := alpha * float64(c.A) / 255

	dx := abs(cx1 - cx0)
	dy := -abs(cy1 - cy0)
	sx, sy := 1, 1
	if cx0 > cx1 {
		sx = -1
	}
	if cy0 > cy1 {
		sy = -1
	}
	errAcc := dx + dy
	for {
		if p := b.at(cx0, cy0); p != nil && p.weight < weight {
			*p = cell{r: lineRune, fg: fg, weight: weight}
		}
		if cx0 == cx1 && cy0 == cy1 {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			cx0 += sx
		}
		if e2 <= dx {
			errAcc += dx
			cy0 += sy
		}
	}
}

// flush copies the frame onto the screen; Show is left to the caller.
func (b *buffer) flush(s tcell.Screen) {
	for y := 0; y < b.rows; y++ {
		for x := 0; x < b.cols; x++ {
			c := b.cells[y*b.cols+x]
			if c.r == 0 {
				s.SetContent(x, y, ' ', nil, tcell.StyleDefault)
				continue
			}
			r, g, bl := c.fg.RGB255()
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(bl)))
			s.SetContent(x, y, c.r, nil, style)
		}
	}
}

// blend composites c at the given extra alpha over a black background.
func blend(c color.NRGBA, alpha float64) colorful.Color {
	a := float64(c.A) / 255 * math.Max(0, math.Min(1, alpha))
	fg := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	return colorful.Color{}.BlendRgb(fg, a)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
