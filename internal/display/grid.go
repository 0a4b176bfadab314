package display

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/kamstrup/intmap"
	"github.com/lucasb-eyer/go-colorful"
)

// Field units covered by one terminal cell
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Glyph ranks, higher wins when several shapes share a cell
const (
	rankEmpty = iota - 1
	rankLine
	rankSmall
	rankMedium
	rankLarge
)

type cell struct {
	glyph rune
	rank  int
	col   colorful.Color
}

// cellGrid is a Surface that rasterizes into terminal cells. Only touched
// cells are stored; the rest show the clear colour.
type cellGrid struct {
	cols, rows int
	bg         colorful.Color
	cells      *intmap.Map[int, cell]
	touched    []int // Keys in first-touch order
}

func newCellGrid(cols, rows int) *cellGrid {
	return &cellGrid{
		cols:  cols,
		rows:  rows,
		bg:    toColorful(color.NRGBA{A: 255}),
		cells: intmap.New[int, cell](256),
	}
}

func (g *cellGrid) resize(cols, rows int) {
	g.cols, g.rows = cols, rows
	g.reset()
}

func (g *cellGrid) reset() {
	g.cells.Clear()
	g.touched = g.touched[:0]
}

func (g *cellGrid) Clear(c color.NRGBA) {
	g.bg = toColorful(c)
	g.reset()
}

func (g *cellGrid) FillCircle(x, y, r float64, c color.NRGBA) {
	switch {
	case r >= 2:
		g.plot(x, y, '●', rankLarge, c)
	case r >= 1.2:
		g.plot(x, y, '•', rankMedium, c)
	default:
		g.plot(x, y, '·', rankSmall, c)
	}
}

// StrokeLine samples the segment every half cell and marks each cell once
func (g *cellGrid) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	steps := int(math.Max(math.Abs(x1-x0)/(CellWidth/2), math.Abs(y1-y0)/(CellHeight/2))) + 1
	last := -1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x, y := x0+(x1-x0)*t, y0+(y1-y0)*t
		key, ok := g.key(x, y)
		if !ok || key == last {
			continue
		}
		last = key
		g.plot(x, y, '.', rankLine, c)
	}
}

func (g *cellGrid) key(x, y float64) (int, bool) {
	if x < 0 || y < 0 {
		return 0, false
	}
	col, row := int(x/CellWidth), int(y/CellHeight)
	if col >= g.cols || row >= g.rows {
		return 0, false
	}
	return row*g.cols + col, true
}

func (g *cellGrid) plot(x, y float64, glyph rune, rank int, c color.NRGBA) {
	key, ok := g.key(x, y)
	if !ok {
		return
	}

	cl, seen := g.cells.Get(key)
	if !seen {
		cl = cell{rank: rankEmpty, col: g.bg}
		g.touched = append(g.touched, key)
	}
	cl.col = cl.col.BlendRgb(toColorful(c), float64(c.A)/255)
	if rank > cl.rank {
		cl.glyph = glyph
		cl.rank = rank
	}
	g.cells.Put(key, cl)
}

// draw copies the grid to the screen and shows it
func (g *cellGrid) draw(s tcell.Screen) {
	base := tcell.StyleDefault.Background(tcellColor(g.bg))
	s.Fill(' ', base)
	for _, key := range g.touched {
		cl, _ := g.cells.Get(key)
		s.SetContent(key%g.cols, key/g.cols, cl.glyph, nil, base.Foreground(tcellColor(cl.col)))
	}
	s.Show()
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
