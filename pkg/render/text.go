package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/tooltipper/pkg/geom"
	"github.com/matzehuels/tooltipper/pkg/session"
)

// Characters used by the text grid.
const (
	PointerRune = '▼'
	TriggerFill = '░'
	EmptyCell   = ' '
)

// TextOption configures text rendering via [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	cellW, cellH int
	border       bool
}

// WithCellSize sets how many document pixels one character cell covers.
// The default of 1x1 suits fixtures written in terminal cells.
func WithCellSize(width, height int) TextOption {
	return func(r *textRenderer) { r.cellW, r.cellH = width, height }
}

// WithFrame draws the viewport outline around the grid.
func WithFrame() TextOption { return func(r *textRenderer) { r.border = true } }

// RenderText draws st as a character grid: triggers as labelled blocks, the
// open panel as a box with wrapped text and a pointer below it. Content
// outside the viewport is clipped. Trailing spaces are trimmed.
func RenderText(st session.State, opts ...TextOption) string {
	r := textRenderer{cellW: 1, cellH: 1}
	for _, opt := range opts {
		opt(&r)
	}
	r.cellW, r.cellH = max(r.cellW, 1), max(r.cellH, 1)

	g := newGrid(ceilDiv(st.Viewport.Width, r.cellW), ceilDiv(st.Viewport.Height, r.cellH))

	for _, t := range st.Triggers {
		rect := r.toCells(t.Rect)
		g.fill(rect, TriggerFill)
		g.text(rect.Top, rect.Left, ansi.Truncate(t.Label, rect.Width, ""))
	}

	if p, ok := st.OpenPanel(); ok {
		rect := r.toCells(p.Rect)
		g.box(rect)
		inner := max(rect.Width-2, 0)
		if p.Text != "" && inner > 0 {
			for i, line := range strings.Split(ansi.Wrap(p.Text, inner, ""), "\n") {
				if i >= rect.Height-2 {
					break
				}
				g.text(rect.Top+1+i, rect.Left+1, ansi.Truncate(line, inner, ""))
			}
		}
		col := rect.Left + (p.PointerLeft+geom.HalfFloor(p.PointerWidth))/r.cellW
		g.set(rect.Bottom(), col, PointerRune)
	}

	out := g.String()
	if r.border {
		out = frame(out, g.width)
	}
	return out
}

func (r textRenderer) toCells(rect geom.Rect) geom.Rect {
	top, left := floorDiv(rect.Top, r.cellH), floorDiv(rect.Left, r.cellW)
	bottom, right := ceilDiv(rect.Bottom(), r.cellH), ceilDiv(rect.Right(), r.cellW)
	return geom.NewRect(top, left, right-left, bottom-top)
}

type grid struct {
	width, height int
	cells         [][]rune
}

func newGrid(width, height int) *grid {
	g := &grid{width: width, height: height, cells: make([][]rune, height)}
	for i := range g.cells {
		g.cells[i] = []rune(strings.Repeat(string(EmptyCell), width))
	}
	return g
}

func (g *grid) set(row, col int, ch rune) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return
	}
	g.cells[row][col] = ch
}

func (g *grid) fill(rect geom.Rect, ch rune) {
	for row := rect.Top; row < rect.Bottom(); row++ {
		for col := rect.Left; col < rect.Right(); col++ {
			g.set(row, col, ch)
		}
	}
}

func (g *grid) text(row, col int, s string) {
	for i, ch := range []rune(s) {
		g.set(row, col+i, ch)
	}
}

func (g *grid) box(rect geom.Rect) {
	if rect.Width < 2 || rect.Height < 2 {
		g.fill(rect, '█')
		return
	}
	top, bottom := rect.Top, rect.Bottom()-1
	left, right := rect.Left, rect.Right()-1
	for col := left; col <= right; col++ {
		g.set(top, col, '─')
		g.set(bottom, col, '─')
	}
	for row := top + 1; row < bottom; row++ {
		g.set(row, left, '│')
		g.set(row, right, '│')
		for col := left + 1; col < right; col++ {
			g.set(row, col, EmptyCell)
		}
	}
	g.set(top, left, '┌')
	g.set(top, right, '┐')
	g.set(bottom, left, '└')
	g.set(bottom, right, '┘')
}

func (g *grid) String() string {
	lines := make([]string, g.height)
	for i, row := range g.cells {
		lines[i] = strings.TrimRight(string(row), string(EmptyCell))
	}
	return strings.Join(lines, "\n")
}

func frame(body string, width int) string {
	var b strings.Builder
	b.WriteString("+" + strings.Repeat("-", width) + "+\n")
	for _, line := range strings.Split(body, "\n") {
		b.WriteString("|" + line + strings.Repeat(" ", width-len([]rune(line))) + "|\n")
	}
	b.WriteString("+" + strings.Repeat("-", width) + "+")
	return b.String()
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
