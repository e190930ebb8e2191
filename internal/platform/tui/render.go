package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/pyramid"
)

// upperHalf is drawn with the top pixel as foreground and the bottom pixel
// as background.
const upperHalf = '▀'

// Paint clears c and draws every cell in its shape.
func Paint(c *core.Canvas, cells []*pyramid.Cell, shape pyramid.Shape) {
	c.Clear()
	for _, cell := range cells {
		if shape == pyramid.ShapeSquare {
			c.FillRect(cell.Bounds(), cell.Color())
		} else {
			c.FillCircle(cell.Bounds(), cell.Color())
		}
	}
}

type pixelPair struct {
	top, bottom string
}

// RenderCanvas converts the top rows*2 pixels of c to a styled string,
// indented by left columns. Groups adjacent cells with the same colors to
// minimize ANSI escape sequences.
func RenderCanvas(c *core.Canvas, r *lipgloss.Renderer, left, rows int) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	styles := make(map[pixelPair]lipgloss.Style)
	styleFor := func(p pixelPair) lipgloss.Style {
		st, ok := styles[p]
		if !ok {
			st = r.NewStyle().
				Foreground(lipgloss.Color(p.top)).
				Background(lipgloss.Color(p.bottom))
			styles[p] = st
		}
		return st
	}

	pad := strings.Repeat(" ", max(left, 0))
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow((c.Width()*4 + left + 1) * rows)

	for row := range rows {
		if row > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(pad)

		// Group consecutive cells with the same color pair for efficiency
		x := 0
		for x < c.Width() {
			start := pairAt(c, x, row)
			n := 0
			for x < c.Width() && pairAt(c, x, row) == start {
				n++
				x++
			}
			sb.WriteString(styleFor(start).Render(strings.Repeat(string(upperHalf), n)))
		}
	}
	return sb.String()
}

func pairAt(c *core.Canvas, x, row int) pixelPair {
	return pixelPair{
		top:    c.Get(x, row*2).Hex(),
		bottom: c.Get(x, row*2+1).Hex(),
	}
}
