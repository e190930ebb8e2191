package tui

import (
	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/pyramid"
)

// hudRows is the number of terminal rows reserved below the canvas.
const hudRows = 2

// Layout maps terminal cells onto canvas pixels. Each terminal cell shows
// two vertically stacked pixels, so pixels come out roughly square.
type Layout struct {
	Cols, Rows int // Terminal size in cells
	Side       int // Canvas side in pixels
	Left       int // Blank columns before the canvas
}

// FitSide returns the largest power-of-two canvas side that fits a
// cols×rows terminal above the HUD.
func FitSide(cols, rows int) (int, error) {
	return pyramid.LargestPowerOfTwoAtMost(min(cols, (rows-hudRows)*2))
}

// NewLayout centers a side×side canvas horizontally.
func NewLayout(cols, rows, side int) Layout {
	return Layout{
		Cols: cols,
		Rows: rows,
		Side: side,
		Left: max(0, (cols-side)/2),
	}
}

// CanvasRows returns the terminal rows the canvas occupies.
func (l Layout) CanvasRows() int {
	return min((l.Side+1)/2, max(l.Rows-hudRows, 0))
}

// PixelsAt returns the two canvas pixels shown by terminal cell (col, row).
// ok is false when the cell is outside the canvas.
func (l Layout) PixelsAt(col, row int) (top, bottom core.Point, ok bool) {
	x := col - l.Left
	if x < 0 || x >= l.Side || row < 0 || row >= l.CanvasRows() {
		return core.Point{}, core.Point{}, false
	}
	return core.Pt(x, row*2), core.Pt(x, row*2+1), true
}
