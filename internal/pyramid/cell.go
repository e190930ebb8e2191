// Package pyramid builds the bubble pyramid: a quadtree of cells where every
// parent holds the average color of its four children and a single root
// covers the whole picture.
package pyramid

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-bubbles/internal/core"
)

// CellID addresses a cell by its level and grid index within that level.
// X is the grid row index and Y the grid column index.
type CellID struct {
	Level int
	X, Y  int
}

func (id CellID) String() string {
	return fmt.Sprintf("L%d(%d,%d)", id.Level, id.X, id.Y)
}

// Cell is one node of the pyramid. Geometry and color are fixed at
// construction; only the split flag ever changes, and only once.
type Cell struct {
	id       CellID
	size     int
	color    core.Color
	children []*Cell
	split    bool
}

// ID returns the stable address of the cell.
func (c *Cell) ID() CellID {
	return c.id
}

// Level returns the pyramid level, 0 for leaves.
func (c *Cell) Level() int {
	return c.id.Level
}

// Size returns the side length in image units.
func (c *Cell) Size() int {
	return c.size
}

// Position returns the top-left corner in full-image coordinates.
func (c *Cell) Position() core.Point {
	return core.Pt(c.id.X*c.size, c.id.Y*c.size)
}

// Bounds returns the square the cell covers.
func (c *Cell) Bounds() core.Rect {
	return core.Square(c.Position(), c.size)
}

// Color returns the cell color.
func (c *Cell) Color() core.Color {
	return c.color
}

// Children returns a copy of the four children, or nil for a leaf.
// Order: (2x,2y), (2x+1,2y), (2x,2y+1), (2x+1,2y+1).
func (c *Cell) Children() []*Cell {
	return slices.Clone(c.children)
}

// Child returns the i-th child, or nil if there is none.
func (c *Cell) Child(i int) *Cell {
	if i < 0 || i >= len(c.children) {
		return nil
	}
	return c.children[i]
}

// IsLeaf reports whether the cell has no children.
func (c *Cell) IsLeaf() bool {
	return len(c.children) == 0
}

// IsSplit reports whether the cell has been revealed into its children.
func (c *Cell) IsSplit() bool {
	return c.split
}

// MarkSplit flips the split flag. It returns false without changing
// anything for leaves and for cells that are already split.
func (c *Cell) MarkSplit() bool {
	if c.split || c.IsLeaf() {
		return false
	}
	c.split = true
	return true
}

// childIndex returns the position of the child covering grid cell (dx, dy)
// of the parent's 2×2 block.
func childIndex(dx, dy int) int {
	return dx + 2*dy
}
