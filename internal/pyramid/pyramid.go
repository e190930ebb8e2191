package pyramid

import (
	"iter"
	"strings"
)

// Shape is how renderers draw a cell. It has no effect on construction.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeSquare
)

func (s Shape) String() string {
	if s == ShapeSquare {
		return "square"
	}
	return "circle"
}

// Toggle returns the other shape.
func (s Shape) Toggle() Shape {
	if s == ShapeSquare {
		return ShapeCircle
	}
	return ShapeSquare
}

// ParseShape accepts "square" or "circle". Returns false for anything else.
func ParseShape(s string) (Shape, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square":
		return ShapeSquare, true
	case "circle", "":
		return ShapeCircle, true
	default:
		return ShapeCircle, false
	}
}

// Pyramid is a finished cell tree. The caller owns it.
type Pyramid struct {
	Root        *Cell
	TotalCells  int
	Levels      int // including the leaf level
	MinCellSize int
	MaxCellSize int
	Shape       Shape
}

// GridSide returns the number of leaves per row.
func (p *Pyramid) GridSide() int {
	return p.MaxCellSize / p.MinCellSize
}

// LeafCount returns the number of level-0 cells.
func (p *Pyramid) LeafCount() int {
	side := p.GridSide()
	return side * side
}

// SplittableCount returns the number of cells that have children.
func (p *Pyramid) SplittableCount() int {
	return p.TotalCells - p.LeafCount()
}

// All yields every cell depth-first, parents before children.
func (p *Pyramid) All() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		walk(p.Root, yield)
	}
}

func walk(c *Cell, yield func(*Cell) bool) bool {
	if !yield(c) {
		return false
	}
	for _, child := range c.children {
		if !walk(child, yield) {
			return false
		}
	}
	return true
}

// Find returns the cell with the given id, or nil if it does not exist.
func (p *Pyramid) Find(id CellID) *Cell {
	top := p.Levels - 1
	if id.Level < 0 || id.Level > top {
		return nil
	}
	side := p.GridSide() >> id.Level
	if id.X < 0 || id.Y < 0 || id.X >= side || id.Y >= side {
		return nil
	}

	c := p.Root
	for level := top; level > id.Level; level-- {
		shift := level - 1 - id.Level
		c = c.children[childIndex((id.X>>shift)&1, (id.Y>>shift)&1)]
	}
	return c
}
