// Package reveal tracks which pyramid cells have been split and reports
// progress milestones. It never schedules anything: callers decide when a
// split happens, and SplitAll hands out events for the caller to pace.
package reveal

import (
	"iter"
	"strings"

	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/pyramid"
)

// DefaultMidway is the progress fraction reported as the midway milestone.
const DefaultMidway = 0.3

// Milestone is a set of progress thresholds crossed by a split.
type Milestone uint8

const (
	MilestoneMidway Milestone = 1 << iota
	MilestoneComplete

	MilestoneNone Milestone = 0
)

// Has reports whether m includes flag.
func (m Milestone) Has(flag Milestone) bool {
	return m&flag != 0
}

func (m Milestone) String() string {
	if m == MilestoneNone {
		return "none"
	}
	var parts []string
	if m.Has(MilestoneMidway) {
		parts = append(parts, "midway")
	}
	if m.Has(MilestoneComplete) {
		parts = append(parts, "complete")
	}
	return strings.Join(parts, "|")
}

// SplitEvent describes one successful split.
type SplitEvent struct {
	Cell         *pyramid.Cell
	Children     []*pyramid.Cell
	Programmatic bool
	Progress     float64   // progress after this split
	Milestone    Milestone // thresholds first crossed by this split
}

// Option configures a Machine.
type Option func(*Machine)

// WithMidway sets the midway threshold, clamped to [0, 1].
func WithMidway(fraction float64) Option {
	return func(m *Machine) {
		m.midway = core.ClampF(fraction, 0, 1)
	}
}

// Machine is the split state of one pyramid. It is not safe for concurrent
// use.
type Machine struct {
	p          *pyramid.Pyramid
	midway     float64
	splitCount int
	userSplits int
	active     int
	reached    Milestone
}

// New starts tracking p. Cells already split in p are counted.
func New(p *pyramid.Pyramid, opts ...Option) *Machine {
	m := &Machine{p: p, midway: DefaultMidway, active: 1}
	for _, opt := range opts {
		opt(m)
	}

	for c := range p.All() {
		if c.IsSplit() {
			m.splitCount++
			m.active += 3
		}
	}
	// Milestones are crossed by splits, so an untouched pyramid has reached
	// nothing even when midway is 0.
	if m.splitCount > 0 {
		m.reached = m.crossed()
	}
	return m
}

// Pyramid returns the tracked pyramid.
func (m *Machine) Pyramid() *pyramid.Pyramid {
	return m.p
}

// Split reveals the children of cell. It returns false and changes nothing
// when cell is nil, a leaf, already split, or not currently active.
func (m *Machine) Split(cell *pyramid.Cell, programmatic bool) (SplitEvent, bool) {
	if cell == nil || cell.IsLeaf() || cell.IsSplit() || !m.isActive(cell) {
		return SplitEvent{}, false
	}
	cell.MarkSplit()

	m.splitCount++
	if !programmatic {
		m.userSplits++
	}
	m.active += 3

	now := m.crossed()
	fresh := now &^ m.reached
	m.reached = now

	return SplitEvent{
		Cell:         cell,
		Children:     cell.Children(),
		Programmatic: programmatic,
		Progress:     m.Progress(),
		Milestone:    fresh,
	}, true
}

// SplitByID splits the cell addressed by id.
func (m *Machine) SplitByID(id pyramid.CellID, programmatic bool) (SplitEvent, bool) {
	return m.Split(m.p.Find(id), programmatic)
}

// SplitAll returns a lazy sequence that splits every remaining cell
// depth-first, parents before children, tagging each event programmatic.
// Each split happens when its event is pulled. Stopping early leaves the
// rest untouched; ranging again resumes from the current state.
func (m *Machine) SplitAll() iter.Seq[SplitEvent] {
	return func(yield func(SplitEvent) bool) {
		m.splitFrom(m.p.Root, yield)
	}
}

func (m *Machine) splitFrom(c *pyramid.Cell, yield func(SplitEvent) bool) bool {
	if c.IsLeaf() {
		return true
	}
	if !c.IsSplit() {
		if ev, ok := m.Split(c, true); ok && !yield(ev) {
			return false
		}
	}
	for i := range 4 {
		if !m.splitFrom(c.Child(i), yield) {
			return false
		}
	}
	return true
}

// CellAt returns the active cell covering image point (x, y), or nil when
// the point is outside the picture.
func (m *Machine) CellAt(x, y int) *pyramid.Cell {
	c := m.p.Root
	if !c.Bounds().Contains(x, y) {
		return nil
	}
	for c.IsSplit() {
		next := c
		for i := range 4 {
			if child := c.Child(i); child.Bounds().Contains(x, y) {
				next = child
				break
			}
		}
		if next == c {
			return nil
		}
		c = next
	}
	return c
}

// Active returns the cells currently shown, depth-first. They tile the
// picture without overlap.
func (m *Machine) Active() []*pyramid.Cell {
	out := make([]*pyramid.Cell, 0, m.active)
	var collect func(c *pyramid.Cell)
	collect = func(c *pyramid.Cell) {
		if !c.IsSplit() {
			out = append(out, c)
			return
		}
		for i := range 4 {
			collect(c.Child(i))
		}
	}
	collect(m.p.Root)
	return out
}

// isActive reports whether cell is on the current frontier of this pyramid.
func (m *Machine) isActive(cell *pyramid.Cell) bool {
	pos := cell.Position()
	return m.CellAt(pos.X, pos.Y) == cell
}

// SplitCount returns the number of cells split so far.
func (m *Machine) SplitCount() int {
	return m.splitCount
}

// UserSplits returns the number of splits not tagged programmatic.
func (m *Machine) UserSplits() int {
	return m.userSplits
}

// TotalCells returns the number of cells in the pyramid.
func (m *Machine) TotalCells() int {
	return m.p.TotalCells
}

// Splittable returns the number of cells that can ever be split.
func (m *Machine) Splittable() int {
	return m.p.SplittableCount()
}

// Progress returns the split fraction in [0, 1].
func (m *Machine) Progress() float64 {
	n := m.Splittable()
	if n <= 0 {
		return 1
	}
	return float64(m.splitCount) / float64(n)
}

// Complete reports whether every splittable cell has been split.
func (m *Machine) Complete() bool {
	return m.splitCount >= m.Splittable()
}

// Reached returns every milestone crossed so far.
func (m *Machine) Reached() Milestone {
	return m.reached
}

func (m *Machine) crossed() Milestone {
	var ms Milestone
	if m.Progress() >= m.midway {
		ms |= MilestoneMidway
	}
	if m.Complete() {
		ms |= MilestoneComplete
	}
	return ms
}
