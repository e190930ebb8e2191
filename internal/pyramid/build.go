package pyramid

import (
	"errors"
	"fmt"
	"math/bits"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-bubbles/internal/core"
)

// Sampler is the pixel source consumed by Build. The picture must already be
// scaled to one pixel per leaf cell.
type Sampler interface {
	Width() int
	Height() int
	ColorAt(x, y int) (core.Color, error)
}

// Option configures Build.
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers builds each level with up to n goroutines, each owning a
// disjoint band of rows. n <= 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// Build constructs the pyramid bottom-up from s. minSize and maxSize must be
// powers of two with minSize < maxSize, and s must be (maxSize/minSize)
// pixels square. On error no pyramid is returned.
func Build(s Sampler, minSize, maxSize int, square bool, opts ...Option) (*Pyramid, error) {
	if s == nil {
		return nil, errors.New("pyramid: nil sampler")
	}
	if err := validateRange(minSize, maxSize); err != nil {
		return nil, err
	}

	side := maxSize / minSize
	if s.Width() != side || s.Height() != side {
		return nil, &InvalidSizeRangeError{
			Min:    minSize,
			Max:    maxSize,
			Reason: fmt.Sprintf("needs a %dx%d picture, got %dx%d", side, side, s.Width(), s.Height()),
		}
	}

	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	grid, err := buildLeaves(s, side, minSize, o)
	if err != nil {
		return nil, err
	}
	total := side * side
	level := 0

	for cellSize := minSize; cellSize < maxSize; {
		side /= 2
		cellSize *= 2
		level++
		if grid, err = buildLevel(grid, side, level, cellSize, o); err != nil {
			return nil, err
		}
		total += side * side
	}

	shape := ShapeCircle
	if square {
		shape = ShapeSquare
	}

	return &Pyramid{
		Root:        grid[0],
		TotalCells:  total,
		Levels:      level + 1,
		MinCellSize: minSize,
		MaxCellSize: maxSize,
		Shape:       shape,
	}, nil
}

// buildLeaves samples one leaf per pixel. Grids are row-major: index y*side+x.
func buildLeaves(s Sampler, side, size int, o options) ([]*Cell, error) {
	grid := make([]*Cell, side*side)
	err := o.forRows(side, func(y0, y1 int) error {
		for y := y0; y < y1; y++ {
			for x := 0; x < side; x++ {
				col, err := s.ColorAt(x, y)
				if err != nil {
					return fmt.Errorf("pyramid: sample leaf (%d,%d): %w", x, y, err)
				}
				grid[y*side+x] = &Cell{
					id:    CellID{Level: 0, X: x, Y: y},
					size:  size,
					color: col,
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return grid, nil
}

// buildLevel reduces prev (a grid of 2*side per row) into a side×side grid.
// prev is only read.
func buildLevel(prev []*Cell, side, level, size int, o options) ([]*Cell, error) {
	prevSide := side * 2
	grid := make([]*Cell, side*side)
	err := o.forRows(side, func(y0, y1 int) error {
		for y := y0; y < y1; y++ {
			for x := 0; x < side; x++ {
				children := make([]*Cell, 4)
				for dy := range 2 {
					for dx := range 2 {
						children[childIndex(dx, dy)] = prev[(2*y+dy)*prevSide+2*x+dx]
					}
				}
				grid[y*side+x] = &Cell{
					id:       CellID{Level: level, X: x, Y: y},
					size:     size,
					color:    core.Average(children[0].color, children[1].color, children[2].color, children[3].color),
					children: children,
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pyramid: build level %d: %w", level, err)
	}
	return grid, nil
}

// forRows runs fn over [0, n) split into contiguous bands, one per worker.
func (o options) forRows(n int, fn func(y0, y1 int) error) error {
	w := min(o.workers, n)
	if w <= 1 {
		return fn(0, n)
	}

	band := (n + w - 1) / w
	var g errgroup.Group
	for y0 := 0; y0 < n; y0 += band {
		y1 := min(y0+band, n)
		g.Go(func() error {
			return fn(y0, y1)
		})
	}
	return g.Wait()
}

func validateRange(minSize, maxSize int) error {
	switch {
	case !isPowerOfTwo(minSize):
		return &InvalidSizeRangeError{Min: minSize, Max: maxSize, Reason: "minimum is not a power of two"}
	case !isPowerOfTwo(maxSize):
		return &InvalidSizeRangeError{Min: minSize, Max: maxSize, Reason: "maximum is not a power of two"}
	case minSize >= maxSize:
		return &InvalidSizeRangeError{Min: minSize, Max: maxSize, Reason: "minimum must be below maximum"}
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// LargestPowerOfTwoAtMost returns 2^floor(log2(n)).
func LargestPowerOfTwoAtMost(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("pyramid: no power of two at most %d", n)
	}
	return 1 << (bits.Len(uint(n)) - 1), nil
}

// FitRange picks the size bounds for a picture shown in available units:
// the largest power of two that fits becomes the maximum. minSize is
// rounded down to a power of two.
func FitRange(available, minSize int) (lo, hi int, err error) {
	hi, err = LargestPowerOfTwoAtMost(available)
	if err != nil {
		return 0, 0, err
	}
	lo, err = LargestPowerOfTwoAtMost(minSize)
	if err != nil {
		return 0, 0, err
	}
	if err := validateRange(lo, hi); err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}
