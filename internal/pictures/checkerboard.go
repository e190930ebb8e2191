package pictures

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-bubbles/internal/registry"
)

func init() {
	registry.Register("checkerboard", func() registry.Picture { return Checkerboard{Checks: 8} })
}

// Checkerboard alternates two colors on a Checks×Checks board. Every
// pyramid level coarser than one check averages to the same gray-blue.
type Checkerboard struct {
	Checks int
}

func (Checkerboard) ID() string    { return "checkerboard" }
func (Checkerboard) Title() string { return "Checkerboard" }

var (
	checkLight = mustHex("#f4f1de")
	checkDark  = mustHex("#3d405b")
)

func (c Checkerboard) Render(side int) image.Image {
	n := max(c.Checks, 1)
	return paint(side, func(u, v float64) colorful.Color {
		if (int(u*float64(n))+int(v*float64(n)))%2 == 0 {
			return checkLight
		}
		return checkDark
	})
}
