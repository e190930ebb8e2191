package pictures

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-bubbles/internal/registry"
)

func init() {
	registry.Register("stripes", func() registry.Picture { return Stripes{Count: 5} })
}

// Stripes draws diagonal rainbow stripes.
type Stripes struct {
	Count int
}

func (Stripes) ID() string    { return "stripes" }
func (Stripes) Title() string { return "Diagonal stripes" }

func (s Stripes) Render(side int) image.Image {
	n := float64(max(s.Count, 1))
	return paint(side, func(u, v float64) colorful.Color {
		t := frac((u + v) / 2 * n)
		return colorful.Hsv(t*360, 0.75, 0.95)
	})
}
