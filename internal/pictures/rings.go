package pictures

import (
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-bubbles/internal/registry"
)

func init() {
	registry.Register("rings", func() registry.Picture { return Rings{Count: 6} })
}

// Rings draws concentric bands whose hue turns once from center to corner.
type Rings struct {
	Count int
}

func (Rings) ID() string    { return "rings" }
func (Rings) Title() string { return "Concentric rings" }

func (r Rings) Render(side int) image.Image {
	n := float64(max(r.Count, 1))
	return paint(side, func(u, v float64) colorful.Color {
		d := math.Hypot(u-0.5, v-0.5) / math.Sqrt2 * 2 // 0 at center, 1 at corners
		band := math.Floor(d * n)
		light := 0.55
		if int(band)%2 == 1 {
			light = 0.35
		}
		return colorful.Hcl(frac(d)*360, 0.6, light)
	})
}
