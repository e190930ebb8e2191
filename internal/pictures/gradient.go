package pictures

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-bubbles/internal/registry"
)

func init() {
	registry.Register("gradient", func() registry.Picture { return Gradient{} })
}

// Gradient blends four corner colors in CIE-L*a*b* space.
type Gradient struct{}

func (Gradient) ID() string    { return "gradient" }
func (Gradient) Title() string { return "Four-corner gradient" }

var (
	gradientTL = mustHex("#ff6b6b")
	gradientTR = mustHex("#ffd93d")
	gradientBL = mustHex("#4d96ff")
	gradientBR = mustHex("#6bcb77")
)

func (Gradient) Render(side int) image.Image {
	return paint(side, func(u, v float64) colorful.Color {
		top := gradientTL.BlendLab(gradientTR, u)
		bottom := gradientBL.BlendLab(gradientBR, u)
		return top.BlendLab(bottom, v)
	})
}
