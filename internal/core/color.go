package core

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color with every channel normalized to [0, 1].
// Channels are straight (not premultiplied) so averaging alpha is the same
// operation as averaging any other channel.
type Color struct {
	R, G, B, A float64
}

// Common colors used by renderers and tests.
var (
	Transparent = Color{}
	Black       = Color{A: 1}
	White       = Color{R: 1, G: 1, B: 1, A: 1}
)

// RGBA8 builds a Color from byte-scale channels.
func RGBA8(r, g, b, a uint8) Color {
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// Average returns the per-channel arithmetic mean of the given colors.
// Returns Transparent for an empty argument list.
func Average(colors ...Color) Color {
	if len(colors) == 0 {
		return Transparent
	}

	var sum Color
	for _, c := range colors {
		sum.R += c.R
		sum.G += c.G
		sum.B += c.B
		sum.A += c.A
	}

	n := float64(len(colors))
	return Color{
		R: sum.R / n,
		G: sum.G / n,
		B: sum.B / n,
		A: sum.A / n,
	}
}

// Valid reports whether every channel is within [0, 1].
func (c Color) Valid() bool {
	return inUnit(c.R) && inUnit(c.G) && inUnit(c.B) && inUnit(c.A)
}

// Over composites c onto an opaque background and returns an opaque color.
func (c Color) Over(bg Color) Color {
	return Color{
		R: c.R*c.A + bg.R*(1-c.A),
		G: c.G*c.A + bg.G*(1-c.A),
		B: c.B*c.A + bg.B*(1-c.A),
		A: 1,
	}
}

// Hex returns the color as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return c.colorful().Clamped().Hex()
}

// Bytes returns the channels scaled back to 0-255.
func (c Color) Bytes() (r, g, b, a uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B), toByte(c.A)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return fmt.Sprintf("%s@%.3f", c.Hex(), c.A)
}

// ParseHex parses "#rrggbb" or "#rgb" into an opaque Color.
func ParseHex(s string) (Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("core: invalid hex color %q: %w", s, err)
	}
	return Color{R: cf.R, G: cf.G, B: cf.B, A: 1}, nil
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

func toByte(v float64) uint8 {
	return uint8(ClampF(v, 0, 1)*255 + 0.5)
}
