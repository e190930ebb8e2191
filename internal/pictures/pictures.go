// Package pictures holds the built-in procedural pictures. Importing it
// registers every picture with the registry.
package pictures

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// shader returns the color at normalized coordinates u, v in [0, 1).
type shader func(u, v float64) colorful.Color

// paint evaluates fn at every pixel center of a side×side image.
func paint(side int, fn shader) *image.NRGBA {
	side = max(side, 1)
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		v := (float64(y) + 0.5) / float64(side)
		for x := 0; x < side; x++ {
			u := (float64(x) + 0.5) / float64(side)
			r, g, b := fn(u, v).Clamped().RGB255()
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// mustHex parses a palette constant.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// frac returns the fractional part of v in [0, 1).
func frac(v float64) float64 {
	return v - math.Floor(v)
}
