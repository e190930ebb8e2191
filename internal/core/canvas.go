package core

import (
	"image"
	"image/color"
)

// Canvas is a 2D pixel buffer in image space that renderers paint pyramid
// cells into. It decouples drawing from the terminal: the platform layer
// decides how pixels map onto character cells.
type Canvas struct {
	width  int
	height int
	bg     Color
	pixels []Color
}

// NewCanvas creates a canvas of the given size filled with bg.
func NewCanvas(width, height int, bg Color) *Canvas {
	c := &Canvas{
		width:  max(width, 0),
		height: max(height, 0),
		bg:     bg,
	}
	c.pixels = make([]Color, c.width*c.height)
	c.Clear()
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Background returns the color used by Clear.
func (c *Canvas) Background() Color {
	return c.bg
}

// Resize changes the canvas dimensions and clears it.
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width != c.width || height != c.height {
		c.width = width
		c.height = height
		c.pixels = make([]Color, width*height)
	}
	c.Clear()
}

// Clear fills the whole canvas with the background color.
func (c *Canvas) Clear() {
	for i := range c.pixels {
		c.pixels[i] = c.bg
	}
}

// Set paints a single pixel, compositing col over the background.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) Set(x, y int, col Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.pixels[y*c.width+x] = col.Over(c.bg)
}

// Get returns the pixel at (x, y), or the background when out of bounds.
func (c *Canvas) Get(x, y int) Color {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return c.bg
	}
	return c.pixels[y*c.width+x]
}

// FillRect paints every pixel of r.
func (c *Canvas) FillRect(r Rect, col Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			c.Set(x, y, col)
		}
	}
}

// FillCircle paints the disc inscribed in r. The rest of r is reset to the
// background so a circle replacing a square never leaves stale corners.
// Squares of side 1 or 2 are filled completely.
func (c *Canvas) FillCircle(r Rect, col Color) {
	if r.W <= 2 || r.H <= 2 {
		c.FillRect(r, col)
		return
	}

	// Compare doubled coordinates so pixel centers stay integral.
	cx := 2*r.X + r.W
	cy := 2*r.Y + r.H
	radius := min(r.W, r.H)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			dx := 2*x + 1 - cx
			dy := 2*y + 1 - cy
			if dx*dx+dy*dy <= radius*radius {
				c.Set(x, y, col)
			} else {
				c.Set(x, y, Transparent)
			}
		}
	}
}

// Image converts the canvas to an 8-bit NRGBA image.
func (c *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			r, g, b, a := c.pixels[y*c.width+x].Bytes()
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: a})
		}
	}
	return img
}
