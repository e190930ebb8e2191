// Package pixel turns decoded images into O(1) color lookups for the
// pyramid builder. It owns decoding, square resampling and channel-order
// normalization; nothing outside this package sees raw buffer layout.
package pixel

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/tui-bubbles/internal/core"
)

// Buffer describes a raw pixel buffer with a declared channel order.
type Buffer struct {
	Pix    []uint8
	Width  int
	Height int
	Stride int // Bytes per row; 0 means Width*Channels
	Order  ChannelOrder
}

// Sampler provides constant-time color lookup over a pixel buffer.
// Sampler also implements image.Image so it can be fed back into
// ScaleToSquare or any image/draw operation.
type Sampler struct {
	pix    []uint8
	width  int
	height int
	stride int
	off    [Channels]int
	order  ChannelOrder
}

// NewSampler validates buf and wraps it. The slice is not copied.
func NewSampler(buf Buffer) (*Sampler, error) {
	if buf.Width <= 0 || buf.Height <= 0 {
		return nil, &UnsupportedImageError{
			Reason: fmt.Sprintf("empty buffer %dx%d", buf.Width, buf.Height),
		}
	}
	if !buf.Order.Valid() {
		return nil, &UnsupportedImageError{Reason: "unknown channel order"}
	}
	if buf.Width > math.MaxInt/Channels {
		return nil, &UnsupportedImageError{
			Reason: fmt.Sprintf("width %d overflows the buffer size", buf.Width),
		}
	}

	stride := buf.Stride
	if stride == 0 {
		stride = buf.Width * Channels
	}
	if stride < buf.Width*Channels {
		return nil, &UnsupportedImageError{
			Reason: fmt.Sprintf("stride %d shorter than row of %d pixels", stride, buf.Width),
		}
	}

	row := buf.Width * Channels
	if buf.Height-1 > (math.MaxInt-row)/stride {
		return nil, &UnsupportedImageError{
			Reason: fmt.Sprintf("size %dx%d with stride %d overflows the buffer size", buf.Width, buf.Height, stride),
		}
	}
	need := stride*(buf.Height-1) + row
	if len(buf.Pix) < need {
		return nil, &UnsupportedImageError{
			Reason: fmt.Sprintf("buffer holds %d bytes, need %d", len(buf.Pix), need),
		}
	}

	return &Sampler{
		pix:    buf.Pix,
		width:  buf.Width,
		height: buf.Height,
		stride: stride,
		off:    offsets[buf.Order],
		order:  buf.Order,
	}, nil
}

// FromImage builds a sampler over a decoded image. NRGBA images are used
// in place; every other model is converted to straight-alpha NRGBA first.
func FromImage(img image.Image) (*Sampler, error) {
	if img == nil {
		return nil, &UnsupportedImageError{Reason: "nil image"}
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, &UnsupportedImageError{Reason: "image has no pixels"}
	}

	switch m := img.(type) {
	case *Sampler:
		return m, nil
	case *image.NRGBA:
		return NewSampler(Buffer{
			Pix:    m.Pix[m.PixOffset(b.Min.X, b.Min.Y):],
			Width:  b.Dx(),
			Height: b.Dy(),
			Stride: m.Stride,
			Order:  OrderRGBA,
		})
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return NewSampler(Buffer{
		Pix:    dst.Pix,
		Width:  b.Dx(),
		Height: b.Dy(),
		Stride: dst.Stride,
		Order:  OrderRGBA,
	})
}

// Width returns the buffer width in pixels.
func (s *Sampler) Width() int {
	return s.width
}

// Height returns the buffer height in pixels.
func (s *Sampler) Height() int {
	return s.height
}

// Order returns the physical channel order of the underlying buffer.
func (s *Sampler) Order() ChannelOrder {
	return s.order
}

// ColorAt returns the color of pixel (x, y) in (R, G, B, A) order.
func (s *Sampler) ColorAt(x, y int) (core.Color, error) {
	i, ok := s.offset(x, y)
	if !ok {
		return core.Color{}, &OutOfBoundsError{X: x, Y: y, Width: s.width, Height: s.height}
	}
	p := s.pix[i : i+Channels : i+Channels]
	return core.RGBA8(p[s.off[0]], p[s.off[1]], p[s.off[2]], p[s.off[3]]), nil
}

// offset returns the byte offset of pixel (x, y).
func (s *Sampler) offset(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return 0, false
	}
	i := y*s.stride + x*Channels
	if i+Channels > len(s.pix) {
		return 0, false
	}
	return i, true
}

// ColorModel implements image.Image.
func (s *Sampler) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (s *Sampler) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// At implements image.Image. Out-of-range points are transparent.
func (s *Sampler) At(x, y int) color.Color {
	i, ok := s.offset(x, y)
	if !ok {
		return color.NRGBA{}
	}
	p := s.pix[i : i+Channels : i+Channels]
	return color.NRGBA{R: p[s.off[0]], G: p[s.off[1]], B: p[s.off[2]], A: p[s.off[3]]}
}
