package pixel

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/vovakirdan/tui-bubbles/internal/core"
)

// referencePixels is a 2×2 image with one distinct color per corner:
// red top-left, green top-right, blue bottom-left, half-transparent white
// bottom-right.
var referencePixels = [4]color.NRGBA{
	{R: 255, A: 255},
	{G: 255, A: 255},
	{B: 255, A: 255},
	{R: 255, G: 255, B: 255, A: 128},
}

// encodeReference lays out referencePixels in the given channel order.
func encodeReference(order ChannelOrder) []uint8 {
	pix := make([]uint8, 0, len(referencePixels)*Channels)
	for _, p := range referencePixels {
		rgba := [Channels]uint8{p.R, p.G, p.B, p.A}
		var px [Channels]uint8
		for ch, off := range offsets[order] {
			px[off] = rgba[ch]
		}
		pix = append(pix, px[:]...)
	}
	return pix
}

func TestSamplerChannelOrderReference(t *testing.T) {
	for _, order := range []ChannelOrder{OrderRGBA, OrderBGRA, OrderARGB, OrderABGR} {
		t.Run(order.String(), func(t *testing.T) {
			s, err := NewSampler(Buffer{Pix: encodeReference(order), Width: 2, Height: 2, Order: order})
			if err != nil {
				t.Fatalf("NewSampler failed: %v", err)
			}

			coords := [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
			for i, xy := range coords {
				got, err := s.ColorAt(xy[0], xy[1])
				if err != nil {
					t.Fatalf("ColorAt(%d, %d) failed: %v", xy[0], xy[1], err)
				}
				p := referencePixels[i]
				want := core.RGBA8(p.R, p.G, p.B, p.A)
				if got != want {
					t.Errorf("ColorAt(%d, %d) = %v, want %v", xy[0], xy[1], got, want)
				}
			}
		})
	}
}

func TestSamplerFromPNGReference(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, referencePixels[0])
	src.SetNRGBA(1, 0, referencePixels[1])
	src.SetNRGBA(0, 1, referencePixels[2])
	src.SetNRGBA(1, 1, referencePixels[3])

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}

	img, format, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %s, want png", format)
	}

	s, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	red, _ := s.ColorAt(0, 0)
	if red.R != 1 || red.G != 0 || red.B != 0 {
		t.Errorf("top-left should be red, got %v", red)
	}
	blue, _ := s.ColorAt(0, 1)
	if blue.B != 1 || blue.R != 0 {
		t.Errorf("bottom-left should be blue, got %v", blue)
	}
}

func TestSamplerOutOfBounds(t *testing.T) {
	s, err := NewSampler(Buffer{Pix: make([]uint8, 16), Width: 2, Height: 2})
	if err != nil {
		t.Fatalf("NewSampler failed: %v", err)
	}

	for _, xy := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		_, err := s.ColorAt(xy[0], xy[1])
		var oob *OutOfBoundsError
		if !errors.As(err, &oob) {
			t.Errorf("ColorAt(%d, %d) error = %v, want OutOfBoundsError", xy[0], xy[1], err)
			continue
		}
		if oob.X != xy[0] || oob.Y != xy[1] || oob.Width != 2 {
			t.Errorf("OutOfBoundsError = %+v", oob)
		}
	}
}

func TestNewSamplerRejectsUnusableBuffers(t *testing.T) {
	tests := []struct {
		name string
		buf  Buffer
	}{
		{"zero width", Buffer{Pix: make([]uint8, 16), Width: 0, Height: 2}},
		{"short buffer", Buffer{Pix: make([]uint8, 15), Width: 2, Height: 2}},
		{"narrow stride", Buffer{Pix: make([]uint8, 16), Width: 2, Height: 2, Stride: 4}},
		{"bad order", Buffer{Pix: make([]uint8, 16), Width: 2, Height: 2, Order: ChannelOrder(9)}},
		{"huge square", Buffer{Pix: nil, Width: 1 << 40, Height: 1 << 40}},
		{"huge width", Buffer{Pix: nil, Width: math.MaxInt/Channels + 1, Height: 1}},
		{"huge height", Buffer{Pix: make([]uint8, 16), Width: 2, Height: math.MaxInt}},
		{"huge stride", Buffer{Pix: make([]uint8, 16), Width: 2, Height: 3, Stride: math.MaxInt / 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSampler(tc.buf)
			var unsupported *UnsupportedImageError
			if !errors.As(err, &unsupported) {
				t.Errorf("NewSampler error = %v, want UnsupportedImageError", err)
			}
		})
	}
}

func TestSamplerStride(t *testing.T) {
	// 1×2 image with 4 padding bytes per row.
	pix := []uint8{
		10, 20, 30, 255, 0, 0, 0, 0,
		40, 50, 60, 255, 0, 0, 0, 0,
	}
	s, err := NewSampler(Buffer{Pix: pix, Width: 1, Height: 2, Stride: 8})
	if err != nil {
		t.Fatalf("NewSampler failed: %v", err)
	}

	got, err := s.ColorAt(0, 1)
	if err != nil {
		t.Fatalf("ColorAt failed: %v", err)
	}
	if got != core.RGBA8(40, 50, 60, 255) {
		t.Errorf("ColorAt(0, 1) = %v, want second row", got)
	}
}

func TestFromImageRejectsEmpty(t *testing.T) {
	var unsupported *UnsupportedImageError

	if _, err := FromImage(nil); !errors.As(err, &unsupported) {
		t.Errorf("FromImage(nil) error = %v", err)
	}
	if _, err := FromImage(image.NewNRGBA(image.Rect(0, 0, 0, 0))); !errors.As(err, &unsupported) {
		t.Errorf("FromImage(empty) error = %v", err)
	}
}

func TestFromImageSubImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(2, 2, color.NRGBA{R: 9, G: 8, B: 7, A: 255})

	sub := src.SubImage(image.Rect(2, 2, 4, 4))
	s, err := FromImage(sub)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if s.Width() != 2 || s.Height() != 2 {
		t.Fatalf("sampler size = %dx%d, want 2x2", s.Width(), s.Height())
	}
	got, _ := s.ColorAt(0, 0)
	if got != core.RGBA8(9, 8, 7, 255) {
		t.Errorf("sub-image origin = %v", got)
	}
}

func TestFromImageConvertsGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 1, 1))
	src.SetGray(0, 0, color.Gray{Y: 51})

	s, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	got, _ := s.ColorAt(0, 0)
	if got != core.RGBA8(51, 51, 51, 255) {
		t.Errorf("gray pixel = %v", got)
	}
}

func TestSamplerImplementsImage(t *testing.T) {
	s, err := NewSampler(Buffer{Pix: encodeReference(OrderBGRA), Width: 2, Height: 2, Order: OrderBGRA})
	if err != nil {
		t.Fatalf("NewSampler failed: %v", err)
	}

	var img image.Image = s
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Errorf("Bounds() = %v", img.Bounds())
	}
	if got := img.At(1, 0).(color.NRGBA); got != referencePixels[1] {
		t.Errorf("At(1, 0) = %v, want %v", got, referencePixels[1])
	}
	if got := img.At(5, 5).(color.NRGBA); got != (color.NRGBA{}) {
		t.Errorf("At outside bounds = %v, want transparent", got)
	}
}

func TestParseChannelOrder(t *testing.T) {
	tests := []struct {
		in   string
		want ChannelOrder
		ok   bool
	}{
		{"rgba", OrderRGBA, true},
		{"BGRA", OrderBGRA, true},
		{" argb ", OrderARGB, true},
		{"abgr", OrderABGR, true},
		{"", OrderRGBA, true},
		{"rgb", OrderRGBA, false},
	}

	for _, tc := range tests {
		got, ok := ParseChannelOrder(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseChannelOrder(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
