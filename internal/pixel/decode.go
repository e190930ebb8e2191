package pixel

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"math"
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"golang.org/x/image/draw"
)

// Decode reads an image in any registered format.
// Unknown or corrupt data is reported as *UnsupportedImageError.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		reason := "cannot decode"
		if errors.Is(err, image.ErrFormat) {
			reason = "unknown format"
		}
		return nil, "", &UnsupportedImageError{Reason: reason, Err: err}
	}
	return img, format, nil
}

// Open decodes the image file at path.
func Open(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("pixel: cannot open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(bufio.NewReader(f))
}

// ReadRaw reads a headerless dump of width×height pixels laid out in order.
func ReadRaw(r io.Reader, width, height int, order ChannelOrder) (*Sampler, error) {
	if width <= 0 || height <= 0 {
		return nil, &UnsupportedImageError{
			Reason: fmt.Sprintf("raw size %dx%d", width, height),
		}
	}

	if width > math.MaxInt/Channels/height {
		return nil, &UnsupportedImageError{
			Reason: fmt.Sprintf("raw size %dx%d overflows the buffer size", width, height),
		}
	}

	// Grow with the data instead of trusting the declared size up front.
	size := width * height * Channels
	pix, err := io.ReadAll(io.LimitReader(r, int64(size)))
	if err != nil {
		return nil, &UnsupportedImageError{Reason: "cannot read raw buffer", Err: err}
	}
	if len(pix) < size {
		return nil, &UnsupportedImageError{
			Reason: fmt.Sprintf("short raw buffer: %d of %d bytes", len(pix), size),
			Err:    io.ErrUnexpectedEOF,
		}
	}

	return NewSampler(Buffer{Pix: pix, Width: width, Height: height, Order: order})
}

// ScaleToSquare resamples img to side×side with Catmull-Rom filtering,
// discarding the original aspect ratio.
func ScaleToSquare(img image.Image, side int) (*image.NRGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, &UnsupportedImageError{Reason: "nothing to scale"}
	}
	if side <= 0 {
		return nil, fmt.Errorf("pixel: invalid square side %d", side)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, side, side))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// Load scales img to side×side and returns a sampler over the result.
func Load(img image.Image, side int) (*Sampler, error) {
	scaled, err := ScaleToSquare(img, side)
	if err != nil {
		return nil, err
	}
	return FromImage(scaled)
}
