// Package source resolves what the user wants to reveal, a built-in
// picture or an image file, into samplers at any grid resolution.
package source

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/tui-bubbles/internal/pixel"
	"github.com/vovakirdan/tui-bubbles/internal/registry"
)

// RawFormat describes headerless pixel dumps (".raw" files).
type RawFormat struct {
	Width, Height int
	Order         pixel.ChannelOrder
}

// Source is a picture that can be sampled at any square resolution.
type Source struct {
	name string
	pic  registry.Picture
	img  image.Image
}

// Name returns the picture ID or the image path.
func (s Source) Name() string {
	return s.name
}

// Sampler returns a side×side sampler. Built-in pictures are drawn at that
// size; decoded images are resampled.
func (s Source) Sampler(side int) (*pixel.Sampler, error) {
	if s.pic != nil {
		return pixel.FromImage(s.pic.Render(side))
	}
	return pixel.Load(s.img, side)
}

// FromPicture wraps a registered picture.
func FromPicture(pic registry.Picture) Source {
	return Source{name: pic.ID(), pic: pic}
}

// FromImage wraps an already decoded image.
func FromImage(name string, img image.Image) Source {
	return Source{name: name, img: img}
}

// Resolve interprets arg as a registered picture ID, then as a file path.
// Files ending in ".raw" are read with raw; everything else is decoded.
func Resolve(arg string, raw RawFormat) (Source, error) {
	if registry.Exists(arg) {
		pic, err := registry.Create(arg)
		if err != nil {
			return Source{}, err
		}
		return FromPicture(pic), nil
	}

	if strings.EqualFold(filepath.Ext(arg), ".raw") {
		f, err := os.Open(arg)
		if err != nil {
			return Source{}, fmt.Errorf("source: cannot open %s: %w", arg, err)
		}
		defer f.Close()

		s, err := pixel.ReadRaw(f, raw.Width, raw.Height, raw.Order)
		if err != nil {
			return Source{}, err
		}
		return FromImage(arg, s), nil
	}

	img, _, err := pixel.Open(arg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Source{}, fmt.Errorf("source: %q is neither a picture nor a file", arg)
		}
		return Source{}, err
	}
	return FromImage(arg, img), nil
}

// ParseRawSize parses "WxH".
func ParseRawSize(s string) (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("source: invalid raw size %q, want WxH", s)
	}
	return w, h, nil
}
