package core

import (
	"math"
	"testing"
)

func TestRGBA8(t *testing.T) {
	c := RGBA8(255, 0, 51, 255)
	if c.R != 1 || c.G != 0 || c.A != 1 {
		t.Errorf("RGBA8 = %+v, want R=1 G=0 A=1", c)
	}
	if math.Abs(c.B-0.2) > 1e-12 {
		t.Errorf("RGBA8 blue = %f, want 0.2", c.B)
	}
	if !c.Valid() {
		t.Error("RGBA8 color should be valid")
	}
}

func TestAverageIncludesAlpha(t *testing.T) {
	got := Average(
		Color{R: 1, G: 0, B: 0, A: 1},
		Color{R: 0, G: 1, B: 0, A: 1},
		Color{R: 0, G: 0, B: 1, A: 0},
		Color{R: 1, G: 1, B: 1, A: 0},
	)
	want := Color{R: 0.5, G: 0.5, B: 0.5, A: 0.5}
	if got != want {
		t.Errorf("Average = %+v, want %+v", got, want)
	}
}

func TestAverageEmpty(t *testing.T) {
	if got := Average(); got != Transparent {
		t.Errorf("Average() = %+v, want transparent", got)
	}
}

func TestColorValid(t *testing.T) {
	tests := []struct {
		name  string
		c     Color
		valid bool
	}{
		{"black", Black, true},
		{"white", White, true},
		{"negative channel", Color{R: -0.1, A: 1}, false},
		{"alpha above one", Color{A: 1.5}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Valid(); got != tc.valid {
				t.Errorf("Valid() = %v, want %v", got, tc.valid)
			}
		})
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	c := RGBA8(0x12, 0x34, 0xab, 0xff)
	if got := c.Hex(); got != "#1234ab" {
		t.Errorf("Hex() = %s, want #1234ab", got)
	}

	parsed, err := ParseHex("#1234ab")
	if err != nil {
		t.Fatalf("ParseHex failed: %v", err)
	}
	r, g, b, a := parsed.Bytes()
	if r != 0x12 || g != 0x34 || b != 0xab || a != 0xff {
		t.Errorf("ParseHex bytes = %d,%d,%d,%d", r, g, b, a)
	}

	if _, err := ParseHex("not-a-color"); err == nil {
		t.Error("ParseHex should reject garbage")
	}
}

func TestColorOver(t *testing.T) {
	half := Color{R: 1, G: 1, B: 1, A: 0.5}
	got := half.Over(Black)
	if got != (Color{R: 0.5, G: 0.5, B: 0.5, A: 1}) {
		t.Errorf("Over = %+v", got)
	}
	if Transparent.Over(White) != White {
		t.Error("transparent over white should be white")
	}
}
