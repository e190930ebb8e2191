package tui

import (
	"testing"

	"github.com/vovakirdan/tui-bubbles/internal/core"
)

func TestFitSide(t *testing.T) {
	tests := []struct {
		cols, rows int
		want       int
		wantErr    bool
	}{
		{80, 24, 32, false},  // (24-2)*2 = 44 -> 32
		{40, 18, 32, false},  // 32 rows of pixels, 40 columns
		{200, 60, 64, false}, // 116 -> 64
		{20, 40, 16, false},  // width bound
		{10, 2, 0, true},     // no room above the HUD
	}

	for _, tc := range tests {
		got, err := FitSide(tc.cols, tc.rows)
		if (err != nil) != tc.wantErr {
			t.Errorf("FitSide(%d, %d) error = %v, wantErr %v", tc.cols, tc.rows, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("FitSide(%d, %d) = %d, want %d", tc.cols, tc.rows, got, tc.want)
		}
	}
}

func TestLayoutCentersCanvas(t *testing.T) {
	l := NewLayout(40, 18, 32)
	if l.Left != 4 {
		t.Errorf("Left = %d, want 4", l.Left)
	}
	if l.CanvasRows() != 16 {
		t.Errorf("CanvasRows() = %d, want 16", l.CanvasRows())
	}

	// Canvas wider than the terminal is never shifted left
	if l := NewLayout(10, 18, 32); l.Left != 0 {
		t.Errorf("Left = %d, want 0", l.Left)
	}
}

func TestLayoutPixelsAt(t *testing.T) {
	l := NewLayout(40, 18, 32)

	top, bottom, ok := l.PixelsAt(4, 0)
	if !ok || top != core.Pt(0, 0) || bottom != core.Pt(0, 1) {
		t.Errorf("PixelsAt(4, 0) = %v, %v, %v", top, bottom, ok)
	}

	top, bottom, ok = l.PixelsAt(35, 15)
	if !ok || top != core.Pt(31, 30) || bottom != core.Pt(31, 31) {
		t.Errorf("PixelsAt(35, 15) = %v, %v, %v", top, bottom, ok)
	}

	outside := [][2]int{{3, 0}, {36, 0}, {10, 16}, {10, -1}}
	for _, p := range outside {
		if _, _, ok := l.PixelsAt(p[0], p[1]); ok {
			t.Errorf("PixelsAt(%d, %d) should be outside the canvas", p[0], p[1])
		}
	}
}
