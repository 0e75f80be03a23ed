package render

import (
	"image/color"
	"testing"
)

func TestFillCells(t *testing.T) {
	cells := []uint8{1, 0, 0, 1}
	buf := make([]byte, 16)
	if err := FillCells(buf, cells, StandardPalette); err != nil {
		t.Fatal(err)
	}
	for i, c := range cells {
		want := StandardPalette.Dead
		if c == 1 {
			want = StandardPalette.Live
		}
		got := color.RGBA{R: buf[i*4], G: buf[i*4+1], B: buf[i*4+2], A: buf[i*4+3]}
		if got != want {
			t.Fatalf("pixel %d = %v, want %v", i, got, want)
		}
	}
}

func TestFillCellsShortBuffer(t *testing.T) {
	if err := FillCells(make([]byte, 7), []uint8{0, 1}, StandardPalette); err == nil {
		t.Fatal("expected an error for a short buffer")
	}
}

func TestImageScales(t *testing.T) {
	cells := []uint8{
		1, 0,
		0, 0,
	}
	img, err := Image(cells, 2, 3, ExtendedPalette)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("bounds %v", b)
	}
	if got := img.RGBAAt(2, 2); got != ExtendedPalette.Live {
		t.Fatalf("live block pixel = %v", got)
	}
	if got := img.RGBAAt(3, 0); got != ExtendedPalette.Dead {
		t.Fatalf("dead block pixel = %v", got)
	}
	if _, err := Image(cells, 3, 1, ExtendedPalette); err == nil {
		t.Fatal("expected an error for a mismatched board")
	}
}

func TestPaletteFor(t *testing.T) {
	if PaletteFor("extended") != ExtendedPalette || PaletteFor("3d") != ExtendedPalette {
		t.Fatal("extended variants should use the extended palette")
	}
	if PaletteFor("standard") != StandardPalette || PaletteFor("bogus") != StandardPalette {
		t.Fatal("everything else should use the standard palette")
	}
}
