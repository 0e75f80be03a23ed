package render

import (
	"fmt"
	"image"
	"image/color"

	"lifegrid/pkg/sims/life"
)

// Palette colors a binary board.
type Palette struct {
	Live color.RGBA
	Dead color.RGBA
}

// Palettes per variant. Extended boards use the warmer scheme the 3d theme
// showed.
var (
	StandardPalette = Palette{
		Live: color.RGBA{R: 235, G: 235, B: 240, A: 255},
		Dead: color.RGBA{R: 12, G: 12, B: 16, A: 255},
	}
	ExtendedPalette = Palette{
		Live: color.RGBA{R: 255, G: 170, B: 60, A: 255},
		Dead: color.RGBA{R: 20, G: 14, B: 30, A: 255},
	}
)

// PaletteFor returns the palette used for the named variant.
func PaletteFor(variant string) Palette {
	if life.LookupVariant(variant).Name == life.ExtendedName {
		return ExtendedPalette
	}
	return StandardPalette
}

// FillCells converts row-major 0/1 cells into RGBA pixels in buf.
func FillCells(buf []byte, cells []uint8, p Palette) error {
	if len(buf) < 4*len(cells) {
		return fmt.Errorf("render: buffer holds %d pixels, need %d", len(buf)/4, len(cells))
	}
	for i, c := range cells {
		col := p.Dead
		if c != 0 {
			col = p.Live
		}
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
	return nil
}

// Image renders an n x n board at scale pixels per cell.
func Image(cells []uint8, n, scale int, p Palette) (*image.RGBA, error) {
	if n <= 0 || len(cells) != n*n {
		return nil, fmt.Errorf("render: %d cells do not form a %dx%d board", len(cells), n, n)
	}
	scale = max(scale, 1)
	img := image.NewRGBA(image.Rect(0, 0, n*scale, n*scale))
	for row := range n {
		for col := range n {
			c := p.Dead
			if cells[row*n+col] != 0 {
				c = p.Live
			}
			for dy := range scale {
				for dx := range scale {
					img.SetRGBA(col*scale+dx, row*scale+dy, c)
				}
			}
		}
	}
	return img, nil
}
