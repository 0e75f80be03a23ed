//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a square board into one image and draws it scaled.
type GridPainter struct {
	n   int
	img *ebiten.Image
	buf []byte
}

// NewGridPainter allocates a painter for an n x n board.
func NewGridPainter(n int) *GridPainter {
	return &GridPainter{n: n, img: ebiten.NewImage(n, n), buf: make([]byte, 4*n*n)}
}

// Blit uploads cells and draws them at scale. Boards of another size are
// skipped; callers resize the painter after Resize.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, p Palette, scale int) {
	if len(cells) != gp.n*gp.n {
		return
	}
	if err := FillCells(gp.buf, cells, p); err != nil {
		return
	}
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the board edge the painter was built for.
func (gp *GridPainter) Size() int { return gp.n }
