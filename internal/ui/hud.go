//go:build ebiten

package ui

import (
	"image/color"

	"lifegrid/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the board.
type HUD struct {
	source   core.ParameterProvider
	title    string
	width    int
	panel    *ebiten.Image
	lines    []string
	extra    []string
	showHelp bool
}

// NewHUD constructs a HUD reading from source. A non-positive width disables it.
func NewHUD(source core.ParameterProvider, title string, width int) *HUD {
	if width <= 0 || source == nil {
		return nil
	}
	return &HUD{source: source, title: title, width: width, showHelp: true}
}

// Width is the panel width in pixels; zero for a disabled HUD.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// ToggleHelp shows or hides the key bindings.
func (h *HUD) ToggleHelp() {
	if h != nil {
		h.showHelp = !h.showHelp
	}
}

// Update refreshes the cached lines. extra rows, such as the current speed,
// are appended after the snapshot.
func (h *HUD) Update(extra ...string) {
	if h == nil {
		return
	}
	h.lines = Lines(h.source.Parameters())
	h.extra = extra
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	y += lineHeight

	draw := func(rows []string, c color.Color) {
		for _, row := range rows {
			y += lineHeight
			if y > height-panelPadding {
				return
			}
			text.Draw(h.panel, row, face, panelPadding, y, c)
		}
	}
	draw(h.lines, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	draw(h.extra, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	if h.showHelp {
		y += lineHeight
		draw(Help, color.RGBA{R: 150, G: 150, B: 160, A: 255})
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

const (
	panelPadding   = 12
	lineHeight     = 16
	headerBaseline = 6
)
