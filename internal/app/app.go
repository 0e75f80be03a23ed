//go:build ebiten

package app

import (
	"fmt"
	"log/slog"
	"time"

	"lifegrid/internal/render"
	"lifegrid/internal/session"
	"lifegrid/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var slotKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6}

// Game adapts a Controller to the ebiten.Game interface.
type Game struct {
	ctrl    *Controller
	painter *render.GridPainter
	hud     *ui.HUD
	logger  *slog.Logger

	scale int
	seed  int64
}

// New constructs a Game. A zero hudWidth hides the parameter panel.
func New(ctrl *Controller, win *WindowConfig, seed int64, logger *slog.Logger) *Game {
	s := ctrl.Session()
	return &Game{
		ctrl:    ctrl,
		painter: render.NewGridPainter(s.Size().W),
		hud:     ui.NewHUD(s, s.Name(), win.HUDWidth),
		logger:  logger,
		scale:   max(win.Scale, 1),
		seed:    seed,
	}
}

// Reset reseeds the session and reapplies its configured start pattern.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.ctrl.Session().Reset(seed)
}

// Update handles input and advances the session.
func (g *Game) Update() error {
	s := g.ctrl.Session()
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.ctrl.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.Pause()
		s.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		_ = s.Seed(session.SeedRandom)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud.ToggleHelp()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		v := g.ctrl.CycleVariant()
		g.logger.Info("variant", "name", v.Name, "rule", v.Rules.String())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.ctrl.AdjustSpeed(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.ctrl.AdjustSpeed(-1)
	}
	for i, k := range slotKeys {
		if inpututil.IsKeyJustPressed(k) {
			if err := g.ctrl.LoadSlot(i); err != nil {
				g.logger.Warn("pattern", "slot", i+1, "err", err)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.resize(-GridSizeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.resize(GridSizeStep)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.ctrl.Click(x, y, g.scale)
	}

	g.ctrl.Tick()
	g.hud.Update(
		fmt.Sprintf("Speed: %d (%v)", g.ctrl.Speed(), g.ctrl.Interval()),
	)
	return nil
}

// resize changes the board side, then rebuilds the painter and the window so
// the new board fills it.
func (g *Game) resize(delta int) {
	n, changed, err := g.ctrl.ResizeBy(delta)
	if err != nil {
		g.logger.Warn("resize", "err", err)
		return
	}
	if !changed {
		return
	}
	g.painter = render.NewGridPainter(n)
	g.scale = CellScale(n)
	ebiten.SetWindowSize(g.Layout(0, 0))
	g.logger.Info("resized", "size", n, "scale", g.scale)
}

// Draw renders the board and the parameter panel. Update and Draw share a
// goroutine, so the live board is read without copying.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.ctrl.Session()
	g.painter.Blit(screen, s.Cells(), render.PaletteFor(s.Variant().Name), g.scale)
	side := g.painter.Size() * g.scale
	g.hud.Draw(screen, side, side)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	side := g.painter.Size() * g.scale
	return side + g.hud.Width(), side
}
