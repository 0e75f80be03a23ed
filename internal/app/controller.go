package app

import (
	"fmt"
	"slices"
	"time"

	"lifegrid/internal/core"
	"lifegrid/internal/session"
	"lifegrid/pkg/patterns"
	"lifegrid/pkg/sims/life"
)

// MaxSpeed is the first speed whose delay reaches core.MinDelay.
const MaxSpeed = int((core.MaxDelay - core.MinDelay) / core.SpeedStep)

// Board sizes reachable from the resize keys.
const (
	MinGridSize  = 10
	MaxGridSize  = 200
	GridSizeStep = 10
)

// CellScale picks pixels per cell so a board of side n stays near 600 pixels,
// between 6 and 15 pixels per cell.
func CellScale(n int) int {
	if n <= 0 {
		return 15
	}
	return min(max(600/n, 6), 15)
}

// Controller turns user intents into session calls and paces running steps.
// It is input-agnostic so the GUI only maps keys and clicks onto it.
type Controller struct {
	sess     *session.Session
	timer    *core.FixedStep
	speed    int
	stepOnce bool
}

// NewController wraps s at the given speed.
func NewController(s *session.Session, speed int) *Controller {
	speed = min(max(speed, 0), MaxSpeed)
	return &Controller{sess: s, timer: core.NewFixedStep(speed), speed: speed}
}

// Session returns the driven session.
func (c *Controller) Session() *session.Session { return c.sess }

// TogglePause starts a paused session and pauses a running one.
func (c *Controller) TogglePause() {
	if c.sess.Running() {
		c.sess.Pause()
		return
	}
	c.timer.Reset()
	c.sess.Start()
}

// StepOnce queues a single generation. It is ignored while running.
func (c *Controller) StepOnce() {
	if !c.sess.Running() {
		c.stepOnce = true
	}
}

// Speed returns the current speed setting.
func (c *Controller) Speed() int { return c.speed }

// Interval is the pause between generations at the current speed.
func (c *Controller) Interval() time.Duration { return c.timer.Interval() }

// AdjustSpeed moves the speed by delta within [0, MaxSpeed].
func (c *Controller) AdjustSpeed(delta int) int {
	c.speed = min(max(c.speed+delta, 0), MaxSpeed)
	c.timer.SetSpeed(c.speed)
	return c.speed
}

// LoadSlot applies the library pattern at index slot (0-based).
func (c *Controller) LoadSlot(slot int) error {
	keys := patterns.Keys()
	if slot < 0 || slot >= len(keys) {
		return fmt.Errorf("%w: slot %d", patterns.ErrUnknownPattern, slot+1)
	}
	return c.sess.ApplyPattern(keys[slot])
}

// CycleVariant switches to the next registered variant in name order.
func (c *Controller) CycleVariant() life.Variant {
	names := life.VariantNames()
	next := 0
	if i := slices.Index(names, c.sess.Variant().Name); i >= 0 {
		next = (i + 1) % len(names)
	}
	return c.sess.SetVariant(names[next])
}

// ResizeBy grows or shrinks the board by delta cells per side, clamped to
// [MinGridSize, MaxGridSize]. Resizing pauses and empties the board. It reports
// the new side and whether anything changed.
func (c *Controller) ResizeBy(delta int) (int, bool, error) {
	n := c.sess.Size().W
	next := min(max(n+delta, MinGridSize), MaxGridSize)
	if next == n {
		return n, false, nil
	}
	c.sess.Pause()
	if err := c.sess.Resize(next); err != nil {
		return n, false, err
	}
	c.stepOnce = false
	return next, true, nil
}

// Click toggles the cell under pixel (x, y) of a board drawn at scale.
func (c *Controller) Click(x, y, scale int) bool {
	if scale <= 0 || x < 0 || y < 0 {
		return false
	}
	return c.sess.ToggleCell(y/scale, x/scale)
}

// Tick runs at frame rate and advances at most one generation: a queued single
// step, or a paced step while running.
func (c *Controller) Tick() bool {
	switch {
	case c.stepOnce:
		c.stepOnce = false
	case c.sess.Running() && c.timer.ShouldStep():
	default:
		return false
	}
	c.sess.Step()
	return true
}
