package app

import (
	"errors"
	"testing"
	"time"

	"lifegrid/internal/core"
	"lifegrid/internal/session"
	"lifegrid/pkg/patterns"
	"lifegrid/pkg/sims/life"
)

func newController(t *testing.T) *Controller {
	t.Helper()
	s, err := session.New(session.Options{Size: 20, Workers: 1, Seed: 9})
	if err != nil {
		t.Fatal(err)
	}
	return NewController(s, core.DefaultSpeed)
}

func TestMaxSpeedReachesMinDelay(t *testing.T) {
	if core.DelayForSpeed(MaxSpeed) != core.MinDelay {
		t.Fatalf("speed %d delay %v", MaxSpeed, core.DelayForSpeed(MaxSpeed))
	}
	if core.DelayForSpeed(MaxSpeed-1) == core.MinDelay {
		t.Fatal("MaxSpeed is not the first saturating speed")
	}
}

func TestAdjustSpeedClamps(t *testing.T) {
	c := newController(t)
	if got := c.AdjustSpeed(100); got != MaxSpeed {
		t.Fatalf("speed = %d", got)
	}
	if c.Interval() != core.MinDelay {
		t.Fatalf("interval = %v", c.Interval())
	}
	if got := c.AdjustSpeed(-100); got != 0 {
		t.Fatalf("speed = %d", got)
	}
	if c.Interval() != core.MaxDelay {
		t.Fatalf("interval = %v", c.Interval())
	}
}

func TestStepOnceOnlyWhenPaused(t *testing.T) {
	c := newController(t)
	if err := c.LoadSlot(1); err != nil { // blinker
		t.Fatal(err)
	}
	if c.Tick() {
		t.Fatal("a paused controller must not step on its own")
	}
	c.StepOnce()
	if !c.Tick() || c.Session().Generation() != 1 {
		t.Fatalf("generation = %d", c.Session().Generation())
	}
	if c.Tick() {
		t.Fatal("a single step is consumed once")
	}

	c.TogglePause()
	c.StepOnce()
	c.TogglePause()
	if c.Tick() {
		t.Fatal("a step requested while running must be dropped")
	}
}

func TestRunningTickSteps(t *testing.T) {
	c := newController(t)
	c.AdjustSpeed(MaxSpeed)
	c.TogglePause()
	if !c.Session().Running() {
		t.Fatal("TogglePause should start the session")
	}
	deadline := time.Now().Add(2 * time.Second)
	for !c.Tick() {
		if time.Now().After(deadline) {
			t.Fatal("running controller never stepped")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if c.Session().Generation() != 1 {
		t.Fatalf("generation = %d", c.Session().Generation())
	}
	c.TogglePause()
	if c.Session().Running() {
		t.Fatal("TogglePause should pause the session")
	}
}

func TestLoadSlot(t *testing.T) {
	c := newController(t)
	if err := c.LoadSlot(0); err != nil {
		t.Fatal(err)
	}
	if c.Session().LiveCellCount() != 5 {
		t.Fatalf("glider live = %d", c.Session().LiveCellCount())
	}
	if err := c.LoadSlot(len(patterns.Keys())); !errors.Is(err, patterns.ErrUnknownPattern) {
		t.Fatalf("err = %v", err)
	}
}

func TestCycleVariant(t *testing.T) {
	c := newController(t)
	start := c.Session().Variant().Name
	seen := map[string]bool{start: true}
	for range len(life.VariantNames()) - 1 {
		seen[c.CycleVariant().Name] = true
	}
	if len(seen) != len(life.VariantNames()) {
		t.Fatalf("cycling visited %v", seen)
	}
	if c.CycleVariant().Name != start {
		t.Fatal("cycling should wrap around")
	}
}

func TestClickMapsPixelsToCells(t *testing.T) {
	c := newController(t)
	if !c.Click(25, 13, 12) || !c.Session().CellAt(1, 2) {
		t.Fatal("pixel (25,13) at scale 12 is cell (1,2)")
	}
	if c.Click(-1, 0, 12) || c.Click(5, 5, 0) {
		t.Fatal("invalid clicks must be ignored")
	}
	if c.Click(12*20, 0, 12) {
		t.Fatal("clicks past the board must be ignored")
	}
}

func TestResizeBy(t *testing.T) {
	c := newController(t)
	if err := c.LoadSlot(0); err != nil {
		t.Fatal(err)
	}
	c.TogglePause()
	n, changed, err := c.ResizeBy(GridSizeStep)
	if err != nil || !changed || n != 30 {
		t.Fatalf("n=%d changed=%v err=%v", n, changed, err)
	}
	s := c.Session()
	if s.Size().W != 30 || s.LiveCellCount() != 0 || s.Generation() != 0 || s.Running() {
		t.Fatalf("resized board should be empty and paused: size=%d live=%d", s.Size().W, s.LiveCellCount())
	}

	if n, _, _ := c.ResizeBy(-1000); n != MinGridSize {
		t.Fatalf("shrink clamps to %d, got %d", MinGridSize, n)
	}
	if _, changed, _ := c.ResizeBy(-GridSizeStep); changed {
		t.Fatal("resizing below the minimum must be a no-op")
	}
	if n, _, _ := c.ResizeBy(1000); n != MaxGridSize {
		t.Fatalf("grow clamps to %d, got %d", MaxGridSize, n)
	}
}

func TestCellScale(t *testing.T) {
	tests := []struct{ n, want int }{
		{10, 15},
		{50, 12},
		{60, 10},
		{100, 6},
		{200, 6},
		{0, 15},
	}
	for _, tt := range tests {
		if got := CellScale(tt.n); got != tt.want {
			t.Fatalf("CellScale(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
