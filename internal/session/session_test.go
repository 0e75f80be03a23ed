package session

import (
	"errors"
	"slices"
	"testing"

	"lifegrid/internal/config"
	"lifegrid/internal/core"
	"lifegrid/pkg/patterns"
	"lifegrid/pkg/sims/life"
)

func newSession(t *testing.T, size int, variant string) *Session {
	t.Helper()
	s, err := New(Options{Size: size, Variant: variant, Workers: 1, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewRejectsInvalidSize(t *testing.T) {
	if _, err := New(Options{Size: 0}); !errors.Is(err, life.ErrInvalidDimension) {
		t.Fatalf("err = %v", err)
	}
}

func TestUnknownVariantFallsBack(t *testing.T) {
	s := newSession(t, 10, "watercolor")
	if s.Variant().Name != life.StandardName {
		t.Fatalf("variant %q", s.Variant().Name)
	}
	if v := s.SetVariant("3d"); v.Name != life.ExtendedName {
		t.Fatalf("SetVariant(3d) = %q", v.Name)
	}
	if s.Name() != "life/extended" {
		t.Fatalf("Name() = %q", s.Name())
	}
}

func TestToggleIgnoredWhileRunning(t *testing.T) {
	s := newSession(t, 10, "")
	if !s.ToggleCell(3, 3) || !s.CellAt(3, 3) {
		t.Fatal("toggle in edit mode should revive the cell")
	}
	s.Start()
	if s.ToggleCell(3, 3) || !s.CellAt(3, 3) {
		t.Fatal("toggle while running must be ignored")
	}
	s.Pause()
	if s.ToggleCell(10, 0) {
		t.Fatal("out-of-range toggle must report no change")
	}
	if s.CellAt(-1, 4) {
		t.Fatal("out-of-range reads are dead")
	}
}

func TestApplyPatternCentersAndPauses(t *testing.T) {
	s := newSession(t, 50, "")
	s.ToggleCell(0, 0)
	s.Start()
	if err := s.ApplyPattern("glider"); err != nil {
		t.Fatal(err)
	}
	if s.Running() {
		t.Fatal("applying a pattern pauses the session")
	}
	if s.CellAt(0, 0) {
		t.Fatal("applying a pattern clears the board first")
	}
	// Centered glider anchors at (24,24): bottom row is row 26.
	for _, c := range [][2]int{{24, 25}, {25, 26}, {26, 24}, {26, 25}, {26, 26}} {
		if !s.CellAt(c[0], c[1]) {
			t.Fatalf("expected (%d,%d) alive", c[0], c[1])
		}
	}
	if s.LiveCellCount() != 5 {
		t.Fatalf("live = %d", s.LiveCellCount())
	}

	if err := s.ApplyPatternAt("blinker", 0, 0); err != nil {
		t.Fatal(err)
	}
	if !s.CellAt(0, 0) || !s.CellAt(0, 2) || s.LiveCellCount() != 3 {
		t.Fatal("explicit anchor not honoured")
	}

	if err := s.ApplyPattern("nope"); !errors.Is(err, patterns.ErrUnknownPattern) {
		t.Fatalf("err = %v", err)
	}
}

func TestStepAndGeneration(t *testing.T) {
	s := newSession(t, 8, "")
	if err := s.ApplyPattern("blinker"); err != nil {
		t.Fatal(err)
	}
	res := s.Advance()
	if res.Generation != 1 || res.Live != 3 || s.Generation() != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	s.Step()
	if s.Generation() != 2 {
		t.Fatalf("generation %d", s.Generation())
	}
	s.Clear()
	if s.Generation() != 0 || s.LiveCellCount() != 0 {
		t.Fatal("clear resets generation and cells")
	}
	if err := s.Resize(12); err != nil {
		t.Fatal(err)
	}
	if s.Size() != (core.Size{W: 12, H: 12}) || len(s.Snapshot()) != 144 {
		t.Fatalf("size %+v", s.Size())
	}
	if err := s.Resize(-1); !errors.Is(err, life.ErrInvalidDimension) {
		t.Fatalf("err = %v", err)
	}
}

func TestSeedModes(t *testing.T) {
	s := newSession(t, 40, "")
	if err := s.Seed("random"); err != nil {
		t.Fatal(err)
	}
	if s.LiveCellCount() == 0 {
		t.Fatal("random seed should populate the board")
	}
	if err := s.Seed("Noise"); err != nil {
		t.Fatal(err)
	}
	if s.LiveCellCount() == 0 || s.LiveCellCount() == 1600 {
		t.Fatalf("noise seed gave %d live cells", s.LiveCellCount())
	}
	if err := s.Seed("pulsar"); err != nil || s.LiveCellCount() != 48 {
		t.Fatalf("pulsar seed: err=%v live=%d", err, s.LiveCellCount())
	}
}

func TestResetIsDeterministic(t *testing.T) {
	s := newSession(t, 30, "")
	s.Reset(77)
	first := s.Snapshot()
	s.Step()
	s.Reset(77)
	if s.Generation() != 0 {
		t.Fatal("reset restarts the generation count")
	}
	for i, v := range s.Snapshot() {
		if v != first[i] {
			t.Fatal("reset with the same seed must rebuild the same board")
		}
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Size = 20
	cfg.Grid.Pattern = "toad"
	cfg.Simulation.Variant = "session-test"
	cfg.Simulation.Workers = 2
	cfg.Variants = []config.VariantConfig{{Name: "session-test", Range: 1, Survive: [2]int{2, 3}, Birth: []int{3}}}
	s, err := FromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s.Variant().Name != "session-test" || s.LiveCellCount() != 6 {
		t.Fatalf("variant=%q live=%d", s.Variant().Name, s.LiveCellCount())
	}

	cfg.Grid.Pattern = "unknown"
	if _, err := FromConfig(cfg); !errors.Is(err, patterns.ErrUnknownPattern) {
		t.Fatalf("err = %v", err)
	}
}

func TestRegisteredFactory(t *testing.T) {
	f, ok := core.Lookup("life")
	if !ok {
		t.Fatal("life factory not registered")
	}
	sim, err := f(map[string]string{"size": "16", "variant": "extended"})
	if err != nil {
		t.Fatal(err)
	}
	if sim.Size().W != 16 || sim.Name() != "life/extended" {
		t.Fatalf("factory ignored config: %s %+v", sim.Name(), sim.Size())
	}
	if _, err := f(map[string]string{"pattern": "nope"}); !errors.Is(err, patterns.ErrUnknownPattern) {
		t.Fatalf("bad pattern should fail the factory, err = %v", err)
	}
}

func TestRegistryBuildsFromOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Size = 12
	cfg.Grid.Seed = 5
	cfg.Grid.Pattern = "toad"
	cfg.Simulation.Variant = "3d"
	sim, err := core.New("life", cfg.Overrides())
	if err != nil {
		t.Fatal(err)
	}
	s, ok := sim.(*Session)
	if !ok {
		t.Fatalf("life factory built %T", sim)
	}
	if s.Size().W != 12 || s.Variant().Name != life.ExtendedName || s.LiveCellCount() != 6 {
		t.Fatalf("size=%d variant=%s live=%d", s.Size().W, s.Variant().Name, s.LiveCellCount())
	}
}

func TestApplyPatternAtClips(t *testing.T) {
	s := newSession(t, 6, "")
	s.Start()
	if err := s.ApplyPatternAt("blinker", 2, 4); err != nil {
		t.Fatal(err)
	}
	if s.Running() {
		t.Fatal("anchored stamping pauses too")
	}
	// blinker row is 3 wide; column 6 falls off the board.
	if !s.CellAt(2, 4) || !s.CellAt(2, 5) || s.LiveCellCount() != 2 {
		t.Fatalf("live = %d", s.LiveCellCount())
	}
	if err := s.ApplyPatternAt("nope", 0, 0); !errors.Is(err, patterns.ErrUnknownPattern) {
		t.Fatalf("err = %v", err)
	}
}

func TestParameters(t *testing.T) {
	s := newSession(t, 10, "extended")
	snap := s.Parameters()
	if p, ok := snap.Lookup("rule"); !ok || p.Value != "B5,6,7/S4..8" {
		t.Fatalf("rule parameter %+v", p)
	}
	if p, ok := snap.Lookup("size"); !ok || p.Value != "10" {
		t.Fatalf("size parameter %+v", p)
	}
}

func TestCellsMatchesSnapshotBetweenSteps(t *testing.T) {
	s := newSession(t, 9, "")
	if err := s.ApplyPattern("blinker"); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		s.Step()
		cells, snap := s.Cells(), s.Snapshot()
		if len(cells) != 81 || !slices.Equal(cells, snap) {
			t.Fatalf("generation %d: live view differs from snapshot", s.Generation())
		}
	}
}
