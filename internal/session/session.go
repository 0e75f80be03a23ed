// Package session is the surface hosts talk to: queries for rendering, edits
// from input handlers, and the step lifecycle. A Session serializes steps and
// edits so the engine always sees a frozen board.
package session

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"lifegrid/internal/config"
	"lifegrid/internal/core"
	lcore "lifegrid/pkg/core"
	"lifegrid/pkg/patterns"
	"lifegrid/pkg/sims/life"
)

// Seed names accepted by Seed besides library pattern keys.
const (
	SeedRandom = "random"
	SeedNoise  = "noise"
)

// noiseThreshold gives noise seeding roughly the same density as the random fill.
const noiseThreshold = 0.12

// Session owns a grid, the engine that advances it and the active variant.
type Session struct {
	mu      sync.Mutex
	grid    *life.Grid
	engine  *life.Engine
	variant life.Variant
	running bool
	rng     *lcore.RNG
	seed    int64
	density float64
	pattern string
}

// Options configures a new Session.
type Options struct {
	Size     int
	Variant  string
	Workers  int
	Spectral bool
	Seed     int64
	Density  float64
	Pattern  string
}

// New creates an empty session. Unknown variant names fall back to standard.
func New(opts Options) (*Session, error) {
	g, err := life.NewGrid(opts.Size)
	if err != nil {
		return nil, err
	}
	engineOpts := []life.Option{life.WithWorkers(opts.Workers)}
	if opts.Workers == 1 {
		engineOpts = nil
	}
	if opts.Spectral {
		engineOpts = append(engineOpts, life.WithSpectral())
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	density := opts.Density
	if density <= 0 {
		density = patterns.DefaultDensity
	}
	return &Session{
		grid:    g,
		engine:  life.NewEngine(engineOpts...),
		variant: life.LookupVariant(opts.Variant),
		rng:     lcore.NewRNG(seed),
		seed:    seed,
		density: density,
		pattern: opts.Pattern,
	}, nil
}

// FromConfig builds a session from host configuration and applies its initial seed.
func FromConfig(cfg *config.Config) (*Session, error) {
	cfg.RegisterVariants()
	s, err := New(Options{
		Size:     cfg.Grid.Size,
		Variant:  cfg.Simulation.Variant,
		Workers:  cfg.Simulation.Workers,
		Spectral: cfg.Simulation.Spectral,
		Seed:     cfg.Grid.Seed,
		Density:  cfg.Grid.Density,
		Pattern:  cfg.Grid.Pattern,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Grid.Pattern != "" {
		if err := s.Seed(cfg.Grid.Pattern); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Name identifies the simulation for window titles and logs.
func (s *Session) Name() string {
	return "life/" + s.Variant().Name
}

// Size reports the board dimensions.
func (s *Session) Size() core.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Size{W: s.grid.Size(), H: s.grid.Size()}
}

// Generation returns the number of completed steps.
func (s *Session) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Generation()
}

// LiveCellCount counts live cells on the current board.
func (s *Session) LiveCellCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.LiveCellCount()
}

// CellAt reports whether a cell is alive; out-of-range cells read as dead.
func (s *Session) CellAt(row, col int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.InBounds(row, col) && s.grid.Get(row, col)
}

// Cells exposes the current board for rendering. The slice is replaced by the
// next Step, so renderers read it between steps and never write to it.
func (s *Session) Cells() []uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Cells()
}

// Snapshot returns a copy of the current board.
func (s *Session) Snapshot() []uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Snapshot()
}

// Variant returns the active variant.
func (s *Session) Variant() life.Variant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.variant
}

// SetVariant switches rules; unknown names select standard. The board is kept.
func (s *Session) SetVariant(name string) life.Variant {
	v := life.LookupVariant(name)
	s.mu.Lock()
	s.variant = v
	s.mu.Unlock()
	return v
}

// Running reports whether a host loop is currently advancing the session.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start marks the session as running; cell edits are ignored until Pause.
func (s *Session) Start() {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
}

// Pause returns the session to edit mode.
func (s *Session) Pause() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// ToggleCell flips one cell. It does nothing while running or out of range and
// reports whether the board changed.
func (s *Session) ToggleCell(row, col int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running || !s.grid.InBounds(row, col) {
		return false
	}
	s.grid.Toggle(row, col)
	return true
}

// ApplyPattern pauses, clears the board and stamps the named library pattern
// centered.
func (s *Session) ApplyPattern(name string) error {
	return s.applyPattern(name, nil)
}

// ApplyPatternAt is ApplyPattern with the pattern's top-left corner at
// (row, col). Cells that fall off the board are dropped.
func (s *Session) ApplyPatternAt(name string, row, col int) error {
	return s.applyPattern(name, &[2]int{row, col})
}

func (s *Session) applyPattern(name string, anchor *[2]int) error {
	p, err := patterns.Lookup(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.grid.Clear()
	row, col := patterns.PlacementFor(p, s.grid.Size())
	if anchor != nil {
		row, col = anchor[0], anchor[1]
	}
	patterns.Stamp(s.grid, p, row, col)
	return nil
}

// Randomize pauses, clears and fills the board with the given live probability.
func (s *Session) Randomize(probability float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.grid.Clear()
	patterns.Randomize(s.grid, probability, s.rng)
}

// Seed applies a library pattern, "random" (configured density) or "noise".
func (s *Session) Seed(name string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SeedRandom:
		s.Randomize(s.density)
		return nil
	case SeedNoise:
		s.mu.Lock()
		defer s.mu.Unlock()
		s.running = false
		s.grid.Clear()
		patterns.NoiseFill(s.grid, noiseThreshold, s.rng.Int64())
		return nil
	}
	return s.ApplyPattern(name)
}

// Clear kills every cell and resets the generation.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid.Clear()
}

// Resize reallocates the board; all state is lost.
func (s *Session) Resize(size int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Resize(size)
}

// Reset reseeds the session RNG and reapplies the configured pattern, falling
// back to a random fill. Hosts call it from their reset key.
func (s *Session) Reset(seed int64) {
	if seed == 0 {
		seed = s.seed
	}
	s.mu.Lock()
	s.rng = lcore.NewRNG(seed)
	s.seed = seed
	pattern := s.pattern
	s.mu.Unlock()
	if pattern == "" || s.Seed(pattern) != nil {
		s.Randomize(s.density)
	}
}

// Step advances one generation under the active variant.
func (s *Session) Step() {
	s.Advance()
}

// Advance is Step reporting what changed.
func (s *Session) Advance() life.StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.StepVariant(s.grid, s.variant)
}

// Parameters exposes the session state to HUDs.
func (s *Session) Parameters() core.ParameterSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.variant
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("size", "Size", s.grid.Size()),
				core.IntParam("generation", "Generation", s.grid.Generation()),
				core.IntParam("live", "Live cells", s.grid.LiveCellCount()),
				core.BoolParam("running", "Running", s.running),
			},
		},
		{
			Name: "Variant",
			Params: []core.Parameter{
				core.StringParam("variant", "Variant", v.Name),
				core.IntParam("range", "Range", v.Topology.Range),
				core.BoolParam("weighted", "Weighted", v.Topology.Weighted),
				core.StringParam("rule", "Rule", v.Rules.String()),
				core.StringParam("seed", "Seed", strconv.FormatInt(s.seed, 10)),
			},
		},
	}}
}

func init() {
	core.Register("life", func(m map[string]string) (core.Sim, error) {
		cfg := config.Default()
		cfg.ApplyMap(m)
		s, err := FromConfig(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
