package life

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// StepResult summarizes one completed generation.
type StepResult struct {
	Generation int
	Births     int
	Deaths     int
	Live       int
}

// Engine advances grids one generation at a time. An Engine is not safe for
// concurrent use; callers serialize Step calls on a given grid.
type Engine struct {
	workers  int
	spectral bool
	fields   *spectralCounter
	counts   []int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers shards rows across n goroutines. n <= 0 uses runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		e.workers = n
	}
}

// WithSpectral computes whole-board neighbor fields with a 2D FFT instead of
// walking each neighborhood. Worth it for large ranges on large boards.
func WithSpectral() Option {
	return func(e *Engine) { e.spectral = true }
}

// NewEngine returns a sequential engine unless options say otherwise.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{workers: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Step computes the next generation of g from its current board, then swaps
// buffers. No cell observes another cell's new value within a step.
func Step(g *Grid, t Topology, rules RuleSet) {
	stepRows(g, t, rules, nil, 0, g.n)
	g.AdvanceGeneration()
}

// StepVariant is Step with the topology and rules of v.
func StepVariant(g *Grid, v Variant) {
	Step(g, v.Topology, v.Rules)
}

// Step advances g by one generation and reports what changed.
func (e *Engine) Step(g *Grid, t Topology, rules RuleSet) StepResult {
	var counts []int
	if e.spectral && g.n >= spectralMinSize {
		counts = e.fieldCounts(g, t)
	}

	var res StepResult
	workers := min(e.workers, g.n)
	if workers <= 1 {
		res = stepRows(g, t, rules, counts, 0, g.n)
	} else {
		res = e.stepParallel(g, t, rules, counts, workers)
	}

	g.AdvanceGeneration()
	res.Generation = g.generation
	return res
}

// StepVariant advances g under v.
func (e *Engine) StepVariant(g *Grid, v Variant) StepResult {
	return e.Step(g, v.Topology, v.Rules)
}

func (e *Engine) stepParallel(g *Grid, t Topology, rules RuleSet, counts []int, workers int) StepResult {
	var eg errgroup.Group
	rowsPerWorker := (g.n + workers - 1) / workers
	partial := make([]StepResult, workers)

	for i := range workers {
		start := i * rowsPerWorker
		end := min(start+rowsPerWorker, g.n)
		if start >= end {
			break
		}
		eg.Go(func() error {
			partial[i] = stepRows(g, t, rules, counts, start, end)
			return nil
		})
	}
	// Shards never fail; Wait is the barrier before the swap.
	_ = eg.Wait()

	var res StepResult
	for _, p := range partial {
		res.Births += p.Births
		res.Deaths += p.Deaths
		res.Live += p.Live
	}
	return res
}

func (e *Engine) fieldCounts(g *Grid, t Topology) []int {
	if e.fields == nil || !e.fields.matches(g.n, t) {
		e.fields = newSpectralCounter(g.n, t)
	}
	if len(e.counts) != len(g.cur) {
		e.counts = make([]int, len(g.cur))
	}
	e.fields.countAll(g.cur, e.counts)
	return e.counts
}

// stepRows writes rows [start, end) of the scratch buffer. counts, when
// non-nil, holds precomputed neighbor counts for every cell.
func stepRows(g *Grid, t Topology, rules RuleSet, counts []int, start, end int) StepResult {
	var res StepResult
	n := g.n
	r := t.radius()
	for row := start; row < end; row++ {
		for col := 0; col < n; col++ {
			idx := row*n + col
			var neighbors int
			if counts != nil {
				neighbors = counts[idx]
			} else {
				neighbors = countAt(g.cur, n, row, col, r, t.Weighted)
			}

			alive := g.cur[idx] == 1
			var next bool
			if alive {
				next = WillSurvive(neighbors, rules)
			} else {
				next = WillBirth(neighbors, rules)
			}
			g.nxt[idx] = bit(next)

			switch {
			case next && !alive:
				res.Births++
			case !next && alive:
				res.Deaths++
			}
			if next {
				res.Live++
			}
		}
	}
	return res
}
