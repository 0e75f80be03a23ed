// Package sweep runs many seeded boards in parallel and summarizes how each
// one evolves. It backs cmd/sweep.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"lifegrid/internal/session"
	"lifegrid/internal/telemetry"
	"lifegrid/pkg/sims/life"
)

// Scenario is one board to evolve.
type Scenario struct {
	Variant string
	Density float64
	Seed    int64
}

func (s Scenario) String() string {
	return fmt.Sprintf("%s density=%.2f seed=%d", s.Variant, s.Density, s.Seed)
}

// Outcome is the CSV row written for a finished scenario.
type Outcome struct {
	Variant     string  `csv:"variant"`
	Density     float64 `csv:"density"`
	Seed        int64   `csv:"seed"`
	InitialLive int     `csv:"initial_live"`
	Generations int     `csv:"generations"`
	FinalLive   int     `csv:"final_live"`
	MeanLive    float64 `csv:"mean_live"`
	StdLive     float64 `csv:"std_live"`
	StableAt    int     `csv:"stable_at"`
	Extinct     bool    `csv:"extinct"`
}

// Options control a sweep.
type Options struct {
	Size    int
	Steps   int
	Workers int // <= 0 uses every CPU
}

// Scenarios builds the cross product of variants, densities and seeds.
func Scenarios(variants []string, densities []float64, seeds []int64) []Scenario {
	out := make([]Scenario, 0, len(variants)*len(densities)*len(seeds))
	for _, v := range variants {
		for _, d := range densities {
			for _, seed := range seeds {
				out = append(out, Scenario{Variant: life.LookupVariant(v).Name, Density: d, Seed: seed})
			}
		}
	}
	return out
}

// Run evolves every scenario on a pool of workers, one single-threaded board
// per worker. Results come back in scenario order. A cancelled context stops
// handing out work and returns ctx.Err with the outcomes finished so far.
func Run(ctx context.Context, scenarios []Scenario, opts Options) ([]Outcome, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type job struct {
		idx int
		sc  Scenario
	}
	type result struct {
		idx int
		out Outcome
		err error
	}
	jobs := make(chan job)
	results := make(chan result)
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				out, err := runScenario(j.sc, opts)
				results <- result{idx: j.idx, out: out, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for i, sc := range scenarios {
			select {
			case jobs <- job{idx: i, sc: sc}:
			case <-ctx.Done():
				return
			}
		}
	}()

	done := make([]bool, len(scenarios))
	outcomes := make([]Outcome, len(scenarios))
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", scenarios[res.idx], res.err)
			}
			continue
		}
		outcomes[res.idx] = res.out
		done[res.idx] = true
	}

	var finished []Outcome
	for i, ok := range done {
		if ok {
			finished = append(finished, outcomes[i])
		}
	}
	if firstErr != nil {
		return finished, firstErr
	}
	if len(finished) < len(scenarios) {
		return finished, ctx.Err()
	}
	return finished, nil
}

func runScenario(sc Scenario, opts Options) (Outcome, error) {
	s, err := session.New(session.Options{
		Size:    opts.Size,
		Variant: sc.Variant,
		Workers: 1,
		Seed:    sc.Seed,
		Density: sc.Density,
	})
	if err != nil {
		return Outcome{}, err
	}
	s.Randomize(sc.Density)

	out := Outcome{
		Variant:     s.Variant().Name,
		Density:     sc.Density,
		Seed:        sc.Seed,
		InitialLive: s.LiveCellCount(),
	}
	rec := telemetry.NewRecorder()
	cells := opts.Size * opts.Size
	for range opts.Steps {
		stats := telemetry.NewGenerationStats(out.Variant, cells, s.Advance(), 0)
		rec.Add(stats)
		if stats.Live == 0 {
			break
		}
	}
	sum := rec.Summary()
	out.Generations = sum.Generations
	out.FinalLive = s.LiveCellCount()
	out.MeanLive = sum.MeanLive
	out.StdLive = sum.StdLive
	out.StableAt = sum.StableAtGen
	out.Extinct = out.FinalLive == 0
	return out, nil
}

// Rank orders outcomes by final population, largest first.
func Rank(outcomes []Outcome) []Outcome {
	ranked := slices.Clone(outcomes)
	slices.SortStableFunc(ranked, func(a, b Outcome) int { return b.FinalLive - a.FinalLive })
	return ranked
}
