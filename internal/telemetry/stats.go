// Package telemetry records per-generation statistics and writes them as CSV.
package telemetry

import (
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"lifegrid/pkg/sims/life"
)

// GenerationStats describes one completed step.
type GenerationStats struct {
	Variant    string  `csv:"variant"`
	Generation int     `csv:"generation"`
	Live       int     `csv:"live"`
	Births     int     `csv:"births"`
	Deaths     int     `csv:"deaths"`
	Density    float64 `csv:"density"`
	StepMicros int64   `csv:"step_us"`
}

// NewGenerationStats converts an engine result into a record.
func NewGenerationStats(variant string, cells int, res life.StepResult, elapsed time.Duration) GenerationStats {
	density := 0.0
	if cells > 0 {
		density = float64(res.Live) / float64(cells)
	}
	return GenerationStats{
		Variant:    variant,
		Generation: res.Generation,
		Live:       res.Live,
		Births:     res.Births,
		Deaths:     res.Deaths,
		Density:    density,
		StepMicros: elapsed.Microseconds(),
	}
}

// Changed reports whether the step altered the board.
func (s GenerationStats) Changed() bool {
	return s.Births > 0 || s.Deaths > 0
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("variant", s.Variant),
		slog.Int("generation", s.Generation),
		slog.Int("live", s.Live),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Float64("density", s.Density),
		slog.Int64("step_us", s.StepMicros),
	)
}

// Summary aggregates a run.
type Summary struct {
	Generations int     `csv:"generations"`
	FinalLive   int     `csv:"final_live"`
	MeanLive    float64 `csv:"mean_live"`
	StdLive     float64 `csv:"std_live"`
	MinLive     int     `csv:"min_live"`
	MaxLive     int     `csv:"max_live"`
	TotalBirths int     `csv:"total_births"`
	TotalDeaths int     `csv:"total_deaths"`
	MeanStepUs  float64 `csv:"mean_step_us"`
	StableAtGen int     `csv:"stable_at"` // first generation with no change, -1 if never
}

// Recorder accumulates GenerationStats into a Summary.
type Recorder struct {
	live    []float64
	steps   []float64
	births  int
	deaths  int
	stable  int
	last    GenerationStats
	minLive int
	maxLive int
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{stable: -1, minLive: math.MaxInt}
}

// Add records one generation.
func (r *Recorder) Add(s GenerationStats) {
	r.live = append(r.live, float64(s.Live))
	r.steps = append(r.steps, float64(s.StepMicros))
	r.births += s.Births
	r.deaths += s.Deaths
	r.minLive = min(r.minLive, s.Live)
	r.maxLive = max(r.maxLive, s.Live)
	if r.stable < 0 && !s.Changed() {
		r.stable = s.Generation
	}
	r.last = s
}

// Summary computes the aggregate. An empty recorder yields zeros.
func (r *Recorder) Summary() Summary {
	if len(r.live) == 0 {
		return Summary{StableAtGen: -1}
	}
	mean, std := stat.MeanStdDev(r.live, nil)
	if len(r.live) < 2 {
		std = 0
	}
	return Summary{
		Generations: len(r.live),
		FinalLive:   r.last.Live,
		MeanLive:    mean,
		StdLive:     std,
		MinLive:     r.minLive,
		MaxLive:     r.maxLive,
		TotalBirths: r.births,
		TotalDeaths: r.deaths,
		MeanStepUs:  stat.Mean(r.steps, nil),
		StableAtGen: r.stable,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generations", s.Generations),
		slog.Int("final_live", s.FinalLive),
		slog.Float64("mean_live", s.MeanLive),
		slog.Float64("std_live", s.StdLive),
		slog.Int("min_live", s.MinLive),
		slog.Int("max_live", s.MaxLive),
		slog.Int("total_births", s.TotalBirths),
		slog.Int("total_deaths", s.TotalDeaths),
		slog.Float64("mean_step_us", s.MeanStepUs),
		slog.Int("stable_at", s.StableAtGen),
	)
}
