// Package runner drives a session at a fixed cadence until it is cancelled,
// reaches its generation limit, or settles.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lifegrid/internal/telemetry"
	"lifegrid/pkg/sims/life"
)

// Stop reasons reported in Result.
const (
	ReasonCancelled = "cancelled"
	ReasonLimit     = "max_generations"
	ReasonStable    = "stable"
	ReasonExtinct   = "extinct"
	ReasonError     = "error"
)

// Target is a session as seen by the runner.
type Target interface {
	Advance() life.StepResult
	Variant() life.Variant
	Start()
	Pause()
}

// Options control a run.
type Options struct {
	Interval       time.Duration // 0 steps as fast as possible
	MaxGenerations int           // 0 = unlimited
	StopWhenStable bool
	LogEvery       int // 0 = never
	Cells          int // board cell count, used for density
	Output         *telemetry.OutputManager
	Logger         *slog.Logger
}

// Result describes how a run ended.
type Result struct {
	Reason  string
	Summary telemetry.Summary
}

// Run advances t until ctx is done or a stop condition holds. Cancellation is
// checked before every step, so a cancelled run never starts another
// generation; a step in progress always completes.
func Run(ctx context.Context, t Target, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rec := telemetry.NewRecorder()
	variant := t.Variant().Name

	var tick <-chan time.Time
	if opts.Interval > 0 {
		ticker := time.NewTicker(opts.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	t.Start()
	defer t.Pause()

	finish := func(reason string) (Result, error) {
		res := Result{Reason: reason, Summary: rec.Summary()}
		if err := opts.Output.WriteSummary(res.Summary); err != nil {
			return res, err
		}
		logger.Info("run finished", "reason", reason, "summary", res.Summary)
		return res, nil
	}

	for generations := 0; ; generations++ {
		if opts.MaxGenerations > 0 && generations >= opts.MaxGenerations {
			return finish(ReasonLimit)
		}
		if tick != nil && generations > 0 {
			select {
			case <-ctx.Done():
				return finish(ReasonCancelled)
			case <-tick:
			}
		}
		if ctx.Err() != nil {
			return finish(ReasonCancelled)
		}

		start := time.Now()
		res := t.Advance()
		stats := telemetry.NewGenerationStats(variant, opts.Cells, res, time.Since(start))
		rec.Add(stats)
		if err := opts.Output.WriteGeneration(stats); err != nil {
			return Result{Reason: ReasonError, Summary: rec.Summary()}, fmt.Errorf("generation %d: %w", stats.Generation, err)
		}
		if opts.LogEvery > 0 && stats.Generation%opts.LogEvery == 0 {
			logger.Info("generation", "stats", stats)
		}

		if opts.StopWhenStable {
			if stats.Live == 0 {
				return finish(ReasonExtinct)
			}
			if !stats.Changed() {
				return finish(ReasonStable)
			}
		}
	}
}
