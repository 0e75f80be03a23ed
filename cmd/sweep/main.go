// Command sweep evolves many random boards per variant and density and writes
// one CSV row per board.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"lifegrid/internal/logging"
	"lifegrid/internal/sweep"
)

func main() {
	size := flag.Int("size", 50, "grid side length")
	steps := flag.Int("steps", 200, "generations per board")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	variants := flag.String("variants", "standard,extended", "comma-separated variants")
	densities := flag.String("densities", "0.1,0.2,0.3,0.4,0.5", "comma-separated fill probabilities")
	seeds := flag.Int("seeds", 8, "boards per variant and density")
	firstSeed := flag.Int64("first-seed", 1, "seed of the first board")
	out := flag.String("out", "", "CSV output file (default stdout)")
	top := flag.Int("top", 5, "log the N boards with the largest final population")
	logFormat := flag.String("log-format", logging.FormatText, "log format: text or json")
	flag.Parse()

	if err := logging.Setup(os.Stderr, *logFormat, "info"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(*size, *steps, *workers, *variants, *densities, *seeds, *firstSeed, *out, *top); err != nil {
		slog.Error("sweep failed", "err", err)
		os.Exit(1)
	}
}

func run(size, steps, workers int, variants, densities string, seedCount int, firstSeed int64, out string, top int) error {
	ds, err := parseFloats(densities)
	if err != nil {
		return err
	}
	seeds := make([]int64, seedCount)
	for i := range seeds {
		seeds[i] = firstSeed + int64(i)
	}
	scenarios := sweep.Scenarios(strings.Split(variants, ","), ds, seeds)
	slog.Info("sweeping", "boards", len(scenarios), "workers", workers, "steps", steps, "size", size)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	outcomes, runErr := sweep.Run(ctx, scenarios, sweep.Options{Size: size, Steps: steps, Workers: workers})
	slog.Info("sweep done", "finished", len(outcomes), "elapsed", time.Since(start).Round(time.Millisecond))

	if err := writeCSV(out, outcomes); err != nil {
		return err
	}
	for i, o := range sweep.Rank(outcomes) {
		if i >= top {
			break
		}
		slog.Info("top", "rank", i+1, "variant", o.Variant, "density", o.Density, "seed", o.Seed, "final_live", o.FinalLive, "stable_at", o.StableAt)
	}
	return runErr
}

func writeCSV(path string, outcomes []sweep.Outcome) error {
	if path == "" {
		return gocsv.Marshal(outcomes, os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.Marshal(outcomes, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func parseFloats(list string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 || v > 1 {
			return nil, fmt.Errorf("density %q must be a number in [0, 1]", part)
		}
		out = append(out, v)
	}
	return out, nil
}
