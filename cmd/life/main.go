// Command life runs a board headlessly, logging progress and optionally writing
// per-generation CSV stats and a final PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lifegrid/internal/config"
	"lifegrid/internal/core"
	"lifegrid/internal/logging"
	"lifegrid/internal/render"
	"lifegrid/internal/runner"
	"lifegrid/internal/session"
	"lifegrid/internal/telemetry"
)

func main() {
	fs := flag.NewFlagSet("life", flag.ExitOnError)
	simName := fs.String("sim", "life", "registered simulation to run")
	fast := fs.Bool("fast", false, "ignore speed and step as fast as possible")
	pngPath := fs.String("png", "", "write the final board to this PNG file")
	pngScale := fs.Int("png-scale", 8, "pixels per cell in the PNG")
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logging.Setup(os.Stderr, cfg.Logging.Format, cfg.Logging.Level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(cfg, *simName, *fast, *pngPath, *pngScale); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, simName string, fast bool, pngPath string, pngScale int) error {
	if cfg.Grid.Pattern == "" {
		cfg.Grid.Pattern = session.SeedRandom
	}
	if cfg.Grid.Seed == 0 {
		cfg.Grid.Seed = time.Now().UnixNano()
	}
	cfg.RegisterVariants()
	sim, err := core.New(simName, cfg.Overrides())
	if err != nil {
		return err
	}
	s, ok := sim.(runner.Target)
	if !ok {
		return fmt.Errorf("sim %q cannot be run headlessly", simName)
	}

	om, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		return err
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		return err
	}

	interval := core.DelayForSpeed(cfg.Simulation.Speed)
	if fast {
		interval = 0
	}
	v := s.Variant()
	slog.Info("starting",
		"variant", v.Name,
		"rule", v.Rules.String(),
		"size", cfg.Grid.Size,
		"seed", cfg.Grid.Seed,
		"pattern", cfg.Grid.Pattern,
		"sim", sim.Name(),
		"interval", interval,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := runner.Run(ctx, s, runner.Options{
		Interval:       interval,
		MaxGenerations: cfg.Simulation.MaxGenerations,
		StopWhenStable: cfg.Simulation.StopWhenStable,
		LogEvery:       cfg.Telemetry.LogEvery,
		Cells:          cfg.Grid.Size * cfg.Grid.Size,
		Output:         om,
		Logger:         slog.Default(),
	})
	if err != nil {
		return err
	}
	if dir := om.Dir(); dir != "" {
		slog.Info("telemetry written", "dir", dir)
	}

	if pngPath != "" {
		if err := writePNG(pngPath, sim, v.Name, pngScale); err != nil {
			return err
		}
		slog.Info("snapshot written", "path", pngPath, "generation", sim.Generation(), "reason", res.Reason)
	}
	return nil
}

func writePNG(path string, sim core.Sim, variant string, scale int) error {
	img, err := render.Image(sim.Cells(), sim.Size().W, scale, render.PaletteFor(variant))
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
