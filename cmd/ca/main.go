//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"lifegrid/internal/app"
	"lifegrid/internal/config"
	"lifegrid/internal/core"
	"lifegrid/internal/logging"
	"lifegrid/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	fs := flag.NewFlagSet("ca", flag.ExitOnError)
	simName := fs.String("sim", "life", "registered simulation to show")
	win := app.NewWindowConfig()
	win.Bind(fs)
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logging.Setup(os.Stderr, cfg.Logging.Format, cfg.Logging.Level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if cfg.Grid.Seed == 0 {
		cfg.Grid.Seed = time.Now().UnixNano()
	}
	if cfg.Grid.Pattern == "" {
		cfg.Grid.Pattern = session.SeedRandom
	}
	cfg.RegisterVariants()
	sim, err := core.New(*simName, cfg.Overrides())
	if err != nil {
		slog.Error("creating sim", "err", err)
		os.Exit(1)
	}
	s, ok := sim.(*session.Session)
	if !ok {
		slog.Error("sim has no interactive controls", "sim", *simName)
		os.Exit(1)
	}

	ctrl := app.NewController(s, cfg.Simulation.Speed)
	game := app.New(ctrl, win, cfg.Grid.Seed, slog.Default())
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("lifegrid - " + s.Name())
	ebiten.SetTPS(win.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("game loop", "err", err)
		os.Exit(1)
	}
}
