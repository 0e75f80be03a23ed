package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lifegrid/internal/config"
	"lifegrid/pkg/sims/life"
)

func TestNewGenerationStats(t *testing.T) {
	res := life.StepResult{Generation: 4, Births: 2, Deaths: 1, Live: 25}
	s := NewGenerationStats("standard", 100, res, 1500*time.Microsecond)
	if s.Density != 0.25 || s.StepMicros != 1500 || !s.Changed() {
		t.Fatalf("unexpected stats %+v", s)
	}
	if NewGenerationStats("standard", 0, res, 0).Density != 0 {
		t.Fatal("empty boards have zero density")
	}
}

func TestRecorderSummary(t *testing.T) {
	r := NewRecorder()
	if got := r.Summary(); got.Generations != 0 || got.StableAtGen != -1 {
		t.Fatalf("empty summary %+v", got)
	}

	lives := []int{10, 12, 14, 14}
	for i, live := range lives {
		s := GenerationStats{Generation: i + 1, Live: live, Births: 2, Deaths: 0, StepMicros: 100}
		if i == 3 {
			s.Births = 0
		}
		r.Add(s)
	}
	sum := r.Summary()
	if sum.Generations != 4 || sum.FinalLive != 14 || sum.MinLive != 10 || sum.MaxLive != 14 {
		t.Fatalf("summary %+v", sum)
	}
	if math.Abs(sum.MeanLive-12.5) > 1e-9 {
		t.Fatalf("mean %v", sum.MeanLive)
	}
	// Sample standard deviation of 10,12,14,14.
	if math.Abs(sum.StdLive-math.Sqrt(11.0/3.0)) > 1e-9 {
		t.Fatalf("std %v", sum.StdLive)
	}
	if sum.TotalBirths != 6 || sum.StableAtGen != 4 || sum.MeanStepUs != 100 {
		t.Fatalf("summary %+v", sum)
	}
}

func TestRecorderSingleSample(t *testing.T) {
	r := NewRecorder()
	r.Add(GenerationStats{Generation: 1, Live: 3, Births: 1})
	if s := r.Summary(); s.StdLive != 0 || s.MeanLive != 3 {
		t.Fatalf("summary %+v", s)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("om=%v err=%v", om, err)
	}
	if err := om.WriteGeneration(GenerationStats{}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}
	if om.Dir() != "" {
		t.Fatal("disabled manager has no dir")
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 3; i++ {
		if err := om.WriteGeneration(GenerationStats{Variant: "standard", Generation: i, Live: i * 10}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteSummary(Summary{Generations: 3, StableAtGen: -1}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "variant,generation,live") {
		t.Fatalf("header %q", lines[0])
	}
	if lines[3] != "standard,3,30,0,0,0,0" {
		t.Fatalf("last row %q", lines[3])
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("config snapshot not loadable: %v", err)
	}
	summary, err := os.ReadFile(filepath.Join(dir, "summary.csv"))
	if err != nil || !strings.Contains(string(summary), "stable_at") {
		t.Fatalf("summary.csv: %v %q", err, summary)
	}
}
