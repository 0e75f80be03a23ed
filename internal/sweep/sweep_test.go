package sweep

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestScenariosCrossProduct(t *testing.T) {
	got := Scenarios([]string{"standard", "3d"}, []float64{0.2, 0.3}, []int64{1, 2, 3})
	if len(got) != 12 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0] != (Scenario{Variant: "standard", Density: 0.2, Seed: 1}) {
		t.Fatalf("first = %+v", got[0])
	}
	if got[11] != (Scenario{Variant: "extended", Density: 0.3, Seed: 3}) {
		t.Fatalf("aliases should resolve, last = %+v", got[11])
	}
}

func TestRunIsDeterministic(t *testing.T) {
	scenarios := Scenarios([]string{"standard", "extended"}, []float64{0.3}, []int64{4, 5, 6})
	opts := Options{Size: 24, Steps: 20, Workers: 1}
	serial, err := Run(context.Background(), scenarios, opts)
	if err != nil {
		t.Fatal(err)
	}
	opts.Workers = 4
	parallel, err := Run(context.Background(), scenarios, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(serial, parallel) {
		t.Fatalf("worker count changed outcomes:\n%+v\n%+v", serial, parallel)
	}
	for i, o := range serial {
		if o.Variant != scenarios[i].Variant || o.Seed != scenarios[i].Seed {
			t.Fatalf("outcome %d out of order: %+v", i, o)
		}
		if o.InitialLive == 0 {
			t.Fatalf("outcome %d started empty", i)
		}
	}
}

func TestRunEmptyBoardGoesExtinct(t *testing.T) {
	out, err := Run(context.Background(), []Scenario{{Variant: "standard", Density: 0, Seed: 1}}, Options{Size: 10, Steps: 50})
	if err != nil {
		t.Fatal(err)
	}
	o := out[0]
	if !o.Extinct || o.InitialLive != 0 || o.Generations != 1 {
		t.Fatalf("outcome %+v", o)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	scenarios := Scenarios([]string{"standard"}, []float64{0.3}, make([]int64, 64))
	out, err := Run(ctx, scenarios, Options{Size: 8, Steps: 2, Workers: 2})
	if len(out) < len(scenarios) && !errors.Is(err, context.Canceled) {
		t.Fatalf("partial sweep should report cancellation, err = %v", err)
	}
}

func TestRunRejectsInvalidSize(t *testing.T) {
	_, err := Run(context.Background(), []Scenario{{Variant: "standard", Seed: 1}}, Options{Size: 0, Steps: 1})
	if err == nil {
		t.Fatal("expected an error for a zero-sized board")
	}
}

func TestRank(t *testing.T) {
	in := []Outcome{{Seed: 1, FinalLive: 3}, {Seed: 2, FinalLive: 9}, {Seed: 3, FinalLive: 3}}
	got := Rank(in)
	if got[0].Seed != 2 || got[1].Seed != 1 || got[2].Seed != 3 {
		t.Fatalf("rank = %+v", got)
	}
	if in[0].Seed != 1 {
		t.Fatal("Rank must not reorder its input")
	}
}
