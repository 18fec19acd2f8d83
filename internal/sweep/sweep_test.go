package sweep

import (
	"context"
	"math"
	"testing"
)

func TestRunOrdersBySeed(t *testing.T) {
	results, err := Run(context.Background(), Params{
		Width: 32, Height: 32, FirstSeed: 10, Seeds: 12, Generations: 8, Workers: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 12 {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Seed != int64(10+i) {
			t.Fatalf("result %d has seed %d", i, r.Seed)
		}
		if r.Generations != 8 {
			t.Fatalf("seed %d ran %d generations", r.Seed, r.Generations)
		}
		if r.InitialDensity < 0 || r.InitialDensity > 1 || r.FinalDensity < 0 || r.FinalDensity > 1 {
			t.Fatalf("seed %d densities out of range: %+v", r.Seed, r)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	p := Params{Width: 20, Height: 20, FirstSeed: 1, Seeds: 6, Generations: 15, Workers: 4}
	a, err := Run(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	p.Workers = 1
	b, err := Run(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seed %d differs across worker counts: %+v vs %+v", a[i].Seed, a[i], b[i])
		}
	}
}

func TestInitialDensityConverges(t *testing.T) {
	results, err := Run(context.Background(), Params{Width: 100, Height: 100, FirstSeed: 1, Seeds: 16})
	if err != nil {
		t.Fatal(err)
	}
	agg := Summarize(results)
	if math.Abs(agg.InitialDensityMean-0.5) > 0.01 {
		t.Fatalf("initial density mean %.4f, want ~0.5", agg.InitialDensityMean)
	}
	if agg.InitialDensityMean != agg.FinalDensityMean {
		t.Fatalf("zero generations should leave density unchanged: %+v", agg)
	}
}

func TestRunRejectsBadSize(t *testing.T) {
	if _, err := Run(context.Background(), Params{Width: 0, Height: 4, Seeds: 1}); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, Params{Width: 8, Height: 8, Seeds: 4, Generations: 10}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestSummarizeExtinct(t *testing.T) {
	agg := Summarize([]Result{
		{InitialDensity: 0.5, FinalDensity: 0, FinalPopulation: 0},
		{InitialDensity: 0.5, FinalDensity: 0.1, FinalPopulation: 10},
	})
	if agg.Runs != 2 || agg.Extinct != 1 {
		t.Fatalf("aggregate = %+v", agg)
	}
	if math.Abs(agg.FinalDensityMean-0.05) > 1e-9 {
		t.Fatalf("final mean = %v", agg.FinalDensityMean)
	}
}
