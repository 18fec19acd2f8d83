// Package sweep runs many independently seeded grids in parallel and
// reports how their density evolves.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"torus-life/pkg/core"
	"torus-life/pkg/sims/life"
)

// Params describes a sweep.
type Params struct {
	Width       int
	Height      int
	FirstSeed   int64
	Seeds       int
	Generations int
	Workers     int // 0 = runtime.NumCPU()
}

// Result is the outcome of one seed. Each grid is advanced serially on a
// single worker.
type Result struct {
	Seed              int64   `csv:"seed"`
	InitialPopulation int     `csv:"initial_population"`
	InitialDensity    float64 `csv:"initial_density"`
	FinalPopulation   int     `csv:"final_population"`
	FinalDensity      float64 `csv:"final_density"`
	Generations       int     `csv:"generations"`
}

// Aggregate summarises a set of results.
type Aggregate struct {
	Runs               int
	InitialDensityMean float64
	InitialDensityStd  float64
	FinalDensityMean   float64
	FinalDensityStd    float64
	Extinct            int
}

// LogValue implements slog.LogValuer.
func (a Aggregate) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("runs", a.Runs),
		slog.Float64("initial_density_mean", a.InitialDensityMean),
		slog.Float64("initial_density_std", a.InitialDensityStd),
		slog.Float64("final_density_mean", a.FinalDensityMean),
		slog.Float64("final_density_std", a.FinalDensityStd),
		slog.Int("extinct", a.Extinct),
	)
}

// Run evaluates every seed in [FirstSeed, FirstSeed+Seeds) and returns the
// results ordered by seed.
func Run(ctx context.Context, p Params) ([]Result, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("sweep: grid size %dx%d must be positive", p.Width, p.Height)
	}
	if p.Seeds <= 0 {
		return nil, nil
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, p.Seeds)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < p.Seeds; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = runSeed(ctx, p, p.FirstSeed+int64(i))
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runSeed(ctx context.Context, p Params, seed int64) Result {
	grid := life.New(p.Width, p.Height, core.NewRNG(seed).Source())
	total := float64(p.Width * p.Height)
	res := Result{Seed: seed, InitialPopulation: grid.Population()}
	res.InitialDensity = float64(res.InitialPopulation) / total
	for gen := 0; gen < p.Generations; gen++ {
		if gen%64 == 0 && ctx.Err() != nil {
			break
		}
		grid.Advance()
	}
	res.Generations = int(grid.Generation())
	res.FinalPopulation = grid.Population()
	res.FinalDensity = float64(res.FinalPopulation) / total
	return res
}

// Summarize aggregates results.
func Summarize(results []Result) Aggregate {
	a := Aggregate{Runs: len(results)}
	if len(results) == 0 {
		return a
	}
	initial := make([]float64, len(results))
	final := make([]float64, len(results))
	for i, r := range results {
		initial[i] = r.InitialDensity
		final[i] = r.FinalDensity
		if r.FinalPopulation == 0 {
			a.Extinct++
		}
	}
	a.InitialDensityMean, a.InitialDensityStd = stat.MeanStdDev(initial, nil)
	a.FinalDensityMean, a.FinalDensityStd = stat.MeanStdDev(final, nil)
	return a
}
