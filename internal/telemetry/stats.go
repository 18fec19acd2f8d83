// Package telemetry records per-generation population statistics.
package telemetry

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats describes one generation relative to its predecessor.
type GenerationStats struct {
	Generation uint64  `csv:"generation"`
	Population int     `csv:"population"`
	Density    float64 `csv:"density"`
	Births     int     `csv:"births"`
	Deaths     int     `csv:"deaths"`
}

// Observe compares two snapshots of the same grid. prev may be nil for the
// initial generation, in which case births and deaths are zero.
func Observe(gen uint64, prev, cur []uint8) GenerationStats {
	s := GenerationStats{Generation: gen}
	for i, c := range cur {
		if c != 0 {
			s.Population++
		}
		if prev == nil {
			continue
		}
		switch {
		case prev[i] == 0 && c != 0:
			s.Births++
		case prev[i] != 0 && c == 0:
			s.Deaths++
		}
	}
	if len(cur) > 0 {
		s.Density = float64(s.Population) / float64(len(cur))
	}
	return s
}

// Summary aggregates a window of generations.
type Summary struct {
	FirstGeneration uint64
	LastGeneration  uint64
	Generations     int
	DensityMean     float64
	DensityStd      float64
	PopulationMin   int
	PopulationMax   int
	Births          int
	Deaths          int
}

// Summarize aggregates window. An empty window yields the zero Summary.
func Summarize(window []GenerationStats) Summary {
	if len(window) == 0 {
		return Summary{}
	}
	densities := make([]float64, len(window))
	s := Summary{
		FirstGeneration: window[0].Generation,
		LastGeneration:  window[len(window)-1].Generation,
		Generations:     len(window),
		PopulationMin:   math.MaxInt,
	}
	for i, g := range window {
		densities[i] = g.Density
		s.PopulationMin = min(s.PopulationMin, g.Population)
		s.PopulationMax = max(s.PopulationMax, g.Population)
		s.Births += g.Births
		s.Deaths += g.Deaths
	}
	s.DensityMean = stat.Mean(densities, nil)
	if len(densities) > 1 {
		s.DensityStd = stat.StdDev(densities, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("first_generation", s.FirstGeneration),
		slog.Uint64("last_generation", s.LastGeneration),
		slog.Float64("density_mean", s.DensityMean),
		slog.Float64("density_std", s.DensityStd),
		slog.Int("population_min", s.PopulationMin),
		slog.Int("population_max", s.PopulationMax),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
	)
}

// Accumulator folds generations into a Summary in constant memory. Density
// mean and sample variance use Welford's update.
type Accumulator struct {
	s    Summary
	mean float64
	m2   float64
}

// Add folds g into the running summary.
func (a *Accumulator) Add(g GenerationStats) {
	if a.s.Generations == 0 {
		a.s.FirstGeneration = g.Generation
		a.s.PopulationMin = g.Population
		a.s.PopulationMax = g.Population
	}
	a.s.Generations++
	a.s.LastGeneration = g.Generation
	a.s.PopulationMin = min(a.s.PopulationMin, g.Population)
	a.s.PopulationMax = max(a.s.PopulationMax, g.Population)
	a.s.Births += g.Births
	a.s.Deaths += g.Deaths

	delta := g.Density - a.mean
	a.mean += delta / float64(a.s.Generations)
	a.m2 += delta * (g.Density - a.mean)
}

// Summary returns the aggregate so far.
func (a *Accumulator) Summary() Summary {
	s := a.s
	s.DensityMean = a.mean
	if s.Generations > 1 {
		s.DensityStd = math.Sqrt(a.m2 / float64(s.Generations-1))
	}
	return s
}
