package life

import "torus-life/pkg/core"

// Parameters describes the grid for HUD and log output. The seed is listed
// when the grid was seeded through Reset.
func (g *Grid) Parameters() core.ParameterSnapshot {
	pop := g.Population()
	grid := []core.Parameter{
		core.IntParam("w", "Width", g.w),
		core.IntParam("h", "Height", g.h),
	}
	if seed, ok := g.Seed(); ok {
		grid = append(grid, core.Int64Param("seed", "Seed", seed))
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Grid", Params: grid},
		{
			Name: "State",
			Params: []core.Parameter{
				core.Int64Param("generation", "Generation", int64(g.gen)),
				core.IntParam("population", "Population", pop),
				core.FloatParam("density", "Density", float64(pop)/float64(g.w*g.h)),
			},
		},
	}}
}
