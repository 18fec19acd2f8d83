package main

// windowTitle returns the GUI window title for sim.
func windowTitle(sim string) string {
	return "torus-life - " + sim
}
