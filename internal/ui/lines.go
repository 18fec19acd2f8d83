// Package ui draws the HUD panel and debugging overlays for the GUI build.
package ui

import (
	"fmt"

	"torus-life/pkg/core"
)

// hudLines lays out a parameter snapshot as panel text, one group header
// followed by its values.
func hudLines(title string, snap core.ParameterSnapshot, paused bool) []string {
	lines := []string{title}
	if paused {
		lines = append(lines, "[paused]")
	}
	for _, g := range snap.Groups {
		lines = append(lines, "", g.Name)
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf("  %-11s %s", p.Label, p.Value))
		}
	}
	return lines
}

// neighborCounter is implemented by sims that expose per-cell neighbour counts.
type neighborCounter interface {
	LiveNeighbors(row, col int) int
}

// fillNeighborMask writes an RGBA heat mask into buf where alpha grows with
// the number of live neighbours (0-8) of each cell.
func fillNeighborMask(buf []byte, nc neighborCounter, size core.Size, tint [3]uint8) {
	for row := 0; row < size.H; row++ {
		for col := 0; col < size.W; col++ {
			base := (row*size.W + col) * 4
			n := nc.LiveNeighbors(row, col)
			buf[base+0] = tint[0]
			buf[base+1] = tint[1]
			buf[base+2] = tint[2]
			buf[base+3] = uint8(n * 255 / 8)
		}
	}
}
