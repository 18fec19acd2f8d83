package core

import "fmt"

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions. Both must be positive.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("core: invalid grid size %dx%d", w, h))
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// In reports whether (x, y) lies inside the grid.
func (g *ByteGrid) In(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Index returns the linear slice index for coordinates (x, y). Coordinates
// outside the grid panic; use Wrap first when toroidal lookup is intended.
func (g *ByteGrid) Index(x, y int) int {
	if !g.In(x, y) {
		panic(fmt.Sprintf("core: coordinate (%d,%d) outside %dx%d grid", x, y, g.W, g.H))
	}
	return y*g.W + x
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *ByteGrid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// CopyFrom overwrites the grid contents with src. Sizes must match.
func (g *ByteGrid) CopyFrom(src *ByteGrid) {
	if src.W != g.W || src.H != g.H {
		panic(fmt.Sprintf("core: copy %dx%d into %dx%d", src.W, src.H, g.W, g.H))
	}
	copy(g.data, src.data)
}
