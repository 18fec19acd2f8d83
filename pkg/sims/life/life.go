package life

import (
	"fmt"

	"torus-life/pkg/core"
)

// Grid implements Conway's Game of Life (B3/S23) on a torus.
//
// The current generation is read from cur while the next one is written to
// nxt; the buffers are swapped once every cell has been computed, so no cell
// ever sees a neighbour's already-updated state.
type Grid struct {
	w, h int
	cur  *core.ByteGrid
	nxt  *core.ByteGrid
	gen  uint64

	// seed is meaningful only when seeded is set, i.e. after Reset.
	seed   int64
	seeded bool
}

// New returns a width x height grid where every cell is an independent fair
// coin flip drawn from src. Both dimensions must be positive.
func New(width, height int, src core.Source) *Grid {
	g := NewEmpty(width, height)
	core.FillBinary(src, g.cur.Cells())
	return g
}

// NewEmpty returns a grid with every cell dead.
func NewEmpty(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("life: invalid grid size %dx%d", width, height))
	}
	return &Grid{
		w:   width,
		h:   height,
		cur: core.NewByteGrid(width, height),
		nxt: core.NewByteGrid(width, height),
	}
}

// Name returns the simulation identifier.
func (g *Grid) Name() string { return "life" }

// Size returns the grid dimensions.
func (g *Grid) Size() core.Size { return core.Size{W: g.w, H: g.h} }

// Width is the number of columns.
func (g *Grid) Width() int { return g.w }

// Height is the number of rows.
func (g *Grid) Height() int { return g.h }

// Generation counts Advance calls since construction or the last Reset.
func (g *Grid) Generation() uint64 { return g.gen }

// Cells exposes the current generation. The slice is only valid until the
// next Advance.
func (g *Grid) Cells() []uint8 { return g.cur.Cells() }

// Index maps (row, col) to its position in Cells. Out-of-range coordinates
// panic; they are never wrapped.
func (g *Grid) Index(row, col int) int { return g.cur.Index(col, row) }

// Cell returns 1 if (row, col) is alive and 0 otherwise.
func (g *Grid) Cell(row, col int) uint8 { return g.cur.Cells()[g.Index(row, col)] }

// Set marks (row, col) alive or dead.
func (g *Grid) Set(row, col int, alive bool) {
	var v uint8
	if alive {
		v = 1
	}
	g.cur.Cells()[g.Index(row, col)] = v
}

// Toggle flips the state of (row, col).
func (g *Grid) Toggle(row, col int) {
	i := g.Index(row, col)
	g.cur.Cells()[i] ^= 1
}

// Reset re-seeds every cell from seed and rewinds the generation counter.
func (g *Grid) Reset(seed int64) {
	core.FillBinary(core.NewRNG(seed).Source(), g.cur.Cells())
	g.gen = 0
	g.seed = seed
	g.seeded = true
}

// Seed returns the seed of the last Reset. ok is false for grids filled from
// a caller-supplied source or left empty.
func (g *Grid) Seed() (seed int64, ok bool) { return g.seed, g.seeded }

// Clear kills every cell.
func (g *Grid) Clear() {
	g.cur.Clear()
	g.gen = 0
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := NewEmpty(g.w, g.h)
	c.cur.CopyFrom(g.cur)
	c.gen = g.gen
	c.seed, c.seeded = g.seed, g.seeded
	return c
}

// Population returns the number of live cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cur.Cells() {
		n += int(c)
	}
	return n
}

// LiveNeighbors counts the live cells among the 8 toroidal neighbours of
// (row, col).
func (g *Grid) LiveNeighbors(row, col int) int {
	g.Index(row, col)
	return int(g.neighbors(row, col))
}

func (g *Grid) neighbors(row, col int) uint8 {
	w := g.w
	cells := g.cur.Cells()
	left, up := g.cur.Wrap(col-1, row-1)
	right, down := g.cur.Wrap(col+1, row+1)
	up *= w
	mid := row * w
	down *= w
	return cells[up+left] + cells[up+col] + cells[up+right] +
		cells[mid+left] + cells[mid+right] +
		cells[down+left] + cells[down+col] + cells[down+right]
}

// rule applies B3/S23: birth on exactly 3, survival on 2 or 3.
func rule(alive, neighbors uint8) uint8 {
	if neighbors == 3 || (alive == 1 && neighbors == 2) {
		return 1
	}
	return 0
}

// Advance computes the next generation.
func (g *Grid) Advance() {
	cur := g.cur.Cells()
	nxt := g.nxt.Cells()
	for row := 0; row < g.h; row++ {
		for col := 0; col < g.w; col++ {
			idx := row*g.w + col
			nxt[idx] = rule(cur[idx], g.neighbors(row, col))
		}
	}
	g.cur, g.nxt = g.nxt, g.cur
	g.gen++
}

// Step advances the simulation by one generation.
func (g *Grid) Step() { g.Advance() }

func init() {
	core.Register("life", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		g := NewEmpty(c.Width, c.Height)
		g.Reset(c.Seed)
		return g
	})
}
