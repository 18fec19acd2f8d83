//go:build ebiten

package ui

import (
	"torus-life/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional debugging visuals on top of the base simulation.
type Overlay struct {
	sim           core.Sim
	scale         int
	showNeighbors bool
	maskImg       *ebiten.Image
	maskBuf       []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale}
}

// Update toggles overlays from keyboard input. 1 shows neighbour counts.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showNeighbors = !o.showNeighbors
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showNeighbors {
		return
	}
	nc, ok := o.sim.(neighborCounter)
	if !ok {
		return
	}
	size := o.sim.Size()
	if o.maskImg == nil {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*size.Cells())
	}
	fillNeighborMask(o.maskBuf, nc, size, [3]uint8{255, 96, 32})
	o.maskImg.WritePixels(o.maskBuf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	op.ColorScale.ScaleAlpha(0.6)
	screen.DrawImage(o.maskImg, op)
}
