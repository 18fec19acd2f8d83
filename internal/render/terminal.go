package render

import (
	"github.com/gdamore/tcell/v2"

	"torus-life/pkg/core"
)

// AliveRune is drawn for live cells. Each cell spans two terminal columns so
// the grid looks roughly square.
const AliveRune = '█'

// DrawTerminal paints cells onto screen starting at the top-left corner.
// Cells outside the visible area are skipped. The caller calls Show.
func DrawTerminal(screen tcell.Screen, cells []uint8, size core.Size, style tcell.Style) {
	sw, sh := screen.Size()
	for y := 0; y < size.H && y < sh; y++ {
		for x := 0; x < size.W && 2*x+1 < sw; x++ {
			r := ' '
			if cells[y*size.W+x] != 0 {
				r = AliveRune
			}
			screen.SetContent(2*x, y, r, nil, style)
			screen.SetContent(2*x+1, y, r, nil, style)
		}
	}
}

// DrawStatus writes text on the row below the grid.
func DrawStatus(screen tcell.Screen, row int, text string, style tcell.Style) {
	sw, sh := screen.Size()
	if row >= sh {
		return
	}
	col := 0
	for _, r := range text {
		if col >= sw {
			break
		}
		screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < sw; col++ {
		screen.SetContent(col, row, ' ', nil, style)
	}
}
