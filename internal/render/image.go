package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"torus-life/pkg/core"
)

// Image paints cells into a new RGBA image with each cell scale x scale
// pixels. len(cells) must equal size.Cells().
func Image(cells []uint8, size core.Size, scale int, on, off color.Color) *image.RGBA {
	if len(cells) != size.Cells() {
		panic(fmt.Sprintf("render: %d cells for %dx%d grid", len(cells), size.W, size.H))
	}
	src := image.NewRGBA(image.Rect(0, 0, size.W, size.H))
	fillBinaryRGBA(src.Pix, cells, on, off)
	if scale <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, size.W*scale, size.H*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating frame: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding frame: %w", err)
	}
	return f.Close()
}
