// Package render draws generations as spacetime diagrams: one row per
// generation, oldest at the top.
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"camusicgen/internal/automaton"
)

// Image paints states into an RGBA image, each cell a scale×scale block.
// Rows shorter than the widest state are padded with off.
func Image(states []automaton.Generation, scale int, on, off color.Color) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	w := 0
	for _, s := range states {
		if len(s) > w {
			w = len(s)
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, w*scale, len(states)*scale))
	row := make([]byte, 4*w)
	line := make([]byte, 4*w*scale)
	for y, s := range states {
		padded := make([]uint8, w)
		copy(padded, s)
		fillBinaryRGBA(row, padded, on, off)
		for x := 0; x < w; x++ {
			px := row[4*x : 4*x+4]
			for dx := 0; dx < scale; dx++ {
				copy(line[4*(x*scale+dx):], px)
			}
		}
		for dy := 0; dy < scale; dy++ {
			start := img.PixOffset(0, y*scale+dy)
			copy(img.Pix[start:start+len(line)], line)
		}
	}
	return img
}

// WritePNG encodes the diagram of states as a PNG with white live cells on
// black.
func WritePNG(w io.Writer, states []automaton.Generation, scale int) error {
	return png.Encode(w, Image(states, scale, color.White, color.Black))
}
