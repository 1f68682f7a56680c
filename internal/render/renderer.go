//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a spacetime history into a single ebiten image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte

	On  color.Color
	Off color.Color
}

// NewGridPainter allocates a painter for a history of h generations of w cells.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h), On: color.White, Off: color.Black}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads cells and draws them onto dst at the given offset and scale.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, scale int, offsetY float64) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillBinaryRGBA(gp.buf, cells, gp.On, gp.Off)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(0, offsetY)
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
