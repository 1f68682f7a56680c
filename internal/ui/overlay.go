//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"camusicgen/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay highlights the newest generation, the row currently sounding.
// Key 1 toggles it.
type Overlay struct {
	sim   core.Sim
	scale int
	show  bool
	tint  color.RGBA
	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, show: true, tint: color.RGBA{R: 0, G: 255, B: 0, A: 70}}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update allows the overlay to update internal state.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.show = !o.show
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	size := o.sim.Size()
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(size.W*scale), float64(scale))
	op.ColorScale.ScaleWithColor(o.tint)
	screen.DrawImage(o.pixel, op)
}

func rectAt(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}
