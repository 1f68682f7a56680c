//go:build ebiten

package ui

import (
	"image/color"

	"camusicgen/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	hudPadding    = 8
	hudLineHeight = 16
)

// HUD renders the parameter panel to the right of the simulation view. The
// up and down arrow keys change the rule when the sim accepts it.
type HUD struct {
	sim      core.Sim
	width    int
	snapshot core.ParameterSnapshot
	setter   core.IntParameterSetter
	rule     int

	background color.Color
	foreground color.Color
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{
		sim:        sim,
		width:      width,
		background: color.RGBA{R: 24, G: 24, B: 28, A: 255},
		foreground: color.RGBA{R: 0, G: 255, B: 0, A: 255},
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		h.setter = setter
	}
	if ruled, ok := sim.(interface{ Rule() int }); ok {
		h.rule = ruled.Rule()
	}
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached snapshot and handles rule adjustments.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	if h.setter != nil {
		delta := 0
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
			delta = 1
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
			delta = -1
		}
		if delta != 0 {
			next := (h.rule + delta + 256) % 256
			if h.setter.SetIntParameter("rule", next) {
				h.rule = next
			}
		}
	}
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		h.snapshot = provider.Parameters()
	}
}

// Draw paints the panel starting at x offset panelX.
func (h *HUD) Draw(screen *ebiten.Image, panelX, height int) {
	if h == nil || h.width == 0 || height <= 0 {
		return
	}
	panel := screen.SubImage(rectAt(panelX, 0, h.width, height)).(*ebiten.Image)
	panel.Fill(h.background)

	y := hudPadding + hudLineHeight
	face := basicfont.Face7x13
	text.Draw(screen, h.sim.Name(), face, panelX+hudPadding, y, h.foreground)
	y += hudLineHeight
	for _, group := range h.snapshot.Groups {
		y += hudLineHeight / 2
		text.Draw(screen, group.Name, face, panelX+hudPadding, y, h.foreground)
		y += hudLineHeight
		for _, p := range group.Params {
			text.Draw(screen, p.Label+": "+p.Value, face, panelX+hudPadding, y, color.White)
			y += hudLineHeight
		}
	}
	y += hudLineHeight / 2
	text.Draw(screen, "space pause  n step  r reset", face, panelX+hudPadding, y, color.Gray{Y: 160})
	text.Draw(screen, "up/down rule  q quit", face, panelX+hudPadding, y+hudLineHeight, color.Gray{Y: 160})
}
