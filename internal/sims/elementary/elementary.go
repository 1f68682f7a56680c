package elementary

import (
	"strconv"

	"camusicgen/internal/automaton"
	"camusicgen/internal/core"
)

// Config holds parameters for the elementary cellular automaton.
type Config struct {
	Width  int
	Height int
	Rule   int
	Init   string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 16, Height: 64, Rule: 90, Init: "center"}
}

// Elementary is a stateful wrapper around the automaton engine. It keeps the
// current generation plus a scrolling history for display; the newest
// generation is the top row.
type Elementary struct {
	cfg     Config
	initial automaton.Generation
	cur     automaton.Generation
	nxt     automaton.Generation
	history *core.ByteGrid
	gen     int
	value   uint64
}

// New creates an automaton from cfg. An unknown Init pattern falls back to a
// single centered cell. Rule is reduced to its low byte.
func New(cfg Config) *Elementary {
	if cfg.Width <= 0 || cfg.Width > automaton.MaxWidth {
		cfg.Width = DefaultConfig().Width
	}
	cfg.Rule &= 0xff
	e := &Elementary{
		cfg:     cfg,
		cur:     make(automaton.Generation, cfg.Width),
		nxt:     make(automaton.Generation, cfg.Width),
		history: core.NewByteGrid(cfg.Width, cfg.Height),
	}
	e.Reset(0)
	return e
}

// NewWithInitial creates an automaton that resets to the supplied generation.
func NewWithInitial(cfg Config, initial automaton.Generation) *Elementary {
	cfg.Width = len(initial)
	e := New(cfg)
	if len(initial) == e.cfg.Width {
		e.initial = initial.Clone()
		e.Reset(0)
	}
	return e
}

// Name returns the simulation identifier.
func (e *Elementary) Name() string { return "elementary" }

// Size returns the dimensions of the history buffer.
func (e *Elementary) Size() core.Size { return core.Size{W: e.history.W, H: e.history.H} }

// Cells exposes the history buffer for rendering.
func (e *Elementary) Cells() []uint8 { return e.history.Cells() }

// Current returns a copy of the current generation.
func (e *Elementary) Current() automaton.Generation { return e.cur.Clone() }

// Value returns the encoded integer of the current generation.
func (e *Elementary) Value() uint64 { return e.value }

// Generation returns how many steps have run since the last reset.
func (e *Elementary) Generation() int { return e.gen }

// Rule returns the active rule number.
func (e *Elementary) Rule() int { return e.cfg.Rule }

// Reset clears the history and reseeds the current generation.
func (e *Elementary) Reset(seed int64) {
	e.history.Clear()
	if e.initial != nil {
		copy(e.cur, e.initial)
	} else {
		g, err := automaton.Seed(e.cfg.Init, e.cfg.Width, seed)
		if err != nil {
			g, _ = automaton.Seed("center", e.cfg.Width, seed)
		}
		copy(e.cur, g)
	}
	e.gen = 0
	e.record()
}

// Step computes the next generation and scrolls history downwards.
func (e *Elementary) Step() {
	automaton.StepInto(e.nxt, e.cur, e.cfg.Rule)
	e.cur, e.nxt = e.nxt, e.cur
	e.gen++
	e.record()
}

func (e *Elementary) record() {
	e.history.Push(e.cur)
	e.value, _ = automaton.Encode(e.cur)
}

// Parameters reports the values shown on the HUD.
func (e *Elementary) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Automaton",
		Params: []core.Parameter{
			{Key: "rule", Label: "Rule", Value: strconv.Itoa(e.cfg.Rule), Description: "Wolfram rule number"},
			{Key: "width", Label: "Width", Value: strconv.Itoa(e.cfg.Width)},
			{Key: "generation", Label: "Generation", Value: strconv.Itoa(e.gen)},
			{Key: "value", Label: "Value", Value: strconv.FormatUint(e.value, 10), Description: "LSB-first encoding of the current row"},
			{Key: "cells", Label: "Cells", Value: e.cur.String()},
		},
	}}}
}

// SetIntParameter updates the rule, keeping its low byte. Other keys are not
// adjustable.
func (e *Elementary) SetIntParameter(key string, value int) bool {
	if key != "rule" {
		return false
	}
	e.cfg.Rule = value & 0xff
	return true
}
