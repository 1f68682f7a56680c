package render

import (
	"strings"

	"camusicgen/internal/automaton"
)

// TextRow renders one generation using on for live cells and off otherwise.
func TextRow(g automaton.Generation, on, off rune) string {
	var b strings.Builder
	for _, c := range g {
		if c != 0 {
			b.WriteRune(on)
		} else {
			b.WriteRune(off)
		}
	}
	return b.String()
}

// Text renders every generation on its own line.
func Text(states []automaton.Generation, on, off rune) string {
	var b strings.Builder
	for _, s := range states {
		b.WriteString(TextRow(s, on, off))
		b.WriteByte('\n')
	}
	return b.String()
}
