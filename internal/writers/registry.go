// Package writers renders generated sequences in the output formats offered
// by the command line tools.
package writers

import (
	"fmt"
	"io"
	"sort"

	"camusicgen/internal/automaton"
)

// WriteFunc writes a whole sequence to w.
type WriteFunc func(w io.Writer, seq automaton.Sequence) error

var registry = map[string]WriteFunc{}

// Register adds a writer under format. Last registration wins.
func Register(format string, fn WriteFunc) { registry[format] = fn }

// Write dispatches to the writer registered for format.
func Write(format string, w io.Writer, seq automaton.Sequence) error {
	fn, ok := registry[format]
	if !ok {
		return fmt.Errorf("unknown format %q (no writer registered)", format)
	}
	return fn(w, seq)
}

// Formats lists the registered format names in sorted order.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
