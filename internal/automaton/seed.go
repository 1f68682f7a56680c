package automaton

import (
	"fmt"
	"sort"

	"camusicgen/internal/core"
)

// Seeder builds an initial generation of the given width. seed is only used
// by randomized patterns.
type Seeder func(width int, seed int64) Generation

var seeders = map[string]Seeder{
	"center": func(w int, _ int64) Generation {
		g := make(Generation, w)
		if w > 0 {
			g[w/2] = 1
		}
		return g
	},
	"left": func(w int, _ int64) Generation {
		g := make(Generation, w)
		if w > 0 {
			g[0] = 1
		}
		return g
	},
	"right": func(w int, _ int64) Generation {
		g := make(Generation, w)
		if w > 0 {
			g[w-1] = 1
		}
		return g
	},
	"alternating": func(w int, _ int64) Generation {
		g := make(Generation, w)
		for i := 0; i < w; i += 2 {
			g[i] = 1
		}
		return g
	},
	"random": func(w int, seed int64) Generation {
		g := make(Generation, w)
		core.FillBinary(core.NewRNG(seed).Source(), g)
		return g
	},
	"empty": func(w int, _ int64) Generation { return make(Generation, w) },
}

// Seed returns the named initial pattern. Negative widths are rejected.
func Seed(name string, width int, seed int64) (Generation, error) {
	if width < 0 {
		return nil, ErrNegativeWidth
	}
	fn, ok := seeders[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSeed, name)
	}
	return fn(width, seed), nil
}

// SeedNames lists the registered patterns in sorted order.
func SeedNames() []string {
	names := make([]string, 0, len(seeders))
	for name := range seeders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
