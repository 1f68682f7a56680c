// Package automaton implements the elementary cellular automaton used to
// produce musical integer sequences: rule application over a fixed-boundary
// row of binary cells and the LSB-first integer codec for a row.
//
// Every function here is pure. Inputs are never mutated and nothing is cached
// between calls, so independent calls may run concurrently.
package automaton

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCell reports a cell value other than 0 or 1.
	ErrInvalidCell = errors.New("automaton: cell value must be 0 or 1")
	// ErrWidthOverflow reports a generation too wide for the uint64 codec.
	ErrWidthOverflow = fmt.Errorf("automaton: width exceeds %d cells", MaxWidth)
	// ErrNegativeWidth reports a negative width.
	ErrNegativeWidth = errors.New("automaton: width must not be negative")
	// ErrNegativeLength reports a negative sequence length.
	ErrNegativeLength = errors.New("automaton: sequence length must not be negative")
	// ErrNegativeValue reports a negative big-integer encoding.
	ErrNegativeValue = errors.New("automaton: encoded value must not be negative")
	// ErrUnknownSeed reports a seed pattern name that is not registered.
	ErrUnknownSeed = errors.New("automaton: unknown seed pattern")
)

// MaxWidth is the widest generation representable by Encode and Decode.
const MaxWidth = 64

// Generation is one row of cells. Index 0 is the leftmost cell.
type Generation []uint8

// Width returns the number of cells.
func (g Generation) Width() int { return len(g) }

// Clone returns an independent copy of g.
func (g Generation) Clone() Generation {
	if g == nil {
		return nil
	}
	out := make(Generation, len(g))
	copy(out, g)
	return out
}

// Equal reports whether g and other hold the same cells.
func (g Generation) Equal(other Generation) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if g[i] != other[i] {
			return false
		}
	}
	return true
}

// Validate checks that every cell is 0 or 1.
func (g Generation) Validate() error {
	for i, c := range g {
		if c > 1 {
			return fmt.Errorf("%w: cell %d is %d", ErrInvalidCell, i, c)
		}
	}
	return nil
}

// Live counts the cells set to 1.
func (g Generation) Live() int {
	n := 0
	for _, c := range g {
		if c == 1 {
			n++
		}
	}
	return n
}

// String renders the generation as a run of '0' and '1' characters.
func (g Generation) String() string {
	var b strings.Builder
	b.Grow(len(g))
	for _, c := range g {
		b.WriteByte('0' + c)
	}
	return b.String()
}

// ParseGeneration reads a generation written either as a bare digit run
// ("00100") or as a comma separated list ("0,0,1,0,0"). Whitespace is ignored.
func ParseGeneration(s string) (Generation, error) {
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return Generation{}, nil
	}
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		g := make(Generation, len(parts))
		for i, p := range parts {
			if len(p) != 1 || (p[0] != '0' && p[0] != '1') {
				return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidCell, p, i)
			}
			g[i] = p[0] - '0'
		}
		return g, nil
	}
	g := make(Generation, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidCell, s[i], i)
		}
		g[i] = s[i] - '0'
	}
	return g, nil
}
