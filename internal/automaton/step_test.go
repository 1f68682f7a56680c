package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighborhoodValueBoundaries(t *testing.T) {
	g := Generation{0, 1, 1, 0, 1}

	assert.Equal(t, 1, NeighborhoodValue(g, 0))
	assert.Equal(t, 2, NeighborhoodValue(g, 4))
	assert.Equal(t, 3, NeighborhoodValue(g, 1)) // 0,1,1
	assert.Equal(t, 6, NeighborhoodValue(g, 2)) // 1,1,0
	assert.Equal(t, 5, NeighborhoodValue(g, 3)) // 1,0,1
}

func TestNeighborhoodValueSingleCell(t *testing.T) {
	assert.Equal(t, 2, NeighborhoodValue(Generation{1}, 0))
	assert.Equal(t, 0, NeighborhoodValue(Generation{0}, 0))
}

func TestNeighborhoodValueOutOfRangePanics(t *testing.T) {
	g := Generation{0, 1, 0}
	assert.Panics(t, func() { NeighborhoodValue(g, 3) })
	assert.Panics(t, func() { NeighborhoodValue(g, -1) })
}

func TestStepRule90(t *testing.T) {
	next := Step(Generation{0, 0, 1, 0, 0}, 90)
	assert.Equal(t, Generation{0, 1, 0, 1, 0}, next)
}

func TestStepRule90IsXorOfNeighbours(t *testing.T) {
	cur := Generation{1, 0, 1, 1, 0, 0, 1, 0}
	next := Step(cur, 90)
	for i := range cur {
		var left, right uint8
		if i > 0 {
			left = cur[i-1]
		}
		if i < len(cur)-1 {
			right = cur[i+1]
		}
		assert.Equalf(t, left^right, next[i], "cell %d", i)
	}
}

func TestStepFixedBoundaryDoesNotWrap(t *testing.T) {
	// Rule 2 only fires on neighborhood 001, so the live cell moves left and
	// then falls off the edge instead of reappearing on the right.
	g := Generation{0, 0, 1}
	g = Step(g, 2)
	assert.Equal(t, Generation{0, 1, 0}, g)
	g = Step(g, 2)
	assert.Equal(t, Generation{1, 0, 0}, g)
	g = Step(g, 2)
	assert.Equal(t, Generation{0, 0, 0}, g)
}

func TestStepDoesNotMutateInput(t *testing.T) {
	cur := Generation{0, 1, 1, 0, 1}
	before := cur.Clone()
	_ = Step(cur, 110)
	assert.Equal(t, before, cur)
}

func TestStepAllRulesProduceBinaryRows(t *testing.T) {
	cur, err := Seed("random", 33, 7)
	require.NoError(t, err)
	for rule := 0; rule < 256; rule++ {
		next := Step(cur, rule)
		require.Len(t, next, len(cur))
		require.NoErrorf(t, next.Validate(), "rule %d", rule)
		assert.Equalf(t, next, Step(cur, rule), "rule %d not deterministic", rule)
	}
}

func TestStepUsesLowByteOfRule(t *testing.T) {
	cur := Generation{0, 1, 1, 0, 1, 0, 0, 1}
	assert.Equal(t, Step(cur, 30), Step(cur, 30+256))
	assert.Equal(t, Step(cur, 110), Step(cur, 110+1024))
}

func TestStepEveryNeighborhoodMatchesRuleBit(t *testing.T) {
	// Each triple (l, s, r) placed in the middle of a 3-cell row exercises
	// exactly one neighborhood code at index 1.
	for rule := 0; rule < 256; rule++ {
		for code := 0; code < 8; code++ {
			row := Generation{uint8(code >> 2 & 1), uint8(code >> 1 & 1), uint8(code & 1)}
			next := Step(row, rule)
			require.Equalf(t, uint8(rule>>code&1), next[1], "rule %d code %d", rule, code)
		}
	}
}

func TestStepEmptyGeneration(t *testing.T) {
	next := Step(Generation{}, 90)
	assert.Empty(t, next)
}

func TestStepIntoLengthMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { StepInto(make(Generation, 2), Generation{0, 1, 0}, 90) })
}
