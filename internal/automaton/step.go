package automaton

// NeighborhoodValue packs the cells around index i as (left<<2)|(self<<1)|right.
// Cells outside the generation read as 0. The index must lie in [0, len(g)).
func NeighborhoodValue(g Generation, i int) int {
	var left, right uint8
	if i > 0 {
		left = g[i-1]
	}
	if i < len(g)-1 {
		right = g[i+1]
	}
	return int(left)<<2 | int(g[i])<<1 | int(right)
}

// Step returns the generation that follows current under rule. Bit nv of rule
// is the next state of a cell whose neighborhood code is nv, so only the low
// eight bits of rule are ever read; values outside [0,255] are not rejected.
func Step(current Generation, rule int) Generation {
	next := make(Generation, len(current))
	StepInto(next, current, rule)
	return next
}

// StepInto writes the successor of src into dst. dst must have the same length
// as src and must not alias it.
func StepInto(dst, src Generation, rule int) {
	if len(dst) != len(src) {
		panic("automaton: StepInto length mismatch")
	}
	for i := range src {
		nv := NeighborhoodValue(src, i)
		dst[i] = uint8((rule >> nv) & 1)
	}
}
