package automaton

// Cycle describes the first repetition found in an integer sequence: the
// value at Start+Period equals the value at Start.
type Cycle struct {
	Start  int
	Period int
}

// FindCycle returns the earliest repetition in ints. Since every generation is
// fully determined by its encoding, the sequence is periodic from Start on.
func FindCycle(ints []uint64) (Cycle, bool) {
	seen := make(map[uint64]int, len(ints))
	for i, v := range ints {
		if first, ok := seen[v]; ok {
			return Cycle{Start: first, Period: i - first}, true
		}
		seen[v] = i
	}
	return Cycle{}, false
}

// Distinct counts the unique values in ints.
func Distinct(ints []uint64) int {
	seen := make(map[uint64]struct{}, len(ints))
	for _, v := range ints {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Density returns the fraction of live cells in g, or 0 for an empty row.
func Density(g Generation) float64 {
	if len(g) == 0 {
		return 0
	}
	return float64(g.Live()) / float64(len(g))
}
