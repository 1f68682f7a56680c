package automaton

// Sequence holds the generations of a run and their encodings. Element 0 is
// the initial generation.
type Sequence struct {
	Integers []uint64
	States   []Generation
}

// Len returns the number of generations in the sequence.
func (s Sequence) Len() int { return len(s.States) }

// Generate runs the automaton for length generations starting at initial.
// A zero length yields empty (non-nil) slices. The initial generation is
// validated up front so a rejected call produces no output.
func Generate(initial Generation, rule, length int) (Sequence, error) {
	if err := checkRun(initial, length); err != nil {
		return Sequence{}, err
	}
	seq := Sequence{
		Integers: make([]uint64, 0, length),
		States:   make([]Generation, 0, length),
	}
	if length == 0 {
		return seq, nil
	}
	cur := initial.Clone()
	for k := 0; k < length; k++ {
		if k > 0 {
			cur = Step(cur, rule)
		}
		v, _ := Encode(cur)
		seq.States = append(seq.States, cur)
		seq.Integers = append(seq.Integers, v)
	}
	return seq, nil
}

// GenerateIntegers is Generate without the materialized states. It keeps two
// row buffers regardless of length.
func GenerateIntegers(initial Generation, rule, length int) ([]uint64, error) {
	if err := checkRun(initial, length); err != nil {
		return nil, err
	}
	out := make([]uint64, 0, length)
	if length == 0 {
		return out, nil
	}
	cur := initial.Clone()
	nxt := make(Generation, len(cur))
	for k := 0; k < length; k++ {
		if k > 0 {
			StepInto(nxt, cur, rule)
			cur, nxt = nxt, cur
		}
		v, _ := Encode(cur)
		out = append(out, v)
	}
	return out, nil
}

func checkRun(initial Generation, length int) error {
	if length < 0 {
		return ErrNegativeLength
	}
	if len(initial) > MaxWidth {
		return ErrWidthOverflow
	}
	return initial.Validate()
}
