package automaton

import "math/big"

// Encode packs g into an integer with cell i contributing 1<<i, so the
// leftmost cell is the least significant bit.
func Encode(g Generation) (uint64, error) {
	if len(g) > MaxWidth {
		return 0, ErrWidthOverflow
	}
	if err := g.Validate(); err != nil {
		return 0, err
	}
	var v uint64
	for i, c := range g {
		if c == 1 {
			v |= 1 << uint(i)
		}
	}
	return v, nil
}

// Decode unpacks the low width bits of v into a generation. It is the inverse
// of Encode.
func Decode(v uint64, width int) (Generation, error) {
	if width < 0 {
		return nil, ErrNegativeWidth
	}
	if width > MaxWidth {
		return nil, ErrWidthOverflow
	}
	g := make(Generation, width)
	for i := range g {
		g[i] = uint8((v >> uint(i)) & 1)
	}
	return g, nil
}

// EncodeBig is Encode without the width limit.
func EncodeBig(g Generation) (*big.Int, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	v := new(big.Int)
	for i, c := range g {
		if c == 1 {
			v.SetBit(v, i, 1)
		}
	}
	return v, nil
}

// DecodeBig is Decode without the width limit. Negative values are rejected.
func DecodeBig(v *big.Int, width int) (Generation, error) {
	if width < 0 {
		return nil, ErrNegativeWidth
	}
	if v.Sign() < 0 {
		return nil, ErrNegativeValue
	}
	g := make(Generation, width)
	for i := range g {
		g[i] = uint8(v.Bit(i))
	}
	return g, nil
}
