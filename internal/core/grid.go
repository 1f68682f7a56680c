package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order. The
// viewer uses it as a spacetime diagram: row 0 is the newest generation.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Row returns the backing slice of row y.
func (g *ByteGrid) Row(y int) []uint8 { return g.data[y*g.W : (y+1)*g.W] }

// Push shifts every row down by one, dropping the oldest, and copies row
// into the top. Extra cells in row are ignored; missing cells read as 0.
func (g *ByteGrid) Push(row []uint8) {
	copy(g.data[g.W:], g.data[:g.W*(g.H-1)])
	top := g.Row(0)
	n := copy(top, row)
	for i := n; i < len(top); i++ {
		top[i] = 0
	}
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
