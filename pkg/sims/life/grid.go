package life

import (
	"fmt"
	"iter"
	"slices"
)

// Grid is a square board of binary cells held as two equally sized buffers:
// cur is authoritative, nxt is scratch space for the engine.
type Grid struct {
	n          int
	cur        []uint8
	nxt        []uint8
	generation int
}

// NewGrid allocates an all-dead size×size grid at generation 0.
func NewGrid(size int) (*Grid, error) {
	g := &Grid{}
	if err := g.Resize(size); err != nil {
		return nil, err
	}
	return g, nil
}

// Size returns the side length of the board.
func (g *Grid) Size() int { return g.n }

// Generation returns the number of completed steps since the last reset.
func (g *Grid) Generation() int { return g.generation }

// Cells exposes the current board in row-major order. Callers must treat it as
// read-only; edits go through Set, Toggle and ApplyPattern.
func (g *Grid) Cells() []uint8 { return g.cur }

// Snapshot returns a copy of the current board.
func (g *Grid) Snapshot() []uint8 { return slices.Clone(g.cur) }

// Rows iterates over the current board one row at a time.
func (g *Grid) Rows() iter.Seq2[int, []uint8] {
	return func(yield func(int, []uint8) bool) {
		for r := 0; r < g.n; r++ {
			if !yield(r, g.cur[r*g.n:(r+1)*g.n:(r+1)*g.n]) {
				return
			}
		}
	}
}

// Get reports whether (row, col) is alive. Coordinates must be in range.
func (g *Grid) Get(row, col int) bool {
	return g.cur[row*g.n+col] != 0
}

// InBounds reports whether (row, col) addresses a cell of the board.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.n && col >= 0 && col < g.n
}

// Set writes a cell. Out-of-range coordinates are ignored.
func (g *Grid) Set(row, col int, alive bool) {
	if !g.InBounds(row, col) {
		return
	}
	g.cur[row*g.n+col] = bit(alive)
}

// Toggle flips a cell. Out-of-range coordinates are ignored.
func (g *Grid) Toggle(row, col int) {
	if !g.InBounds(row, col) {
		return
	}
	g.cur[row*g.n+col] ^= 1
}

// Clear kills every cell in both buffers and resets the generation counter.
func (g *Grid) Clear() {
	clear(g.cur)
	clear(g.nxt)
	g.generation = 0
}

// Resize reallocates both buffers at the new size. All state is discarded.
func (g *Grid) Resize(size int) error {
	if size < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDimension, size)
	}
	g.n = size
	g.cur = make([]uint8, size*size)
	g.nxt = make([]uint8, size*size)
	g.generation = 0
	return nil
}

// LiveCellCount scans the current board.
func (g *Grid) LiveCellCount() int {
	live := 0
	for _, c := range g.cur {
		live += int(c)
	}
	return live
}

// ApplyPattern stamps cells onto the current board with its top-left corner at
// (anchorRow, anchorCol). Pattern cells overwrite what is there; cells that fall
// outside the board are dropped.
func (g *Grid) ApplyPattern(cells [][]uint8, anchorRow, anchorCol int) {
	for i, row := range cells {
		r := anchorRow + i
		if r < 0 || r >= g.n {
			continue
		}
		for j, v := range row {
			c := anchorCol + j
			if c < 0 || c >= g.n {
				continue
			}
			g.cur[r*g.n+c] = bit(v != 0)
		}
	}
}

// AdvanceGeneration publishes the scratch buffer as the current board and
// increments the generation. Only the engine calls it, after nxt is complete.
func (g *Grid) AdvanceGeneration() {
	g.cur, g.nxt = g.nxt, g.cur
	g.generation++
}

// Equal reports whether two grids hold the same board.
func (g *Grid) Equal(other *Grid) bool {
	return g.n == other.n && slices.Equal(g.cur, other.cur)
}

// Clone returns an independent copy of g, including its generation.
func (g *Grid) Clone() *Grid {
	return &Grid{
		n:          g.n,
		cur:        slices.Clone(g.cur),
		nxt:        make([]uint8, len(g.nxt)),
		generation: g.generation,
	}
}

func bit(alive bool) uint8 {
	if alive {
		return 1
	}
	return 0
}
