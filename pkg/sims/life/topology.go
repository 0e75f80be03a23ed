package life

// Weighted neighborhoods are accumulated in tenths so that rounding is exact:
// a neighbor at Chebyshev distance 1 adds 10, anything farther adds 3.
const (
	nearTenths = 10
	farTenths  = 3
)

// Topology describes the neighborhood of a cell: a square of half-width Range
// around it, optionally weighted by ring distance.
type Topology struct {
	Range    int
	Weighted bool
}

func (t Topology) radius() int {
	if t.Range < 1 {
		return 1
	}
	return t.Range
}

// MaxNeighbors returns the largest count CountAt can produce for t.
func MaxNeighbors(t Topology) int {
	r := t.radius()
	side := 2*r + 1
	total := side*side - 1
	if !t.Weighted {
		return total
	}
	near := 8
	if total < near {
		near = total
	}
	return roundTenths(near*nearTenths + (total-near)*farTenths)
}

// CountAt returns the neighbor influence on (row, col) of the current board.
// Coordinates wrap toroidally; the result is rounded half away from zero.
func CountAt(g *Grid, row, col int, t Topology) int {
	return countAt(g.cur, g.n, row, col, t.radius(), t.Weighted)
}

func countAt(cells []uint8, n, row, col, r int, weighted bool) int {
	if !weighted && r == 1 {
		return mooreCount(cells, n, row, col)
	}
	sum := 0
	for di := -r; di <= r; di++ {
		rr := wrap(row+di, n) * n
		for dj := -r; dj <= r; dj++ {
			if di == 0 && dj == 0 {
				continue
			}
			v := int(cells[rr+wrap(col+dj, n)])
			if v == 0 {
				continue
			}
			if !weighted || chebyshev(di, dj) == 1 {
				sum += v * nearTenths
			} else {
				sum += v * farTenths
			}
		}
	}
	return roundTenths(sum)
}

// mooreCount is the classic 8-neighbor count.
func mooreCount(cells []uint8, n, row, col int) int {
	up := wrap(row-1, n) * n
	mid := row * n
	down := wrap(row+1, n) * n
	left := wrap(col-1, n)
	right := wrap(col+1, n)
	return int(cells[up+left]) + int(cells[up+col]) + int(cells[up+right]) +
		int(cells[mid+left]) + int(cells[mid+right]) +
		int(cells[down+left]) + int(cells[down+col]) + int(cells[down+right])
}

// wrap maps any integer onto [0, n).
func wrap(v, n int) int {
	return (v%n + n) % n
}

func chebyshev(di, dj int) int {
	return max(abs(di), abs(dj))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// roundTenths rounds a non-negative tenths value half away from zero.
func roundTenths(tenths int) int {
	return (tenths + 5) / 10
}
