package life

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Boards smaller than this are always counted directly.
const spectralMinSize = 8

// spectralCounter computes neighbor counts for every cell at once by circular
// convolution of the board with the neighborhood kernel. Real FFT along rows,
// complex FFT along columns; only n/2+1 coefficients are kept per row.
// Weighted topologies use two kernels (inner ring and the rest) so that the
// integer ring counts can be recombined and rounded exactly like CountAt.
type spectralCounter struct {
	n        int
	radius   int
	weighted bool

	half  int
	rfft  *fourier.FFT
	cfft  *fourier.CmplxFFT
	norm  float64
	near  []complex128 // inner ring, or the whole neighborhood when unweighted
	far   []complex128 // nil when unweighted
	board []complex128
	work  []complex128
	col   []complex128
	row   []float64
	ring  []int
}

func newSpectralCounter(n int, t Topology) *spectralCounter {
	s := &spectralCounter{
		n:        n,
		radius:   t.radius(),
		weighted: t.Weighted,
		half:     n/2 + 1,
		rfft:     fourier.NewFFT(n),
		cfft:     fourier.NewCmplxFFT(n),
		norm:     1 / float64(n*n),
		col:      make([]complex128, n),
		row:      make([]float64, n),
	}
	s.board = make([]complex128, n*s.half)
	s.work = make([]complex128, n*s.half)

	near := make([]float64, n*n)
	var far []float64
	if s.weighted {
		far = make([]float64, n*n)
		s.ring = make([]int, n*n)
	}
	r := s.radius
	for di := -r; di <= r; di++ {
		for dj := -r; dj <= r; dj++ {
			if di == 0 && dj == 0 {
				continue
			}
			idx := wrap(di, n)*n + wrap(dj, n)
			// Offsets that alias on a small torus accumulate, as in the direct count.
			if !s.weighted || chebyshev(di, dj) == 1 {
				near[idx]++
			} else {
				far[idx]++
			}
		}
	}
	s.near = s.forward(make([]complex128, n*s.half), near)
	if s.weighted {
		s.far = s.forward(make([]complex128, n*s.half), far)
	}
	return s
}

func (s *spectralCounter) matches(n int, t Topology) bool {
	return s.n == n && s.radius == t.radius() && s.weighted == t.Weighted
}

// countAll fills dst with the neighbor count of every cell of cells.
func (s *spectralCounter) countAll(cells []uint8, dst []int) {
	n := s.n
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			s.row[x] = float64(cells[y*n+x])
		}
		s.rfft.Coefficients(s.board[y*s.half:(y+1)*s.half], s.row)
	}
	s.columns(s.board, false)

	if !s.weighted {
		s.convolve(s.near, func(i, v int) { dst[i] = v })
		return
	}
	s.convolve(s.near, func(i, v int) { s.ring[i] = v })
	s.convolve(s.far, func(i, v int) {
		dst[i] = roundTenths(s.ring[i]*nearTenths + v*farTenths)
	})
}

// convolve multiplies the transformed board by kernel, inverts, and hands each
// rounded cell value to emit.
func (s *spectralCounter) convolve(kernel []complex128, emit func(idx, v int)) {
	for i := range s.work {
		s.work[i] = s.board[i] * kernel[i]
	}
	s.columns(s.work, true)
	n := s.n
	for y := 0; y < n; y++ {
		s.rfft.Sequence(s.row, s.work[y*s.half:(y+1)*s.half])
		for x := 0; x < n; x++ {
			emit(y*n+x, int(math.Round(s.row[x]*s.norm)))
		}
	}
}

func (s *spectralCounter) forward(dst []complex128, spatial []float64) []complex128 {
	n := s.n
	for y := 0; y < n; y++ {
		s.rfft.Coefficients(dst[y*s.half:(y+1)*s.half], spatial[y*n:(y+1)*n])
	}
	s.columns(dst, false)
	return dst
}

// columns runs the complex transform down every retained column of freq.
func (s *spectralCounter) columns(freq []complex128, inverse bool) {
	n := s.n
	for x := 0; x < s.half; x++ {
		for y := 0; y < n; y++ {
			s.col[y] = freq[y*s.half+x]
		}
		if inverse {
			s.cfft.Sequence(s.col, s.col)
		} else {
			s.cfft.Coefficients(s.col, s.col)
		}
		for y := 0; y < n; y++ {
			freq[y*s.half+x] = s.col[y]
		}
	}
}
