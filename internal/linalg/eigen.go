package linalg

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/polykit/internal/ndarray"
	"gonum.org/v1/gonum/mat"
)

// Eigen computes eigenvalues of square matrices. Real input goes through
// gonum's balanced Hessenberg QR; complex input is reduced to Hessenberg form
// with Householder reflections and iterated with Wilkinson-shifted QR sweeps.
type Eigen struct{}

func (Eigen) Eigenvalues(m *ndarray.Array[complex128]) ([]complex128, error) {
	shape := m.Shape()
	if len(shape) != 2 || shape[0] != shape[1] {
		return nil, fmt.Errorf("%w: eigenvalues need a square matrix, got shape %v", ErrDims, shape)
	}
	n := shape[0]
	if n == 0 {
		return []complex128{}, nil
	}

	if !hasImag(m.Raw()) {
		var eig mat.Eigen
		if !eig.Factorize(mat.NewDense(n, n, realParts(m.Raw())), mat.EigenNone) {
			return nil, fmt.Errorf("%w: real eigen decomposition", ErrNoConvergence)
		}
		return eig.Values(nil), nil
	}

	h := make([][]complex128, n)
	for i := range h {
		h[i] = make([]complex128, n)
		copy(h[i], m.Raw()[i*n:(i+1)*n])
	}
	hessenberg(h)
	return hessenbergQR(h)
}

// hessenberg reduces h in place to upper Hessenberg form by unitary
// similarity transforms.
func hessenberg(h [][]complex128) {
	n := len(h)
	v := make([]complex128, n)
	for k := 0; k < n-2; k++ {
		norm := 0.0
		for i := k + 1; i < n; i++ {
			norm = math.Hypot(norm, cmplx.Abs(h[i][k]))
		}
		if norm == 0 {
			continue
		}
		x0 := h[k+1][k]
		phase := complex(1, 0)
		if x0 != 0 {
			phase = x0 / complex(cmplx.Abs(x0), 0)
		}
		alpha := -phase * complex(norm, 0)

		w := v[:n-k-1]
		for i := range w {
			w[i] = h[k+1+i][k]
		}
		w[0] -= alpha
		wn := 0.0
		for _, c := range w {
			wn = math.Hypot(wn, cmplx.Abs(c))
		}
		if wn == 0 {
			continue
		}
		for i := range w {
			w[i] /= complex(wn, 0)
		}

		// h = (I - 2wwᴴ) h
		for j := k; j < n; j++ {
			var s complex128
			for i, wi := range w {
				s += cmplx.Conj(wi) * h[k+1+i][j]
			}
			for i, wi := range w {
				h[k+1+i][j] -= 2 * wi * s
			}
		}
		// h = h (I - 2wwᴴ)
		for i := 0; i < n; i++ {
			var s complex128
			for j, wj := range w {
				s += h[i][k+1+j] * wj
			}
			for j, wj := range w {
				h[i][k+1+j] -= 2 * s * cmplx.Conj(wj)
			}
		}
		for i := k + 2; i < n; i++ {
			h[i][k] = 0
		}
	}
}

type givens struct{ a, b complex128 }

// newGivens returns the rotation G = [[a, b], [-conj(b), conj(a)]] with
// G * [x, y]ᵀ = [r, 0]ᵀ.
func newGivens(x, y complex128) givens {
	r := math.Hypot(cmplx.Abs(x), cmplx.Abs(y))
	if r == 0 {
		return givens{a: 1}
	}
	rc := complex(r, 0)
	return givens{a: cmplx.Conj(x) / rc, b: cmplx.Conj(y) / rc}
}

// hessenbergQR returns the eigenvalues of the upper Hessenberg matrix h,
// which it overwrites.
func hessenbergQR(h [][]complex128) ([]complex128, error) {
	n := len(h)
	vals := make([]complex128, 0, n)
	rots := make([]givens, n)
	maxIter := 30 * n
	iter, sinceDeflate := 0, 0

	hi := n - 1
	for hi >= 0 {
		// Find the start of the trailing unreduced block.
		lo := hi
		for lo > 0 {
			s := cmplx.Abs(h[lo-1][lo-1]) + cmplx.Abs(h[lo][lo])
			if s == 0 {
				s = frobenius(h, hi)
			}
			if cmplx.Abs(h[lo][lo-1]) <= eps*s {
				h[lo][lo-1] = 0
				break
			}
			lo--
		}

		if lo == hi {
			vals = append(vals, h[hi][hi])
			hi--
			sinceDeflate = 0
			continue
		}

		if iter >= maxIter {
			return nil, fmt.Errorf("%w: complex QR after %d sweeps", ErrNoConvergence, iter)
		}
		iter++
		sinceDeflate++

		mu := wilkinson(h[hi-1][hi-1], h[hi-1][hi], h[hi][hi-1], h[hi][hi])
		if sinceDeflate%10 == 0 {
			mu = h[hi][hi] + complex(0.75*cmplx.Abs(h[hi][hi-1]), 0)
		}

		for k := lo; k <= hi; k++ {
			h[k][k] -= mu
		}
		for k := lo; k < hi; k++ {
			g := newGivens(h[k][k], h[k+1][k])
			rots[k] = g
			for j := k; j <= hi; j++ {
				x, y := h[k][j], h[k+1][j]
				h[k][j] = g.a*x + g.b*y
				h[k+1][j] = -cmplx.Conj(g.b)*x + cmplx.Conj(g.a)*y
			}
		}
		for k := lo; k < hi; k++ {
			g := rots[k]
			for i := lo; i <= min(k+2, hi); i++ {
				x, y := h[i][k], h[i][k+1]
				h[i][k] = x*cmplx.Conj(g.a) + y*cmplx.Conj(g.b)
				h[i][k+1] = -x*g.b + y*g.a
			}
		}
		for k := lo; k <= hi; k++ {
			h[k][k] += mu
		}
	}
	return vals, nil
}

// wilkinson returns the eigenvalue of [[a, b], [c, d]] closer to d.
func wilkinson(a, b, c, d complex128) complex128 {
	half := (a - d) / 2
	disc := cmplx.Sqrt(half*half + b*c)
	l1 := d + half + disc
	l2 := d + half - disc
	if cmplx.Abs(l1-d) < cmplx.Abs(l2-d) {
		return l1
	}
	return l2
}

func frobenius(h [][]complex128, hi int) float64 {
	s := 0.0
	for i := 0; i <= hi; i++ {
		for j := 0; j <= hi; j++ {
			s = math.Hypot(s, cmplx.Abs(h[i][j]))
		}
	}
	return s
}
