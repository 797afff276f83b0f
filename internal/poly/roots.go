package poly

import (
	"math"
	"sort"

	"github.com/san-kum/polykit/internal/linalg"
	"github.com/san-kum/polykit/internal/ndarray"
)

// EigenSolver computes the eigenvalues of a square matrix, in any order.
type EigenSolver interface {
	Eigenvalues(m *ndarray.Array[complex128]) ([]complex128, error)
}

// FromRoots returns the monic polynomial whose roots are the given values,
// repeated according to their multiplicity. The linear factors are multiplied
// pairwise in sorted order to limit rounding growth. No roots yields [1].
func FromRoots[T ndarray.Number](roots []T) []T {
	if len(roots) == 0 {
		return One[T]()
	}
	r := clone(roots)
	sort.SliceStable(r, func(i, j int) bool {
		return lessComplex(ndarray.ToComplex(r[i]), ndarray.ToComplex(r[j]))
	})

	p := make([][]T, len(r))
	for i, v := range r {
		p[i] = Line(-v, 1)
	}
	for n := len(p); n > 1; {
		m, odd := n/2, n%2 == 1
		tmp := make([][]T, m)
		for i := 0; i < m; i++ {
			tmp[i] = Mul(p[i], p[i+m])
		}
		if odd {
			tmp[0] = Mul(tmp[0], p[n-1])
		}
		p, n = tmp, m
	}
	return p[0]
}

// Companion returns the companion matrix of c. Its eigenvalues are the roots
// of c. c must have degree at least 1 after trailing zeros are removed.
func Companion[T ndarray.Number](c []T) (*ndarray.Array[T], error) {
	c = trimSeq(c)
	if len(c) < 2 {
		return nil, newError("companion", ErrValue, "series must have maximum degree of at least 1")
	}
	if len(c) == 2 {
		return ndarray.Full(-c[0]/c[1], 1, 1), nil
	}

	n := len(c) - 1
	m := ndarray.Zeros[T](n, n)
	raw := m.Raw()
	for i := 1; i < n; i++ {
		raw[i*n+i-1] = 1
	}
	lead := c[n]
	for i := 0; i < n; i++ {
		raw[i*n+n-1] -= c[i] / lead
	}
	return m, nil
}

// Roots returns the roots of c sorted by real part, then imaginary part.
// A polynomial of degree zero has no roots.
func Roots[T ndarray.Number](c []T) ([]complex128, error) {
	return RootsWith(c, linalg.Eigen{})
}

// RootsWith is Roots using the given eigenvalue solver.
func RootsWith[T ndarray.Number](c []T, solver EigenSolver) ([]complex128, error) {
	c = trimSeq(c)
	switch len(c) {
	case 1:
		return []complex128{}, nil
	case 2:
		return []complex128{ndarray.ToComplex(-c[0] / c[1])}, nil
	}

	comp, err := Companion(c)
	if err != nil {
		return nil, err
	}
	// Rotated companion matrix, same spectrum, better conditioned for the
	// QR iteration.
	n := comp.Len()
	m := ndarray.Zeros[complex128](n, n)
	src, dst := comp.Raw(), m.Raw()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dst[i*n+j] = ndarray.ToComplex(src[(n-1-i)*n+(n-1-j)])
		}
	}

	vals, err := solver.Eigenvalues(m)
	if err != nil {
		return nil, newError("roots", ErrValue, "eigenvalues: %v", err)
	}
	out := append([]complex128(nil), vals...)
	sort.Slice(out, func(i, j int) bool { return lessComplex(out[i], out[j]) })
	return out, nil
}

// RealRoots returns the real parts of the roots whose imaginary part is at
// most tol in magnitude.
func RealRoots(roots []complex128, tol float64) []float64 {
	out := make([]float64, 0, len(roots))
	for _, r := range roots {
		if math.Abs(imag(r)) <= tol {
			out = append(out, real(r))
		}
	}
	return out
}

func lessComplex(a, b complex128) bool {
	if real(a) != real(b) {
		return real(a) < real(b)
	}
	return imag(a) < imag(b)
}
