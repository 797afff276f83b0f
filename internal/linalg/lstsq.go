package linalg

import (
	"fmt"

	"github.com/san-kum/polykit/internal/ndarray"
	"gonum.org/v1/gonum/mat"
)

// eps is the float64 machine epsilon.
const eps = 2.220446049250313e-16

// Lstsq solves the least-squares problem a*x ≈ b for a of shape (m, n) and b
// of shape (m,) or (m, k). The solution has shape (n,) or (n, k) to match b.
//
// Systems with any non-zero imaginary part are solved through the real
// embedding [[Re a, -Im a], [Im a, Re a]], which preserves the minimum-norm
// solution. The returned Solution then reports the complex rank and
// singular values.
func Lstsq(be Backend, a, b *ndarray.Array[complex128], rcond float64) (*ndarray.Array[complex128], *Solution, error) {
	if a.Ndim() != 2 {
		return nil, nil, fmt.Errorf("%w: lhs must be 2-D, got shape %v", ErrDims, a.Shape())
	}
	if b.Ndim() < 1 || b.Ndim() > 2 {
		return nil, nil, fmt.Errorf("%w: rhs must be 1-D or 2-D, got shape %v", ErrDims, b.Shape())
	}
	shape := a.Shape()
	m, n := shape[0], shape[1]
	if b.Len() != m {
		return nil, nil, fmt.Errorf("%w: lhs has %d rows, rhs has %d", ErrDims, m, b.Len())
	}
	k := 1
	if b.Ndim() == 2 {
		k = b.Shape()[1]
	}
	if m == 0 || n == 0 || k == 0 {
		return nil, nil, fmt.Errorf("%w: empty system %dx%d", ErrDims, m, n)
	}

	cplx := hasImag(a.Raw()) || hasImag(b.Raw())

	var am, bm *mat.Dense
	if cplx {
		am = embed(a.Raw(), m, n)
		// The leading k columns of the embedded rhs are [Re b; Im b].
		bm = embed(b.Raw(), m, k).Slice(0, 2*m, 0, k).(*mat.Dense)
	} else {
		am = mat.NewDense(m, n, realParts(a.Raw()))
		bm = mat.NewDense(m, k, realParts(b.Raw()))
	}

	sol, err := be.LeastSquares(am, bm, rcond)
	if err != nil {
		return nil, nil, err
	}

	xs := make([]complex128, n*k)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			v := complex(sol.X.At(i, j), 0)
			if cplx {
				v += complex(0, sol.X.At(n+i, j))
			}
			xs[i*k+j] = v
		}
	}

	if cplx {
		sol.Rank /= 2
		half := make([]float64, 0, len(sol.Singular)/2)
		for i := 0; i < len(sol.Singular); i += 2 {
			half = append(half, sol.Singular[i])
		}
		sol.Singular = half
	}

	xshape := []int{n}
	if b.Ndim() == 2 {
		xshape = []int{n, k}
	}
	x, err := ndarray.New(xshape, xs)
	if err != nil {
		return nil, nil, err
	}
	return x, sol, nil
}

// embed returns the real block [[Re v, -Im v], [Im v, Re v]] of the r×c
// complex matrix v.
func embed(v []complex128, r, c int) *mat.Dense {
	out := mat.NewDense(2*r, 2*c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			re, im := real(v[i*c+j]), imag(v[i*c+j])
			out.Set(i, j, re)
			out.Set(i, c+j, -im)
			out.Set(r+i, j, im)
			out.Set(r+i, c+j, re)
		}
	}
	return out
}

func realParts(v []complex128) []float64 {
	out := make([]float64, len(v))
	for i, c := range v {
		out[i] = real(c)
	}
	return out
}

func hasImag(v []complex128) bool {
	for _, c := range v {
		if imag(c) != 0 {
			return true
		}
	}
	return false
}
