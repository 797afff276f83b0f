package linalg

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/polykit/internal/ndarray"
	"gonum.org/v1/gonum/mat"
)

// Gonum is the CPU backend built on gonum/mat.
type Gonum struct {
	eigen Eigen
}

func NewGonum() *Gonum {
	return &Gonum{}
}

func (g *Gonum) Name() string { return "gonum" }

func (g *Gonum) LeastSquares(a, b *mat.Dense, rcond float64) (*Solution, error) {
	m, n := a.Dims()
	bm, k := b.Dims()
	if bm != m {
		return nil, fmt.Errorf("%w: lhs has %d rows, rhs has %d", ErrDims, m, bm)
	}
	if m == 0 || n == 0 || k == 0 {
		return nil, fmt.Errorf("%w: empty system %dx%d", ErrDims, m, n)
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, fmt.Errorf("%w: svd", ErrNoConvergence)
	}
	s := svd.Values(nil)

	if rcond < 0 {
		rcond = eps * float64(max(m, n))
	}
	cutoff := rcond * s[0]
	rank := 0
	for _, v := range s {
		if v > cutoff {
			rank++
		}
	}

	sol := &Solution{Rank: rank, Singular: s, Cond: math.Inf(1)}
	if last := s[len(s)-1]; last > 0 {
		sol.Cond = s[0] / last
	}

	if rank == n && m >= n {
		qr := new(mat.QR)
		qr.Factorize(a)
		x := new(mat.Dense)
		err := qr.SolveTo(x, false, b)
		var cond mat.Condition
		if err == nil || errors.As(err, &cond) {
			sol.X = x
		}
	}
	if sol.X == nil {
		sol.X = pseudoSolve(&svd, s[:rank], b)
	}

	if rank == n && m > n {
		r := new(mat.Dense)
		r.Mul(a, sol.X)
		r.Sub(b, r)
		sol.Residuals = make([]float64, k)
		for j := 0; j < k; j++ {
			for i := 0; i < m; i++ {
				sol.Residuals[j] += r.At(i, j) * r.At(i, j)
			}
		}
	}
	return sol, nil
}

// pseudoSolve returns V * diag(1/s) * Uᵀ * b using the leading len(s)
// singular triplets.
func pseudoSolve(svd *mat.SVD, s []float64, b *mat.Dense) *mat.Dense {
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	_, n := v.Dims()
	_, k := b.Dims()

	utb := mat.NewDense(n, k, nil)
	utb.Mul(u.T(), b)
	for i := 0; i < n; i++ {
		scale := 0.0
		if i < len(s) {
			scale = 1 / s[i]
		}
		for j := 0; j < k; j++ {
			utb.Set(i, j, utb.At(i, j)*scale)
		}
	}

	x := new(mat.Dense)
	x.Mul(&v, utb)
	return x
}

func (g *Gonum) Eigenvalues(m *ndarray.Array[complex128]) ([]complex128, error) {
	return g.eigen.Eigenvalues(m)
}
