package linalg

import (
	"errors"

	"github.com/san-kum/polykit/internal/ndarray"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNoConvergence indicates a factorization or iteration that failed
	// to converge.
	ErrNoConvergence = errors.New("linalg: did not converge")

	// ErrDims indicates operands whose dimensions do not agree.
	ErrDims = errors.New("linalg: dimension mismatch")
)

// Backend solves the dense problems the engine delegates.
type Backend interface {
	Name() string

	// LeastSquares minimizes ||a*x - b|| column by column. Singular values
	// at or below rcond times the largest are treated as zero; a negative
	// rcond selects machine precision scaled by the larger dimension.
	LeastSquares(a, b *mat.Dense, rcond float64) (*Solution, error)

	// Eigenvalues returns the eigenvalues of the square matrix m in no
	// particular order.
	Eigenvalues(m *ndarray.Array[complex128]) ([]complex128, error)
}

// Solution is the result of a least-squares solve.
type Solution struct {
	X *mat.Dense

	// Residuals holds the squared residual norm of each column of b. It is
	// empty unless the system is overdetermined and of full rank.
	Residuals []float64

	Rank     int
	Singular []float64

	// Cond is the ratio of largest to smallest singular value.
	Cond float64
}

// Default returns the backend used when callers do not supply one.
func Default() Backend {
	return NewGonum()
}
