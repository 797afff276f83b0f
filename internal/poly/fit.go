package poly

import (
	"math"
	"sort"

	"github.com/san-kum/polykit/internal/linalg"
	"github.com/san-kum/polykit/internal/ndarray"
)

// FitInfo reports diagnostics of a least-squares fit.
type FitInfo struct {
	// Residuals is the sum of squared residuals for each fitted column. It is
	// empty when the system is not overdetermined or is rank deficient.
	Residuals []float64

	// Rank is the effective rank of the scaled Vandermonde matrix.
	Rank int

	SingularValues []float64
	RCond          float64
	Cond           float64

	// Order is the number of fitted coefficients. Rank < Order means the fit
	// is poorly conditioned.
	Order int
}

// Deficient reports whether the design matrix lost rank.
func (fi FitInfo) Deficient() bool {
	return fi.Rank < fi.Order
}

type fitOptions struct {
	weights *ndarray.Array[float64]
	rcond   float64
	backend linalg.Backend
}

// FitOption configures Fit.
type FitOption func(*fitOptions)

// Weights sets a per-sample weight applied to the unsquared residuals.
func Weights(w *ndarray.Array[float64]) FitOption {
	return func(o *fitOptions) { o.weights = w }
}

// RCond sets the relative cutoff below which singular values are treated as
// zero. The default is len(x) times the machine precision of the element type.
func RCond(r float64) FitOption {
	return func(o *fitOptions) { o.rcond = r }
}

// WithBackend selects the linear-algebra backend.
func WithBackend(b linalg.Backend) FitOption {
	return func(o *fitOptions) { o.backend = b }
}

// Fit returns the coefficients of the degree deg polynomial that best fits
// the samples (x, y) in the least-squares sense. y may be 2-D, in which case
// each column is fitted independently and the result has shape (deg+1, K).
func Fit[T ndarray.Number](x, y *ndarray.Array[T], deg int, opts ...FitOption) (*ndarray.Array[T], FitInfo, error) {
	if deg < 0 {
		return nil, FitInfo{}, newError("fit", ErrValue, "degree must be non-negative, got %d", deg)
	}
	terms := make([]int, deg+1)
	for i := range terms {
		terms[i] = i
	}
	return fitTerms("fit", x, y, terms, opts)
}

// FitTerms fits only the listed powers of x; the other coefficients of the
// result are zero. The result has length max(degrees)+1.
func FitTerms[T ndarray.Number](x, y *ndarray.Array[T], degrees []int, opts ...FitOption) (*ndarray.Array[T], FitInfo, error) {
	if len(degrees) == 0 {
		return nil, FitInfo{}, newError("fitterms", ErrType, "no degrees given")
	}
	terms := append([]int(nil), degrees...)
	sort.Ints(terms)
	if terms[0] < 0 {
		return nil, FitInfo{}, newError("fitterms", ErrValue, "degrees must be non-negative, got %v", degrees)
	}
	for i := 1; i < len(terms); i++ {
		if terms[i] == terms[i-1] {
			return nil, FitInfo{}, newError("fitterms", ErrValue, "duplicate degree %d", terms[i])
		}
	}
	return fitTerms("fitterms", x, y, terms, opts)
}

func fitTerms[T ndarray.Number](op string, x, y *ndarray.Array[T], terms []int, opts []FitOption) (*ndarray.Array[T], FitInfo, error) {
	o := fitOptions{rcond: -1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = linalg.Default()
	}

	if x.Ndim() != 1 {
		return nil, FitInfo{}, newError(op, ErrType, "x must be 1-D, got shape %v", x.Shape())
	}
	if x.Size() == 0 {
		return nil, FitInfo{}, newError(op, ErrType, "x must not be empty")
	}
	if y.Ndim() < 1 || y.Ndim() > 2 {
		return nil, FitInfo{}, newError(op, ErrType, "y must be 1-D or 2-D, got shape %v", y.Shape())
	}
	m := x.Len()
	if y.Len() != m {
		return nil, FitInfo{}, newError(op, ErrShape, "x has %d samples, y has %d", m, y.Len())
	}
	if o.weights != nil {
		if o.weights.Ndim() != 1 {
			return nil, FitInfo{}, newError(op, ErrType, "weights must be 1-D, got shape %v", o.weights.Shape())
		}
		if o.weights.Len() != m {
			return nil, FitInfo{}, newError(op, ErrShape, "x has %d samples, weights has %d", m, o.weights.Len())
		}
	}
	if o.rcond < 0 {
		o.rcond = float64(m) * epsilon[T]()
	}

	lmax := terms[len(terms)-1]
	van, err := Vander(x, lmax)
	if err != nil {
		return nil, FitInfo{}, err
	}

	// Design matrix restricted to the requested terms, rows weighted.
	n := len(terms)
	a := ndarray.Zeros[complex128](m, n)
	vraw, araw := van.Raw(), a.Raw()
	for i := 0; i < m; i++ {
		w := 1.0
		if o.weights != nil {
			w = o.weights.Raw()[i]
		}
		for j, t := range terms {
			araw[i*n+j] = ndarray.ToComplex(vraw[i*(lmax+1)+t]) * complex(w, 0)
		}
	}
	b := ndarray.Convert[T, complex128](y)
	if o.weights != nil {
		braw := b.Raw()
		bs := b.Size() / m
		for i := 0; i < m; i++ {
			w := complex(o.weights.Raw()[i], 0)
			for j := 0; j < bs; j++ {
				braw[i*bs+j] *= w
			}
		}
	}

	// Column norms.
	scl := make([]float64, n)
	for j := 0; j < n; j++ {
		s := 0.0
		for i := 0; i < m; i++ {
			v := araw[i*n+j]
			s += real(v)*real(v) + imag(v)*imag(v)
		}
		scl[j] = math.Sqrt(s)
		if scl[j] == 0 {
			scl[j] = 1
		}
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			araw[i*n+j] /= complex(scl[j], 0)
		}
	}

	coef, sol, err := linalg.Lstsq(o.backend, a, b, o.rcond)
	if err != nil {
		return nil, FitInfo{}, newError(op, ErrValue, "least squares: %v", err)
	}

	k := coef.Size() / n
	shape := []int{lmax + 1}
	if y.Ndim() == 2 {
		shape = append(shape, k)
	}
	out := ndarray.Zeros[T](shape...)
	craw, oraw := coef.Raw(), out.Raw()
	for j, t := range terms {
		for c := 0; c < k; c++ {
			oraw[t*k+c] = ndarray.FromComplex[T](craw[j*k+c] / complex(scl[j], 0))
		}
	}

	info := FitInfo{
		Residuals:      sol.Residuals,
		Rank:           sol.Rank,
		SingularValues: sol.Singular,
		RCond:          o.rcond,
		Cond:           sol.Cond,
		Order:          n,
	}
	return out, info, nil
}

// epsilon returns the machine precision of T's underlying real type.
func epsilon[T ndarray.Number]() float64 {
	if ndarray.FromFloat[T](1+1e-10) == ndarray.FromFloat[T](1) {
		return float64(math.Nextafter32(1, 2) - 1)
	}
	return math.Nextafter(1, 2) - 1
}
