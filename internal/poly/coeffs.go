package poly

import (
	"github.com/san-kum/polykit/internal/ndarray"
)

// Domain returns the default window of the power series, [-1, 1].
func Domain() []float64 { return []float64{-1, 1} }

// Zero returns the coefficients of the zero polynomial.
func Zero[T ndarray.Number]() []T { return []T{0} }

// One returns the coefficients of the constant polynomial 1.
func One[T ndarray.Number]() []T { return []T{1} }

// X returns the coefficients of the identity polynomial x.
func X[T ndarray.Number]() []T { return []T{0, 1} }

// Trim removes trailing coefficients whose magnitude is at most tol. At least
// one coefficient is always kept; when every coefficient is insignificant the
// result is [0].
func Trim[T ndarray.Number](c []T, tol float64) ([]T, error) {
	if tol < 0 {
		return nil, newError("trim", ErrValue, "tol must be non-negative, got %g", tol)
	}
	if len(c) == 0 {
		return nil, newError("trim", ErrValue, "coefficient array is empty")
	}
	last := -1
	for i := len(c) - 1; i >= 0; i-- {
		if ndarray.Abs(c[i]) > tol {
			last = i
			break
		}
	}
	if last < 0 {
		return Zero[T](), nil
	}
	return clone(c[:last+1]), nil
}

// Line returns the coefficients of off + scl*x.
func Line[T ndarray.Number](off, scl T) []T {
	if scl != 0 {
		return []T{off, scl}
	}
	return []T{off}
}

// MapParams returns the offset and scale of the linear map that takes the
// interval old onto the interval new.
func MapParams(old, new [2]float64) (off, scl float64, err error) {
	oldLen := old[1] - old[0]
	if oldLen == 0 {
		return 0, 0, newError("mapparms", ErrValue, "degenerate interval %v", old)
	}
	off = (old[1]*new[0] - old[0]*new[1]) / oldLen
	scl = (new[1] - new[0]) / oldLen
	return off, scl, nil
}

// MapDomain maps every x from the interval old onto the interval new.
func MapDomain(x []float64, old, new [2]float64) ([]float64, error) {
	off, scl, err := MapParams(old, new)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = off + scl*v
	}
	return out, nil
}

// trimSeq drops trailing exact zeros but keeps at least one coefficient.
// The empty sequence becomes [0].
func trimSeq[T ndarray.Number](c []T) []T {
	n := len(c)
	for n > 1 && c[n-1] == 0 {
		n--
	}
	if n == 0 {
		return Zero[T]()
	}
	return clone(c[:n])
}

func clone[T any](c []T) []T {
	out := make([]T, len(c))
	copy(out, c)
	return out
}

func num[T ndarray.Number](f float64) T {
	return ndarray.FromFloat[T](f)
}
