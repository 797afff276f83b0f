package poly

import (
	"github.com/san-kum/polykit/internal/ndarray"
)

type calcOptions struct {
	order int
	k     []complex128
	lbnd  complex128
	scl   complex128
	axis  int
}

// CalcOption configures Integrate and Differentiate.
type CalcOption func(*calcOptions)

func defaultCalcOptions() calcOptions {
	return calcOptions{order: 1, scl: 1}
}

// Order sets how many times to integrate or differentiate. The default is 1.
func Order(m int) CalcOption {
	return func(o *calcOptions) { o.order = m }
}

// Constants sets the integration constants, one per order. Missing constants
// are zero.
func Constants(k ...float64) CalcOption {
	return func(o *calcOptions) {
		o.k = make([]complex128, len(k))
		for i, v := range k {
			o.k[i] = complex(v, 0)
		}
	}
}

// ComplexConstants is Constants for complex coefficients.
func ComplexConstants(k ...complex128) CalcOption {
	return func(o *calcOptions) { o.k = append([]complex128(nil), k...) }
}

// LowerBound sets the point at which each antiderivative takes the value of
// its integration constant. The default is 0.
func LowerBound(lbnd float64) CalcOption {
	return func(o *calcOptions) { o.lbnd = complex(lbnd, 0) }
}

// Scale sets the chain-rule factor applied at every step, as for a change of
// variable. The default is 1.
func Scale(scl float64) CalcOption {
	return func(o *calcOptions) { o.scl = complex(scl, 0) }
}

// Axis selects the degree axis of a multi-dimensional coefficient array.
// Negative values count from the last axis.
func Axis(axis int) CalcOption {
	return func(o *calcOptions) { o.axis = axis }
}

// Integrate returns the coefficients integrated Order times along the degree
// axis. Each step multiplies by the scale, maps c[i] to c[i]/(i+1) at index
// i+1 and chooses the constant term so that the step's antiderivative equals
// its integration constant at the lower bound.
func Integrate[T ndarray.Number](c *ndarray.Array[T], opts ...CalcOption) (*ndarray.Array[T], error) {
	o := defaultCalcOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.order < 0 {
		return nil, newError("integrate", ErrValue, "order must be non-negative, got %d", o.order)
	}
	if len(o.k) > o.order {
		return nil, newError("integrate", ErrValue, "too many integration constants: %d for order %d", len(o.k), o.order)
	}
	if c.Ndim() == 0 {
		c, _ = c.Reshape(1)
	}
	axis, err := ndarray.NormalizeAxis(o.axis, c.Ndim())
	if err != nil {
		return nil, newError("integrate", ErrValue, "%v", err)
	}
	if o.order == 0 {
		return c.Clone(), nil
	}

	k := make([]T, o.order)
	for i, v := range o.k {
		k[i] = ndarray.FromComplex[T](v)
	}
	scl := ndarray.FromComplex[T](o.scl)
	lbnd := ndarray.Scalar(ndarray.FromComplex[T](o.lbnd))

	cur, err := c.MoveAxis(axis, 0)
	if err != nil {
		return nil, err
	}
	if cur.Len() == 0 {
		shape := cur.Shape()
		shape[0] = 1
		cur = ndarray.Zeros[T](shape...)
	}

	for step := 0; step < o.order; step++ {
		n := cur.Len()
		data := cur.Raw()
		for i := range data {
			data[i] *= scl
		}

		if n == 1 && allZero(data) {
			for i := range data {
				data[i] += k[step]
			}
			continue
		}

		shape := cur.Shape()
		shape[0] = n + 1
		tmp := ndarray.Zeros[T](shape...)
		copy(tmp.Block(1), cur.Block(0))
		for j := 1; j < n; j++ {
			div := num[T](float64(j + 1))
			dst, src := tmp.Block(j+1), cur.Block(j)
			for i := range dst {
				dst[i] = src[i] / div
			}
		}

		at, err := Evaluate(lbnd, tmp)
		if err != nil {
			return nil, err
		}
		head, vals := tmp.Block(0), at.Raw()
		for i := range head {
			head[i] += k[step] - vals[i]
		}
		cur = tmp
	}

	return cur.MoveAxis(0, axis)
}

// Differentiate returns the coefficients differentiated Order times along the
// degree axis. Each step maps c[i] to i*scl*c[i] at index i-1. Differentiating
// at least as many times as there are coefficients yields a single zero row.
func Differentiate[T ndarray.Number](c *ndarray.Array[T], opts ...CalcOption) (*ndarray.Array[T], error) {
	o := defaultCalcOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.order < 0 {
		return nil, newError("differentiate", ErrValue, "order must be non-negative, got %d", o.order)
	}
	if len(o.k) > 0 {
		return nil, newError("differentiate", ErrValue, "integration constants do not apply")
	}
	if c.Ndim() == 0 {
		c, _ = c.Reshape(1)
	}
	axis, err := ndarray.NormalizeAxis(o.axis, c.Ndim())
	if err != nil {
		return nil, newError("differentiate", ErrValue, "%v", err)
	}
	if o.order == 0 {
		return c.Clone(), nil
	}

	cur, err := c.MoveAxis(axis, 0)
	if err != nil {
		return nil, err
	}
	scl := ndarray.FromComplex[T](o.scl)
	n := cur.Len()
	if o.order >= n {
		shape := cur.Shape()
		shape[0] = 1
		return ndarray.Zeros[T](shape...).MoveAxis(0, axis)
	}

	for step := 0; step < o.order; step++ {
		n--
		shape := cur.Shape()
		shape[0] = n
		der := ndarray.Zeros[T](shape...)
		for j := n; j > 0; j-- {
			f := num[T](float64(j)) * scl
			dst, src := der.Block(j-1), cur.Block(j)
			for i := range dst {
				dst[i] = f * src[i]
			}
		}
		cur = der
	}

	return cur.MoveAxis(0, axis)
}

// IntegrateSeq integrates a one-dimensional coefficient sequence.
func IntegrateSeq[T ndarray.Number](c []T, opts ...CalcOption) ([]T, error) {
	opts = append(opts[:len(opts):len(opts)], Axis(0))
	out, err := Integrate(ndarray.FromSlice(c), opts...)
	if err != nil {
		return nil, err
	}
	return out.Data(), nil
}

// DifferentiateSeq differentiates a one-dimensional coefficient sequence.
func DifferentiateSeq[T ndarray.Number](c []T, opts ...CalcOption) ([]T, error) {
	opts = append(opts[:len(opts):len(opts)], Axis(0))
	out, err := Differentiate(ndarray.FromSlice(c), opts...)
	if err != nil {
		return nil, err
	}
	return out.Data(), nil
}

func allZero[T ndarray.Number](v []T) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
