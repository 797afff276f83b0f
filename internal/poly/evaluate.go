package poly

import (
	"github.com/san-kum/polykit/internal/ndarray"
)

// EvaluateAt evaluates the one-dimensional polynomial c at x.
func EvaluateAt[T ndarray.Number](x T, c []T) T {
	var acc T
	for i := len(c) - 1; i >= 0; i-- {
		acc = acc*x + c[i]
	}
	return acc
}

// Evaluate evaluates c at the points x by Horner's scheme along axis 0 of c.
// x is broadcast against the trailing axes of c, so the result has shape
// broadcast(x.Shape(), c.Shape()[1:]). Empty coefficients evaluate as the zero
// polynomial.
func Evaluate[T ndarray.Number](x, c *ndarray.Array[T]) (*ndarray.Array[T], error) {
	if c.Ndim() == 0 {
		c, _ = c.Reshape(1)
	}
	cshape := c.Shape()
	shape, err := ndarray.BroadcastShapes(x.Shape(), cshape[1:])
	if err != nil {
		return nil, newError("evaluate", ErrShape, "x of shape %v against coefficients of shape %v", x.Shape(), cshape)
	}
	n := c.Len()
	if n == 0 {
		return ndarray.Zeros[T](shape...), nil
	}

	xb, err := x.BroadcastTo(shape)
	if err != nil {
		return nil, newError("evaluate", ErrShape, "%v", err)
	}
	acc, err := c.Index(n - 1).BroadcastTo(shape)
	if err != nil {
		return nil, newError("evaluate", ErrShape, "%v", err)
	}
	out, xs := acc.Raw(), xb.Raw()
	for i := n - 2; i >= 0; i-- {
		row, err := c.Index(i).BroadcastTo(shape)
		if err != nil {
			return nil, newError("evaluate", ErrShape, "%v", err)
		}
		for j, r := range row.Raw() {
			out[j] = r + out[j]*xs[j]
		}
	}
	return acc, nil
}

// EvaluateTensor evaluates every polynomial held in the trailing axes of c at
// every point of x. The result has shape c.Shape()[1:] + x.Shape().
func EvaluateTensor[T ndarray.Number](x, c *ndarray.Array[T]) (*ndarray.Array[T], error) {
	if c.Ndim() == 0 {
		c, _ = c.Reshape(1)
	}
	shape := c.Shape()
	for i := 0; i < x.Ndim(); i++ {
		shape = append(shape, 1)
	}
	cr, err := c.Reshape(shape...)
	if err != nil {
		return nil, err
	}
	return Evaluate(x, cr)
}

// Evaluate2D evaluates the bivariate polynomial
//
//	p(x, y) = sum c[i, j] * x^i * y^j
//
// at the pairs (x, y). x and y must broadcast to a common shape, which is the
// shape of the result.
func Evaluate2D[T ndarray.Number](x, y, c *ndarray.Array[T]) (*ndarray.Array[T], error) {
	return evaluateND("evaluate2d", c, x, y)
}

// Evaluate3D evaluates the trivariate polynomial
//
//	p(x, y, z) = sum c[i, j, k] * x^i * y^j * z^k
//
// at the triples (x, y, z).
func Evaluate3D[T ndarray.Number](x, y, z, c *ndarray.Array[T]) (*ndarray.Array[T], error) {
	return evaluateND("evaluate3d", c, x, y, z)
}

func evaluateND[T ndarray.Number](op string, c *ndarray.Array[T], pts ...*ndarray.Array[T]) (*ndarray.Array[T], error) {
	if c.Ndim() < len(pts) {
		return nil, newError(op, ErrType, "coefficients need at least %d dimensions, got shape %v", len(pts), c.Shape())
	}
	shape := pts[0].Shape()
	for _, p := range pts[1:] {
		s, err := ndarray.BroadcastShapes(shape, p.Shape())
		if err != nil {
			return nil, newError(op, ErrShape, "points of shape %v and %v are incompatible", shape, p.Shape())
		}
		shape = s
	}
	bs := make([]*ndarray.Array[T], len(pts))
	for i, p := range pts {
		b, err := p.BroadcastTo(shape)
		if err != nil {
			return nil, newError(op, ErrShape, "%v", err)
		}
		bs[i] = b
	}

	out, err := EvaluateTensor(bs[0], c)
	if err != nil {
		return nil, err
	}
	for _, b := range bs[1:] {
		out, err = Evaluate(b, out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Grid2D evaluates the bivariate polynomial c on the cartesian product of x
// and y. The result has shape x.Shape() + y.Shape().
func Grid2D[T ndarray.Number](x, y, c *ndarray.Array[T]) (*ndarray.Array[T], error) {
	return gridND("grid2d", c, x, y)
}

// Grid3D evaluates the trivariate polynomial c on the cartesian product of x,
// y and z.
func Grid3D[T ndarray.Number](x, y, z, c *ndarray.Array[T]) (*ndarray.Array[T], error) {
	return gridND("grid3d", c, x, y, z)
}

func gridND[T ndarray.Number](op string, c *ndarray.Array[T], pts ...*ndarray.Array[T]) (*ndarray.Array[T], error) {
	if c.Ndim() < len(pts) {
		return nil, newError(op, ErrType, "coefficients need at least %d dimensions, got shape %v", len(pts), c.Shape())
	}
	out := c
	for _, p := range pts {
		var err error
		out, err = EvaluateTensor(p, out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
