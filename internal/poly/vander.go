package poly

import (
	"github.com/san-kum/polykit/internal/ndarray"
)

// Vander returns the Vandermonde matrix of x for the given degree. The result
// has shape x.Shape() + (deg+1,) and its last-axis slice k holds x^k. A
// zero-dimensional x is treated as a single point.
func Vander[T ndarray.Number](x *ndarray.Array[T], deg int) (*ndarray.Array[T], error) {
	if deg < 0 {
		return nil, newError("vander", ErrValue, "degree must be non-negative, got %d", deg)
	}
	if x.Ndim() == 0 {
		x, _ = x.Reshape(1)
	}
	cols := deg + 1
	out := ndarray.Zeros[T](append(x.Shape(), cols)...)
	v := out.Raw()
	for i, xi := range x.Raw() {
		row := v[i*cols : (i+1)*cols]
		row[0] = 1
		for k := 1; k < cols; k++ {
			row[k] = row[k-1] * xi
		}
	}
	return out, nil
}

// Vander2D returns the pseudo-Vandermonde matrix of the points (x, y). Column
// i*(deg[1]+1) + j holds x^i * y^j, matching the row-major layout of the
// coefficient arrays accepted by Evaluate2D.
func Vander2D[T ndarray.Number](x, y *ndarray.Array[T], deg [2]int) (*ndarray.Array[T], error) {
	return vanderND("vander2d", []*ndarray.Array[T]{x, y}, deg[:])
}

// Vander3D returns the pseudo-Vandermonde matrix of the points (x, y, z) with
// column (i*(deg[1]+1) + j)*(deg[2]+1) + k holding x^i * y^j * z^k.
func Vander3D[T ndarray.Number](x, y, z *ndarray.Array[T], deg [3]int) (*ndarray.Array[T], error) {
	return vanderND("vander3d", []*ndarray.Array[T]{x, y, z}, deg[:])
}

func vanderND[T ndarray.Number](op string, pts []*ndarray.Array[T], deg []int) (*ndarray.Array[T], error) {
	for _, d := range deg {
		if d < 0 {
			return nil, newError(op, ErrValue, "degrees must be non-negative, got %v", deg)
		}
	}
	shape := []int{}
	for _, p := range pts {
		s, err := ndarray.BroadcastShapes(shape, p.Shape())
		if err != nil {
			return nil, newError(op, ErrShape, "points of shape %v and %v are incompatible", shape, p.Shape())
		}
		shape = s
	}
	if len(shape) == 0 {
		shape = []int{1}
	}

	vs := make([]*ndarray.Array[T], len(pts))
	for i, p := range pts {
		b, err := p.BroadcastTo(shape)
		if err != nil {
			return nil, newError(op, ErrShape, "%v", err)
		}
		if vs[i], err = Vander(b, deg[i]); err != nil {
			return nil, err
		}
	}

	cols := 1
	for _, d := range deg {
		cols *= d + 1
	}
	out := ndarray.Zeros[T](append(cloneShape(shape), cols)...)
	v := out.Raw()
	npts := len(v) / cols
	idx := make([]int, len(deg))
	for p := 0; p < npts; p++ {
		row := v[p*cols : (p+1)*cols]
		for i := range idx {
			idx[i] = 0
		}
		for col := range row {
			prod := T(1)
			for i, vi := range vs {
				prod *= vi.Raw()[p*(deg[i]+1)+idx[i]]
			}
			row[col] = prod
			for i := len(idx) - 1; i >= 0; i-- {
				idx[i]++
				if idx[i] <= deg[i] {
					break
				}
				idx[i] = 0
			}
		}
	}
	return out, nil
}

func cloneShape(s []int) []int {
	return append([]int(nil), s...)
}
