package ndarray

import "fmt"

// BroadcastShapes returns the shape two operands broadcast to. Shapes are
// aligned on their trailing axes; a dimension of 1 stretches to match the
// other operand.
func BroadcastShapes(a, b []int) ([]int, error) {
	n := max(len(a), len(b))
	out := make([]int, n)
	for i := 1; i <= n; i++ {
		da, db := 1, 1
		if i <= len(a) {
			da = a[len(a)-i]
		}
		if i <= len(b) {
			db = b[len(b)-i]
		}
		switch {
		case da == db:
			out[n-i] = da
		case da == 1:
			out[n-i] = db
		case db == 1:
			out[n-i] = da
		default:
			return nil, fmt.Errorf("%w: cannot broadcast %v with %v", ErrShape, a, b)
		}
	}
	return out, nil
}

// BroadcastTo returns a copy of a stretched to shape.
func (a *Array[T]) BroadcastTo(shape []int) (*Array[T], error) {
	full, err := BroadcastShapes(a.shape, shape)
	if err != nil || !EqualShape(full, shape) {
		return nil, fmt.Errorf("%w: cannot broadcast %v to %v", ErrShape, a.shape, shape)
	}
	if EqualShape(a.shape, shape) {
		return a.Clone(), nil
	}

	n := len(shape)
	strides := broadcastStrides(a.shape, n)
	out := Zeros[T](shape...)
	walk(shape, strides, func(i, src int) {
		out.data[i] = a.data[src]
	})
	return out, nil
}

// Zip applies f elementwise over the broadcast of a and b.
func Zip[T, U, V Number](a *Array[T], b *Array[U], f func(T, U) V) (*Array[V], error) {
	shape, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	n := len(shape)
	sa := broadcastStrides(a.shape, n)
	sb := broadcastStrides(b.shape, n)
	out := Zeros[V](shape...)

	idx := make([]int, n)
	ia, ib := 0, 0
	for i := range out.data {
		out.data[i] = f(a.data[ia], b.data[ib])
		for d := n - 1; d >= 0; d-- {
			idx[d]++
			ia += sa[d]
			ib += sb[d]
			if idx[d] < shape[d] {
				break
			}
			ia -= sa[d] * idx[d]
			ib -= sb[d] * idx[d]
			idx[d] = 0
		}
	}
	return out, nil
}

// Map returns a new array with f applied to every element.
func Map[T, U Number](a *Array[T], f func(T) U) *Array[U] {
	out := &Array[U]{shape: cloneInts(a.shape), data: make([]U, len(a.data))}
	for i, v := range a.data {
		out.data[i] = f(v)
	}
	return out
}

// broadcastStrides returns strides of shape right-aligned into n dimensions,
// with zero strides on stretched axes.
func broadcastStrides(shape []int, n int) []int {
	st := make([]int, n)
	src := Strides(shape)
	off := n - len(shape)
	for d := range shape {
		if shape[d] != 1 {
			st[off+d] = src[d]
		}
	}
	return st
}

func walk(shape, strides []int, f func(i, src int)) {
	size := 1
	for _, d := range shape {
		size *= d
	}
	n := len(shape)
	idx := make([]int, n)
	src := 0
	for i := 0; i < size; i++ {
		f(i, src)
		for d := n - 1; d >= 0; d-- {
			idx[d]++
			src += strides[d]
			if idx[d] < shape[d] {
				break
			}
			src -= strides[d] * idx[d]
			idx[d] = 0
		}
	}
}
