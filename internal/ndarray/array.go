package ndarray

import (
	"errors"
	"fmt"
)

var (
	// ErrShape indicates shapes that cannot be combined or a data length
	// that does not match the requested shape.
	ErrShape = errors.New("ndarray: incompatible shape")

	// ErrAxis indicates an axis outside [-ndim, ndim).
	ErrAxis = errors.New("ndarray: axis out of range")
)

// Array is a dense, row-major N-dimensional array.
// A zero-dimensional Array holds exactly one element.
type Array[T Number] struct {
	shape []int
	data  []T
}

// New returns an array of the given shape holding a copy of data.
// A nil data slice yields a zero-filled array.
func New[T Number](shape []int, data []T) (*Array[T], error) {
	size, err := sizeOf(shape)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return &Array[T]{shape: cloneInts(shape), data: make([]T, size)}, nil
	}
	if len(data) != size {
		return nil, fmt.Errorf("%w: %d elements cannot fill shape %v", ErrShape, len(data), shape)
	}
	out := &Array[T]{shape: cloneInts(shape), data: make([]T, size)}
	copy(out.data, data)
	return out, nil
}

// Zeros returns a zero-filled array. It panics on negative dimensions.
func Zeros[T Number](shape ...int) *Array[T] {
	a, err := New[T](shape, nil)
	if err != nil {
		panic(err)
	}
	return a
}

// Full returns an array of the given shape with every element set to v.
func Full[T Number](v T, shape ...int) *Array[T] {
	a := Zeros[T](shape...)
	for i := range a.data {
		a.data[i] = v
	}
	return a
}

// FromSlice returns a 1-D array holding a copy of data.
func FromSlice[T Number](data []T) *Array[T] {
	out := &Array[T]{shape: []int{len(data)}, data: make([]T, len(data))}
	copy(out.data, data)
	return out
}

// FromRows returns a 2-D array whose rows are copies of rows.
func FromRows[T Number](rows [][]T) (*Array[T], error) {
	if len(rows) == 0 {
		return Zeros[T](0, 0), nil
	}
	cols := len(rows[0])
	out := Zeros[T](len(rows), cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d elements, want %d", ErrShape, i, len(r), cols)
		}
		copy(out.data[i*cols:], r)
	}
	return out, nil
}

// Scalar returns a zero-dimensional array holding v.
func Scalar[T Number](v T) *Array[T] {
	return &Array[T]{shape: []int{}, data: []T{v}}
}

// Shape returns a copy of the array's dimensions.
func (a *Array[T]) Shape() []int { return cloneInts(a.shape) }

// Ndim returns the number of dimensions.
func (a *Array[T]) Ndim() int { return len(a.shape) }

// Size returns the number of elements.
func (a *Array[T]) Size() int { return len(a.data) }

// Len returns the length of axis 0, or 1 for a zero-dimensional array.
func (a *Array[T]) Len() int {
	if len(a.shape) == 0 {
		return 1
	}
	return a.shape[0]
}

// Raw exposes the backing storage in row-major order.
func (a *Array[T]) Raw() []T { return a.data }

// Data returns a copy of the elements in row-major order.
func (a *Array[T]) Data() []T {
	out := make([]T, len(a.data))
	copy(out, a.data)
	return out
}

// Clone returns a deep copy of a.
func (a *Array[T]) Clone() *Array[T] {
	return &Array[T]{shape: cloneInts(a.shape), data: a.Data()}
}

func (a *Array[T]) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("cannot index array of shape %v with %d indices", a.shape, len(idx)))
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= a.shape[d] {
			panic(fmt.Sprintf("index %d out of range for axis %d of size %d", i, d, a.shape[d]))
		}
		off = off*a.shape[d] + i
	}
	return off
}

// At returns the element at the given multi-index.
func (a *Array[T]) At(idx ...int) T { return a.data[a.offset(idx)] }

// Set stores v at the given multi-index.
func (a *Array[T]) Set(v T, idx ...int) { a.data[a.offset(idx)] = v }

// blockSize returns the number of elements in one slice along axis 0.
func (a *Array[T]) blockSize() int {
	if len(a.shape) == 0 || a.shape[0] == 0 {
		n := 1
		for _, d := range a.shape[min(1, len(a.shape)):] {
			n *= d
		}
		return n
	}
	return len(a.data) / a.shape[0]
}

// Block returns a view of the i-th slice along axis 0.
// The returned slice shares storage with a.
func (a *Array[T]) Block(i int) []T {
	if len(a.shape) == 0 {
		panic("cannot take a block of a zero-dimensional array")
	}
	bs := a.blockSize()
	return a.data[i*bs : (i+1)*bs : (i+1)*bs]
}

// Index returns a copy of the i-th slice along axis 0, of shape Shape()[1:].
func (a *Array[T]) Index(i int) *Array[T] {
	if len(a.shape) == 0 {
		panic("cannot index a zero-dimensional array")
	}
	if i < 0 || i >= a.shape[0] {
		panic(fmt.Sprintf("index %d out of range for axis 0 of size %d", i, a.shape[0]))
	}
	out := &Array[T]{shape: cloneInts(a.shape[1:])}
	out.data = make([]T, a.blockSize())
	copy(out.data, a.Block(i))
	return out
}

// SetIndex writes sub, broadcast to Shape()[1:], into the i-th slice along axis 0.
func (a *Array[T]) SetIndex(i int, sub *Array[T]) error {
	if len(a.shape) == 0 {
		return fmt.Errorf("%w: cannot assign into a zero-dimensional array", ErrShape)
	}
	b, err := sub.BroadcastTo(a.shape[1:])
	if err != nil {
		return err
	}
	copy(a.Block(i), b.data)
	return nil
}

// Reshape returns a copy of a with a new shape. At most one dimension may
// be -1, in which case it is inferred from the size.
func (a *Array[T]) Reshape(shape ...int) (*Array[T], error) {
	shape = cloneInts(shape)
	infer := -1
	known := 1
	for d, n := range shape {
		switch {
		case n == -1 && infer < 0:
			infer = d
		case n < 0:
			return nil, fmt.Errorf("%w: invalid dimension %d in %v", ErrShape, n, shape)
		default:
			known *= n
		}
	}
	if infer >= 0 {
		if known == 0 || len(a.data)%known != 0 {
			return nil, fmt.Errorf("%w: cannot reshape %v into %v", ErrShape, a.shape, shape)
		}
		shape[infer] = len(a.data) / known
	}
	return New(shape, a.data)
}

// Transpose returns a copy of a with its axes permuted so that axis i of the
// result is axis perm[i] of a.
func (a *Array[T]) Transpose(perm ...int) (*Array[T], error) {
	n := len(a.shape)
	if len(perm) != n {
		return nil, fmt.Errorf("%w: permutation %v does not match %d dimensions", ErrAxis, perm, n)
	}
	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return nil, fmt.Errorf("%w: %v is not a permutation", ErrAxis, perm)
		}
		seen[p] = true
	}

	srcStrides := Strides(a.shape)
	shape := make([]int, n)
	strides := make([]int, n)
	for i, p := range perm {
		shape[i] = a.shape[p]
		strides[i] = srcStrides[p]
	}

	out := Zeros[T](shape...)
	walk(shape, strides, func(i, src int) {
		out.data[i] = a.data[src]
	})
	return out, nil
}

// MoveAxis returns a copy of a with axis src moved to position dst and the
// other axes kept in order.
func (a *Array[T]) MoveAxis(src, dst int) (*Array[T], error) {
	n := len(a.shape)
	src, err := NormalizeAxis(src, n)
	if err != nil {
		return nil, err
	}
	dst, err = NormalizeAxis(dst, n)
	if err != nil {
		return nil, err
	}
	if src == dst {
		return a.Clone(), nil
	}
	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if i != src {
			order = append(order, i)
		}
	}
	order = append(order[:dst], append([]int{src}, order[dst:]...)...)
	return a.Transpose(order...)
}

// Stack joins equally shaped arrays along a new leading axis.
func Stack[T Number](parts []*Array[T]) (*Array[T], error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: nothing to stack", ErrShape)
	}
	inner := parts[0].shape
	out := Zeros[T](append([]int{len(parts)}, inner...)...)
	for i, p := range parts {
		if !EqualShape(p.shape, inner) {
			return nil, fmt.Errorf("%w: cannot stack %v with %v", ErrShape, p.shape, inner)
		}
		copy(out.Block(i), p.data)
	}
	return out, nil
}

// NormalizeAxis maps a possibly negative axis onto [0, ndim).
func NormalizeAxis(axis, ndim int) (int, error) {
	if axis < -ndim || axis >= ndim {
		return 0, fmt.Errorf("%w: axis %d for %d dimensions", ErrAxis, axis, ndim)
	}
	if axis < 0 {
		axis += ndim
	}
	return axis, nil
}

// Strides returns the row-major element strides of shape.
func Strides(shape []int) []int {
	st := make([]int, len(shape))
	acc := 1
	for d := len(shape) - 1; d >= 0; d-- {
		st[d] = acc
		acc *= shape[d]
	}
	return st
}

// EqualShape reports whether two shapes are identical.
func EqualShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sizeOf(shape []int) (int, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("%w: negative dimension in %v", ErrShape, shape)
		}
		n *= d
	}
	return n, nil
}

func cloneInts(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}
