package ndarray

import (
	"math"
	"math/cmplx"
	"reflect"

	"golang.org/x/exp/constraints"
)

// Number is the set of element types an Array can hold.
type Number interface {
	constraints.Float | constraints.Complex
}

// ToComplex widens v to complex128.
func ToComplex[T Number](v T) complex128 {
	switch v := any(v).(type) {
	case float64:
		return complex(v, 0)
	case complex128:
		return v
	case float32:
		return complex(float64(v), 0)
	case complex64:
		return complex128(v)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return complex(rv.Float(), 0)
	default:
		return rv.Complex()
	}
}

// FromComplex narrows c to T. Real element types keep the real part only.
func FromComplex[T Number](c complex128) T {
	var z T
	switch p := any(&z).(type) {
	case *float64:
		*p = real(c)
	case *complex128:
		*p = c
	case *float32:
		*p = float32(real(c))
	case *complex64:
		*p = complex64(c)
	default:
		rv := reflect.ValueOf(&z).Elem()
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			rv.SetFloat(real(c))
		default:
			rv.SetComplex(c)
		}
	}
	return z
}

// FromFloat converts f to T.
func FromFloat[T Number](f float64) T {
	return FromComplex[T](complex(f, 0))
}

// Abs returns the magnitude of v.
func Abs[T Number](v T) float64 {
	c := ToComplex(v)
	if imag(c) == 0 {
		return math.Abs(real(c))
	}
	return cmplx.Abs(c)
}

// IsComplex reports whether T is a complex element type.
func IsComplex[T Number]() bool {
	var z T
	switch reflect.TypeOf(z).Kind() {
	case reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// Convert returns a copy of a with every element converted to U.
func Convert[T, U Number](a *Array[T]) *Array[U] {
	out := &Array[U]{
		shape: cloneInts(a.shape),
		data:  make([]U, len(a.data)),
	}
	for i, v := range a.data {
		out.data[i] = FromComplex[U](ToComplex(v))
	}
	return out
}

// Linspace returns n evenly spaced samples over [start, stop].
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}
