package poly

import (
	"github.com/san-kum/polykit/internal/ndarray"
)

// DefaultMaxPower bounds the exponent accepted by Pow when callers do not
// choose their own limit.
const DefaultMaxPower = 100

// Add returns a + b.
func Add[T ndarray.Number](a, b []T) []T {
	a, b = trimSeq(a), trimSeq(b)
	if len(a) < len(b) {
		a, b = b, a
	}
	out := clone(a)
	for i, v := range b {
		out[i] += v
	}
	return trimSeq(out)
}

// Sub returns a - b.
func Sub[T ndarray.Number](a, b []T) []T {
	a, b = trimSeq(a), trimSeq(b)
	out := make([]T, max(len(a), len(b)))
	copy(out, a)
	for i, v := range b {
		out[i] -= v
	}
	return trimSeq(out)
}

// MulX returns x*c.
func MulX[T ndarray.Number](c []T) []T {
	c = trimSeq(c)
	if len(c) == 1 && c[0] == 0 {
		return c
	}
	out := make([]T, len(c)+1)
	copy(out[1:], c)
	return out
}

// Mul returns a*b.
func Mul[T ndarray.Number](a, b []T) []T {
	a, b = trimSeq(a), trimSeq(b)
	out := make([]T, len(a)+len(b)-1)
	for i, x := range a {
		if x == 0 {
			continue
		}
		for j, y := range b {
			out[i+j] += x * y
		}
	}
	return trimSeq(out)
}

// Div divides a by b and returns the quotient and remainder, so that
// a = quo*b + rem with deg(rem) < deg(b).
func Div[T ndarray.Number](a, b []T) (quo, rem []T, err error) {
	a, b = trimSeq(a), trimSeq(b)
	if len(b) == 1 && b[0] == 0 {
		return nil, nil, newError("div", ErrZeroDivision, "divisor trims to [0]")
	}

	la, lb := len(a), len(b)
	switch {
	case la < lb:
		return Zero[T](), a, nil
	case lb == 1:
		quo = make([]T, la)
		for i, v := range a {
			quo[i] = v / b[0]
		}
		return quo, Zero[T](), nil
	}

	scl := b[lb-1]
	den := make([]T, lb-1)
	for i := range den {
		den[i] = b[i] / scl
	}
	work := clone(a)
	for i, j := la-lb, la-1; i >= 0; i, j = i-1, j-1 {
		lead := work[j]
		for k, d := range den {
			work[i+k] -= d * lead
		}
	}

	quo = make([]T, la-lb+1)
	for i := range quo {
		quo[i] = work[lb-1+i] / scl
	}
	return quo, trimSeq(work[:lb-1]), nil
}

// Pow returns c raised to the non-negative integer power n. A positive
// maxPower rejects larger exponents.
func Pow[T ndarray.Number](c []T, n, maxPower int) ([]T, error) {
	if n < 0 {
		return nil, newError("pow", ErrValue, "power must be non-negative, got %d", n)
	}
	if maxPower > 0 && n > maxPower {
		return nil, newError("pow", ErrValue, "power %d exceeds limit %d", n, maxPower)
	}
	if n == 0 {
		return One[T](), nil
	}
	c = trimSeq(c)
	out := c
	for i := 1; i < n; i++ {
		out = Mul(out, c)
	}
	return clone(out), nil
}
