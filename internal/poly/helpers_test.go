package poly

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/san-kum/polykit/internal/ndarray"
	"github.com/stretchr/testify/require"
)

// Chebyshev polynomials of the first kind in the power basis.
var chebyshevT = [][]float64{
	{1},
	{0, 1},
	{-1, 0, 2},
	{0, -3, 0, 4},
	{1, 0, -8, 0, 8},
	{0, 5, 0, -20, 0, 16},
	{-1, 0, 18, 0, -48, 0, 32},
	{0, -7, 0, 56, 0, -112, 0, 64},
	{1, 0, -32, 0, 160, 0, -256, 0, 128},
	{0, 9, 0, -120, 0, 432, 0, -576, 0, 256},
}

var approx = cmpopts.EquateApprox(0, 1e-8)

// trimmed drops coefficients below 1e-6, the tolerance used when comparing
// series of different lengths.
func trimmed(t *testing.T, c []float64) []float64 {
	t.Helper()
	out, err := Trim(c, 1e-6)
	require.NoError(t, err)
	return out
}

// unit returns the coefficients of x^i.
func unit(i int) []float64 {
	c := make([]float64, i+1)
	c[i] = 1
	return c
}

func requireClose(t *testing.T, want, got []float64) {
	t.Helper()
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Fatalf("coefficients mismatch (-want +got):\n%s", diff)
	}
}

func requireCloseTrimmed(t *testing.T, want, got []float64) {
	t.Helper()
	requireClose(t, trimmed(t, want), trimmed(t, got))
}

// randomPoints returns a (rows, cols) array of values in [-1, 1).
func randomPoints(rng *rand.Rand, shape ...int) *ndarray.Array[float64] {
	a := ndarray.Zeros[float64](shape...)
	for i := range a.Raw() {
		a.Raw()[i] = rng.Float64()*2 - 1
	}
	return a
}

func mustArray(t *testing.T, shape []int, data []float64) *ndarray.Array[float64] {
	t.Helper()
	a, err := ndarray.New(shape, data)
	require.NoError(t, err)
	return a
}

// outer returns the tensor product of the given vectors, flattened row-major.
func outer(vs ...[]float64) []float64 {
	out := []float64{1}
	for _, v := range vs {
		next := make([]float64, 0, len(out)*len(v))
		for _, a := range out {
			for _, b := range v {
				next = append(next, a*b)
			}
		}
		out = next
	}
	return out
}
