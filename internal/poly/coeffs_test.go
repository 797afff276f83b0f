package poly

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstants(t *testing.T) {
	require.Equal(t, []float64{-1, 1}, Domain())
	require.Equal(t, []float64{0}, Zero[float64]())
	require.Equal(t, []complex128{1}, One[complex128]())
	require.Equal(t, []float32{0, 1}, X[float32]())

	// Callers get fresh copies.
	x := X[float64]()
	x[1] = 5
	require.Equal(t, []float64{0, 1}, X[float64]())
}

func TestTrim(t *testing.T) {
	coef := []float64{2, -1, 1, 0}

	_, err := Trim(coef, -1)
	require.ErrorIs(t, err, ErrValue)

	_, err = Trim([]float64{}, 0)
	require.ErrorIs(t, err, ErrValue)

	tests := []struct {
		tol  float64
		want []float64
	}{
		{tol: 0, want: []float64{2, -1, 1}},
		{tol: 1, want: []float64{2}},
		{tol: 2, want: []float64{0}},
	}
	for _, tt := range tests {
		got, err := Trim(coef, tt.tol)
		require.NoError(t, err)
		require.Equal(t, tt.want, got, "tol=%g", tt.tol)
	}
	require.Equal(t, []float64{2, -1, 1, 0}, coef, "input must not be modified")
}

func TestTrimComplex(t *testing.T) {
	got, err := Trim([]complex128{1, 1i, 1e-3i}, 1e-2)
	require.NoError(t, err)
	require.Equal(t, []complex128{1, 1i}, got)
}

func TestLine(t *testing.T) {
	require.Equal(t, []float64{3, 4}, Line(3.0, 4.0))
	require.Equal(t, []float64{3}, Line(3.0, 0.0))
}

func TestMapDomain(t *testing.T) {
	off, scl, err := MapParams([2]float64{0, 4}, [2]float64{-1, 1})
	require.NoError(t, err)
	require.InDelta(t, -1, off, 1e-15)
	require.InDelta(t, 0.5, scl, 1e-15)

	got, err := MapDomain([]float64{0, 2, 4}, [2]float64{0, 4}, [2]float64{-1, 1})
	require.NoError(t, err)
	requireClose(t, []float64{-1, 0, 1}, got)

	_, _, err = MapParams([2]float64{1, 1}, [2]float64{-1, 1})
	require.ErrorIs(t, err, ErrValue)
}

func TestErrorCarriesOperation(t *testing.T) {
	_, err := Trim([]float64{1}, -1)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "trim", perr.Op)
	require.Contains(t, err.Error(), "poly: invalid value")
}
