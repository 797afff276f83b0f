package poly

import (
	"math/rand"
	"testing"

	"github.com/san-kum/polykit/internal/ndarray"
	"github.com/stretchr/testify/require"
)

// column returns v[..., k] flattened.
func column(v *ndarray.Array[float64], k int) []float64 {
	shape := v.Shape()
	cols := shape[len(shape)-1]
	out := make([]float64, 0, v.Size()/cols)
	for i := k; i < v.Size(); i += cols {
		out = append(out, v.Raw()[i])
	}
	return out
}

// dot multiplies the (..., n) matrix v by the vector c.
func dot(v *ndarray.Array[float64], c []float64) []float64 {
	n := len(c)
	out := make([]float64, v.Size()/n)
	for i := range out {
		for j, cj := range c {
			out[i] += v.Raw()[i*n+j] * cj
		}
	}
	return out
}

func TestVander(t *testing.T) {
	_, err := Vander(ndarray.FromSlice([]float64{1}), -1)
	require.ErrorIs(t, err, ErrValue)

	x := ndarray.FromSlice([]float64{0, 1, 2})
	v, err := Vander(x, 3)
	require.NoError(t, err)
	require.Equal(t, []int{3, 4}, v.Shape())
	for i := 0; i < 4; i++ {
		want, err := Evaluate(x, ndarray.FromSlice(unit(i)))
		require.NoError(t, err)
		requireClose(t, want.Data(), column(v, i))
	}

	x2 := mustArray(t, []int{3, 2}, []float64{1, 2, 3, 4, 5, 6})
	v, err = Vander(x2, 3)
	require.NoError(t, err)
	require.Equal(t, []int{3, 2, 4}, v.Shape())
	for i := 0; i < 4; i++ {
		want, err := Evaluate(x2, ndarray.FromSlice(unit(i)))
		require.NoError(t, err)
		requireClose(t, want.Data(), column(v, i))
	}
}

func TestVanderDegreeZero(t *testing.T) {
	v, err := Vander(ndarray.FromSlice([]float64{-3, 0, 7.5}), 0)
	require.NoError(t, err)
	require.Equal(t, []int{3, 1}, v.Shape())
	require.Equal(t, []float64{1, 1, 1}, v.Data())
}

func TestVanderScalar(t *testing.T) {
	v, err := Vander(ndarray.Scalar(2.0), 2)
	require.NoError(t, err)
	require.Equal(t, []int{1, 3}, v.Shape())
	require.Equal(t, []float64{1, 2, 4}, v.Data())
}

func TestVander2D(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pts := randomPoints(rng, 3, 5)
	x1, x2 := pts.Index(0), pts.Index(1)
	c := randomPoints(rng, 2, 3)

	van, err := Vander2D(x1, x2, [2]int{1, 2})
	require.NoError(t, err)
	want, err := Evaluate2D(x1, x2, c)
	require.NoError(t, err)
	requireClose(t, want.Data(), dot(van, c.Raw()))

	r1, _ := x1.Reshape(1, 5)
	r2, _ := x2.Reshape(1, 5)
	van, err = Vander2D(r1, r2, [2]int{1, 2})
	require.NoError(t, err)
	require.Equal(t, []int{1, 5, 6}, van.Shape())

	_, err = Vander2D(x1, ndarray.FromSlice([]float64{1, 2}), [2]int{1, 1})
	require.ErrorIs(t, err, ErrShape)
	_, err = Vander2D(x1, x2, [2]int{1, -1})
	require.ErrorIs(t, err, ErrValue)
}

func TestVander3D(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	pts := randomPoints(rng, 3, 5)
	x1, x2, x3 := pts.Index(0), pts.Index(1), pts.Index(2)
	c := randomPoints(rng, 2, 3, 4)

	van, err := Vander3D(x1, x2, x3, [3]int{1, 2, 3})
	require.NoError(t, err)
	want, err := Evaluate3D(x1, x2, x3, c)
	require.NoError(t, err)
	requireClose(t, want.Data(), dot(van, c.Raw()))

	r1, _ := x1.Reshape(1, 5)
	r2, _ := x2.Reshape(1, 5)
	r3, _ := x3.Reshape(1, 5)
	van, err = Vander3D(r1, r2, r3, [3]int{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []int{1, 5, 24}, van.Shape())
}
