package poly

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			want := make([]float64, max(i, j)+1)
			want[i]++
			want[j]++
			got := Add(unit(i), unit(j))
			require.Equal(t, trimmed(t, want), trimmed(t, got), "i=%d j=%d", i, j)
		}
	}
}

func TestSub(t *testing.T) {
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			want := make([]float64, max(i, j)+1)
			want[i]++
			want[j]--
			got := Sub(unit(i), unit(j))
			require.Equal(t, trimmed(t, want), trimmed(t, got), "i=%d j=%d", i, j)
		}
	}
}

func TestSubCancellationTrimsExactZerosOnly(t *testing.T) {
	require.Equal(t, []float64{1}, Sub([]float64{1, 2, 3}, []float64{0, 2, 3}))
	// Near-zero leading terms survive; only Trim removes them.
	require.Equal(t, []float64{1, 1e-17}, Sub([]float64{1, 1e-17}, []float64{0}))
}

func TestMulX(t *testing.T) {
	require.Equal(t, []float64{0}, MulX([]float64{0}))
	require.Equal(t, []float64{0, 1}, MulX([]float64{1}))
	for i := 1; i < 5; i++ {
		require.Equal(t, unit(i+1), MulX(unit(i)))
	}
}

func TestMul(t *testing.T) {
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			got := Mul(unit(i), unit(j))
			require.Equal(t, trimmed(t, unit(i+j)), trimmed(t, got), "i=%d j=%d", i, j)
		}
	}
	require.Len(t, Mul([]float64{1, 2}, []float64{3, 4, 5}), 4)
}

func TestDiv(t *testing.T) {
	_, _, err := Div([]float64{1}, []float64{0})
	require.ErrorIs(t, err, ErrZeroDivision)
	_, _, err = Div([]float64{1, 2}, []float64{0, 0})
	require.ErrorIs(t, err, ErrZeroDivision)

	quo, rem, err := Div([]float64{2}, []float64{2})
	require.NoError(t, err)
	require.Equal(t, []float64{1}, quo)
	require.Equal(t, []float64{0}, rem)

	quo, rem, err = Div([]float64{2, 2}, []float64{2})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1}, quo)
	require.Equal(t, []float64{0}, rem)

	quo, rem, err = Div([]float64{1, 2}, []float64{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []float64{0}, quo)
	require.Equal(t, []float64{1, 2}, rem)

	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			ci := append(make([]float64, i), 1, 2)
			cj := append(make([]float64, j), 1, 2)
			want := Add(ci, cj)
			quo, rem, err := Div(want, ci)
			require.NoError(t, err)
			require.Equal(t, want, Add(Mul(quo, ci), rem), "i=%d j=%d", i, j)
		}
	}
}

func TestDivComplex(t *testing.T) {
	// (x - i)(x + 1) + 2 divided by (x - i)
	a := Add(Mul([]complex128{-1i, 1}, []complex128{1, 1}), []complex128{2})
	quo, rem, err := Div(a, []complex128{-1i, 1})
	require.NoError(t, err)
	require.Equal(t, []complex128{1, 1}, quo)
	require.Equal(t, []complex128{2}, rem)
}

func TestPow(t *testing.T) {
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			c := make([]float64, i+1)
			for k := range c {
				c[k] = float64(k)
			}
			want := []float64{1}
			for k := 0; k < j; k++ {
				want = Mul(want, c)
			}
			got, err := Pow(c, j, DefaultMaxPower)
			require.NoError(t, err)
			require.Equal(t, trimmed(t, want), trimmed(t, got), "i=%d j=%d", i, j)
		}
	}

	_, err := Pow([]float64{1, 1}, -1, 0)
	require.ErrorIs(t, err, ErrValue)
	_, err = Pow([]float64{1, 1}, 3, 2)
	require.ErrorIs(t, err, ErrValue)
}

func TestArithmeticProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	series := func() []float64 {
		c := make([]float64, 1+rng.Intn(6))
		for i := range c {
			c[i] = float64(rng.Intn(21) - 10)
		}
		return c
	}

	for n := 0; n < 50; n++ {
		a, b := series(), series()
		name := fmt.Sprintf("a=%v b=%v", a, b)

		require.Equal(t, trimmed(t, Add(a, b)), trimmed(t, Add(b, a)), name)
		requireClose(t, trimmed(t, a), trimmed(t, Sub(Add(a, b), b)))

		if trimSeq(b)[0] == 0 && len(trimSeq(b)) == 1 {
			continue
		}
		quo, rem, err := Div(a, b)
		require.NoError(t, err, name)
		requireCloseTrimmed(t, a, Add(Mul(quo, b), rem))
		require.Less(t, len(trimSeq(rem)), max(len(trimSeq(b)), 2), name)
	}
}

func TestArithmeticDoesNotMutateInputs(t *testing.T) {
	a := []float64{1, 2, 0}
	b := []float64{3, 0}
	Add(a, b)
	Sub(a, b)
	Mul(a, b)
	MulX(a)
	_, _, _ = Div(a, b)
	require.Equal(t, []float64{1, 2, 0}, a)
	require.Equal(t, []float64{3, 0}, b)
}
