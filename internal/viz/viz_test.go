package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestFormatPolynomial(t *testing.T) {
	tests := []struct {
		coef []float64
		want string
	}{
		{nil, "0"},
		{[]float64{0, 0}, "0"},
		{[]float64{1}, "1"},
		{[]float64{-2.5}, "-2.5"},
		{[]float64{0, 2, -3, 1}, "2·x - 3·x² + x³"},
		{[]float64{-1, 0, 1}, "-1 + x²"},
		{[]float64{0, -1}, "-x"},
		{[]float64{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0.5}, "1 + 0.5·x¹¹"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatPolynomial(tt.coef, "x"), "coef %v", tt.coef)
	}
}

func TestFormatComplex(t *testing.T) {
	require.Equal(t, "1.5", FormatComplex(1.5))
	require.Equal(t, "0+1i", FormatComplex(1i))
	require.Equal(t, "2-0.5i", FormatComplex(complex(2, -0.5)))
	require.Equal(t, "-1, 0+1i", FormatValues([]complex128{-1, 1i}))
	require.Equal(t, "1, 2.5", FormatValues([]float64{1, 2.5}))
}

func TestPlotPolynomial(t *testing.T) {
	out := PlotPolynomial([]float64{0, 0, 1}, -1, 1, 40, 8, "x²")
	require.Contains(t, out, "x²")
	// Height rows plus one for the caption.
	require.GreaterOrEqual(t, strings.Count(out, "\n"), 8)
}

func TestPlotFit(t *testing.T) {
	require.Empty(t, PlotFit(nil, nil, []float64{1}, 40, 6, ""))
	require.Empty(t, PlotFit([]float64{1, 2}, []float64{1}, []float64{1}, 40, 6, ""))

	out := PlotFit([]float64{2, 0, 1}, []float64{4, 0, 1}, []float64{0, 0, 1}, 30, 6, "fit")
	require.Contains(t, out, "fit")
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(2, 1)
	require.Equal(t, "⠀⠀\n", c.String())

	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(10, 10)
	require.True(t, c.IsSet(0, 0))
	require.True(t, c.IsSet(3, 3))
	require.False(t, c.IsSet(1, 0))
	require.Equal(t, "⠁⢀\n", c.String())
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		require.True(t, c.IsSet(i, i), "dot %d", i)
	}
}

func TestCanvasPlotFunction(t *testing.T) {
	c := NewCanvas(20, 5)
	lo, hi := c.PlotFunction(func(x float64) float64 { return x }, -1, 1, []float64{0})
	require.Equal(t, -1.0, lo)
	require.Equal(t, 1.0, hi)
	// The line y = x starts bottom left and ends top right.
	require.True(t, c.IsSet(0, 19))
	require.True(t, c.IsSet(39, 0))

	c = NewCanvas(4, 2)
	lo, hi = c.PlotFunction(func(float64) float64 { return 3 }, 0, 1, nil)
	require.Equal(t, 2.0, lo)
	require.Equal(t, 4.0, hi)
}

func TestRenderCurve(t *testing.T) {
	out := RenderCurve([]float64{-1, 0, 1}, -2, 2, 20, 5, []float64{-1, 1})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	require.Contains(t, lines[5], "x ∈ [-2, 2]")
}

func TestSparklineAndSeparator(t *testing.T) {
	require.Equal(t, "────", Sparkline(nil, 4))
	require.NotEmpty(t, Sparkline([]float64{0, 1, 2, 3}, 10))
	require.Contains(t, Separator(20), "◆")
}

func TestThemes(t *testing.T) {
	require.Equal(t, "ocean", GetTheme("ocean").Name)
	require.Equal(t, "cyberpunk", GetTheme("missing").Name)
	require.Len(t, ThemeNames(), len(Themes))
}

func press(t *testing.T, m Explorer, keys ...string) Explorer {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Explorer)
	}
	return m
}

func TestExplorerEditing(t *testing.T) {
	m := NewExplorer([]Entry{{Name: "cubic", Coef: []float64{0, 2, -3, 1}, Lo: 0, Hi: 2}})
	require.Equal(t, stateExplore, m.state)

	m = press(t, m, "l", "k")
	require.InDeltaSlice(t, []float64{0, 2.1, -3, 1}, m.Coefficients(), 1e-12)

	m = press(t, m, "u")
	require.Equal(t, []float64{0, 2, -3, 1}, m.Coefficients())

	m = press(t, m, "d")
	require.Equal(t, []float64{2, -6, 3}, m.Coefficients())

	m = press(t, m, "i")
	require.InDeltaSlice(t, []float64{0, 2, -3, 1}, m.Coefficients(), 1e-12)

	m = press(t, m, "a")
	require.Len(t, m.Coefficients(), 5)
	m = press(t, m, "x", "x", "x", "x", "x")
	require.Equal(t, []float64{0}, m.Coefficients())

	m = press(t, m, "r")
	require.Equal(t, []float64{0, 2, -3, 1}, m.Coefficients())
}

func TestExplorerValueEntry(t *testing.T) {
	m := NewExplorer([]Entry{{Name: "line", Coef: []float64{1, 1}}})
	require.Equal(t, -1.0, m.lo)
	require.Equal(t, 1.0, m.hi)

	m = press(t, m, "enter", "backspace", "4", ".", "5", "enter")
	require.Equal(t, []float64{4.5, 1}, m.Coefficients())

	m = press(t, m, "enter", "backspace", "backspace", "backspace", "x", "enter")
	require.Equal(t, []float64{4.5, 1}, m.Coefficients())
	require.Contains(t, m.message, "not a number")
}

func TestExplorerMenuAndView(t *testing.T) {
	m := NewExplorer([]Entry{
		{Name: "line", Coef: []float64{-1, 0.5}, Lo: -5, Hi: 5},
		{Name: "square", Coef: []float64{-1, 0, 1}, Lo: -2, Hi: 2},
	})
	require.Equal(t, stateMenu, m.state)
	require.Contains(t, m.View(), "square")

	m = press(t, m, "j", "enter")
	require.Equal(t, stateExplore, m.state)
	require.Equal(t, []float64{-1, 0, 1}, m.Coefficients())

	view := m.View()
	require.Contains(t, view, "SQUARE")
	require.Contains(t, view, "roots")

	m = press(t, m, "v", "t", "z")
	require.Equal(t, viewBraille, m.view)
	require.Equal(t, -1.0, m.lo)
	require.Equal(t, 1.0, m.hi)
	require.NotEmpty(t, m.View())

	m = press(t, m, "esc")
	require.Equal(t, stateMenu, m.state)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
}
