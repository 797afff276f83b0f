package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/polykit/internal/poly"
)

const (
	stateMenu = iota
	stateExplore
)

const (
	viewLine = iota
	viewBraille
)

const maxUndo = 64

// Entry is a polynomial the explorer can start from.
type Entry struct {
	Name   string
	Coef   []float64
	Lo, Hi float64
}

// Explorer is a Bubble Tea model for editing a polynomial and watching its
// graph, roots and derivative update.
type Explorer struct {
	state, cursor int
	entries       []Entry
	current       Entry

	coef    []float64
	coefCur int
	step    float64
	lo, hi  float64
	history [][]float64

	editing bool
	editBuf string

	view     int
	themeIdx int
	message  string
	width    int
	height   int
}

// NewExplorer lists entries in a menu; with exactly one entry it opens that
// polynomial directly.
func NewExplorer(entries []Entry) Explorer {
	m := Explorer{entries: entries, step: 0.1, width: 80, height: 24}
	if len(entries) == 1 {
		m.open(entries[0])
	}
	return m
}

// Coefficients returns the polynomial being edited.
func (m Explorer) Coefficients() []float64 {
	return append([]float64(nil), m.coef...)
}

func (m Explorer) Init() tea.Cmd { return nil }

func (m Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateMenu {
			return m.menuKey(msg)
		}
		if m.editing {
			return m.editKey(msg), nil
		}
		return m.exploreKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m Explorer) menuKey(msg tea.KeyMsg) (Explorer, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.entries) > 0 {
			m.open(m.entries[m.cursor])
		}
	}
	return m, nil
}

func (m *Explorer) open(e Entry) {
	m.current = e
	m.coef = append([]float64(nil), e.Coef...)
	if len(m.coef) == 0 {
		m.coef = []float64{0}
	}
	m.lo, m.hi = e.Lo, e.Hi
	if m.hi <= m.lo {
		m.lo, m.hi = -1, 1
	}
	m.coefCur, m.history, m.message = 0, nil, ""
	m.state = stateExplore
}

func (m Explorer) editKey(msg tea.KeyMsg) Explorer {
	switch msg.String() {
	case "enter":
		v, err := strconv.ParseFloat(m.editBuf, 64)
		if err != nil {
			m.message = fmt.Sprintf("not a number: %q", m.editBuf)
		} else {
			m.push()
			m.coef[m.coefCur] = v
		}
		m.editing, m.editBuf = false, ""
	case "esc":
		m.editing, m.editBuf = false, ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-+eE") {
			m.editBuf += s
		}
	}
	return m
}

func (m Explorer) exploreKey(msg tea.KeyMsg) (Explorer, tea.Cmd) {
	m.message = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if len(m.entries) > 1 {
			m.state = stateMenu
		}
	case "left", "h":
		if m.coefCur > 0 {
			m.coefCur--
		}
	case "right", "l":
		if m.coefCur < len(m.coef)-1 {
			m.coefCur++
		}
	case "up", "k":
		m.push()
		m.coef[m.coefCur] += m.step
	case "down", "j":
		m.push()
		m.coef[m.coefCur] -= m.step
	case "+":
		m.step *= 10
	case "-":
		m.step /= 10
	case "enter":
		m.editing, m.editBuf = true, strconv.FormatFloat(m.coef[m.coefCur], 'g', -1, 64)
	case "a":
		m.push()
		m.coef = append(m.coef, 0)
		m.coefCur = len(m.coef) - 1
	case "x":
		if len(m.coef) > 1 {
			m.push()
			m.coef = m.coef[:len(m.coef)-1]
			m.coefCur = min(m.coefCur, len(m.coef)-1)
		}
	case "d":
		m.apply(poly.DifferentiateSeq[float64])
	case "i":
		m.apply(poly.IntegrateSeq[float64])
	case "u":
		m.undo()
	case "r":
		m.open(m.current)
	case "z":
		mid, half := (m.lo+m.hi)/2, (m.hi-m.lo)/4
		m.lo, m.hi = mid-half, mid+half
	case "Z":
		mid, half := (m.lo+m.hi)/2, (m.hi - m.lo)
		m.lo, m.hi = mid-half, mid+half
	case "v":
		m.view = (m.view + 1) % 2
	case "t":
		m.themeIdx = (m.themeIdx + 1) % len(Themes)
	}
	return m, nil
}

func (m *Explorer) apply(op func([]float64, ...poly.CalcOption) ([]float64, error)) {
	out, err := op(m.coef)
	if err != nil {
		m.message = err.Error()
		return
	}
	m.push()
	m.coef = out
	m.coefCur = min(m.coefCur, len(m.coef)-1)
}

func (m *Explorer) push() {
	m.history = append(m.history, append([]float64(nil), m.coef...))
	if len(m.history) > maxUndo {
		m.history = m.history[1:]
	}
}

func (m *Explorer) undo() {
	if len(m.history) == 0 {
		m.message = "nothing to undo"
		return
	}
	m.coef = m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.coefCur = min(m.coefCur, len(m.coef)-1)
}

func (m Explorer) View() string {
	if m.state == stateMenu {
		return m.viewMenu()
	}
	return m.viewExplore()
}

func (m Explorer) viewMenu() string {
	th := Themes[m.themeIdx]
	var b strings.Builder
	b.WriteString("\n\n    " + th.title().Render("POLYKIT") + "\n    " + th.muted().Render("polynomial explorer") + "\n    " + th.muted().Render("───────────────────") + "\n\n")
	for i, e := range m.entries {
		name := fmt.Sprintf("%-16s", e.Name)
		desc := FormatPolynomial(e.Coef, "x")
		if i == m.cursor {
			b.WriteString("    " + th.accent().Render("▸") + " " + th.text().Bold(true).Render(name) + "  " + th.curve().Render(desc) + "\n")
		} else {
			b.WriteString("      " + th.muted().Render(name) + "  " + th.muted().Render(desc) + "\n")
		}
	}
	b.WriteString("\n    " + Hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m Explorer) viewExplore() string {
	th := Themes[m.themeIdx]
	plotW := max(m.width-12, 20)
	plotH := max(m.height-16, 6)

	var b strings.Builder
	b.WriteString(th.title().Render(strings.ToUpper(m.current.Name)) + "  " + th.text().Render("p(x) = "+FormatPolynomial(m.coef, "x")) + "\n\n")

	for i, c := range m.coef {
		cell := fmt.Sprintf(" c%d=%.4g ", i, c)
		switch {
		case i == m.coefCur && m.editing:
			b.WriteString(Selected.Render(fmt.Sprintf(" c%d=%s_ ", i, m.editBuf)))
		case i == m.coefCur:
			b.WriteString(Selected.Render(cell))
		default:
			b.WriteString(th.muted().Render(cell))
		}
	}
	b.WriteString("\n" + Label.Render(fmt.Sprintf("step %g", m.step)) + "\n\n")

	roots, rootsErr := poly.Roots(m.coef)
	realRoots := poly.RealRoots(roots, 1e-9)

	if m.view == viewBraille {
		b.WriteString(th.curve().Render(RenderCurve(m.coef, m.lo, m.hi, plotW/2, plotH/2, realRoots)))
	} else {
		b.WriteString(th.curve().Render(PlotPolynomial(m.coef, m.lo, m.hi, plotW, plotH, fmt.Sprintf("x ∈ [%.3g, %.3g]", m.lo, m.hi))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case rootsErr != nil:
		b.WriteString(KeyValue("roots", th.err().Render(rootsErr.Error())) + "\n")
	case len(roots) == 0:
		b.WriteString(KeyValue("roots", "none") + "\n")
	default:
		b.WriteString(KeyValue("roots", FormatValues(roots)) + "\n")
	}
	if d, err := poly.DifferentiateSeq(m.coef); err == nil {
		b.WriteString(KeyValue("p'(x)", FormatPolynomial(d, "x")) + "\n")
	}
	b.WriteString(KeyValue("p(lo), p(hi)", fmt.Sprintf("%.4g, %.4g", poly.EvaluateAt(m.lo, m.coef), poly.EvaluateAt(m.hi, m.coef))) + "\n")

	if m.message != "" {
		b.WriteString(Warning.Render(m.message) + "\n")
	}
	b.WriteString("\n" + Hints("h/l", "select", "j/k", "adjust", "enter", "edit", "a/x", "degree", "d/i", "calc", "z/Z", "zoom", "v", "view", "t", "theme", "u", "undo", "q", "quit") + "\n")
	return b.String()
}

// RunExplorer starts the explorer on the alternate screen and returns the
// final polynomial.
func RunExplorer(entries []Entry) ([]float64, error) {
	final, err := tea.NewProgram(NewExplorer(entries), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	return final.(Explorer).Coefficients(), nil
}
