// Package viz renders polynomials in the terminal.
//
// Static output for the CLI:
//
//   - [FormatPolynomial]: human readable coefficient form
//   - [PlotPolynomial], [PlotFit]: asciigraph line charts
//   - [Canvas]: Braille pixel canvas used for curve and root plots
//
// and an interactive [Explorer] built on Bubble Tea.
//
// # Key Bindings
//
//	h/l   - select coefficient
//	j/k   - decrease/increase selected coefficient by the step
//	+/-   - scale the step by 10
//	enter - type a value for the selected coefficient
//	a/x   - raise/lower the degree
//	d/i   - differentiate/integrate
//	z/Z   - zoom in/out
//	v     - toggle line chart and Braille view
//	t     - cycle color themes
//	u     - undo, r - reset
//	esc   - back to the preset list, q - quit
package viz
