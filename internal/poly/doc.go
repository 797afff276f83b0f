// Package poly implements arithmetic, calculus, evaluation, fitting and root
// finding for polynomials in the power basis.
//
// A polynomial of degree n is represented by its coefficients c0..cn in
// increasing order of power, so
//
//	p(x) = c[0] + c[1]*x + ... + c[n]*x^n
//
// One-dimensional operations take coefficient slices ([]T). Calculus,
// evaluation, Vandermonde construction and fitting work on
// [ndarray.Array] values whose leading axis (or the axis selected with
// [Axis]) is the degree axis; the remaining axes hold independent
// polynomials.
//
// # Element types
//
// Every function is generic over [ndarray.Number]: float32, float64,
// complex64 and complex128 (and types derived from them). The element type is
// fixed by the caller; nothing is promoted at run time.
//
// # Trimming
//
// [Add], [Sub], [Mul] and [Div] drop trailing coefficients that are exactly
// zero. Only [Trim] removes coefficients by magnitude:
//
//	c, _ := poly.Trim([]float64{2, -1, 1, 1e-12}, 1e-9) // [2 -1 1]
//
// # Errors
//
// Failures are reported as *[Error] values wrapping one of [ErrValue],
// [ErrShape], [ErrType] or [ErrZeroDivision]. The package never logs and never
// returns partial results.
//
// # Roots
//
// Roots are the eigenvalues of the companion matrix. The eigenvalue solver is
// injected through [EigenSolver]; [Roots] uses [linalg.Eigen].
package poly
