// Package linalg provides the dense linear-algebra backends used by the
// polynomial engine.
//
// A [Backend] solves least-squares problems and computes eigenvalues:
//
//	be := linalg.Default()
//	x, sol, err := linalg.Lstsq(be, a, b, -1)
//
// The gonum backend factorizes with an SVD to estimate rank and then solves
// full-rank problems by QR, falling back to the pseudo-inverse when the
// system is rank deficient. Complex systems are solved through their real
// embedding.
//
// Eigenvalues of real matrices come from gonum's Eigen. Complex matrices are
// reduced to Hessenberg form and iterated with a shifted QR sweep; see
// [Eigen].
package linalg
