// SPDX-License-Identifier: MIT

// Package symbolic implements the exact scalar expressions consumed by the
// geometry engine: rational functions over a ring generated by atoms.
//
// What is an atom?
//
//	A coordinate or parameter symbol (x, r, θ, a), or an elementary function
//	applied to an expression: sin, cos, sinh, cosh, exp, log, sqrt.
//
// Every Expr is kept in a normal form N/D where N and D are polynomials with
// rational coefficients over the atoms, subject to the rewrite rules
//
//	cos(u)²  → 1 − sin(u)²
//	cosh(u)² → 1 + sinh(u)²
//	sqrt(p)² → p
//
// so that a polynomial in normal form is zero iff it is identically zero
// modulo those identities. This is the "is this expression identically zero"
// test the tensor engine relies on.
//
// Simplification policy:
//   - Common monomial factors of N and D are cancelled.
//   - D is made monic (leading coefficient 1 in lexicographic order).
//   - Exact polynomial division N/D or D/N is attempted; no general
//     multivariate GCD is computed.
//   - Sqrt extracts even powers of atoms and square rational factors; atoms
//     are treated as positive (sqrt(x²) = x), like a simplifier running under
//     positivity assumptions on coordinates.
//
// Expr values are immutable and safe to share. The atom intern table is the
// only package-level state and is guarded by a mutex.
//
// Usage:
//
//	r, th := symbolic.Sym("r"), symbolic.Sym("th")
//	g33 := r.Pow(2).Mul(symbolic.Sin(th).Pow(2))
//	d := g33.Diff("th") // 2*cos(th)*r^2*sin(th)
package symbolic
