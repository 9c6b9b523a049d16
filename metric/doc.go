// SPDX-License-Identifier: MIT

// Package metric derives pseudo-Riemannian geometry from the components of a
// symmetric (0,2) tensor field: inverse metric, determinant and √|det g|,
// Levi-Civita connection, Riemann, Ricci and Weyl curvature, and the chain of
// volume forms with 0..n raised indices.
//
// Every derived quantity is computed lazily and cached on the Metric. Any
// write to the metric's own components runs the invalidation list
// synchronously, so a cache is either absent or consistent with the current
// components:
//
//	inverse → connection (Christoffel, Riemann, Ricci, Ricci scalar)
//	        → Weyl → determinants → √|det g| → volume forms
//
// Quantities obtained before a mutation stay valid as values: a Connection
// works on its own snapshot of the metric.
//
// Signature policies:
//   - Riemannian(): S = n (default);
//   - Lorentzian(PositiveConvention): S = n−2, i.e. (−,+,…,+);
//   - Lorentzian(NegativeConvention): S = 2−n, i.e. (+,−,…,−);
//   - Explicit(S): any S with |S| ≤ n and S ≡ n (mod 2).
//
// The package logs cache builds and invalidations at debug level through
// go.uber.org/zap; the default logger is a no-op.
//
// A Metric is not safe for concurrent use; callers serialise access.
package metric
