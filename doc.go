// SPDX-License-Identifier: MIT

// Package lvgeo is an exact, lazy engine for pseudo-Riemannian geometry:
// give it a metric in some chart and ask for its inverse, determinant,
// Christoffel symbols, Riemann, Ricci and Weyl curvature or volume form, in
// any chart or frame you have registered.
//
// What is in the box?
//
//	symbolic/  exact expressions (rational coefficients, sin, cos, sinh,
//	           cosh, exp, log, sqrt) with a canonical zero test and ∂/∂x
//	matrix/    square matrices of expressions: determinant, adjugate
//	           inverse, product
//	manifold/  dimension, start index, charts, frames, coordinate and frame
//	           changes, shortest chains of frame changes
//	tensor/    symmetry-aware component storage, per-frame tensor fields,
//	           raise/lower, (anti)symmetrise, product, contraction
//	metric/    the metric itself and everything derived from it, cached and
//	           dropped together whenever a component is written
//
// Components are computed on demand and cached per frame. A tensor asked for
// in a frame it does not know yet is transformed from the nearest cached
// frame along registered changes of frame. Storage keeps one representative
// per class of (anti)symmetric indices, with the sign taken care of on read.
//
// Quick example, the round 2-sphere of radius a:
//
//	mf, _ := manifold.New("S2", 2)
//	_, _ = mf.AddChart("spher", "th", "ph")
//	g, _ := metric.New(mf, "g")
//	c, _ := g.SetComp("spher")
//	_ = c.Set("spher", a.Pow(2), 0, 0)
//	_ = c.Set("spher", a.Pow(2).Mul(symbolic.Sin(th).Pow(2)), 1, 1)
//	r, _ := g.RicciScalar("") // 2/a^2
//
// Nothing here is safe for concurrent use except the atom table of package
// symbolic; callers serialise access to a manifold and its fields.
//
//	go get github.com/katalvlaran/lvgeo
package lvgeo
