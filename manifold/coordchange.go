// SPDX-License-Identifier: MIT

package manifold

import (
	"fmt"

	"github.com/katalvlaran/lvgeo/matrix"
	"github.com/katalvlaran/lvgeo/symbolic"
)

// AddCoordChange registers the coordinates of chart from as expressions in
// the coordinates of chart to, one expression per coordinate of from.
//
// Implementation:
//   - Stage 1: validate both charts and the expression count.
//   - Stage 2: build the Jacobian P[a][b] = ∂x^a/∂y^b, expressed in to, and
//     its inverse.
//   - Stage 3: store the substitution from→to and register P as the change
//     from frame(from) to frame(to), the inverse as the change back.
//
// A Jacobian that is identically singular is rejected with matrix.ErrSingular.
func (m *Manifold) AddCoordChange(from, to string, exprs ...symbolic.Expr) error {
	const op = "AddCoordChange"

	// Stage 1: Validate
	src, err := m.Chart(from)
	if err != nil {
		return manifoldErrorf(op, err)
	}
	dst, err := m.Chart(to)
	if err != nil {
		return manifoldErrorf(op, err)
	}
	if len(exprs) != m.dim {
		return manifoldErrorf(op, fmt.Errorf("%d expressions on a %d-manifold: %w", len(exprs), m.dim, ErrCoordinateCount))
	}

	// Stage 2: Jacobian, checked before anything is stored
	jac, err := matrix.NewDense(m.dim, m.dim)
	if err != nil {
		return manifoldErrorf(op, err)
	}
	for a, e := range exprs {
		for b, y := range dst.coords {
			if err = jac.Set(a, b, e.Diff(y)); err != nil {
				return manifoldErrorf(op, err)
			}
		}
	}
	inv, err := matrix.Inverse(jac)
	if err != nil {
		return manifoldErrorf(op, err)
	}

	// Stage 3: register
	subs := make(map[string]symbolic.Expr, m.dim)
	for a, name := range src.coords {
		subs[name] = exprs[a]
	}
	key := edge{from, to}
	if _, ok := m.transitions[key]; !ok {
		m.chartAdj[from] = append(m.chartAdj[from], to)
	}
	m.transitions[key] = subs
	m.storeChange(from, to, to, jac)
	m.storeChange(to, from, to, inv)

	return nil
}

// Transition returns the direct substitution from→to: each coordinate of
// from mapped to an expression in the coordinates of to.
func (m *Manifold) Transition(from, to string) (map[string]symbolic.Expr, error) {
	subs, ok := m.transitions[edge{from, to}]
	if !ok {
		return nil, manifoldErrorf("Transition", fmt.Errorf("%q → %q: %w", from, to, ErrNoTransition))
	}
	out := make(map[string]symbolic.Expr, len(subs))
	for k, v := range subs {
		out[k] = v
	}

	return out, nil
}

// Reexpress rewrites e, given in the coordinates of chart from, in the
// coordinates of chart to, chaining coordinate changes along the shortest
// path when there is no direct one.
func (m *Manifold) Reexpress(e symbolic.Expr, from, to string) (symbolic.Expr, error) {
	if from == to {
		return e, nil
	}
	if _, ok := m.charts[from]; !ok {
		return symbolic.Expr{}, manifoldErrorf("Reexpress", fmt.Errorf("%q: %w", from, ErrUnknownChart))
	}
	if _, ok := m.charts[to]; !ok {
		return symbolic.Expr{}, manifoldErrorf("Reexpress", fmt.Errorf("%q: %w", to, ErrUnknownChart))
	}
	path, ok := shortestPath(m.chartAdj, from, to)
	if !ok {
		return symbolic.Expr{}, manifoldErrorf("Reexpress", fmt.Errorf("%q → %q: %w", from, to, ErrNoTransition))
	}
	for i := 1; i < len(path); i++ {
		e = e.Subs(m.transitions[edge{path[i-1], path[i]}])
	}

	return e, nil
}
