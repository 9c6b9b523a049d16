// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvgeo/manifold"
	"github.com/katalvlaran/lvgeo/symbolic"
)

// Scalar is a scalar field: one expression per chart, re-expressed on
// demand through the manifold's coordinate changes.
type Scalar struct {
	mf    *manifold.Manifold
	exprs map[string]symbolic.Expr
	order []string
}

// NewScalar returns a scalar field with no expression.
func NewScalar(mf *manifold.Manifold) *Scalar {
	return &Scalar{mf: mf, exprs: make(map[string]symbolic.Expr)}
}

// ScalarOf returns the scalar field equal to e in chart.
func ScalarOf(mf *manifold.Manifold, chart string, e symbolic.Expr) *Scalar {
	s := NewScalar(mf)
	s.Set(chart, e)

	return s
}

// Set replaces the expressions of every chart by e in chart.
func (s *Scalar) Set(chart string, e symbolic.Expr) {
	s.exprs = map[string]symbolic.Expr{chart: e}
	s.order = []string{chart}
}

// Charts returns the charts with a known expression, sorted by name.
func (s *Scalar) Charts() []string {
	out := append([]string(nil), s.order...)
	sort.Strings(out)

	return out
}

// Expr returns the expression in chart ("" is the default chart), deriving
// it from the first known chart that has a coordinate change to it.
func (s *Scalar) Expr(chart string) (symbolic.Expr, error) {
	if chart == "" {
		def := s.mf.DefaultChart()
		if def == nil {
			return symbolic.Expr{}, tensorErrorf("Scalar.Expr", fmt.Errorf("no default chart: %w", ErrChartUnavailable))
		}
		chart = def.Name()
	}
	if e, ok := s.exprs[chart]; ok {
		return e, nil
	}
	for _, src := range s.order {
		e, err := s.mf.Reexpress(s.exprs[src], src, chart)
		if err != nil {
			continue
		}
		s.exprs[chart] = e
		s.order = append(s.order, chart)

		return e, nil
	}

	return symbolic.Expr{}, tensorErrorf("Scalar.Expr", fmt.Errorf("chart %q: %w", chart, ErrChartUnavailable))
}

// IsZero reports whether every known expression is zero.
func (s *Scalar) IsZero() bool {
	for _, e := range s.exprs {
		if !e.IsZero() {
			return false
		}
	}

	return true
}

// String renders "chart: expr" pairs in chart order.
func (s *Scalar) String() string {
	out := ""
	for i, c := range s.Charts() {
		if i > 0 {
			out += "; "
		}
		out += c + ": " + s.exprs[c].String()
	}

	return out
}
