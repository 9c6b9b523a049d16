// SPDX-License-Identifier: MIT

package metric_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvgeo/manifold"
	"github.com/katalvlaran/lvgeo/metric"
	"github.com/katalvlaran/lvgeo/symbolic"
	"github.com/katalvlaran/lvgeo/tensor"
)

// diagonal builds a metric on a fresh n-manifold with a single chart and
// the given diagonal components.
func diagonal(t *testing.T, name string, coords []string, diag []symbolic.Expr, opts ...metric.Option) *metric.Metric {
	t.Helper()
	mf, err := manifold.New("M", len(coords))
	require.NoError(t, err)
	_, err = mf.AddChart("X", coords...)
	require.NoError(t, err)
	g, err := metric.New(mf, name, opts...)
	require.NoError(t, err)
	c, err := g.SetComp("X")
	require.NoError(t, err)
	for i, e := range diag {
		require.NoError(t, c.Set("X", e, i, i))
	}

	return g
}

// spherical is flat R³ in spherical coordinates.
func spherical(t *testing.T) *metric.Metric {
	t.Helper()
	r, th := symbolic.Sym("r"), symbolic.Sym("th")

	return diagonal(t, "g", []string{"r", "th", "ph"}, []symbolic.Expr{
		symbolic.One(), r.Pow(2), r.Pow(2).Mul(symbolic.Sin(th).Pow(2)),
	})
}

// sphere is the round 2-sphere of radius a.
func sphere(t *testing.T) *metric.Metric {
	t.Helper()
	a, th := symbolic.Sym("a"), symbolic.Sym("th")

	return diagonal(t, "g", []string{"th", "ph"}, []symbolic.Expr{
		a.Pow(2), a.Pow(2).Mul(symbolic.Sin(th).Pow(2)),
	})
}

// get reads one component of f in frame/chart.
func get(t *testing.T, f *tensor.Field, frame, chart string, idx ...int) symbolic.Expr {
	t.Helper()
	c, err := f.Comp(frame)
	require.NoError(t, err)
	e, err := c.Get(chart, idx...)
	require.NoError(t, err)

	return e
}

// requireExpr compares expressions up to simplification.
func requireExpr(t *testing.T, want, got symbolic.Expr) {
	t.Helper()
	require.True(t, want.Equal(got), "want %s, got %s", want, got)
}
