// SPDX-License-Identifier: MIT

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvgeo/manifold"
	"github.com/katalvlaran/lvgeo/symbolic"
	"github.com/katalvlaran/lvgeo/tensor"
)

// plane builds R² with a Cartesian chart (default) and a polar chart, and
// x = r cos φ, y = r sin φ.
func plane(t *testing.T) *manifold.Manifold {
	t.Helper()
	m, err := manifold.New("R2", 2)
	require.NoError(t, err)
	_, err = m.AddChart("cart", "x", "y")
	require.NoError(t, err)
	_, err = m.AddChart("polar", "r", "ph")
	require.NoError(t, err)
	r, ph := symbolic.Sym("r"), symbolic.Sym("ph")
	require.NoError(t, m.AddCoordChange("cart", "polar",
		r.Mul(symbolic.Cos(ph)), r.Mul(symbolic.Sin(ph))))

	return m
}

// polarOnly builds R² known only through polar coordinates.
func polarOnly(t *testing.T) *manifold.Manifold {
	t.Helper()
	m, err := manifold.New("R2", 2)
	require.NoError(t, err)
	_, err = m.AddChart("polar", "r", "ph")
	require.NoError(t, err)

	return m
}

// field builds a field and fills its components in frame/chart from a map
// of index tuples.
func field(t *testing.T, mf *manifold.Manifold, v tensor.Valence, sym tensor.Symmetry, frame string, vals map[[2]int]symbolic.Expr) *tensor.Field {
	t.Helper()
	f, err := tensor.NewField(mf, v, "T", tensor.WithSymmetry(sym))
	require.NoError(t, err)
	c, err := f.SetComp(frame)
	require.NoError(t, err)
	c.Declare(frame)
	for idx, e := range vals {
		if v.Rank() == 1 {
			require.NoError(t, c.Set(frame, e, idx[0]))
			continue
		}
		require.NoError(t, c.Set(frame, e, idx[0], idx[1]))
	}

	return f
}

// get reads one component and fails the test on error.
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

// fixedMetric serves prebuilt g and g⁻¹ fields.
type fixedMetric struct {
	g, inv *tensor.Field
}

func (m fixedMetric) Lowering() *tensor.Field         { return m.g }
func (m fixedMetric) Raising() (*tensor.Field, error) { return m.inv, nil }

// newManifold3 builds a 3-manifold with one chart "X" and the given start
// index.
func newManifold3(start int) (*manifold.Manifold, error) {
	m, err := manifold.New("M3", 3, manifold.WithStartIndex(start))
	if err != nil {
		return nil, err
	}
	if _, err = m.AddChart("X", "u", "v", "w"); err != nil {
		return nil, err
	}

	return m, nil
}
