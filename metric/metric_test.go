// SPDX-License-Identifier: MIT

package metric_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/lvgeo/manifold"
	"github.com/katalvlaran/lvgeo/matrix"
	"github.com/katalvlaran/lvgeo/metric"
	"github.com/katalvlaran/lvgeo/symbolic"
	"github.com/katalvlaran/lvgeo/tensor"
)

func TestMetric_InverseAndDeterminant(t *testing.T) {
	mf, err := manifold.New("M2", 2)
	require.NoError(t, err)
	_, err = mf.AddChart("X", "x", "y")
	require.NoError(t, err)
	g, err := metric.New(mf, "g")
	require.NoError(t, err)

	x, y := symbolic.Sym("x"), symbolic.Sym("y")
	one := symbolic.One()
	c, err := g.SetComp("")
	require.NoError(t, err)
	require.NoError(t, c.Set("X", one.Add(x), 0, 0))
	require.NoError(t, c.Set("X", x.Mul(y), 0, 1))
	require.NoError(t, c.Set("X", one.Sub(x), 1, 1))

	det, err := g.Determinant("")
	require.NoError(t, err)
	d, err := det.Expr("X")
	require.NoError(t, err)
	requireExpr(t, one.Sub(x.Pow(2)).Sub(x.Pow(2).Mul(y.Pow(2))), d)

	again, err := g.Determinant("X")
	require.NoError(t, err)
	require.Same(t, det, again)

	inv, err := g.Inverse()
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			acc := symbolic.Zero()
			for k := 0; k < 2; k++ {
				acc = acc.Add(get(t, inv, "X", "X", i, k).Mul(get(t, g.Field, "X", "X", k, j)))
			}
			want := symbolic.Zero()
			if i == j {
				want = one
			}
			requireExpr(t, want, acc)
		}
	}
	requireExpr(t, get(t, inv, "X", "X", 0, 1), get(t, inv, "X", "X", 1, 0))
}

func TestMetric_SqrtAbsDetLorentzian(t *testing.T) {
	tt := symbolic.Sym("t")
	g := diagonal(t, "g", []string{"t", "x", "y", "z"}, []symbolic.Expr{
		symbolic.Int(-1), tt.Pow(2), tt.Pow(2), tt.Pow(2),
	}, metric.WithSignature(metric.Lorentzian(metric.PositiveConvention)))

	det, err := g.Determinant("")
	require.NoError(t, err)
	d, err := det.Expr("X")
	require.NoError(t, err)
	requireExpr(t, tt.Pow(6).Neg(), d)

	root, err := g.SqrtAbsDet("")
	require.NoError(t, err)
	e, err := root.Expr("X")
	require.NoError(t, err)
	requireExpr(t, tt.Pow(3), e)
}

func TestMetric_Singular(t *testing.T) {
	mf, err := manifold.New("M2", 2)
	require.NoError(t, err)
	_, err = mf.AddChart("X", "x", "y")
	require.NoError(t, err)
	g, err := metric.New(mf, "g")
	require.NoError(t, err)
	c, err := g.SetComp("X")
	require.NoError(t, err)
	x := symbolic.Sym("x")
	require.NoError(t, c.Set("X", x, 0, 0))
	require.NoError(t, c.Set("X", x, 0, 1))
	require.NoError(t, c.Set("X", x, 1, 1))

	_, err = g.Inverse()
	require.ErrorIs(t, err, metric.ErrSingularMetric)
	_, err = g.Christoffel("X")
	require.ErrorIs(t, err, metric.ErrSingularMetric)
}

func TestMetric_NoComponents(t *testing.T) {
	mf, err := manifold.New("M2", 2)
	require.NoError(t, err)
	_, err = mf.AddChart("X", "x", "y")
	require.NoError(t, err)
	g, err := metric.New(mf, "g")
	require.NoError(t, err)

	_, err = g.Connection()
	require.ErrorIs(t, err, metric.ErrNoComponents)
	_, err = g.Determinant("")
	require.ErrorIs(t, err, metric.ErrNoComponents)
}

func TestMetric_Invalidation(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	a, b, th := symbolic.Sym("a"), symbolic.Sym("b"), symbolic.Sym("th")
	g := diagonal(t, "g", []string{"th", "ph"}, []symbolic.Expr{
		a.Pow(2), a.Pow(2).Mul(symbolic.Sin(th).Pow(2)),
	}, metric.WithLogger(zap.New(core)))
	require.Zero(t, logs.FilterMessage("metric caches invalidated").Len())

	conn, err := g.Connection()
	require.NoError(t, err)
	_, err = g.Christoffel("X")
	require.NoError(t, err)
	_, err = g.VolumeForm(2)
	require.NoError(t, err)

	c, err := g.AddComp("X")
	require.NoError(t, err)
	require.NoError(t, c.Set("X", b.Pow(2), 0, 0))

	entries := logs.FilterMessage("metric caches invalidated").All()
	require.Len(t, entries, 1)
	require.Equal(t,
		[]interface{}{"inverse", "connection", "determinants", "sqrt_abs_dets", "volume_forms"},
		entries[0].ContextMap()["cleared"])

	inv, err := g.Inverse()
	require.NoError(t, err)
	requireExpr(t, b.Pow(-2), get(t, inv, "X", "X", 0, 0))
	fresh, err := g.Connection()
	require.NoError(t, err)
	require.NotSame(t, conn, fresh)

	// the old connection keeps its snapshot
	old, err := conn.Coefficients("X")
	require.NoError(t, err)
	e, err := old.Get("X", 0, 1, 1)
	require.NoError(t, err)
	requireExpr(t, symbolic.Sin(th).Mul(symbolic.Cos(th)).Neg(), e)
}

func TestMetric_SetCompInvalidates(t *testing.T) {
	g := sphere(t)
	det, err := g.Determinant("")
	require.NoError(t, err)

	c, err := g.SetComp("X")
	require.NoError(t, err)
	require.NoError(t, c.Set("X", symbolic.One(), 0, 0))
	require.NoError(t, c.Set("X", symbolic.One(), 1, 1))

	fresh, err := g.Determinant("")
	require.NoError(t, err)
	require.NotSame(t, det, fresh)
	e, err := fresh.Expr("X")
	require.NoError(t, err)
	require.True(t, e.IsOne())
}

func TestMetric_WriteRefreshesOtherCharts(t *testing.T) {
	mf, err := manifold.New("M2", 2)
	require.NoError(t, err)
	_, err = mf.AddChart("A", "a", "b")
	require.NoError(t, err)
	_, err = mf.AddChart("B", "u", "v")
	require.NoError(t, err)
	u, v := symbolic.Sym("u"), symbolic.Sym("v")
	require.NoError(t, mf.AddCoordChange("A", "B", symbolic.Int(2).Mul(u), v))

	g, err := metric.New(mf, "g")
	require.NoError(t, err)
	c, err := g.SetComp("A")
	require.NoError(t, err)
	require.NoError(t, c.Set("A", symbolic.One(), 0, 0))
	require.NoError(t, c.Set("A", symbolic.One(), 1, 1))

	det, err := g.Determinant("B")
	require.NoError(t, err)
	d, err := det.Expr("B")
	require.NoError(t, err)
	requireExpr(t, symbolic.Int(4), d)

	require.NoError(t, c.Set("A", symbolic.Int(9), 0, 0))
	require.Equal(t, []string{"A"}, g.Frames())

	det, err = g.Determinant("B")
	require.NoError(t, err)
	d, err = det.Expr("B")
	require.NoError(t, err)
	requireExpr(t, symbolic.Int(36), d)
	requireExpr(t, symbolic.Int(36), get(t, g.Field, "B", "B", 0, 0))

	inv, err := g.Inverse()
	require.NoError(t, err)
	requireExpr(t, symbolic.Rat(1, 36), get(t, inv, "B", "B", 0, 0))
	requireExpr(t, symbolic.Rat(1, 9), get(t, inv, "A", "A", 0, 0))
}

func TestMetric_NonCoordinateFrame(t *testing.T) {
	mf, err := manifold.New("R2", 2)
	require.NoError(t, err)
	_, err = mf.AddChart("polar", "r", "ph")
	require.NoError(t, err)
	r := symbolic.Sym("r")
	p, err := matrix.FromRows([][]symbolic.Expr{
		{symbolic.One(), symbolic.Zero()},
		{symbolic.Zero(), r.Inv()},
	})
	require.NoError(t, err)
	_, err = mf.NewFrame("on", "polar", "polar", p)
	require.NoError(t, err)

	g, err := metric.New(mf, "g")
	require.NoError(t, err)
	c, err := g.SetComp("polar")
	require.NoError(t, err)
	require.NoError(t, c.Set("polar", symbolic.One(), 0, 0))
	require.NoError(t, c.Set("polar", r.Pow(2), 1, 1))

	scalar := func(s *tensor.Scalar, err error) symbolic.Expr {
		t.Helper()
		require.NoError(t, err)
		e, err := s.Expr("polar")
		require.NoError(t, err)

		return e
	}

	requireExpr(t, symbolic.One(), scalar(g.Determinant("on")))
	requireExpr(t, symbolic.One(), scalar(g.SqrtAbsDet("on")))
	inv, err := g.Inverse()
	require.NoError(t, err)
	requireExpr(t, symbolic.One(), get(t, inv, "on", "polar", 1, 1))
	require.Equal(t, []string{"on", "polar"}, g.Frames())

	require.NoError(t, c.Set("polar", symbolic.Int(4), 0, 0))
	require.Equal(t, []string{"polar"}, g.Frames())

	requireExpr(t, symbolic.Int(4), scalar(g.Determinant("on")))
	requireExpr(t, symbolic.Int(2), scalar(g.SqrtAbsDet("on")))
	requireExpr(t, symbolic.Int(4).Mul(r.Pow(2)), scalar(g.Determinant("polar")))
	inv, err = g.Inverse()
	require.NoError(t, err)
	requireExpr(t, symbolic.Rat(1, 4), get(t, inv, "on", "polar", 0, 0))
	requireExpr(t, symbolic.One(), get(t, inv, "on", "polar", 1, 1))
}
