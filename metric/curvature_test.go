// SPDX-License-Identifier: MIT

package metric_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvgeo/manifold"
	"github.com/katalvlaran/lvgeo/matrix"
	"github.com/katalvlaran/lvgeo/metric"
	"github.com/katalvlaran/lvgeo/symbolic"
)

func TestChristoffel_Spherical(t *testing.T) {
	g := spherical(t)
	gam, err := g.Christoffel("X")
	require.NoError(t, err)

	r, th := symbolic.Sym("r"), symbolic.Sym("th")
	sin, cos := symbolic.Sin(th), symbolic.Cos(th)
	cases := []struct {
		k, i, j int
		want    symbolic.Expr
	}{
		{0, 1, 1, r.Neg()},
		{0, 2, 2, r.Mul(sin.Pow(2)).Neg()},
		{1, 0, 1, r.Inv()},
		{1, 1, 0, r.Inv()},
		{1, 2, 2, sin.Mul(cos).Neg()},
		{2, 0, 2, r.Inv()},
		{2, 1, 2, cos.Div(sin)},
		{2, 2, 1, cos.Div(sin)},
		{0, 0, 0, symbolic.Zero()},
		{1, 1, 1, symbolic.Zero()},
	}
	for _, tc := range cases {
		e, err := gam.Get("X", tc.k, tc.i, tc.j)
		require.NoError(t, err)
		requireExpr(t, tc.want, e)
	}

	riem, err := g.Riemann("")
	require.NoError(t, err)
	require.True(t, riem.IsZero())
}

func TestChristoffel_UnknownChart(t *testing.T) {
	g := spherical(t)
	_, err := g.Christoffel("nope")
	require.ErrorIs(t, err, manifold.ErrUnknownChart)
}

func TestCurvature_Sphere(t *testing.T) {
	g := sphere(t)
	a, th := symbolic.Sym("a"), symbolic.Sym("th")
	sin2 := symbolic.Sin(th).Pow(2)

	riem, err := g.Riemann("")
	require.NoError(t, err)
	requireExpr(t, sin2, get(t, riem, "X", "X", 0, 1, 0, 1))
	requireExpr(t, sin2.Neg(), get(t, riem, "X", "X", 0, 1, 1, 0))
	requireExpr(t, symbolic.One(), get(t, riem, "X", "X", 1, 0, 1, 0))

	ric, err := g.Ricci("")
	require.NoError(t, err)
	require.Equal(t, "Ric_g", ric.Name())
	requireExpr(t, symbolic.One(), get(t, ric, "X", "X", 0, 0))
	requireExpr(t, sin2, get(t, ric, "X", "X", 1, 1))
	requireExpr(t, get(t, ric, "X", "X", 0, 1), get(t, ric, "X", "X", 1, 0))

	// Ric = g/a²
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := get(t, g.Field, "X", "X", i, j).Div(a.Pow(2))
			requireExpr(t, want, get(t, ric, "X", "X", i, j))
		}
	}

	r, err := g.RicciScalar("")
	require.NoError(t, err)
	e, err := r.Expr("X")
	require.NoError(t, err)
	requireExpr(t, symbolic.Int(2).Div(a.Pow(2)), e)

	// the scalar is memoized whatever frame is named later
	again, err := g.RicciScalar("X")
	require.NoError(t, err)
	require.Same(t, r, again)

	_, err = g.Weyl()
	require.ErrorIs(t, err, metric.ErrDimension)
}

func TestCurvature_Naming(t *testing.T) {
	g := sphere(t)
	riem, err := g.Riemann("", metric.Name("Riem"), metric.Latex(`\mathrm{R}`))
	require.NoError(t, err)
	require.Equal(t, "Riem", riem.Name())
	require.Equal(t, `\mathrm{R}`, riem.LatexName())

	conn, err := g.Connection()
	require.NoError(t, err)
	require.Equal(t, "nabla_g", conn.Name())
}

func TestWeyl_ConformallyFlat(t *testing.T) {
	z := symbolic.Sym("z")
	h := diagonal(t, "h", []string{"x", "y", "z"}, []symbolic.Expr{
		z.Pow(-2), z.Pow(-2), z.Pow(-2),
	})
	r, err := h.RicciScalar("")
	require.NoError(t, err)
	e, err := r.Expr("X")
	require.NoError(t, err)
	requireExpr(t, symbolic.Int(-6), e)

	c, err := h.Weyl()
	require.NoError(t, err)
	require.True(t, c.IsZero())
	require.Equal(t, "C_h", c.Name())
	require.Equal(t, []string{"X"}, c.Frames())

	tt := symbolic.Sym("t")
	g := diagonal(t, "g", []string{"t", "x", "y", "z"}, []symbolic.Expr{
		symbolic.Int(-1), tt.Pow(2), tt.Pow(2), tt.Pow(2),
	}, metric.WithSignature(metric.Lorentzian(metric.PositiveConvention)))
	riem, err := g.Riemann("")
	require.NoError(t, err)
	require.False(t, riem.IsZero())
	requireExpr(t, symbolic.One(), get(t, riem, "X", "X", 1, 2, 1, 2))

	c, err = g.Weyl()
	require.NoError(t, err)
	require.True(t, c.IsZero())
	again, err := g.Weyl()
	require.NoError(t, err)
	require.Same(t, c, again)
}

func TestConnection_Nabla(t *testing.T) {
	g := spherical(t)
	conn, err := g.Connection()
	require.NoError(t, err)

	dg, err := conn.Nabla(g.Lowering())
	require.NoError(t, err)
	require.Equal(t, 3, dg.Valence().Covar)
	require.True(t, dg.IsZero())

	inv, err := g.Inverse()
	require.NoError(t, err)
	dinv, err := conn.Nabla(inv)
	require.NoError(t, err)
	require.True(t, dinv.IsZero())
}

func TestConnection_OrthonormalFrame(t *testing.T) {
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

	requireExpr(t, symbolic.One(), get(t, g.Field, "on", "polar", 1, 1))

	conn, err := g.Connection()
	require.NoError(t, err)
	gam, err := conn.Coefficients("on")
	require.NoError(t, err)
	e, err := gam.Get("polar", 1, 1, 0)
	require.NoError(t, err)
	requireExpr(t, r.Inv(), e)
	e, err = gam.Get("polar", 0, 1, 1)
	require.NoError(t, err)
	requireExpr(t, r.Inv().Neg(), e)
	e, err = gam.Get("polar", 1, 0, 1)
	require.NoError(t, err)
	require.True(t, e.IsZero())

	riem, err := g.Riemann("on")
	require.NoError(t, err)
	_, ok := riem.Cached("on")
	require.True(t, ok)
	require.True(t, riem.IsZero())
}

func TestWeyl_HyperbolicSpace(t *testing.T) {
	b, rho, th := symbolic.Sym("b"), symbolic.Sym("rho"), symbolic.Sym("th")
	sh2 := symbolic.Sinh(rho).Pow(2)
	g := diagonal(t, "g", []string{"rho", "th", "ph"}, []symbolic.Expr{
		b.Pow(2), b.Pow(2).Mul(sh2), b.Pow(2).Mul(sh2).Mul(symbolic.Sin(th).Pow(2)),
	})

	gam, err := g.Christoffel("")
	require.NoError(t, err)
	e, err := gam.Get("X", 1, 0, 1)
	require.NoError(t, err)
	requireExpr(t, symbolic.Cosh(rho).Div(symbolic.Sinh(rho)), e)

	r, err := g.RicciScalar("")
	require.NoError(t, err)
	re, err := r.Expr("X")
	require.NoError(t, err)
	requireExpr(t, symbolic.Int(-6).Div(b.Pow(2)), re)

	c, err := g.Weyl()
	require.NoError(t, err)
	require.True(t, c.IsZero())
}
