// SPDX-License-Identifier: MIT

// Package symbolic_test contains unit tests for the expression normal form.
package symbolic_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/lvgeo/symbolic"
	"github.com/stretchr/testify/require"
)

func TestZeroValue(t *testing.T) {
	var e symbolic.Expr
	require.True(t, e.IsZero())
	require.Equal(t, "0", e.String())
	require.True(t, symbolic.Zero().Equal(e))
}

func TestConstants(t *testing.T) {
	sum := symbolic.Int(2).Add(symbolic.Rat(1, 2))
	v, ok := sum.Rational()
	require.True(t, ok)
	require.Equal(t, 0, v.Cmp(big.NewRat(5, 2)))
	require.True(t, symbolic.Int(3).Mul(symbolic.Rat(1, 3)).IsOne())
	require.Equal(t, "-7/3", symbolic.Rat(-7, 3).String())
}

func TestPolynomialIdentities(t *testing.T) {
	x, y := symbolic.Sym("x"), symbolic.Sym("y")
	one := symbolic.One()

	lhs := x.Add(one).Mul(x.Sub(one))
	rhs := x.Pow(2).Sub(one)
	require.True(t, lhs.Equal(rhs))

	// (x+y)^3 expanded
	cube := x.Add(y).Pow(3)
	expanded := x.Pow(3).
		Add(x.Pow(2).Mul(y).Scale(big.NewRat(3, 1))).
		Add(x.Mul(y.Pow(2)).Scale(big.NewRat(3, 1))).
		Add(y.Pow(3))
	require.True(t, cube.Equal(expanded))
}

func TestRationalCancellation(t *testing.T) {
	x := symbolic.Sym("x")
	one := symbolic.One()

	q := x.Pow(2).Sub(one).Div(x.Sub(one))
	require.Equal(t, "x + 1", q.String())

	inv := one.Div(x.Pow(2)).Mul(x)
	require.Equal(t, "1/x", inv.String())

	require.Equal(t, "-1/x^2", one.Div(x).Diff("x").String())
}

func TestSharedDenominators(t *testing.T) {
	x, y := symbolic.Sym("x"), symbolic.Sym("y")
	one := symbolic.One()
	det := one.Add(x).Mul(one.Sub(x)).Sub(x.Pow(2).Mul(y.Pow(2)))

	a := one.Add(x).Div(det)
	b := one.Sub(x).Div(det)
	sum := a.Add(b)
	require.True(t, sum.Equal(symbolic.Int(2).Div(det)))
	require.True(t, det.Div(det).IsOne())
}

func TestTrigonometricRules(t *testing.T) {
	th := symbolic.Sym("th")
	s, c := symbolic.Sin(th), symbolic.Cos(th)

	require.True(t, s.Pow(2).Add(c.Pow(2)).IsOne())
	require.True(t, c.Pow(4).Equal(symbolic.One().Sub(s.Pow(2)).Pow(2)))
	require.True(t, symbolic.Sin(th.Neg()).Equal(s.Neg()))
	require.True(t, symbolic.Cos(th.Neg()).Equal(c))
	require.True(t, symbolic.Sin(symbolic.Zero()).IsZero())
	require.True(t, symbolic.Cos(symbolic.Zero()).IsOne())
}

func TestHyperbolicRules(t *testing.T) {
	rho := symbolic.Sym("rho")
	sh, ch := symbolic.Sinh(rho), symbolic.Cosh(rho)

	require.True(t, ch.Pow(2).Sub(sh.Pow(2)).IsOne())
	require.True(t, sh.Diff("rho").Equal(ch))
	require.True(t, ch.Diff("rho").Equal(sh))
}

func TestExponentialProducts(t *testing.T) {
	x, y := symbolic.Sym("x"), symbolic.Sym("y")
	ex := symbolic.Exp(x)

	require.True(t, ex.Mul(symbolic.Exp(x.Neg())).IsOne())
	require.True(t, ex.Mul(symbolic.Exp(x.Neg())).Sub(symbolic.One()).IsZero())
	require.True(t, ex.Pow(2).Equal(symbolic.Exp(symbolic.Int(2).Mul(x))))
	require.Equal(t, symbolic.Exp(x.Add(y)).String(), ex.Mul(symbolic.Exp(y)).String())
	require.True(t, ex.Div(symbolic.Exp(y)).Equal(symbolic.Exp(x.Sub(y))))

	// d/dx (exp(x)·exp(−x)) vanishes
	require.True(t, ex.Mul(symbolic.Exp(x.Neg())).Diff("x").IsZero())
}

func TestDerivatives(t *testing.T) {
	x, r, th := symbolic.Sym("x"), symbolic.Sym("r"), symbolic.Sym("th")

	g33 := r.Pow(2).Mul(symbolic.Sin(th).Pow(2))
	want := symbolic.Int(2).Mul(r.Pow(2)).Mul(symbolic.Sin(th)).Mul(symbolic.Cos(th))
	require.True(t, g33.Diff("th").Equal(want))
	require.True(t, g33.Diff("phi").IsZero())

	// d/dx tan(x) = 1/cos²(x)
	require.True(t, symbolic.Tan(x).Diff("x").Equal(symbolic.One().Div(symbolic.Cos(x).Pow(2))))

	// chain rule through exp and log
	require.True(t, symbolic.Exp(x.Pow(2)).Diff("x").Equal(symbolic.Int(2).Mul(x).Mul(symbolic.Exp(x.Pow(2)))))
	require.True(t, symbolic.Log(x).Diff("x").Equal(symbolic.One().Div(x)))

	// quotient rule
	f := x.Div(x.Add(symbolic.One()))
	require.True(t, f.Diff("x").Equal(symbolic.One().Div(x.Add(symbolic.One()).Pow(2))))
}

func TestSqrt(t *testing.T) {
	r, th, x, y := symbolic.Sym("r"), symbolic.Sym("th"), symbolic.Sym("x"), symbolic.Sym("y")

	got := r.Pow(4).Mul(symbolic.Sin(th).Pow(2)).Sqrt()
	require.True(t, got.Equal(r.Pow(2).Mul(symbolic.Sin(th))))

	require.True(t, symbolic.Rat(1, 4).Sqrt().Equal(symbolic.Rat(1, 2)))
	require.True(t, symbolic.Int(8).Sqrt().Pow(2).Equal(symbolic.Int(8)))
	require.True(t, symbolic.Int(8).Sqrt().Equal(symbolic.Int(2).Mul(symbolic.Int(2).Sqrt())))

	det := symbolic.One().Sub(x.Pow(2)).Sub(x.Pow(2).Mul(y.Pow(2)))
	s := det.Sqrt()
	require.True(t, s.Mul(s).Equal(det))
	require.True(t, s.Diff("y").Equal(det.Diff("y").Div(s.Scale(big.NewRat(2, 1)))))

	require.True(t, symbolic.One().Div(r.Pow(2)).Sqrt().Equal(symbolic.One().Div(r)))
}

func TestSubs(t *testing.T) {
	x, y := symbolic.Sym("x"), symbolic.Sym("y")
	r, ph := symbolic.Sym("r"), symbolic.Sym("ph")

	polar := map[string]symbolic.Expr{
		"x": r.Mul(symbolic.Cos(ph)),
		"y": r.Mul(symbolic.Sin(ph)),
	}
	require.True(t, x.Pow(2).Add(y.Pow(2)).Subs(polar).Equal(r.Pow(2)))
	require.True(t, symbolic.Sin(x).SubsOne("x", symbolic.Zero()).IsZero())
	require.True(t, x.Div(y).Subs(polar).Equal(symbolic.Cos(ph).Div(symbolic.Sin(ph))))
}

func TestDivisionByZeroPanics(t *testing.T) {
	require.PanicsWithValue(t, symbolic.ErrDivisionByZero, func() {
		symbolic.One().Div(symbolic.Zero())
	})
	require.PanicsWithValue(t, symbolic.ErrDivisionByZero, func() {
		symbolic.Rat(1, 0)
	})
}

func TestNewSymbolValidation(t *testing.T) {
	for _, name := range []string{"", "sin(x)", "a b", "x^2"} {
		_, err := symbolic.NewSymbol(name)
		require.ErrorIs(t, err, symbolic.ErrBadSymbol, name)
	}
	e, err := symbolic.NewSymbol("θ")
	require.NoError(t, err)
	require.Equal(t, "θ", e.String())
	require.True(t, e.DependsOn("θ"))
}
