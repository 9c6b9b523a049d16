// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvgeo/matrix"
	"github.com/katalvlaran/lvgeo/symbolic"
)

func mustRows(t *testing.T, rows [][]symbolic.Expr) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return m
}

func TestNewDense_BadShape(t *testing.T) {
	_, err := matrix.NewDense(0, 2)
	require.ErrorIs(t, err, matrix.ErrBadShape)
	_, err = matrix.FromRows(nil)
	require.ErrorIs(t, err, matrix.ErrBadShape)
}

func TestFromRows_Ragged(t *testing.T) {
	_, err := matrix.FromRows([][]symbolic.Expr{{symbolic.One(), symbolic.One()}, {symbolic.One()}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestAtSet_OutOfRange(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.ErrorIs(t, m.Set(2, 0, symbolic.One()), matrix.ErrOutOfRange)
	_, err = m.At(0, -1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	require.NoError(t, m.Set(1, 0, symbolic.Sym("x")))
	v, err := m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, "x", v.String())
	z, err := m.At(0, 0)
	require.NoError(t, err)
	require.True(t, z.IsZero())
}

func TestDeterminant_TwoByTwo(t *testing.T) {
	x, y := symbolic.Sym("x"), symbolic.Sym("y")
	one := symbolic.One()
	g := mustRows(t, [][]symbolic.Expr{
		{one.Add(x), x.Mul(y)},
		{x.Mul(y), one.Sub(x)},
	})
	det, err := matrix.Determinant(g)
	require.NoError(t, err)
	want := one.Sub(x.Pow(2)).Sub(x.Pow(2).Mul(y.Pow(2)))
	require.True(t, det.Equal(want), "det = %s", det)
}

func TestDeterminant_Spherical(t *testing.T) {
	r, th := symbolic.Sym("r"), symbolic.Sym("th")
	g := mustRows(t, [][]symbolic.Expr{
		{symbolic.One(), symbolic.Zero(), symbolic.Zero()},
		{symbolic.Zero(), r.Pow(2), symbolic.Zero()},
		{symbolic.Zero(), symbolic.Zero(), r.Pow(2).Mul(symbolic.Sin(th).Pow(2))},
	})
	det, err := matrix.Determinant(g)
	require.NoError(t, err)
	require.True(t, det.Equal(r.Pow(4).Mul(symbolic.Sin(th).Pow(2))))
}

func TestDeterminant_NonSquare(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = matrix.Determinant(m)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
	_, err = matrix.Determinant(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestInverse_RoundTrip(t *testing.T) {
	x, y := symbolic.Sym("x"), symbolic.Sym("y")
	one := symbolic.One()
	g := mustRows(t, [][]symbolic.Expr{
		{one.Add(x), x.Mul(y)},
		{x.Mul(y), one.Sub(x)},
	})
	inv, err := matrix.Inverse(g)
	require.NoError(t, err)

	id, err := matrix.Identity(2)
	require.NoError(t, err)
	left, err := matrix.Mul(g, inv)
	require.NoError(t, err)
	require.True(t, left.Equal(id), "g·g⁻¹ =\n%s", left)
	right, err := matrix.Mul(inv, g)
	require.NoError(t, err)
	require.True(t, right.Equal(id), "g⁻¹·g =\n%s", right)
}

func TestInverse_ThreeByThree(t *testing.T) {
	x := symbolic.Sym("x")
	one, zero := symbolic.One(), symbolic.Zero()
	m := mustRows(t, [][]symbolic.Expr{
		{one, x, zero},
		{zero, one, x},
		{zero, zero, one},
	})
	inv, err := matrix.Inverse(m)
	require.NoError(t, err)
	want := mustRows(t, [][]symbolic.Expr{
		{one, x.Neg(), x.Pow(2)},
		{zero, one, x.Neg()},
		{zero, zero, one},
	})
	require.True(t, inv.Equal(want), "got\n%s", inv)
}

func TestInverse_Singular(t *testing.T) {
	x := symbolic.Sym("x")
	m := mustRows(t, [][]symbolic.Expr{
		{x, x.Pow(2)},
		{symbolic.One(), x},
	})
	_, err := matrix.Inverse(m)
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestInverse_OneByOne(t *testing.T) {
	x := symbolic.Sym("x")
	m := mustRows(t, [][]symbolic.Expr{{x}})
	inv, err := matrix.Inverse(m)
	require.NoError(t, err)
	v, err := inv.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, "1/x", v.String())
}

func TestMul_Mismatch(t *testing.T) {
	a, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestCofactor(t *testing.T) {
	x := symbolic.Sym("x")
	m := mustRows(t, [][]symbolic.Expr{
		{symbolic.One(), x},
		{symbolic.Int(2), symbolic.Int(3)},
	})
	c, err := matrix.Cofactor(m, 0, 1)
	require.NoError(t, err)
	require.Equal(t, "-2", c.String())
	_, err = matrix.Cofactor(m, 2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestTransposeAndString(t *testing.T) {
	x := symbolic.Sym("x")
	m := mustRows(t, [][]symbolic.Expr{{symbolic.One(), x}})
	tr := matrix.Transpose(m)
	require.Equal(t, 2, tr.Rows())
	require.Equal(t, 1, tr.Cols())
	require.Equal(t, "[1]\n[x]\n", tr.String())
}
