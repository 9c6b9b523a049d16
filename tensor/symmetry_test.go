// SPDX-License-Identifier: MIT

package tensor_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvgeo/tensor"
)

func TestNewSymmetry_Validation(t *testing.T) {
	cases := []struct {
		name string
		rank int
		sym  [][]int
		anti [][]int
	}{
		{"singleton group", 3, [][]int{{1}}, nil},
		{"slot out of range", 2, [][]int{{0, 2}}, nil},
		{"overlap", 4, [][]int{{0, 1}}, [][]int{{1, 2}}},
		{"negative rank", -1, nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tensor.NewSymmetry(tc.rank, tc.sym, tc.anti)
			require.ErrorIs(t, err, tensor.ErrBadSymmetry)
		})
	}
}

func TestSymmetry_Kind(t *testing.T) {
	require.Equal(t, tensor.KindNone, tensor.NoSymmetry(3).Kind())
	require.Equal(t, tensor.KindSymmetric, tensor.FullySymmetric(2).Kind())
	require.Equal(t, tensor.KindAntisymmetric, tensor.FullyAntisymmetric(3).Kind())
	require.Equal(t, tensor.KindNone, tensor.FullyAntisymmetric(1).Kind())

	mixed, err := tensor.NewSymmetry(4, [][]int{{1, 0}}, [][]int{{3, 2}})
	require.NoError(t, err)
	require.Equal(t, tensor.KindMixed, mixed.Kind())
	require.Equal(t, [][]int{{0, 1}}, mixed.Symmetric())
	require.Equal(t, [][]int{{2, 3}}, mixed.Antisymmetric())
	require.Equal(t, "sym[0 1] anti[2 3]", mixed.String())
	require.Equal(t, "mixed", mixed.Kind().String())
}

func TestSymmetry_Canonical(t *testing.T) {
	anti := tensor.FullyAntisymmetric(3)
	cases := []struct {
		idx  []int
		rep  []int
		sign int
	}{
		{[]int{0, 1, 2}, []int{0, 1, 2}, 1},
		{[]int{1, 0, 2}, []int{0, 1, 2}, -1},
		{[]int{2, 0, 1}, []int{0, 1, 2}, 1},
		{[]int{2, 1, 0}, []int{0, 1, 2}, -1},
	}
	for _, tc := range cases {
		rep, sign := anti.Canonical(tc.idx)
		require.Equal(t, tc.rep, rep, "idx %v", tc.idx)
		require.Equal(t, tc.sign, sign, "idx %v", tc.idx)
	}
	_, sign := anti.Canonical([]int{2, 0, 2})
	require.Zero(t, sign)

	sym := tensor.FullySymmetric(2)
	rep, sign := sym.Canonical([]int{1, 0})
	require.Equal(t, []int{0, 1}, rep)
	require.Equal(t, 1, sign)
	require.True(t, sym.IsCanonical([]int{0, 0}))
	require.False(t, sym.IsCanonical([]int{1, 0}))
}

func TestSymmetry_CanonicalProperties(t *testing.T) {
	sym, err := tensor.NewSymmetry(4, [][]int{{0, 1}}, [][]int{{2, 3}})
	require.NoError(t, err)

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)
	indices := gen.SliceOfN(4, gen.IntRange(0, 3))

	properties.Property("representative is a fixed point", prop.ForAll(
		func(idx []int) bool {
			rep, sign := sym.Canonical(idx)
			if sign == 0 {
				return idx[2] == idx[3]
			}
			again, s := sym.Canonical(rep)
			return s == 1 && equalInts(again, rep)
		},
		indices,
	))

	properties.Property("swapping an antisymmetric pair flips the sign", prop.ForAll(
		func(idx []int) bool {
			rep, sign := sym.Canonical(idx)
			sw := append([]int(nil), idx...)
			sw[2], sw[3] = sw[3], sw[2]
			rep2, sign2 := sym.Canonical(sw)
			return sign2 == -sign && (sign == 0 || equalInts(rep, rep2))
		},
		indices,
	))

	properties.Property("swapping a symmetric pair changes nothing", prop.ForAll(
		func(idx []int) bool {
			rep, sign := sym.Canonical(idx)
			sw := append([]int(nil), idx...)
			sw[0], sw[1] = sw[1], sw[0]
			rep2, sign2 := sym.Canonical(sw)
			return sign2 == sign && equalInts(rep, rep2)
		},
		indices,
	))

	properties.TestingRun(t)
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
