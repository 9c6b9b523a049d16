// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"sort"
)

// Kind classifies a Symmetry.
type Kind int

const (
	// KindNone has no symmetry group.
	KindNone Kind = iota
	// KindSymmetric has only symmetric groups.
	KindSymmetric
	// KindAntisymmetric has only antisymmetric groups.
	KindAntisymmetric
	// KindMixed has both.
	KindMixed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSymmetric:
		return "symmetric"
	case KindAntisymmetric:
		return "antisymmetric"
	case KindMixed:
		return "mixed"
	default:
		return "none"
	}
}

// Symmetry declares disjoint groups of slots under which components are
// symmetric or antisymmetric. The zero value is "no symmetry" of rank 0.
type Symmetry struct {
	rank int
	sym  [][]int
	anti [][]int
}

// NewSymmetry validates and normalises the groups: each group has at least
// two distinct slots in [0, rank) and no slot belongs to two groups.
func NewSymmetry(rank int, sym, anti [][]int) (Symmetry, error) {
	if rank < 0 {
		return Symmetry{}, tensorErrorf("NewSymmetry", fmt.Errorf("rank %d: %w", rank, ErrBadSymmetry))
	}
	used := make(map[int]bool)
	norm := func(groups [][]int) ([][]int, error) {
		out := make([][]int, 0, len(groups))
		for _, g := range groups {
			if len(g) < 2 {
				return nil, fmt.Errorf("group %v has fewer than two slots: %w", g, ErrBadSymmetry)
			}
			cp := append([]int(nil), g...)
			sort.Ints(cp)
			for _, s := range cp {
				if s < 0 || s >= rank {
					return nil, fmt.Errorf("slot %d outside rank %d: %w", s, rank, ErrBadSymmetry)
				}
				if used[s] {
					return nil, fmt.Errorf("slot %d in two groups: %w", s, ErrBadSymmetry)
				}
				used[s] = true
			}
			out = append(out, cp)
		}
		sortGroups(out)

		return out, nil
	}
	s, err := norm(sym)
	if err != nil {
		return Symmetry{}, tensorErrorf("NewSymmetry", err)
	}
	a, err := norm(anti)
	if err != nil {
		return Symmetry{}, tensorErrorf("NewSymmetry", err)
	}

	return Symmetry{rank: rank, sym: s, anti: a}, nil
}

// NoSymmetry returns the trivial symmetry of the given rank.
func NoSymmetry(rank int) Symmetry { return Symmetry{rank: rank} }

// FullySymmetric declares all slots of a rank ≥ 2 tensor symmetric.
func FullySymmetric(rank int) Symmetry {
	if rank < 2 {
		return NoSymmetry(rank)
	}

	return Symmetry{rank: rank, sym: [][]int{seq(0, rank)}}
}

// FullyAntisymmetric declares all slots of a rank ≥ 2 tensor antisymmetric.
func FullyAntisymmetric(rank int) Symmetry {
	if rank < 2 {
		return NoSymmetry(rank)
	}

	return Symmetry{rank: rank, anti: [][]int{seq(0, rank)}}
}

// Rank returns the number of slots.
func (s Symmetry) Rank() int { return s.rank }

// Kind classifies the groups.
func (s Symmetry) Kind() Kind {
	switch {
	case len(s.sym) > 0 && len(s.anti) > 0:
		return KindMixed
	case len(s.sym) > 0:
		return KindSymmetric
	case len(s.anti) > 0:
		return KindAntisymmetric
	default:
		return KindNone
	}
}

// Symmetric returns a copy of the symmetric groups.
func (s Symmetry) Symmetric() [][]int { return copyGroups(s.sym) }

// Antisymmetric returns a copy of the antisymmetric groups.
func (s Symmetry) Antisymmetric() [][]int { return copyGroups(s.anti) }

// Equal compares two normalised symmetries.
func (s Symmetry) Equal(o Symmetry) bool {
	return s.rank == o.rank && groupsEqual(s.sym, o.sym) && groupsEqual(s.anti, o.anti)
}

// String renders the groups, e.g. "sym(0,1) anti(2,3)".
func (s Symmetry) String() string {
	if s.Kind() == KindNone {
		return "none"
	}
	out := ""
	for _, g := range s.sym {
		out += fmt.Sprintf("sym%v ", g)
	}
	for _, g := range s.anti {
		out += fmt.Sprintf("anti%v ", g)
	}

	return out[:len(out)-1]
}

// Canonical maps idx to its representative and the sign relating them:
// T[idx] = sign·T[rep]. Sign 0 means the component is identically zero
// (repeated index inside an antisymmetric group).
//
// Implementation:
//   - Stage 1: sort the values inside each symmetric group.
//   - Stage 2: sort the values inside each antisymmetric group, counting
//     transpositions; a repeated value short-circuits to sign 0.
//
// Complexity: O(Σ k²) over group sizes k.
func (s Symmetry) Canonical(idx []int) ([]int, int) {
	rep := append([]int(nil), idx...)
	for _, g := range s.sym {
		vals := gather(rep, g)
		sort.Ints(vals)
		scatter(rep, g, vals)
	}
	sign := 1
	for _, g := range s.anti {
		vals := gather(rep, g)
		// insertion sort; each shift is one transposition
		for i := 1; i < len(vals); i++ {
			for j := i; j > 0 && vals[j-1] >= vals[j]; j-- {
				if vals[j-1] == vals[j] {
					return rep, 0
				}
				vals[j-1], vals[j] = vals[j], vals[j-1]
				sign = -sign
			}
		}
		scatter(rep, g, vals)
	}

	return rep, sign
}

// IsCanonical reports whether idx is its own representative.
func (s Symmetry) IsCanonical(idx []int) bool {
	rep, sign := s.Canonical(idx)
	if sign == 0 {
		return false
	}
	for i := range idx {
		if rep[i] != idx[i] {
			return false
		}
	}

	return true
}

// without removes slot from every group, renumbers the slots above it and
// drops groups left with fewer than two slots.
func (s Symmetry) without(slot int) Symmetry {
	shrink := func(groups [][]int) [][]int {
		var out [][]int
		for _, g := range groups {
			var ng []int
			for _, x := range g {
				switch {
				case x < slot:
					ng = append(ng, x)
				case x > slot:
					ng = append(ng, x-1)
				}
			}
			if len(ng) >= 2 {
				out = append(out, ng)
			}
		}

		return out
	}

	return Symmetry{rank: s.rank - 1, sym: shrink(s.sym), anti: shrink(s.anti)}
}

// inserted opens a new, ungrouped slot at position pos.
func (s Symmetry) inserted(pos int) Symmetry {
	return s.remapped(s.rank+1, func(x int) int {
		if x >= pos {
			return x + 1
		}
		return x
	})
}

// remapped renumbers every slot through f inside a tensor of rank total.
func (s Symmetry) remapped(total int, f func(int) int) Symmetry {
	conv := func(groups [][]int) [][]int {
		out := make([][]int, 0, len(groups))
		for _, g := range groups {
			ng := make([]int, len(g))
			for i, x := range g {
				ng[i] = f(x)
			}
			sort.Ints(ng)
			out = append(out, ng)
		}
		sortGroups(out)

		return out
	}

	return Symmetry{rank: total, sym: conv(s.sym), anti: conv(s.anti)}
}

// merge combines two symmetries already expressed on the same rank.
func merge(a, b Symmetry) Symmetry {
	out := Symmetry{rank: a.rank}
	out.sym = append(copyGroups(a.sym), copyGroups(b.sym)...)
	out.anti = append(copyGroups(a.anti), copyGroups(b.anti)...)
	sortGroups(out.sym)
	sortGroups(out.anti)

	return out
}

// withGroup drops every group that intersects slots and adds slots as a new
// symmetric (anti == false) or antisymmetric group. Groups contained in
// slots are absorbed.
func (s Symmetry) withGroup(slots []int, anti bool) Symmetry {
	in := make(map[int]bool, len(slots))
	for _, x := range slots {
		in[x] = true
	}
	keep := func(groups [][]int) [][]int {
		var out [][]int
		for _, g := range groups {
			touched := false
			for _, x := range g {
				if in[x] {
					touched = true
					break
				}
			}
			if !touched {
				out = append(out, append([]int(nil), g...))
			}
		}

		return out
	}
	out := Symmetry{rank: s.rank, sym: keep(s.sym), anti: keep(s.anti)}
	g := append([]int(nil), slots...)
	sort.Ints(g)
	if anti {
		out.anti = append(out.anti, g)
		sortGroups(out.anti)
	} else {
		out.sym = append(out.sym, g)
		sortGroups(out.sym)
	}

	return out
}

// seq returns [lo, hi).
func seq(lo, hi int) []int {
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}

	return out
}

func gather(idx, slots []int) []int {
	out := make([]int, len(slots))
	for i, s := range slots {
		out[i] = idx[s]
	}

	return out
}

func scatter(idx, slots, vals []int) {
	for i, s := range slots {
		idx[s] = vals[i]
	}
}

func sortGroups(groups [][]int) {
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
}

func copyGroups(groups [][]int) [][]int {
	out := make([][]int, len(groups))
	for i, g := range groups {
		out[i] = append([]int(nil), g...)
	}

	return out
}

func groupsEqual(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}

	return true
}
