// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/lvgeo/manifold"
	"github.com/katalvlaran/lvgeo/symbolic"
)

// Metric is what index gymnastics need from a metric: its components and
// those of its inverse.
type Metric interface {
	// Lowering returns g_{ab}, a symmetric (0,2) field.
	Lowering() *Field
	// Raising returns g^{ab}, a symmetric (2,0) field.
	Raising() (*Field, error)
}

// Raise contracts the covariant slot of f with g^{ab}. The raised index
// becomes the last contravariant slot; symmetry groups lose the slot.
func Raise(f *Field, g Metric, slot int) (*Field, error) {
	const op = "Raise"
	if err := checkSlot(f, slot); err != nil {
		return nil, tensorErrorf(op, err)
	}
	if slot < f.valence.Contra {
		return nil, tensorErrorf(op, fmt.Errorf("slot %d is contravariant: %w", slot, ErrValenceMismatch))
	}
	inv, err := g.Raising()
	if err != nil {
		return nil, tensorErrorf(op, err)
	}
	v := Valence{Contra: f.valence.Contra + 1, Covar: f.valence.Covar - 1}

	return moveIndex(op, f, inv, slot, f.valence.Contra, v)
}

// Lower contracts the contravariant slot of f with g_{ab}. The lowered index
// becomes the first covariant slot; symmetry groups lose the slot.
func Lower(f *Field, g Metric, slot int) (*Field, error) {
	const op = "Lower"
	if err := checkSlot(f, slot); err != nil {
		return nil, tensorErrorf(op, err)
	}
	if slot >= f.valence.Contra {
		return nil, tensorErrorf(op, fmt.Errorf("slot %d is covariant: %w", slot, ErrValenceMismatch))
	}
	v := Valence{Contra: f.valence.Contra - 1, Covar: f.valence.Covar + 1}

	return moveIndex(op, f, g.Lowering(), slot, f.valence.Contra-1, v)
}

// moveIndex computes out[..b@pos..] = Σ_m g[b][m]·f[..m@slot..].
func moveIndex(op string, f, g *Field, slot, pos int, v Valence) (*Field, error) {
	frame, err := commonFrame(f, g)
	if err != nil {
		return nil, tensorErrorf(op, err)
	}
	fc, _ := f.Comp(frame)
	gc, _ := g.Comp(frame)
	charts := commonCharts(f.mf, fc, gc)
	if len(charts) == 0 {
		return nil, tensorErrorf(op, fmt.Errorf("frame %q: %w", frame, ErrChartUnavailable))
	}

	sym := f.sym.without(slot).inserted(pos)
	out := newField(f.mf, v, f.name, f.latex, sym)
	dst := NewComponents(f.mf, frame, sym)
	start, n := f.mf.StartIndex(), f.mf.Dim()
	for _, chart := range charts {
		dst.Declare(chart)
		dst.eachCanonical(func(idx []int) {
			b := idx[pos]
			rest := append(append([]int(nil), idx[:pos]...), idx[pos+1:]...)
			acc := symbolic.Zero()
			for m := start; m < start+n; m++ {
				gv, _ := gc.Get(chart, b, m)
				if gv.IsZero() {
					continue
				}
				fv, _ := fc.Get(chart, insertAt(rest, slot, m)...)
				if fv.IsZero() {
					continue
				}
				acc = acc.Add(gv.Mul(fv))
			}
			if !acc.IsZero() {
				dst.put(chart, idx, acc)
			}
		})
	}
	out.comps[frame] = dst

	return out, nil
}

// Symmetrize returns the average of f over all permutations of slots.
// Slots must be distinct and all contravariant or all covariant.
func Symmetrize(f *Field, slots ...int) (*Field, error) {
	return permuteAverage("Symmetrize", f, slots, false)
}

// Antisymmetrize returns the signed average of f over all permutations of
// slots. Slots must be distinct and all contravariant or all covariant.
func Antisymmetrize(f *Field, slots ...int) (*Field, error) {
	return permuteAverage("Antisymmetrize", f, slots, true)
}

// permuteAverage implements Symmetrize and Antisymmetrize over every cached
// frame and chart of f.
func permuteAverage(op string, f *Field, slots []int, anti bool) (*Field, error) {
	if len(slots) < 2 {
		return nil, tensorErrorf(op, fmt.Errorf("need at least two slots, got %v: %w", slots, ErrSlotOutOfRange))
	}
	seen := make(map[int]bool, len(slots))
	for _, s := range slots {
		if err := checkSlot(f, s); err != nil {
			return nil, tensorErrorf(op, err)
		}
		if seen[s] {
			return nil, tensorErrorf(op, fmt.Errorf("slot %d repeated: %w", s, ErrSlotOutOfRange))
		}
		seen[s] = true
		if (s < f.valence.Contra) != (slots[0] < f.valence.Contra) {
			return nil, tensorErrorf(op, fmt.Errorf("slots %v mix index types: %w", slots, ErrValenceMismatch))
		}
	}

	sym := f.sym.withGroup(slots, anti)
	out := newField(f.mf, f.valence, f.name, f.latex, sym)
	perms := permutations(len(slots))
	weight := symbolic.FromRat(big.NewRat(1, int64(len(perms))))
	for _, frame := range f.Frames() {
		src := f.comps[frame]
		dst := NewComponents(f.mf, frame, sym)
		for _, chart := range src.Charts() {
			dst.Declare(chart)
			dst.eachCanonical(func(idx []int) {
				acc := symbolic.Zero()
				probe := append([]int(nil), idx...)
				for _, p := range perms {
					for i, s := range slots {
						probe[s] = idx[slots[p.order[i]]]
					}
					v, _ := src.Get(chart, probe...)
					if v.IsZero() {
						continue
					}
					if anti && p.sign < 0 {
						v = v.Neg()
					}
					acc = acc.Add(v)
				}
				if acc = acc.Mul(weight); !acc.IsZero() {
					dst.put(chart, idx, acc)
				}
			})
		}
		out.comps[frame] = dst
	}

	return out, nil
}

// Add returns a + b in a common frame.
func Add(a, b *Field) (*Field, error) { return combine("Add", a, b, 1) }

// Sub returns a − b in a common frame.
func Sub(a, b *Field) (*Field, error) { return combine("Sub", a, b, -1) }

// combine computes a + sign·b. The result keeps the symmetry shared by both
// operands, or none when they differ.
func combine(op string, a, b *Field, sign int) (*Field, error) {
	if a.valence != b.valence {
		return nil, tensorErrorf(op, fmt.Errorf("%s vs %s: %w", a.valence, b.valence, ErrValenceMismatch))
	}
	frame, err := commonFrame(a, b)
	if err != nil {
		return nil, tensorErrorf(op, err)
	}
	ac, _ := a.Comp(frame)
	bc, _ := b.Comp(frame)
	charts := commonCharts(a.mf, ac, bc)
	if len(charts) == 0 {
		return nil, tensorErrorf(op, fmt.Errorf("frame %q: %w", frame, ErrChartUnavailable))
	}
	sym := NoSymmetry(a.valence.Rank())
	if a.sym.Equal(b.sym) {
		sym = a.sym
	}
	out := newField(a.mf, a.valence, a.name, a.latex, sym)
	dst := NewComponents(a.mf, frame, sym)
	for _, chart := range charts {
		dst.Declare(chart)
		dst.eachCanonical(func(idx []int) {
			av, _ := ac.Get(chart, idx...)
			bv, _ := bc.Get(chart, idx...)
			if sign < 0 {
				bv = bv.Neg()
			}
			if v := av.Add(bv); !v.IsZero() {
				dst.put(chart, idx, v)
			}
		})
	}
	out.comps[frame] = dst

	return out, nil
}

// Scale multiplies every cached component of f by e. The factor is used
// verbatim in every chart, so it should not depend on coordinates unless f
// is known in a single chart.
func Scale(f *Field, e symbolic.Expr) *Field {
	out := newField(f.mf, f.valence, f.name, f.latex, f.sym)
	for _, frame := range f.Frames() {
		src := f.comps[frame]
		dst := NewComponents(f.mf, frame, f.sym)
		for _, chart := range src.Charts() {
			dst.Declare(chart)
			src.Each(chart, func(idx []int, v symbolic.Expr) {
				if p := v.Mul(e); !p.IsZero() {
					dst.put(chart, idx, p)
				}
			})
		}
		out.comps[frame] = dst
	}

	return out
}

// ScaleBy multiplies f by a scalar field, chart by chart. Charts where s has
// no expression are dropped; ErrChartUnavailable when none remains.
func ScaleBy(f *Field, s *Scalar) (*Field, error) {
	out := newField(f.mf, f.valence, f.name, f.latex, f.sym)
	for _, frame := range f.Frames() {
		src := f.comps[frame]
		dst := NewComponents(f.mf, frame, f.sym)
		for _, chart := range src.Charts() {
			e, err := s.Expr(chart)
			if err != nil {
				continue
			}
			dst.Declare(chart)
			src.Each(chart, func(idx []int, v symbolic.Expr) {
				if p := v.Mul(e); !p.IsZero() {
					dst.put(chart, idx, p)
				}
			})
		}
		if len(dst.order) == 0 {
			return nil, tensorErrorf("ScaleBy", fmt.Errorf("frame %q: %w", frame, ErrChartUnavailable))
		}
		out.comps[frame] = dst
	}

	return out, nil
}

// Product returns a ⊗ b with contravariant indices first:
// (a⊗b)^{a.. b..}_{a.. b..} = a^{a..}_{a..}·b^{b..}_{b..}.
func Product(a, b *Field) (*Field, error) {
	const op = "Product"
	frame, err := commonFrame(a, b)
	if err != nil {
		return nil, tensorErrorf(op, err)
	}
	ac, _ := a.Comp(frame)
	bc, _ := b.Comp(frame)
	charts := commonCharts(a.mf, ac, bc)
	if len(charts) == 0 {
		return nil, tensorErrorf(op, fmt.Errorf("frame %q: %w", frame, ErrChartUnavailable))
	}

	pa, qa := a.valence.Contra, a.valence.Covar
	pb := b.valence.Contra
	v := Valence{Contra: pa + pb, Covar: qa + b.valence.Covar}
	r := v.Rank()
	fromA := func(x int) int {
		if x < pa {
			return x
		}
		return pb + x
	}
	fromB := func(x int) int {
		if x < pb {
			return pa + x
		}
		return pa + qa + x
	}
	sym := merge(a.sym.remapped(r, fromA), b.sym.remapped(r, fromB))
	out := newField(a.mf, v, a.name+"⊗"+b.name, a.latex+"⊗"+b.latex, sym)
	dst := NewComponents(a.mf, frame, sym)
	for _, chart := range charts {
		dst.Declare(chart)
		dst.eachCanonical(func(idx []int) {
			ia := append(append([]int(nil), idx[:pa]...), idx[pa+pb:pa+pb+qa]...)
			av, _ := ac.Get(chart, ia...)
			if av.IsZero() {
				return
			}
			ib := append(append([]int(nil), idx[pa:pa+pb]...), idx[pa+pb+qa:]...)
			bv, _ := bc.Get(chart, ib...)
			if p := av.Mul(bv); !p.IsZero() {
				dst.put(chart, idx, p)
			}
		})
	}
	out.comps[frame] = dst

	return out, nil
}

// Contract sums over a pair of slots, one contravariant and one covariant,
// in every cached frame of f.
func Contract(f *Field, slotA, slotB int) (*Field, error) {
	const op = "Contract"
	for _, s := range []int{slotA, slotB} {
		if err := checkSlot(f, s); err != nil {
			return nil, tensorErrorf(op, err)
		}
	}
	if (slotA < f.valence.Contra) == (slotB < f.valence.Contra) {
		return nil, tensorErrorf(op, fmt.Errorf("slots %d and %d have the same type: %w", slotA, slotB, ErrValenceMismatch))
	}
	lo, hi := slotA, slotB
	if lo > hi {
		lo, hi = hi, lo
	}
	v := Valence{Contra: f.valence.Contra - 1, Covar: f.valence.Covar - 1}
	sym := f.sym.without(hi).without(lo)
	out := newField(f.mf, v, f.name, f.latex, sym)
	start, n := f.mf.StartIndex(), f.mf.Dim()
	for _, frame := range f.Frames() {
		src := f.comps[frame]
		dst := NewComponents(f.mf, frame, sym)
		for _, chart := range src.Charts() {
			dst.Declare(chart)
			dst.eachCanonical(func(idx []int) {
				acc := symbolic.Zero()
				for m := start; m < start+n; m++ {
					full := insertAt(insertAt(idx, lo, m), hi, m)
					if e, _ := src.Get(chart, full...); !e.IsZero() {
						acc = acc.Add(e)
					}
				}
				if !acc.IsZero() {
					dst.put(chart, idx, acc)
				}
			})
		}
		out.comps[frame] = dst
	}

	return out, nil
}

// Identity returns the identity endomorphism δ^a_b in frame, with
// components in the given charts (default: the frame's natural chart).
func Identity(mf *manifold.Manifold, frame string, charts ...string) (*Field, error) {
	fr, err := mf.ResolveFrame(frame)
	if err != nil {
		return nil, tensorErrorf("Identity", err)
	}
	if len(charts) == 0 {
		c := mf.ChartFor(fr)
		if c == nil {
			return nil, tensorErrorf("Identity", fmt.Errorf("frame %q: %w", fr.Name(), ErrChartUnavailable))
		}
		charts = []string{c.Name()}
	}
	out := newField(mf, Valence{Contra: 1, Covar: 1}, "Id", "Id", NoSymmetry(2))
	dst := NewComponents(mf, fr.Name(), out.sym)
	for _, chart := range charts {
		dst.Declare(chart)
		for _, i := range mf.Indices() {
			dst.put(chart, []int{i, i}, symbolic.One())
		}
	}
	out.comps[fr.Name()] = dst

	return out, nil
}

// Equal reports whether a − b is zero in a common frame. Fields that cannot
// be compared are reported unequal.
func Equal(a, b *Field) bool {
	d, err := Sub(a, b)
	if err != nil {
		return false
	}

	return d.IsZero()
}

// commonFrame picks a frame where every field has, or can derive,
// components: the manifold default frame first, then cached frames.
func commonFrame(fields ...*Field) (string, error) {
	mf := fields[0].mf
	var candidates []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			candidates = append(candidates, name)
		}
	}
	if def := mf.DefaultFrame(); def != nil {
		add(def.Name())
	}
	for _, f := range fields {
		for _, name := range f.Frames() {
			add(name)
		}
	}
	for _, name := range candidates {
		ok := true
		for _, f := range fields {
			if _, err := f.Comp(name); err != nil {
				ok = false
				break
			}
		}
		if ok {
			return name, nil
		}
	}

	return "", fmt.Errorf("no common frame: %w", ErrFrameUnavailable)
}

// commonCharts returns the charts of the first storage in which every other
// storage is, or can be, expressed.
func commonCharts(mf *manifold.Manifold, stores ...*Components) []string {
	var out []string
	for _, chart := range stores[0].Charts() {
		ok := true
		for _, s := range stores[1:] {
			if err := s.Express(mf, chart); err != nil {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, chart)
		}
	}

	return out
}

// checkSlot validates a slot position.
func checkSlot(f *Field, slot int) error {
	if slot < 0 || slot >= f.valence.Rank() {
		return fmt.Errorf("slot %d for valence %s: %w", slot, f.valence, ErrSlotOutOfRange)
	}

	return nil
}

// insertAt returns a copy of idx with v inserted at position pos.
func insertAt(idx []int, pos, v int) []int {
	out := make([]int, 0, len(idx)+1)
	out = append(out, idx[:pos]...)
	out = append(out, v)

	return append(out, idx[pos:]...)
}

// perm is a permutation with its sign.
type perm struct {
	order []int
	sign  int
}

// permutations lists all permutations of [0, k) with their signs, identity
// first.
func permutations(k int) []perm {
	var out []perm
	cur := seq(0, k)
	var rec func(i, sign int)
	rec = func(i, sign int) {
		if i == k {
			out = append(out, perm{order: append([]int(nil), cur...), sign: sign})
			return
		}
		for j := i; j < k; j++ {
			cur[i], cur[j] = cur[j], cur[i]
			s := sign
			if j != i {
				s = -sign
			}
			rec(i+1, s)
			cur[i], cur[j] = cur[j], cur[i]
		}
	}
	rec(0, 1)

	return out
}
