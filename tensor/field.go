// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/lvgeo/manifold"
	"github.com/katalvlaran/lvgeo/matrix"
	"github.com/katalvlaran/lvgeo/symbolic"
)

// Valence is the tensor type (p,q): p contravariant and q covariant indices.
type Valence struct {
	Contra int
	Covar  int
}

// Rank returns p+q.
func (v Valence) Rank() int { return v.Contra + v.Covar }

// String renders "(p,q)".
func (v Valence) String() string { return fmt.Sprintf("(%d,%d)", v.Contra, v.Covar) }

// Field is a tensor field of fixed valence and symmetry with one storage per
// frame in which it has been set or evaluated.
type Field struct {
	mf      *manifold.Manifold
	valence Valence
	name    string
	latex   string
	sym     Symmetry
	comps   map[string]*Components
	derived map[string]bool // frames obtained by Comp rather than written
	onSet   func()
}

// NewField creates a field with no components.
// Symmetry groups must lie entirely among the contravariant or entirely
// among the covariant slots; otherwise ErrBadSymmetry.
func NewField(mf *manifold.Manifold, v Valence, name string, opts ...Option) (*Field, error) {
	if v.Contra < 0 || v.Covar < 0 {
		return nil, tensorErrorf("NewField", fmt.Errorf("valence %s: %w", v, ErrValenceMismatch))
	}
	o := Options{Latex: name}
	for _, opt := range opts {
		opt(&o)
	}
	sym := NoSymmetry(v.Rank())
	if o.Symmetry != nil {
		sym = *o.Symmetry
	}
	if err := checkSymmetry(v, sym); err != nil {
		return nil, tensorErrorf("NewField", err)
	}

	return newField(mf, v, name, o.Latex, sym), nil
}

// newField builds a field from validated parts.
func newField(mf *manifold.Manifold, v Valence, name, latex string, sym Symmetry) *Field {
	return &Field{mf: mf, valence: v, name: name, latex: latex, sym: sym,
		comps: make(map[string]*Components), derived: make(map[string]bool)}
}

// checkSymmetry verifies rank and slot type of every group.
func checkSymmetry(v Valence, sym Symmetry) error {
	if sym.Rank() != v.Rank() {
		return fmt.Errorf("symmetry rank %d for valence %s: %w", sym.Rank(), v, ErrBadSymmetry)
	}
	for _, groups := range [][][]int{sym.sym, sym.anti} {
		for _, g := range groups {
			if (g[0] < v.Contra) != (g[len(g)-1] < v.Contra) {
				return fmt.Errorf("group %v mixes contravariant and covariant slots: %w", g, ErrBadSymmetry)
			}
		}
	}

	return nil
}

// Manifold returns the underlying manifold.
func (f *Field) Manifold() *manifold.Manifold { return f.mf }

// Valence returns (p,q).
func (f *Field) Valence() Valence { return f.valence }

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// LatexName returns the display name.
func (f *Field) LatexName() string { return f.latex }

// SetName renames the field; an empty latex keeps the name as display name.
func (f *Field) SetName(name, latex string) {
	if latex == "" {
		latex = name
	}
	f.name, f.latex = name, latex
}

// Symmetry returns the declared symmetry.
func (f *Field) Symmetry() Symmetry { return f.sym }

// SetMutationHook registers fn to run after every write to a storage of f
// and after SetComp. Derived representations never trigger it.
func (f *Field) SetMutationHook(fn func()) {
	f.onSet = fn
	for name, c := range f.comps {
		f.wire(name, c)
	}
}

// wire attaches the write hook of frame to c.
func (f *Field) wire(frame string, c *Components) {
	c.onSet = func() { f.written(frame) }
}

// written runs after a write to the storage of frame. That storage becomes
// raw data; every frame previously derived from the old data is dropped.
func (f *Field) written(frame string) {
	delete(f.derived, frame)
	for name := range f.derived {
		delete(f.comps, name)
		delete(f.derived, name)
	}
	f.changed()
}

// changed runs the mutation hook, if any.
func (f *Field) changed() {
	if f.onSet != nil {
		f.onSet()
	}
}

// Frames returns the frames with a cached storage, sorted by name.
func (f *Field) Frames() []string {
	out := make([]string, 0, len(f.comps))
	for name := range f.comps {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Cached returns the storage of frame without deriving it.
func (f *Field) Cached(frame string) (*Components, bool) {
	fr, err := f.mf.ResolveFrame(frame)
	if err != nil {
		return nil, false
	}
	c, ok := f.comps[fr.Name()]
	if ok {
		f.wire(fr.Name(), c)
	}

	return c, ok
}

// storage returns a fresh storage for frame wired to the hook.
func (f *Field) storage(frame string) *Components {
	c := NewComponents(f.mf, frame, f.sym)
	f.wire(frame, c)

	return c
}

// SetComp returns an empty writable storage for frame ("" is the default
// frame, a chart name means its coordinate frame) after dropping the
// storages of every frame.
func (f *Field) SetComp(frame string) (*Components, error) {
	fr, err := f.mf.ResolveFrame(frame)
	if err != nil {
		return nil, tensorErrorf("SetComp", err)
	}
	f.comps = make(map[string]*Components)
	f.derived = make(map[string]bool)
	c := f.storage(fr.Name())
	f.comps[fr.Name()] = c
	f.changed()

	return c, nil
}

// AddComp returns the writable storage for frame, creating an empty one if
// needed, and keeps the storages of the other frames.
func (f *Field) AddComp(frame string) (*Components, error) {
	fr, err := f.mf.ResolveFrame(frame)
	if err != nil {
		return nil, tensorErrorf("AddComp", err)
	}
	if c, ok := f.comps[fr.Name()]; ok {
		f.wire(fr.Name(), c)
		return c, nil
	}
	c := f.storage(fr.Name())
	f.comps[fr.Name()] = c

	return c, nil
}

// Comp returns the storage of frame. When the frame is not cached the
// components are derived from a cached frame through the shortest chain of
// registered frame changes and cached.
//
// Implementation:
//   - Stage 1: resolve the frame; return the cached storage if present.
//   - Stage 2: rank cached frames by path length to the target (the default
//     frame wins ties).
//   - Stage 3: transform the first source that can be expressed in a chart
//     carrying the change-of-frame matrix.
//
// ErrFrameUnavailable when no cached frame reaches the target.
func (f *Field) Comp(frame string) (*Components, error) {
	// Stage 1: resolve
	fr, err := f.mf.ResolveFrame(frame)
	if err != nil {
		return nil, tensorErrorf("Comp", err)
	}
	target := fr.Name()
	if c, ok := f.comps[target]; ok {
		f.wire(target, c)
		return c, nil
	}

	// Stage 2: candidate sources
	type source struct {
		frame string
		hops  int
	}
	var sources []source
	for _, name := range f.sourceOrder() {
		path, err := f.mf.FramePath(name, target)
		if err != nil {
			continue
		}
		sources = append(sources, source{frame: name, hops: len(path)})
	}
	sort.SliceStable(sources, func(i, j int) bool { return sources[i].hops < sources[j].hops })

	// Stage 3: transform
	for _, src := range sources {
		out, err := f.transform(f.comps[src.frame], src.frame, target)
		if err != nil {
			continue
		}
		f.wire(target, out)
		f.comps[target] = out
		f.derived[target] = true

		return out, nil
	}

	return nil, tensorErrorf("Comp", fmt.Errorf("%s in frame %q: %w", f.name, target, ErrFrameUnavailable))
}

// sourceOrder lists cached frames, default frame first, then by name.
func (f *Field) sourceOrder() []string {
	var out []string
	def := f.mf.DefaultFrame()
	if def != nil {
		if _, ok := f.comps[def.Name()]; ok {
			out = append(out, def.Name())
		}
	}
	for _, name := range f.Frames() {
		if def == nil || name != def.Name() {
			out = append(out, name)
		}
	}

	return out
}

// transform computes the storage of frame to from src in frame from, in
// every chart where both the components and the change-of-frame matrix are
// available. Contravariant slots transform with P⁻¹, covariant slots with P.
func (f *Field) transform(src *Components, from, to string) (*Components, error) {
	out := NewComponents(f.mf, to, f.sym)
	done := false
	for _, chart := range f.transformCharts(src, to) {
		if err := src.Express(f.mf, chart); err != nil {
			continue
		}
		p, err := f.mf.ChangeMatrix(from, to, chart)
		if err != nil {
			continue
		}
		var pinv *matrix.Dense
		if f.valence.Contra > 0 {
			if pinv, err = matrix.Inverse(p); err != nil {
				continue
			}
		}
		vals := denseValues(src, chart)
		n, r := f.mf.Dim(), f.valence.Rank()
		for slot := 0; slot < r; slot++ {
			var coef [][]symbolic.Expr
			if slot < f.valence.Contra {
				coef = entries(pinv, false)
			} else {
				coef = entries(p, true)
			}
			vals = applySlot(vals, n, r, slot, coef)
		}
		out.Declare(chart)
		out.eachCanonical(func(idx []int) {
			if v := vals[flatIndex(idx, n, f.mf.StartIndex())]; !v.IsZero() {
				out.put(chart, idx, v)
			}
		})
		done = true
	}
	if !done {
		return nil, fmt.Errorf("%q → %q: %w", from, to, ErrFrameUnavailable)
	}

	return out, nil
}

// transformCharts orders the charts to compute in: the target's own chart,
// the source charts, then the default chart.
func (f *Field) transformCharts(src *Components, to string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(c string) {
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	if fr, err := f.mf.Frame(to); err == nil && fr.IsCoordinate() {
		add(fr.Chart().Name())
	}
	for _, c := range src.Charts() {
		add(c)
	}
	if def := f.mf.DefaultChart(); def != nil {
		add(def.Name())
	}

	return out
}

// IsZero reports whether every cached storage is zero; it never derives.
func (f *Field) IsZero() bool {
	for _, c := range f.comps {
		if !c.IsZero() {
			return false
		}
	}

	return true
}

// Copy returns a detached deep copy without mutation hook.
func (f *Field) Copy() *Field {
	out := newField(f.mf, f.valence, f.name, f.latex, f.sym)
	for name, c := range f.comps {
		cp := c.Copy()
		out.wire(name, cp)
		out.comps[name] = cp
		if f.derived[name] {
			out.derived[name] = true
		}
	}

	return out
}

// String lists the non-zero components of every cached frame.
func (f *Field) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s\n", f.name, f.valence, f.sym)
	for _, name := range f.Frames() {
		sb.WriteString(f.comps[name].String())
	}

	return sb.String()
}

// denseValues reads all n^r components of c in chart into a flat slice,
// slot 0 most significant.
func denseValues(c *Components, chart string) []symbolic.Expr {
	vals := make([]symbolic.Expr, 0, pow(c.dim, c.rank))
	forEachIndex(c.rank, c.dim, c.start, func(idx []int) {
		v, _ := c.Get(chart, idx...)
		vals = append(vals, v)
	})

	return vals
}

// applySlot contracts one slot of vals with coef: out[..a..] = Σ_b coef[a][b]·vals[..b..].
func applySlot(vals []symbolic.Expr, n, r, slot int, coef [][]symbolic.Expr) []symbolic.Expr {
	stride := pow(n, r-1-slot)
	out := make([]symbolic.Expr, len(vals))
	for flat := range vals {
		a := (flat / stride) % n
		base := flat - a*stride
		acc := symbolic.Zero()
		for b := 0; b < n; b++ {
			c := coef[a][b]
			if c.IsZero() {
				continue
			}
			v := vals[base+b*stride]
			if v.IsZero() {
				continue
			}
			acc = acc.Add(c.Mul(v))
		}
		out[flat] = acc
	}

	return out
}

// entries unpacks a square matrix, transposed when asked.
func entries(m *matrix.Dense, transpose bool) [][]symbolic.Expr {
	n := m.Rows()
	out := make([][]symbolic.Expr, n)
	for i := range out {
		out[i] = make([]symbolic.Expr, n)
		for j := range out[i] {
			if transpose {
				out[i][j], _ = m.At(j, i)
			} else {
				out[i][j], _ = m.At(i, j)
			}
		}
	}

	return out
}

// flatIndex maps an index tuple to its position in a dense slice.
func flatIndex(idx []int, n, start int) int {
	flat := 0
	for _, v := range idx {
		flat = flat*n + (v - start)
	}

	return flat
}

func pow(n, k int) int {
	out := 1
	for ; k > 0; k-- {
		out *= n
	}

	return out
}
