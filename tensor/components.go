// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvgeo/manifold"
	"github.com/katalvlaran/lvgeo/symbolic"
)

// Components is the storage of one tensor in one frame. Entries are kept per
// chart under the canonical representative of their index tuple.
type Components struct {
	frame string
	rank  int
	dim   int
	start int
	sym   Symmetry

	data    map[string]map[string]symbolic.Expr // chart → key → value
	order   []string                            // declared charts, definition order
	derived map[string]bool                     // charts added by Express
	onSet   func()                              // mutation hook; nil until wired to a field
}

// NewComponents returns an empty storage for frame with the given symmetry.
// The rank is sym.Rank().
func NewComponents(mf *manifold.Manifold, frame string, sym Symmetry) *Components {
	return &Components{
		frame:   frame,
		rank:    sym.Rank(),
		dim:     mf.Dim(),
		start:   mf.StartIndex(),
		sym:     sym,
		data:    make(map[string]map[string]symbolic.Expr),
		derived: make(map[string]bool),
	}
}

// Frame returns the frame name.
func (c *Components) Frame() string { return c.frame }

// Rank returns the number of indices.
func (c *Components) Rank() int { return c.rank }

// Symmetry returns the declared symmetry.
func (c *Components) Symmetry() Symmetry { return c.sym }

// Charts returns the declared charts, sorted by name.
func (c *Components) Charts() []string {
	out := append([]string(nil), c.order...)
	sort.Strings(out)

	return out
}

// HasChart reports whether chart is declared.
func (c *Components) HasChart(chart string) bool {
	_, ok := c.data[chart]
	return ok
}

// Declare makes chart known to the storage; absent entries read as zero.
func (c *Components) Declare(chart string) {
	if _, ok := c.data[chart]; ok {
		return
	}
	c.data[chart] = make(map[string]symbolic.Expr)
	c.order = append(c.order, chart)
}

// checkIndex validates arity and range of idx.
func (c *Components) checkIndex(idx []int) error {
	if len(idx) != c.rank {
		return fmt.Errorf("%d indices for rank %d: %w", len(idx), c.rank, ErrIndexOutOfRange)
	}
	for _, i := range idx {
		if i < c.start || i >= c.start+c.dim {
			return fmt.Errorf("index %d outside [%d,%d): %w", i, c.start, c.start+c.dim, ErrIndexOutOfRange)
		}
	}

	return nil
}

// Get returns the component T[idx] in chart.
//
// A repeated index inside an antisymmetric group yields exact zero without
// consulting the chart. A chart that was never declared yields
// ErrChartUnavailable; a declared chart without the entry yields zero.
func (c *Components) Get(chart string, idx ...int) (symbolic.Expr, error) {
	if err := c.checkIndex(idx); err != nil {
		return symbolic.Expr{}, tensorErrorf("Get", err)
	}
	rep, sign := c.sym.Canonical(idx)
	if sign == 0 {
		return symbolic.Zero(), nil
	}
	entries, ok := c.data[chart]
	if !ok {
		return symbolic.Expr{}, tensorErrorf("Get", fmt.Errorf("frame %q chart %q: %w", c.frame, chart, ErrChartUnavailable))
	}
	v := entries[indexKey(rep)]
	if sign < 0 {
		v = v.Neg()
	}

	return v, nil
}

// Set stores e as T[idx] in chart, at the canonical representative (negated
// for an odd permutation inside an antisymmetric group). Existing values are
// overwritten. Each call fires the owning field's mutation hook.
func (c *Components) Set(chart string, e symbolic.Expr, idx ...int) error {
	if err := c.checkIndex(idx); err != nil {
		return tensorErrorf("Set", err)
	}
	rep, sign := c.sym.Canonical(idx)
	if sign == 0 {
		if e.IsZero() {
			return nil
		}
		return tensorErrorf("Set", fmt.Errorf("%v = %s: %w", idx, e, ErrAntisymmetricDiagonal))
	}
	if sign < 0 {
		e = e.Neg()
	}
	c.put(chart, rep, e)
	c.dropDerived(chart)
	if c.onSet != nil {
		c.onSet()
	}

	return nil
}

// dropDerived forgets every chart obtained by Express from the previous data,
// keeping chart, which now holds written values.
func (c *Components) dropDerived(chart string) {
	delete(c.derived, chart)
	if len(c.derived) == 0 {
		return
	}
	order := c.order[:0]
	for _, name := range c.order {
		if c.derived[name] {
			delete(c.data, name)
			continue
		}
		order = append(order, name)
	}
	c.order = order
	c.derived = make(map[string]bool)
}

// put stores a canonical entry without validation or hook.
func (c *Components) put(chart string, rep []int, e symbolic.Expr) {
	c.Declare(chart)
	c.data[chart][indexKey(rep)] = e
}

// KnownCharts lists the charts holding an explicit entry for the
// representative of idx, sorted by name.
func (c *Components) KnownCharts(idx ...int) ([]string, error) {
	if err := c.checkIndex(idx); err != nil {
		return nil, tensorErrorf("KnownCharts", err)
	}
	rep, sign := c.sym.Canonical(idx)
	if sign == 0 {
		return nil, nil
	}
	key := indexKey(rep)
	var out []string
	for chart, entries := range c.data {
		if _, ok := entries[key]; ok {
			out = append(out, chart)
		}
	}
	sort.Strings(out)

	return out, nil
}

// Express adds a representation in chart, re-expressing every entry of an
// existing chart through the manifold's coordinate changes. Charts are tried
// in definition order. Deriving a representation does not fire the hook.
func (c *Components) Express(mf *manifold.Manifold, chart string) error {
	if c.HasChart(chart) {
		return nil
	}
	for _, src := range c.order {
		out := make(map[string]symbolic.Expr, len(c.data[src]))
		ok := true
		for key, v := range c.data[src] {
			e, err := mf.Reexpress(v, src, chart)
			if err != nil {
				ok = false
				break
			}
			out[key] = e
		}
		if !ok {
			continue
		}
		// an empty chart has no entry to fail on; it still needs a path
		if len(out) == 0 {
			if _, err := mf.Reexpress(symbolic.Zero(), src, chart); err != nil {
				continue
			}
		}
		c.data[chart] = out
		c.order = append(c.order, chart)
		c.derived[chart] = true

		return nil
	}

	return tensorErrorf("Express", fmt.Errorf("frame %q into chart %q: %w", c.frame, chart, ErrChartUnavailable))
}

// IsZero reports whether every stored entry of every chart is zero. An
// empty storage is zero.
func (c *Components) IsZero() bool {
	for _, entries := range c.data {
		for _, v := range entries {
			if !v.IsZero() {
				return false
			}
		}
	}

	return true
}

// Copy returns a detached copy with no mutation hook.
func (c *Components) Copy() *Components {
	out := &Components{frame: c.frame, rank: c.rank, dim: c.dim, start: c.start, sym: c.sym,
		data: make(map[string]map[string]symbolic.Expr, len(c.data)), order: append([]string(nil), c.order...)}
	for chart, entries := range c.data {
		cp := make(map[string]symbolic.Expr, len(entries))
		for k, v := range entries {
			cp[k] = v
		}
		out.data[chart] = cp
	}
	out.derived = make(map[string]bool, len(c.derived))
	for chart := range c.derived {
		out.derived[chart] = true
	}

	return out
}

// Each calls fn for every explicitly stored canonical entry of chart in
// increasing index order.
func (c *Components) Each(chart string, fn func(idx []int, e symbolic.Expr)) {
	entries := c.data[chart]
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	idxs := make([][]int, len(keys))
	for i, k := range keys {
		idxs[i] = parseKey(k)
	}
	sort.Slice(idxs, func(i, j int) bool { return lessIndex(idxs[i], idxs[j]) })
	for _, idx := range idxs {
		fn(idx, entries[indexKey(idx)])
	}
}

// eachCanonical calls fn for every canonical index tuple of the storage,
// stored or not, in increasing order.
func (c *Components) eachCanonical(fn func(idx []int)) {
	forEachIndex(c.rank, c.dim, c.start, func(idx []int) {
		if c.sym.IsCanonical(idx) {
			fn(idx)
		}
	})
}

// String lists the non-zero canonical entries of every chart.
func (c *Components) String() string {
	var sb strings.Builder
	for _, chart := range c.Charts() {
		c.Each(chart, func(idx []int, e symbolic.Expr) {
			if e.IsZero() {
				return
			}
			fmt.Fprintf(&sb, "%s[%s]%v = %s\n", c.frame, chart, idx, e)
		})
	}

	return sb.String()
}

// forEachIndex enumerates all tuples of length rank over [start, start+dim)
// in lexicographic order. fn must not retain idx.
func forEachIndex(rank, dim, start int, fn func(idx []int)) {
	idx := make([]int, rank)
	for i := range idx {
		idx[i] = start
	}
	for {
		fn(idx)
		k := rank - 1
		for k >= 0 {
			idx[k]++
			if idx[k] < start+dim {
				break
			}
			idx[k] = start
			k--
		}
		if k < 0 {
			return
		}
	}
}

func indexKey(idx []int) string {
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = strconv.Itoa(v)
	}

	return strings.Join(parts, ",")
}

func parseKey(key string) []int {
	if key == "" {
		return nil
	}
	parts := strings.Split(key, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		out[i], _ = strconv.Atoi(p)
	}

	return out
}

func lessIndex(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}
