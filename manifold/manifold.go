// SPDX-License-Identifier: MIT

package manifold

import (
	"fmt"

	"github.com/katalvlaran/lvgeo/matrix"
	"github.com/katalvlaran/lvgeo/symbolic"
)

// edge is an ordered pair of registry names.
type edge struct{ from, to string }

// Manifold holds dimension, atlas, frames and the registered changes.
type Manifold struct {
	name  string
	dim   int
	start int

	charts     map[string]*Chart
	chartOrder []string
	frames     map[string]*Frame
	frameOrder []string

	defChart string
	defFrame string

	// transitions[from→to] maps each coordinate of from to an expression in
	// the coordinates of to.
	transitions map[edge]map[string]symbolic.Expr
	chartAdj    map[string][]string

	// changes[from→to] holds the change-of-frame matrix per chart.
	changes  map[edge]map[string]*matrix.Dense
	frameAdj map[string][]string
}

// New creates a manifold of dimension dim ≥ 1.
func New(name string, dim int, opts ...Option) (*Manifold, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, manifoldErrorf("New", o.err)
	}
	if dim < 1 {
		return nil, manifoldErrorf("New", fmt.Errorf("%w: %d", ErrBadDimension, dim))
	}

	return &Manifold{
		name:        name,
		dim:         dim,
		start:       o.StartIndex,
		charts:      make(map[string]*Chart),
		frames:      make(map[string]*Frame),
		transitions: make(map[edge]map[string]symbolic.Expr),
		chartAdj:    make(map[string][]string),
		changes:     make(map[edge]map[string]*matrix.Dense),
		frameAdj:    make(map[string][]string),
	}, nil
}

// Name returns the manifold name.
func (m *Manifold) Name() string { return m.name }

// Dim returns the dimension n.
func (m *Manifold) Dim() int { return m.dim }

// StartIndex returns the first index value s.
func (m *Manifold) StartIndex() int { return m.start }

// Indices returns s, s+1, ..., s+n−1.
func (m *Manifold) Indices() []int {
	out := make([]int, m.dim)
	for i := range out {
		out[i] = m.start + i
	}

	return out
}

// InRange reports whether i is a valid index value.
func (m *Manifold) InRange(i int) bool { return i >= m.start && i < m.start+m.dim }

// AddChart registers a chart with one coordinate per dimension, together
// with its coordinate frame of the same name.
func (m *Manifold) AddChart(name string, coords ...string) (*Chart, error) {
	const op = "AddChart"
	if len(coords) != m.dim {
		return nil, manifoldErrorf(op, fmt.Errorf("%q has %d coordinates on a %d-manifold: %w", name, len(coords), m.dim, ErrCoordinateCount))
	}
	if _, ok := m.charts[name]; ok {
		return nil, manifoldErrorf(op, fmt.Errorf("chart %q: %w", name, ErrDuplicateName))
	}
	if _, ok := m.frames[name]; ok {
		return nil, manifoldErrorf(op, fmt.Errorf("frame %q: %w", name, ErrDuplicateName))
	}
	seen := make(map[string]bool, len(coords))
	syms := make([]symbolic.Expr, len(coords))
	for i, c := range coords {
		if seen[c] {
			return nil, manifoldErrorf(op, fmt.Errorf("coordinate %q: %w", c, ErrDuplicateName))
		}
		seen[c] = true
		s, err := symbolic.NewSymbol(c)
		if err != nil {
			return nil, manifoldErrorf(op, err)
		}
		syms[i] = s
	}

	ch := &Chart{name: name, coords: append([]string(nil), coords...), symbols: syms, start: m.start}
	ch.frame = &Frame{name: name, chart: ch}
	m.charts[name] = ch
	m.chartOrder = append(m.chartOrder, name)
	m.registerFrame(ch.frame)
	if m.defChart == "" {
		m.defChart = name
	}

	return ch, nil
}

// AddFrame registers a non-coordinate frame. It is linked to other frames
// only through AddFrameChange.
func (m *Manifold) AddFrame(name string) (*Frame, error) {
	if _, ok := m.frames[name]; ok {
		return nil, manifoldErrorf("AddFrame", fmt.Errorf("frame %q: %w", name, ErrDuplicateName))
	}
	if _, ok := m.charts[name]; ok {
		return nil, manifoldErrorf("AddFrame", fmt.Errorf("chart %q: %w", name, ErrDuplicateName))
	}
	f := &Frame{name: name}
	m.registerFrame(f)

	return f, nil
}

// registerFrame stores f and makes it the default when it is the first one.
func (m *Manifold) registerFrame(f *Frame) {
	m.frames[f.name] = f
	m.frameOrder = append(m.frameOrder, f.name)
	if m.defFrame == "" {
		m.defFrame = f.name
	}
}

// Chart returns the chart called name.
func (m *Manifold) Chart(name string) (*Chart, error) {
	c, ok := m.charts[name]
	if !ok {
		return nil, manifoldErrorf("Chart", fmt.Errorf("%q: %w", name, ErrUnknownChart))
	}

	return c, nil
}

// Frame returns the frame called name.
func (m *Manifold) Frame(name string) (*Frame, error) {
	f, ok := m.frames[name]
	if !ok {
		return nil, manifoldErrorf("Frame", fmt.Errorf("%q: %w", name, ErrUnknownFrame))
	}

	return f, nil
}

// Charts returns the charts in definition order.
func (m *Manifold) Charts() []*Chart {
	out := make([]*Chart, 0, len(m.chartOrder))
	for _, n := range m.chartOrder {
		out = append(out, m.charts[n])
	}

	return out
}

// Frames returns the frames in definition order.
func (m *Manifold) Frames() []*Frame {
	out := make([]*Frame, 0, len(m.frameOrder))
	for _, n := range m.frameOrder {
		out = append(out, m.frames[n])
	}

	return out
}

// DefaultChart returns the default chart, or nil when no chart exists.
func (m *Manifold) DefaultChart() *Chart { return m.charts[m.defChart] }

// DefaultFrame returns the default frame, or nil when no frame exists.
func (m *Manifold) DefaultFrame() *Frame { return m.frames[m.defFrame] }

// SetDefaultChart makes name the default chart.
func (m *Manifold) SetDefaultChart(name string) error {
	if _, ok := m.charts[name]; !ok {
		return manifoldErrorf("SetDefaultChart", fmt.Errorf("%q: %w", name, ErrUnknownChart))
	}
	m.defChart = name

	return nil
}

// SetDefaultFrame makes name the default frame.
func (m *Manifold) SetDefaultFrame(name string) error {
	if _, ok := m.frames[name]; !ok {
		return manifoldErrorf("SetDefaultFrame", fmt.Errorf("%q: %w", name, ErrUnknownFrame))
	}
	m.defFrame = name

	return nil
}

// ResolveFrame accepts a frame name, a chart name (meaning its coordinate
// frame) or "" (the default frame).
func (m *Manifold) ResolveFrame(name string) (*Frame, error) {
	if name == "" {
		if f := m.DefaultFrame(); f != nil {
			return f, nil
		}
		return nil, manifoldErrorf("ResolveFrame", fmt.Errorf("no default frame: %w", ErrUnknownFrame))
	}
	if f, ok := m.frames[name]; ok {
		return f, nil
	}
	if c, ok := m.charts[name]; ok {
		return c.frame, nil
	}

	return nil, manifoldErrorf("ResolveFrame", fmt.Errorf("%q: %w", name, ErrUnknownFrame))
}

// ChartFor returns the chart in which components of frame f are naturally
// expressed: its own chart for a coordinate frame, else the default chart.
func (m *Manifold) ChartFor(f *Frame) *Chart {
	if f != nil && f.chart != nil {
		return f.chart
	}

	return m.DefaultChart()
}
