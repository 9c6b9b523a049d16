// SPDX-License-Identifier: MIT

package metric

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvgeo/manifold"
	"github.com/katalvlaran/lvgeo/matrix"
	"github.com/katalvlaran/lvgeo/symbolic"
	"github.com/katalvlaran/lvgeo/tensor"
)

// cacheEdge is one entry of the invalidation list: a derived cache, how to
// tell whether it holds anything and how to drop it.
type cacheEdge struct {
	name   string
	filled func() bool
	clear  func()
}

// Metric is a symmetric (0,2) tensor field with a signature and the caches
// of everything derived from its components.
type Metric struct {
	*tensor.Field

	signature int
	log       *zap.Logger

	inverse    *tensor.Field
	connection *Connection
	weyl       *tensor.Field
	dets       map[string]*tensor.Scalar
	sqrtDets   map[string]*tensor.Scalar
	volume     []*tensor.Field

	edges []cacheEdge
}

// New creates a metric named name on mf with no components.
func New(mf *manifold.Manifold, name string, opts ...Option) (*Metric, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s, err := o.Signature.resolve(mf.Dim())
	if err != nil {
		return nil, metricErrorf("New", err)
	}
	latex := o.Latex
	if latex == "" {
		latex = name
	}
	f, err := tensor.NewField(mf, tensor.Valence{Covar: 2}, name,
		tensor.WithLatex(latex), tensor.WithSymmetry(tensor.FullySymmetric(2)))
	if err != nil {
		return nil, metricErrorf("New", err)
	}

	m := &Metric{
		Field:     f,
		signature: s,
		log:       o.Logger.With(zap.String("metric", name)),
		dets:      make(map[string]*tensor.Scalar),
		sqrtDets:  make(map[string]*tensor.Scalar),
	}
	m.edges = []cacheEdge{
		{"inverse", func() bool { return m.inverse != nil && len(m.inverse.Frames()) > 0 }, m.resetInverse},
		{"connection", func() bool { return m.connection != nil }, func() { m.connection = nil }},
		{"weyl", func() bool { return m.weyl != nil }, func() { m.weyl = nil }},
		{"determinants", func() bool { return len(m.dets) > 0 }, func() { m.dets = make(map[string]*tensor.Scalar) }},
		{"sqrt_abs_dets", func() bool { return len(m.sqrtDets) > 0 }, func() { m.sqrtDets = make(map[string]*tensor.Scalar) }},
		{"volume_forms", func() bool { return len(m.volume) > 0 }, func() { m.volume = nil }},
	}
	m.resetInverse()
	f.SetMutationHook(m.invalidate)

	return m, nil
}

// resetInverse replaces the inverse by an empty symmetric (2,0) field.
func (m *Metric) resetInverse() {
	inv, _ := tensor.NewField(m.Manifold(), tensor.Valence{Contra: 2}, "inv_"+m.Name(),
		tensor.WithLatex(m.LatexName()+"^{-1}"), tensor.WithSymmetry(tensor.FullySymmetric(2)))
	m.inverse = inv
}

// invalidate drops every derived cache. It runs after each write to the
// metric's components.
func (m *Metric) invalidate() {
	var cleared []string
	for _, e := range m.edges {
		if e.filled() {
			cleared = append(cleared, e.name)
		}
		e.clear()
	}
	if len(cleared) > 0 {
		m.log.Debug("metric caches invalidated", zap.Strings("cleared", cleared))
	}
}

// Signature returns S = n₊ − n₋.
func (m *Metric) Signature() int { return m.signature }

// SignaturePair returns (n₊, n₋).
func (m *Metric) SignaturePair() (int, int) {
	n := m.Manifold().Dim()

	return (n + m.signature) / 2, (n - m.signature) / 2
}

// SignIndicator returns (−1)^{n₋}, the sign of det g in any frame.
func (m *Metric) SignIndicator() int {
	if _, neg := m.SignaturePair(); neg%2 == 1 {
		return -1
	}

	return 1
}

// Lowering returns the metric as a plain tensor field.
func (m *Metric) Lowering() *tensor.Field { return m.Field }

// Raising returns the inverse metric.
func (m *Metric) Raising() (*tensor.Field, error) { return m.Inverse() }

// Inverse returns g^{ab}, computing it in every frame holding metric
// components that the inverse does not cover yet.
//
// Implementation:
//   - Stage 1: for each frame of the metric, pick a chart: the frame's own
//     chart, else the default chart, else any chart of the components.
//   - Stage 2: invert the component matrix (adjugate); identically singular
//     → ErrSingularMetric.
//   - Stage 3: store the upper triangle into the symmetric storage.
//
// Frames whose components cannot be expressed in any chart are skipped.
func (m *Metric) Inverse() (*tensor.Field, error) {
	const op = "Inverse"
	for _, frame := range m.Frames() {
		if _, ok := m.inverse.Cached(frame); ok {
			continue
		}
		comps, _ := m.Cached(frame)

		// Stage 1: chart
		chart, err := m.chartFor(comps)
		if err != nil {
			m.log.Debug("inverse skipped", zap.String("frame", frame), zap.Error(err))
			continue
		}

		// Stage 2: invert
		g, err := componentMatrix(m.Manifold(), comps, chart)
		if err != nil {
			return nil, metricErrorf(op, err)
		}
		inv, err := matrix.Inverse(g)
		if errors.Is(err, matrix.ErrSingular) {
			return nil, metricErrorf(op, fmt.Errorf("frame %q chart %q: %w", frame, chart, ErrSingularMetric))
		}
		if err != nil {
			return nil, metricErrorf(op, err)
		}

		// Stage 3: store
		dst, err := m.inverse.AddComp(frame)
		if err != nil {
			return nil, metricErrorf(op, err)
		}
		if err = storeSymmetric(m.Manifold(), dst, chart, inv); err != nil {
			return nil, metricErrorf(op, err)
		}
		m.log.Debug("inverse computed", zap.String("frame", frame), zap.String("chart", chart))
	}

	return m.inverse, nil
}

// chartFor chooses the chart in which to work with comps: the frame's own
// chart (or the default chart), falling back to the declared charts.
func (m *Metric) chartFor(comps *tensor.Components) (string, error) {
	mf := m.Manifold()
	fr, err := mf.Frame(comps.Frame())
	if err != nil {
		return "", err
	}
	if c := mf.ChartFor(fr); c != nil {
		if err = comps.Express(mf, c.Name()); err == nil {
			return c.Name(), nil
		}
	}
	if charts := comps.Charts(); len(charts) > 0 {
		return charts[0], nil
	}

	return "", fmt.Errorf("frame %q: %w", comps.Frame(), ErrNoComponents)
}

// components returns the metric storage of the frame named by frameOrChart
// and the chart to compute in.
func (m *Metric) components(frameOrChart string) (*tensor.Components, string, error) {
	fr, err := m.Manifold().ResolveFrame(frameOrChart)
	if err != nil {
		return nil, "", err
	}
	comps, err := m.Comp(fr.Name())
	if err != nil {
		return nil, "", fmt.Errorf("%v: %w", err, ErrNoComponents)
	}
	chart, err := m.chartFor(comps)
	if err != nil {
		return nil, "", err
	}

	return comps, chart, nil
}

// Determinant returns det(g_{ab}) in the frame named by frameOrChart ("" is
// the default frame; a chart name means its coordinate frame).
func (m *Metric) Determinant(frameOrChart string) (*tensor.Scalar, error) {
	const op = "Determinant"
	comps, chart, err := m.components(frameOrChart)
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	if d, ok := m.dets[comps.Frame()]; ok {
		return d, nil
	}
	g, err := componentMatrix(m.Manifold(), comps, chart)
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	det, err := matrix.Determinant(g)
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	d := tensor.ScalarOf(m.Manifold(), chart, det)
	m.dets[comps.Frame()] = d
	m.log.Debug("determinant computed", zap.String("frame", comps.Frame()), zap.String("chart", chart))

	return d, nil
}

// SqrtAbsDet returns √|det g| = √((−1)^{n₋}·det g) in the frame named by
// frameOrChart.
func (m *Metric) SqrtAbsDet(frameOrChart string) (*tensor.Scalar, error) {
	const op = "SqrtAbsDet"
	det, err := m.Determinant(frameOrChart)
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	fr, _ := m.Manifold().ResolveFrame(frameOrChart)
	if s, ok := m.sqrtDets[fr.Name()]; ok {
		return s, nil
	}
	charts := det.Charts()
	sort.Strings(charts)
	e, _ := det.Expr(charts[0])
	if m.SignIndicator() < 0 {
		e = e.Neg()
	}
	s := tensor.ScalarOf(m.Manifold(), charts[0], symbolic.Sqrt(e))
	m.sqrtDets[fr.Name()] = s
	m.log.Debug("sqrt abs det computed", zap.String("frame", fr.Name()))

	return s, nil
}

// componentMatrix reads the n×n component matrix of comps in chart.
func componentMatrix(mf *manifold.Manifold, comps *tensor.Components, chart string) (*matrix.Dense, error) {
	n, s := mf.Dim(), mf.StartIndex()
	g, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, err := comps.Get(chart, s+i, s+j)
			if err != nil {
				return nil, err
			}
			if err = g.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// storeSymmetric writes the upper triangle of a symmetric matrix.
func storeSymmetric(mf *manifold.Manifold, dst *tensor.Components, chart string, a *matrix.Dense) error {
	n, s := mf.Dim(), mf.StartIndex()
	dst.Declare(chart)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v, err := a.At(i, j)
			if err != nil {
				return err
			}
			if v.IsZero() {
				continue
			}
			if err = dst.Set(chart, v, s+i, s+j); err != nil {
				return err
			}
		}
	}

	return nil
}
