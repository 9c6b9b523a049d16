// SPDX-License-Identifier: MIT

package metric

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvgeo/symbolic"
	"github.com/katalvlaran/lvgeo/tensor"
)

// Weyl returns the Weyl conformal tensor C^a_{bcd}, a (1,3) field
// antisymmetric in its last two slots. It is only defined for n ≥ 3.
//
// Implementation:
//   - Stage 1: Riemann, Ricci and the Ricci scalar in the default frame.
//   - Stage 2: the trace part
//     T = g⊗Ric^♯ + Ric⊗δ − r/(n−1)·g⊗δ, with contravariant slots first.
//   - Stage 3: C = R + 2/(n−2)·T_{[cd]} (antisymmetrised over slots 2 and 3).
func (m *Metric) Weyl(opts ...NameOption) (*tensor.Field, error) {
	const op = "Weyl"
	n := m.Manifold().Dim()
	if n <= 2 {
		return nil, metricErrorf(op, fmt.Errorf("n = %d: %w", n, ErrDimension))
	}
	if m.weyl != nil {
		return m.weyl, nil
	}

	// Stage 1: curvature
	riem, err := m.Riemann("")
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	ric, err := m.Ricci("")
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	r, err := m.RicciScalar("")
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	frame, charts, err := curvatureFrame(riem)
	if err != nil {
		return nil, metricErrorf(op, err)
	}

	// Stage 2: trace part
	ricUp, err := tensor.Raise(ric, m, 0)
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	delta, err := tensor.Identity(m.Manifold(), frame, charts...)
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	gRic, err := tensor.Product(m.Field, ricUp)
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	ricDelta, err := tensor.Product(ric, delta)
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	gDelta, err := tensor.Product(m.Field, delta)
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	if gDelta, err = tensor.ScaleBy(gDelta, r); err != nil {
		return nil, metricErrorf(op, err)
	}
	gDelta = tensor.Scale(gDelta, symbolic.Rat(-1, int64(n-1)))
	trace, err := tensor.Add(gRic, ricDelta)
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	if trace, err = tensor.Add(trace, gDelta); err != nil {
		return nil, metricErrorf(op, err)
	}

	// Stage 3: assemble
	if trace, err = tensor.Antisymmetrize(trace, 2, 3); err != nil {
		return nil, metricErrorf(op, err)
	}
	trace = tensor.Scale(trace, symbolic.Rat(2, int64(n-2)))
	c, err := tensor.Add(riem, trace)
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	nm := resolveNaming("C_"+m.Name(), "C", opts)
	c.SetName(nm.name, nm.latex)
	m.weyl = c
	m.log.Debug("weyl computed", zap.String("frame", frame))

	return c, nil
}

// curvatureFrame returns the frame the curvature was computed in (the
// default frame when cached, else the first cached one) and its charts.
func curvatureFrame(riem *tensor.Field) (string, []string, error) {
	mf := riem.Manifold()
	if def := mf.DefaultFrame(); def != nil {
		if comps, ok := riem.Cached(def.Name()); ok {
			return def.Name(), comps.Charts(), nil
		}
	}
	if frames := riem.Frames(); len(frames) > 0 {
		comps, _ := riem.Cached(frames[0])

		return frames[0], comps.Charts(), nil
	}

	return "", nil, fmt.Errorf("%s: %w", riem.Name(), tensor.ErrFrameUnavailable)
}
