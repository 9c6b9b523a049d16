// SPDX-License-Identifier: MIT

package manifold

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvgeo/matrix"
)

// AddFrameChange registers e_j(to) = Σ_i P[i][j] e_i(from) with P expressed
// in chart. The inverse change to→from is registered as well.
func (m *Manifold) AddFrameChange(from, to, chart string, p *matrix.Dense) error {
	const op = "AddFrameChange"
	if _, err := m.Frame(from); err != nil {
		return manifoldErrorf(op, err)
	}
	if _, err := m.Frame(to); err != nil {
		return manifoldErrorf(op, err)
	}
	if _, err := m.Chart(chart); err != nil {
		return manifoldErrorf(op, err)
	}
	if err := matrix.ValidateSquare(p); err != nil {
		return manifoldErrorf(op, err)
	}
	if p.Rows() != m.dim {
		return manifoldErrorf(op, fmt.Errorf("%dx%d change on a %d-manifold: %w", p.Rows(), p.Cols(), m.dim, matrix.ErrDimensionMismatch))
	}
	inv, err := matrix.Inverse(p)
	if err != nil {
		return manifoldErrorf(op, err)
	}
	m.storeChange(from, to, chart, p.Clone())
	m.storeChange(to, from, chart, inv)

	return nil
}

// NewFrame creates the frame name defined by e_j(name) = Σ_i P[i][j] e_i(from),
// P expressed in chart, and registers the change in both directions.
func (m *Manifold) NewFrame(name, from, chart string, p *matrix.Dense) (*Frame, error) {
	if _, err := m.Frame(from); err != nil {
		return nil, manifoldErrorf("NewFrame", err)
	}
	if _, err := m.Chart(chart); err != nil {
		return nil, manifoldErrorf("NewFrame", err)
	}
	if err := matrix.ValidateSquare(p); err != nil {
		return nil, manifoldErrorf("NewFrame", err)
	}
	if _, err := matrix.Inverse(p); err != nil {
		return nil, manifoldErrorf("NewFrame", err)
	}
	f, err := m.AddFrame(name)
	if err != nil {
		return nil, err
	}
	if err = m.AddFrameChange(from, name, chart, p); err != nil {
		return nil, err
	}

	return f, nil
}

// storeChange records one directed change matrix in one chart.
func (m *Manifold) storeChange(from, to, chart string, p *matrix.Dense) {
	key := edge{from, to}
	byChart, ok := m.changes[key]
	if !ok {
		byChart = make(map[string]*matrix.Dense)
		m.changes[key] = byChart
		m.frameAdj[from] = append(m.frameAdj[from], to)
	}
	byChart[chart] = p
}

// FramePath returns the shortest chain of registered frame changes from
// frame from to frame to, both ends included.
func (m *Manifold) FramePath(from, to string) ([]string, error) {
	if _, err := m.Frame(from); err != nil {
		return nil, manifoldErrorf("FramePath", err)
	}
	if _, err := m.Frame(to); err != nil {
		return nil, manifoldErrorf("FramePath", err)
	}
	path, ok := shortestPath(m.frameAdj, from, to)
	if !ok {
		return nil, manifoldErrorf("FramePath", fmt.Errorf("%q → %q: %w", from, to, ErrNoFrameChange))
	}

	return path, nil
}

// ChangeMatrix returns P with e_j(to) = Σ_i P[i][j] e_i(from), expressed in
// chart. Along a path f0→f1→…→fk the result is P(f0→f1)·…·P(fk−1→fk).
// Each step uses the matrix stored in chart, or one stored in another chart
// that can be re-expressed in chart.
func (m *Manifold) ChangeMatrix(from, to, chart string) (*matrix.Dense, error) {
	const op = "ChangeMatrix"
	if _, err := m.Chart(chart); err != nil {
		return nil, manifoldErrorf(op, err)
	}
	path, err := m.FramePath(from, to)
	if err != nil {
		return nil, manifoldErrorf(op, err)
	}
	acc, err := matrix.Identity(m.dim)
	if err != nil {
		return nil, manifoldErrorf(op, err)
	}
	for i := 1; i < len(path); i++ {
		step, err := m.stepIn(path[i-1], path[i], chart)
		if err != nil {
			return nil, manifoldErrorf(op, err)
		}
		if acc, err = matrix.Mul(acc, step); err != nil {
			return nil, manifoldErrorf(op, err)
		}
	}

	return acc, nil
}

// stepIn returns the single change from→to expressed in chart.
func (m *Manifold) stepIn(from, to, chart string) (*matrix.Dense, error) {
	byChart := m.changes[edge{from, to}]
	if p, ok := byChart[chart]; ok {
		return p, nil
	}
	stored := make([]string, 0, len(byChart))
	for c := range byChart {
		stored = append(stored, c)
	}
	sort.Strings(stored)
	for _, c := range stored {
		p := byChart[c]
		out := p.Clone()
		ok := true
		for i := 0; i < m.dim && ok; i++ {
			for j := 0; j < m.dim; j++ {
				v, _ := p.At(i, j)
				e, err := m.Reexpress(v, c, chart)
				if err != nil {
					ok = false
					break
				}
				_ = out.Set(i, j, e)
			}
		}
		if ok {
			byChart[chart] = out
			return out, nil
		}
	}

	return nil, fmt.Errorf("%q → %q in chart %q: %w", from, to, chart, ErrNoFrameChange)
}
