// SPDX-License-Identifier: MIT

package metric

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvgeo/manifold"
	"github.com/katalvlaran/lvgeo/matrix"
	"github.com/katalvlaran/lvgeo/symbolic"
	"github.com/katalvlaran/lvgeo/tensor"
)

// Connection is the Levi-Civita connection of one snapshot of a metric.
// Coefficients are stored per frame as Γ^k_{ij} (slot 0 = k, slot 1 = the
// derivation direction i), ∇_{e_i} e_j = Γ^k_{ij} e_k.
type Connection struct {
	mf    *manifold.Manifold
	g     *tensor.Field
	log   *zap.Logger
	name  string
	latex string

	coeffs      map[string]*tensor.Components
	riemann     *tensor.Field
	ricci       *tensor.Field
	ricciScalar *tensor.Scalar
}

// newConnection snapshots g.
func newConnection(m *Metric, nm naming) *Connection {
	return &Connection{
		mf:     m.Manifold(),
		g:      m.Field.Copy(),
		log:    m.log,
		name:   nm.name,
		latex:  nm.latex,
		coeffs: make(map[string]*tensor.Components),
	}
}

// Name returns the connection name.
func (c *Connection) Name() string { return c.name }

// LatexName returns the display name.
func (c *Connection) LatexName() string { return c.latex }

// Connection returns the Levi-Civita connection of the current components,
// created on first use. Naming options apply only on creation.
func (m *Metric) Connection(opts ...NameOption) (*Connection, error) {
	if m.connection != nil {
		return m.connection, nil
	}
	if len(m.Frames()) == 0 {
		return nil, metricErrorf("Connection", ErrNoComponents)
	}
	m.connection = newConnection(m, resolveNaming("nabla_"+m.Name(), `\nabla_{`+m.LatexName()+`}`, opts))
	m.log.Debug("connection created")

	return m.connection, nil
}

// Christoffel returns the Christoffel symbols Γ^k_{ij} in the coordinate
// frame of chart ("" is the default chart).
func (m *Metric) Christoffel(chart string) (*tensor.Components, error) {
	if chart == "" {
		def := m.Manifold().DefaultChart()
		if def == nil {
			return nil, metricErrorf("Christoffel", fmt.Errorf("no default chart: %w", manifold.ErrUnknownChart))
		}
		chart = def.Name()
	}
	c, err := m.Manifold().Chart(chart)
	if err != nil {
		return nil, metricErrorf("Christoffel", err)
	}
	conn, err := m.Connection()
	if err != nil {
		return nil, metricErrorf("Christoffel", err)
	}

	return conn.Coefficients(c.Frame().Name())
}

// Riemann returns the Riemann tensor of the current connection, ensuring its
// components in frame ("" is the default frame).
func (m *Metric) Riemann(frame string, opts ...NameOption) (*tensor.Field, error) {
	conn, err := m.Connection()
	if err != nil {
		return nil, metricErrorf("Riemann", err)
	}

	return conn.Riemann(frame, opts...)
}

// Ricci returns the Ricci tensor Ric_{jl} = R^i_{jil}, ensuring its
// components in frame.
func (m *Metric) Ricci(frame string, opts ...NameOption) (*tensor.Field, error) {
	conn, err := m.Connection()
	if err != nil {
		return nil, metricErrorf("Ricci", err)
	}

	return conn.Ricci(frame, opts...)
}

// RicciScalar returns r = g^{ij} Ric_{ij}. frame selects where it is computed
// the first time; see Connection.RicciScalar.
func (m *Metric) RicciScalar(frame string) (*tensor.Scalar, error) {
	conn, err := m.Connection()
	if err != nil {
		return nil, metricErrorf("RicciScalar", err)
	}

	return conn.RicciScalar(frame)
}

// Coefficients returns Γ^k_{ij} in frame, computing it on first request.
//
// Implementation:
//   - coordinate frame: Γ^k_{ij} = ½ g^{kl}(∂_i g_{lj} + ∂_j g_{li} − ∂_l g_{ij}),
//     stored symmetric in slots (1,2);
//   - other frames: from the coordinate frame of the frame's chart through
//     Γ'^k_{ij} = (P⁻¹)^k_a (P^b_i P^c_j Γ^a_{bc} + P^b_i ∂_b P^a_j).
func (c *Connection) Coefficients(frame string) (*tensor.Components, error) {
	const op = "Coefficients"
	fr, err := c.mf.ResolveFrame(frame)
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	if comps, ok := c.coeffs[fr.Name()]; ok {
		return comps, nil
	}
	var comps *tensor.Components
	if fr.IsCoordinate() {
		comps, err = c.coordinateCoefficients(fr.Chart())
	} else {
		comps, err = c.frameCoefficients(fr)
	}
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	c.coeffs[fr.Name()] = comps
	c.log.Debug("christoffel symbols computed", zap.String("frame", fr.Name()))

	return comps, nil
}

// metricIn returns g_{ab} and g^{ab} of the snapshot in the coordinate frame
// of chart, as dense arrays over 0-based positions.
func (c *Connection) metricIn(chart *manifold.Chart) ([][]symbolic.Expr, [][]symbolic.Expr, error) {
	comps, err := c.g.Comp(chart.Frame().Name())
	if err != nil {
		return nil, nil, err
	}
	if err = comps.Express(c.mf, chart.Name()); err != nil {
		return nil, nil, err
	}
	g, err := componentMatrix(c.mf, comps, chart.Name())
	if err != nil {
		return nil, nil, err
	}
	inv, err := matrix.Inverse(g)
	if err != nil {
		return nil, nil, fmt.Errorf("chart %q: %w", chart.Name(), ErrSingularMetric)
	}

	return unpack(g), unpack(inv), nil
}

// coordinateCoefficients applies the Christoffel formula in chart.
func (c *Connection) coordinateCoefficients(chart *manifold.Chart) (*tensor.Components, error) {
	g, inv, err := c.metricIn(chart)
	if err != nil {
		return nil, err
	}
	n, s := c.mf.Dim(), c.mf.StartIndex()
	coords := chart.Coords()

	// dg[l][i][j] = ∂_l g_{ij}
	dg := make([][][]symbolic.Expr, n)
	for l := range dg {
		dg[l] = make([][]symbolic.Expr, n)
		for i := range dg[l] {
			dg[l][i] = make([]symbolic.Expr, n)
		}
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				dg[l][i][j] = g[i][j].Diff(coords[l])
				dg[l][j][i] = dg[l][i][j]
			}
		}
	}

	sym, err := tensor.NewSymmetry(3, [][]int{{1, 2}}, nil)
	if err != nil {
		return nil, err
	}
	out := tensor.NewComponents(c.mf, chart.Frame().Name(), sym)
	out.Declare(chart.Name())
	half := symbolic.Rat(1, 2)
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				acc := symbolic.Zero()
				for l := 0; l < n; l++ {
					if inv[k][l].IsZero() {
						continue
					}
					t := dg[i][l][j].Add(dg[j][l][i]).Sub(dg[l][i][j])
					if t.IsZero() {
						continue
					}
					acc = acc.Add(inv[k][l].Mul(t))
				}
				if acc.IsZero() {
					continue
				}
				if err = out.Set(chart.Name(), acc.Mul(half), s+k, s+i, s+j); err != nil {
					return nil, err
				}
			}
		}
	}

	return out, nil
}

// frameCoefficients transforms the coordinate coefficients of the frame's
// chart to a non-coordinate frame (inhomogeneous law).
func (c *Connection) frameCoefficients(fr *manifold.Frame) (*tensor.Components, error) {
	chart := c.mf.ChartFor(fr)
	if chart == nil {
		return nil, fmt.Errorf("frame %q: %w", fr.Name(), ErrNoComponents)
	}
	base, err := c.Coefficients(chart.Frame().Name())
	if err != nil {
		return nil, err
	}
	p, err := c.mf.ChangeMatrix(chart.Frame().Name(), fr.Name(), chart.Name())
	if err != nil {
		return nil, err
	}
	pinv, err := matrix.Inverse(p)
	if err != nil {
		return nil, err
	}
	P, Pinv := unpack(p), unpack(pinv)
	gam := coefficientArray(c.mf, base, chart.Name())
	n, s := c.mf.Dim(), c.mf.StartIndex()
	coords := chart.Coords()

	out := tensor.NewComponents(c.mf, fr.Name(), tensor.NoSymmetry(3))
	out.Declare(chart.Name())
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			// inner[a] = Σ_bc P^b_i P^c_j Γ^a_{bc} + Σ_b P^b_i ∂_b P^a_j
			inner := make([]symbolic.Expr, n)
			for a := 0; a < n; a++ {
				acc := symbolic.Zero()
				for b := 0; b < n; b++ {
					if P[b][i].IsZero() {
						continue
					}
					term := P[a][j].Diff(coords[b])
					for cc := 0; cc < n; cc++ {
						if P[cc][j].IsZero() || gam[a][b][cc].IsZero() {
							continue
						}
						term = term.Add(P[cc][j].Mul(gam[a][b][cc]))
					}
					acc = acc.Add(P[b][i].Mul(term))
				}
				inner[a] = acc
			}
			for k := 0; k < n; k++ {
				acc := symbolic.Zero()
				for a := 0; a < n; a++ {
					if Pinv[k][a].IsZero() || inner[a].IsZero() {
						continue
					}
					acc = acc.Add(Pinv[k][a].Mul(inner[a]))
				}
				if acc.IsZero() {
					continue
				}
				if err = out.Set(chart.Name(), acc, s+k, s+i, s+j); err != nil {
					return nil, err
				}
			}
		}
	}

	return out, nil
}

// Riemann returns R^i_{jkl} = ∂_kΓ^i_{jl} − ∂_lΓ^i_{jk} + Γ^i_{mk}Γ^m_{jl} − Γ^i_{ml}Γ^m_{jk},
// antisymmetric in slots (2,3), ensuring its components in frame. Other
// frames are obtained tensorially from the coordinate frame of their chart.
func (c *Connection) Riemann(frame string, opts ...NameOption) (*tensor.Field, error) {
	const op = "Riemann"
	fr, err := c.mf.ResolveFrame(frame)
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	if c.riemann == nil {
		nm := resolveNaming("Riem_"+c.g.Name(), "R", opts)
		sym, err := tensor.NewSymmetry(4, nil, [][]int{{2, 3}})
		if err != nil {
			return nil, metricErrorf(op, err)
		}
		if c.riemann, err = tensor.NewField(c.mf, tensor.Valence{Contra: 1, Covar: 3}, nm.name,
			tensor.WithLatex(nm.latex), tensor.WithSymmetry(sym)); err != nil {
			return nil, metricErrorf(op, err)
		}
	}
	if _, ok := c.riemann.Cached(fr.Name()); ok {
		return c.riemann, nil
	}

	chart := c.mf.ChartFor(fr)
	if chart == nil {
		return nil, metricErrorf(op, fmt.Errorf("frame %q: %w", fr.Name(), ErrNoComponents))
	}
	if _, ok := c.riemann.Cached(chart.Frame().Name()); !ok {
		if err = c.coordinateRiemann(chart); err != nil {
			return nil, metricErrorf(op, err)
		}
	}
	if !fr.IsCoordinate() {
		if _, err = c.riemann.Comp(fr.Name()); err != nil {
			return nil, metricErrorf(op, err)
		}
	}

	return c.riemann, nil
}

// coordinateRiemann fills the Riemann storage of chart's coordinate frame.
func (c *Connection) coordinateRiemann(chart *manifold.Chart) error {
	base, err := c.Coefficients(chart.Frame().Name())
	if err != nil {
		return err
	}
	gam := coefficientArray(c.mf, base, chart.Name())
	n, s := c.mf.Dim(), c.mf.StartIndex()
	coords := chart.Coords()

	dst, err := c.riemann.AddComp(chart.Frame().Name())
	if err != nil {
		return err
	}
	dst.Declare(chart.Name())
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				for l := k + 1; l < n; l++ {
					v := gam[i][j][l].Diff(coords[k]).Sub(gam[i][j][k].Diff(coords[l]))
					for m := 0; m < n; m++ {
						if !gam[i][m][k].IsZero() && !gam[m][j][l].IsZero() {
							v = v.Add(gam[i][m][k].Mul(gam[m][j][l]))
						}
						if !gam[i][m][l].IsZero() && !gam[m][j][k].IsZero() {
							v = v.Sub(gam[i][m][l].Mul(gam[m][j][k]))
						}
					}
					if v.IsZero() {
						continue
					}
					if err = dst.Set(chart.Name(), v, s+i, s+j, s+k, s+l); err != nil {
						return err
					}
				}
			}
		}
	}
	c.log.Debug("riemann computed", zap.String("frame", chart.Frame().Name()))

	return nil
}

// Ricci returns Ric_{jl} = R^i_{jil}, symmetric, ensuring its components in
// frame.
func (c *Connection) Ricci(frame string, opts ...NameOption) (*tensor.Field, error) {
	const op = "Ricci"
	riem, err := c.Riemann(frame)
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	fr, _ := c.mf.ResolveFrame(frame)
	if c.ricci == nil {
		nm := resolveNaming("Ric_"+c.g.Name(), "Ric", opts)
		if c.ricci, err = tensor.NewField(c.mf, tensor.Valence{Covar: 2}, nm.name,
			tensor.WithLatex(nm.latex), tensor.WithSymmetry(tensor.FullySymmetric(2))); err != nil {
			return nil, metricErrorf(op, err)
		}
	}
	if _, ok := c.ricci.Cached(fr.Name()); ok {
		return c.ricci, nil
	}
	src, err := riem.Comp(fr.Name())
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	dst, err := c.ricci.AddComp(fr.Name())
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	idx := c.mf.Indices()
	for _, chart := range src.Charts() {
		dst.Declare(chart)
		for _, j := range idx {
			for _, l := range idx {
				if l < j {
					continue
				}
				acc := symbolic.Zero()
				for _, i := range idx {
					v, err := src.Get(chart, i, j, i, l)
					if err != nil {
						return nil, metricErrorf(op, err)
					}
					acc = acc.Add(v)
				}
				if acc.IsZero() {
					continue
				}
				if err = dst.Set(chart, acc, j, l); err != nil {
					return nil, metricErrorf(op, err)
				}
			}
		}
	}
	c.log.Debug("ricci computed", zap.String("frame", fr.Name()))

	return c.ricci, nil
}

// RicciScalar returns r = g^{ij} Ric_{ij}. A scalar does not depend on the
// frame: frame only selects where it is computed on the first call. Later
// calls return the memoized scalar whatever frame they name, and the scalar
// is re-expressed in other charts on demand.
func (c *Connection) RicciScalar(frame string) (*tensor.Scalar, error) {
	const op = "RicciScalar"
	if c.ricciScalar != nil {
		return c.ricciScalar, nil
	}
	ric, err := c.Ricci(frame)
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	fr, _ := c.mf.ResolveFrame(frame)
	rc, err := ric.Comp(fr.Name())
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	gc, err := c.g.Comp(fr.Name())
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	for _, chart := range rc.Charts() {
		if err = gc.Express(c.mf, chart); err != nil {
			continue
		}
		g, err := componentMatrix(c.mf, gc, chart)
		if err != nil {
			return nil, metricErrorf(op, err)
		}
		inv, err := matrix.Inverse(g)
		if err != nil {
			return nil, metricErrorf(op, ErrSingularMetric)
		}
		ricMat, err := componentMatrix(c.mf, rc, chart)
		if err != nil {
			return nil, metricErrorf(op, err)
		}
		// r = tr(g⁻¹·Ric)
		prod, err := matrix.Mul(inv, ricMat)
		if err != nil {
			return nil, metricErrorf(op, err)
		}
		tr := symbolic.Zero()
		for i := 0; i < c.mf.Dim(); i++ {
			v, _ := prod.At(i, i)
			tr = tr.Add(v)
		}
		c.ricciScalar = tensor.ScalarOf(c.mf, chart, tr)
		c.log.Debug("ricci scalar computed", zap.String("frame", fr.Name()), zap.String("chart", chart))

		return c.ricciScalar, nil
	}

	return nil, metricErrorf(op, fmt.Errorf("frame %q: %w", fr.Name(), ErrNoComponents))
}

// Nabla returns the covariant derivative ∇T of f, a (p, q+1) field whose
// derivation index is the last slot, computed in a coordinate frame: the
// default frame when it is one, else the first coordinate frame of f.
func (c *Connection) Nabla(f *tensor.Field) (*tensor.Field, error) {
	const op = "Nabla"
	fr := c.coordinateFrameFor(f)
	if fr == nil {
		return nil, metricErrorf(op, fmt.Errorf("%s: %w", f.Name(), tensor.ErrFrameUnavailable))
	}
	chart := fr.Chart()
	src, err := f.Comp(fr.Name())
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	if err = src.Express(c.mf, chart.Name()); err != nil {
		return nil, metricErrorf(op, err)
	}
	base, err := c.Coefficients(fr.Name())
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	gam := coefficientArray(c.mf, base, chart.Name())

	v := f.Valence()
	r := v.Rank()
	fs := f.Symmetry()
	sym, err := tensor.NewSymmetry(r+1, fs.Symmetric(), fs.Antisymmetric())
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	out, err := tensor.NewField(c.mf, tensor.Valence{Contra: v.Contra, Covar: v.Covar + 1}, "nabla_"+f.Name(),
		tensor.WithLatex(`\nabla `+f.LatexName()), tensor.WithSymmetry(sym))
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	dst, err := out.AddComp(fr.Name())
	if err != nil {
		return nil, metricErrorf(op, err)
	}
	dst.Declare(chart.Name())

	s, n := c.mf.StartIndex(), c.mf.Dim()
	coords := chart.Coords()
	idx := make([]int, r)
	forEach(r+1, n, s, func(full []int) {
		if err != nil || !sym.IsCanonical(full) {
			return
		}
		copy(idx, full[:r])
		d := full[r] - s
		var t symbolic.Expr
		if t, err = src.Get(chart.Name(), idx...); err != nil {
			return
		}
		acc := t.Diff(coords[d])
		probe := make([]int, r)
		for slot := 0; slot < r; slot++ {
			a := idx[slot] - s
			for m := 0; m < n; m++ {
				copy(probe, idx)
				probe[slot] = s + m
				var coef symbolic.Expr
				if slot < v.Contra {
					coef = gam[a][d][m] // +Γ^a_{d m} T^{..m..}
				} else {
					coef = gam[m][d][a].Neg() // −Γ^m_{d a} T_{..m..}
				}
				if coef.IsZero() {
					continue
				}
				tv, _ := src.Get(chart.Name(), probe...)
				if tv.IsZero() {
					continue
				}
				acc = acc.Add(coef.Mul(tv))
			}
		}
		if !acc.IsZero() {
			err = dst.Set(chart.Name(), acc, full...)
		}
	})
	if err != nil {
		return nil, metricErrorf(op, err)
	}

	return out, nil
}

// coordinateFrameFor picks the frame Nabla computes in.
func (c *Connection) coordinateFrameFor(f *tensor.Field) *manifold.Frame {
	if def := c.mf.DefaultFrame(); def != nil && def.IsCoordinate() {
		if _, err := f.Comp(def.Name()); err == nil {
			return def
		}
	}
	for _, name := range f.Frames() {
		if fr, err := c.mf.Frame(name); err == nil && fr.IsCoordinate() {
			return fr
		}
	}

	return nil
}

// coefficientArray unpacks Γ^a_{bc} into gam[a][b][c] over 0-based positions.
func coefficientArray(mf *manifold.Manifold, comps *tensor.Components, chart string) [][][]symbolic.Expr {
	n, s := mf.Dim(), mf.StartIndex()
	gam := make([][][]symbolic.Expr, n)
	for a := range gam {
		gam[a] = make([][]symbolic.Expr, n)
		for b := range gam[a] {
			gam[a][b] = make([]symbolic.Expr, n)
			for c := range gam[a][b] {
				gam[a][b][c], _ = comps.Get(chart, s+a, s+b, s+c)
			}
		}
	}

	return gam
}

// unpack copies a square matrix into nested slices.
func unpack(m *matrix.Dense) [][]symbolic.Expr {
	n := m.Rows()
	out := make([][]symbolic.Expr, n)
	for i := range out {
		out[i] = make([]symbolic.Expr, n)
		for j := range out[i] {
			out[i][j], _ = m.At(i, j)
		}
	}

	return out
}

// forEach enumerates all index tuples of length rank over [start, start+n).
func forEach(rank, n, start int, fn func(idx []int)) {
	idx := make([]int, rank)
	for i := range idx {
		idx[i] = start
	}
	for {
		fn(idx)
		k := rank - 1
		for ; k >= 0; k-- {
			idx[k]++
			if idx[k] < start+n {
				break
			}
			idx[k] = start
		}
		if k < 0 {
			return
		}
	}
}
