// SPDX-License-Identifier: MIT

package metric

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvgeo/tensor"
)

// VolumeForm returns the metric volume form with its first contra indices
// raised: contra = 0 is the n-form ε, contra = n is fully contravariant.
// It panics when contra is outside [0, n]. The whole chain ε₀ … εₙ is built
// on the first call and cached until the metric changes.
//
// Implementation:
//   - Stage 1: ε_{s…s+n−1} = √|det g| in the default frame, fully
//     antisymmetric.
//   - Stage 2: εₖ raises slot k−1 of εₖ₋₁, then antisymmetrises the k
//     contravariant slots so the storage keeps both antisymmetric blocks.
func (m *Metric) VolumeForm(contra int) (*tensor.Field, error) {
	n := m.Manifold().Dim()
	if contra < 0 || contra > n {
		panic(fmt.Sprintf("metric: VolumeForm(%d) outside [0, %d]", contra, n))
	}
	if len(m.volume) == 0 {
		chain, err := m.volumeChain()
		if err != nil {
			return nil, metricErrorf("VolumeForm", err)
		}
		m.volume = chain
	}

	return m.volume[contra], nil
}

// volumeChain builds ε₀ … εₙ.
func (m *Metric) volumeChain() ([]*tensor.Field, error) {
	mf := m.Manifold()
	n, s := mf.Dim(), mf.StartIndex()

	// Stage 1: ε₀
	def := mf.DefaultFrame()
	if def == nil {
		return nil, fmt.Errorf("no default frame: %w", ErrNoComponents)
	}
	root, err := m.SqrtAbsDet(def.Name())
	if err != nil {
		return nil, err
	}
	chart := root.Charts()[0]
	e, err := root.Expr(chart)
	if err != nil {
		return nil, err
	}
	name, latex := "eps_"+m.Name(), `\epsilon_{`+m.LatexName()+`}`
	eps, err := tensor.NewField(mf, tensor.Valence{Covar: n}, name,
		tensor.WithLatex(latex), tensor.WithSymmetry(tensor.FullyAntisymmetric(n)))
	if err != nil {
		return nil, err
	}
	comps, err := eps.SetComp(def.Name())
	if err != nil {
		return nil, err
	}
	comps.Declare(chart)
	if err = comps.Set(chart, e, mf.Indices()...); err != nil {
		return nil, err
	}

	// Stage 2: raise one slot at a time
	chain := make([]*tensor.Field, n+1)
	chain[0] = eps
	for k := 1; k <= n; k++ {
		up, err := tensor.Raise(chain[k-1], m, k-1)
		if err != nil {
			return nil, fmt.Errorf("raising slot %d: %w", k-1, err)
		}
		if k > 1 {
			slots := make([]int, k)
			for i := range slots {
				slots[i] = i
			}
			if up, err = tensor.Antisymmetrize(up, slots...); err != nil {
				return nil, fmt.Errorf("raising slot %d: %w", k-1, err)
			}
		}
		up.SetName(fmt.Sprintf("%s^%d", name, k), latex)
		chain[k] = up
	}
	m.log.Debug("volume forms computed", zap.Int("n", n), zap.Int("start", s))

	return chain, nil
}
