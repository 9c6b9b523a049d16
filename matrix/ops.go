// SPDX-License-Identifier: MIT

package matrix

import "github.com/katalvlaran/lvgeo/symbolic"

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Loop order i→k→j with zero-skip on A[i,k].
func Mul(a, b *Dense) (*Dense, error) {
	if err := ValidateMulShape(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	out, err := NewDense(a.r, b.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	for i := 0; i < a.r; i++ {
		for k := 0; k < a.c; k++ {
			aik := a.at(i, k)
			if aik.IsZero() {
				continue
			}
			for j := 0; j < b.c; j++ {
				bkj := b.at(k, j)
				if bkj.IsZero() {
					continue
				}
				out.data[i*out.c+j] = out.data[i*out.c+j].Add(aik.Mul(bkj))
			}
		}
	}

	return out, nil
}

// Transpose returns Aᵀ.
func Transpose(a *Dense) *Dense {
	out := &Dense{r: a.c, c: a.r, data: make([]symbolic.Expr, len(a.data))}
	for i := 0; i < a.r; i++ {
		for j := 0; j < a.c; j++ {
			out.data[j*out.c+i] = a.at(i, j)
		}
	}

	return out
}
