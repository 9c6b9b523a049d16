// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"github.com/katalvlaran/lvgeo/symbolic"
)

// Inverse returns the inverse of the square matrix m, or an error if m is not
// square or singular.
// Blueprint:
//
//	Stage 1 (Validate): ensure m is square.
//	Stage 2 (Determinant): det(m) by Laplace expansion; ErrSingular if it is
//	identically zero.
//	Stage 3 (Execute): inv[j][i] = cofactor(i,j) / det (adjugate formula).
//
// Complexity: O(n²·(n−1)!) expression operations.
func Inverse(m *Dense) (*Dense, error) {
	// Stage 1: Validate input shape
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := m.r

	// Stage 2: Determinant and singularity check
	det, err := Determinant(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if det.IsZero() {
		return nil, matrixErrorf(opInverse, fmt.Errorf("%dx%d: %w", n, n, ErrSingular))
	}

	// Stage 3: adjugate / det
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if n == 1 {
		inv.data[0] = symbolic.One().Div(det)
		return inv, nil
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c := cofactor(m, i, j)
			if c.IsZero() {
				continue
			}
			inv.data[j*n+i] = c.Div(det)
		}
	}

	return inv, nil
}
