// SPDX-License-Identifier: MIT

package matrix

import "github.com/katalvlaran/lvgeo/symbolic"

// Determinant returns det(m) for a square matrix.
// Blueprint:
//
//	Stage 1 (Validate): ensure m is square.
//	Stage 2 (Execute): Laplace expansion along the row with the most exact
//	zeros, recursing on minors; zero entries are skipped.
//
// Division-free, so the result is a polynomial in the entries.
// Complexity: O(n!) worst case; n is a manifold dimension.
func Determinant(m *Dense) (symbolic.Expr, error) {
	if err := ValidateSquare(m); err != nil {
		return symbolic.Expr{}, matrixErrorf(opDeterminant, err)
	}
	rows := make([]int, m.r)
	cols := make([]int, m.c)
	for i := range rows {
		rows[i] = i
		cols[i] = i
	}

	return laplace(m, rows, cols), nil
}

// laplace expands the minor of m restricted to rows × cols.
func laplace(m *Dense, rows, cols []int) symbolic.Expr {
	switch len(rows) {
	case 1:
		return m.at(rows[0], cols[0])
	case 2:
		return m.at(rows[0], cols[0]).Mul(m.at(rows[1], cols[1])).
			Sub(m.at(rows[0], cols[1]).Mul(m.at(rows[1], cols[0])))
	}

	// pick the sparsest row
	best, bestZeros := 0, -1
	for r := range rows {
		zeros := 0
		for _, c := range cols {
			if m.at(rows[r], c).IsZero() {
				zeros++
			}
		}
		if zeros > bestZeros {
			best, bestZeros = r, zeros
		}
	}

	det := symbolic.Zero()
	subRows := without(rows, best)
	for k, c := range cols {
		entry := m.at(rows[best], c)
		if entry.IsZero() {
			continue
		}
		minor := laplace(m, subRows, without(cols, k))
		if minor.IsZero() {
			continue
		}
		term := entry.Mul(minor)
		if (best+k)%2 == 1 {
			term = term.Neg()
		}
		det = det.Add(term)
	}

	return det
}

// without returns s with the element at position p removed (fresh slice).
func without(s []int, p int) []int {
	out := make([]int, 0, len(s)-1)
	out = append(out, s[:p]...)

	return append(out, s[p+1:]...)
}

// Cofactor returns (−1)^{i+j} times the minor of m without row i and column j.
func Cofactor(m *Dense, i, j int) (symbolic.Expr, error) {
	if err := ValidateSquare(m); err != nil {
		return symbolic.Expr{}, matrixErrorf("Cofactor", err)
	}
	if _, err := m.indexOf("Cofactor", i, j); err != nil {
		return symbolic.Expr{}, err
	}
	if m.r == 1 {
		return symbolic.One(), nil
	}

	return cofactor(m, i, j), nil
}

// cofactor is Cofactor without validation.
func cofactor(m *Dense, i, j int) symbolic.Expr {
	rows := make([]int, 0, m.r-1)
	cols := make([]int, 0, m.c-1)
	for k := 0; k < m.r; k++ {
		if k != i {
			rows = append(rows, k)
		}
		if k != j {
			cols = append(cols, k)
		}
	}
	minor := laplace(m, rows, cols)
	if (i+j)%2 == 1 {
		return minor.Neg()
	}

	return minor
}
