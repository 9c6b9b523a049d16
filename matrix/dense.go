// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvgeo/symbolic"
)

// Dense is a row-major matrix of symbolic expressions.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense struct {
	r, c int             // number of rows and columns
	data []symbolic.Expr // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to exact zeros.
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice (zero Expr is 0).
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf("NewDense", ErrBadShape)
	}

	return &Dense{r: rows, c: cols, data: make([]symbolic.Expr, rows*cols)}, nil
}

// FromRows builds a matrix from equally long rows.
func FromRows(rows [][]symbolic.Expr) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, matrixErrorf(opFromRows, ErrBadShape)
	}
	m, err := NewDense(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != m.c {
			return nil, matrixErrorf(opFromRows, fmt.Errorf("row %d has %d entries, want %d: %w", i, len(row), m.c, ErrDimensionMismatch))
		}
		copy(m.data[i*m.c:(i+1)*m.c], row)
	}

	return m, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = symbolic.One()
	}

	return m, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Dense) indexOf(tag string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, matrixErrorf(tag, fmt.Errorf("(%d,%d) in %dx%d: %w", row, col, m.r, m.c, ErrOutOfRange))
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
func (m *Dense) At(row, col int) (symbolic.Expr, error) {
	idx, err := m.indexOf(opAt, row, col)
	if err != nil {
		return symbolic.Expr{}, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
func (m *Dense) Set(row, col int, v symbolic.Expr) error {
	idx, err := m.indexOf(opSet, row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// at is the unchecked accessor used by kernels after validation.
func (m *Dense) at(row, col int) symbolic.Expr { return m.data[row*m.c+col] }

// Clone returns a deep copy; expressions are immutable so a slice copy suffices.
func (m *Dense) Clone() *Dense {
	cp := make([]symbolic.Expr, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// Map applies f to every entry and returns the new matrix.
func (m *Dense) Map(f func(symbolic.Expr) symbolic.Expr) *Dense {
	out := m.Clone()
	for i := range out.data {
		out.data[i] = f(out.data[i])
	}

	return out
}

// Equal reports entrywise identical-zero differences.
func (m *Dense) Equal(o *Dense) bool {
	if m == nil || o == nil || m.r != o.r || m.c != o.c {
		return false
	}
	for i := range m.data {
		if !m.data[i].Equal(o.data[i]) {
			return false
		}
	}

	return true
}

// String renders one bracketed row per line.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString("[")
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.at(i, j).String())
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
