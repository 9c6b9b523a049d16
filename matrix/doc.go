// SPDX-License-Identifier: MIT

// Package matrix provides small dense matrices of exact symbolic expressions
// together with the two kernels the geometry engine needs: determinant and
// inverse.
//
// The matrices handled here are metric component grids and change-of-frame
// matrices, i.e. n×n with n the manifold dimension (typically 2..5), so the
// kernels favour exactness and determinism over asymptotic speed:
//
//   - Determinant: Laplace expansion along the sparsest row, skipping zeros.
//     Division-free, so no pivoting decisions depend on symbolic zero tests.
//   - Inverse: adjugate / determinant; ErrSingular when the determinant is
//     identically zero.
//
// All public methods validate indices and shapes and return the sentinel
// errors of errors.go; nothing panics on user input.
package matrix
