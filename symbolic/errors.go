// SPDX-License-Identifier: MIT

package symbolic

import "errors"

var (
	// ErrBadSymbol is returned by NewSymbol for an empty name or a name that
	// contains characters reserved by the expression syntax.
	ErrBadSymbol = errors.New("symbolic: invalid symbol name")

	// ErrDivisionByZero is the panic value raised when dividing by an
	// expression that is identically zero. Like math/big, division by zero is
	// a programmer error, not a recoverable condition.
	ErrDivisionByZero = errors.New("symbolic: division by zero")
)
