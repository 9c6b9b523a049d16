// SPDX-License-Identifier: MIT

package tensor

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by storages and fields.
var (
	// ErrFrameUnavailable is returned when no cached frame links to the
	// requested one. It is a soft condition: callers may skip the frame.
	ErrFrameUnavailable = errors.New("tensor: frame unavailable")

	// ErrChartUnavailable is returned when a storage has no representation
	// in the requested chart and none can be derived.
	ErrChartUnavailable = errors.New("tensor: chart unavailable")

	// ErrIndexOutOfRange is returned for a wrong index count or an index value
	// outside [StartIndex, StartIndex+Dim).
	ErrIndexOutOfRange = errors.New("tensor: index out of range")

	// ErrValenceMismatch is returned when operand valences are incompatible.
	ErrValenceMismatch = errors.New("tensor: valence mismatch")

	// ErrBadSymmetry is returned for overlapping, out-of-range or mixed-type
	// symmetry groups.
	ErrBadSymmetry = errors.New("tensor: invalid symmetry")

	// ErrSlotOutOfRange is returned when a slot position does not exist.
	ErrSlotOutOfRange = errors.New("tensor: slot out of range")

	// ErrAntisymmetricDiagonal is returned when a non-zero value is set on a
	// repeated index of an antisymmetric group.
	ErrAntisymmetricDiagonal = errors.New("tensor: non-zero value on antisymmetric diagonal")
)

// tensorErrorf tags err with the failing operation.
func tensorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
