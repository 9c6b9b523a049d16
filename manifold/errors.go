// SPDX-License-Identifier: MIT

package manifold

import (
	"errors"
	"fmt"
)

// Sentinel errors for manifold construction and lookups.
var (
	// ErrBadDimension is returned by New for a dimension < 1.
	ErrBadDimension = errors.New("manifold: dimension must be positive")

	// ErrUnknownChart is returned when a chart name is not registered.
	ErrUnknownChart = errors.New("manifold: unknown chart")

	// ErrUnknownFrame is returned when a frame name is not registered.
	ErrUnknownFrame = errors.New("manifold: unknown frame")

	// ErrDuplicateName is returned when a chart or frame name is already taken.
	ErrDuplicateName = errors.New("manifold: duplicate name")

	// ErrCoordinateCount is returned when a coordinate list does not match Dim.
	ErrCoordinateCount = errors.New("manifold: coordinate count does not match dimension")

	// ErrNoFrameChange is returned when no chain of frame changes links two
	// frames, or the chain cannot be expressed in the requested chart.
	ErrNoFrameChange = errors.New("manifold: no frame change")

	// ErrNoTransition is returned when no chain of coordinate changes links
	// two charts.
	ErrNoTransition = errors.New("manifold: no coordinate change")

	// ErrOptionViolation is returned by New when an Option is invalid.
	ErrOptionViolation = errors.New("manifold: invalid option supplied")
)

// manifoldErrorf tags err with the failing operation.
func manifoldErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
