// SPDX-License-Identifier: MIT

package metric

import (
	"errors"
	"fmt"
)

// Sentinel errors for metric construction and derived quantities.
var (
	// ErrSignatureRange is returned when |S| > n.
	ErrSignatureRange = errors.New("metric: signature out of range")

	// ErrSignatureParity is returned when S and n differ in parity, so that
	// (n±S)/2 would not be integers.
	ErrSignatureParity = errors.New("metric: signature parity does not match dimension")

	// ErrSingularMetric is returned when the component matrix of the metric
	// is identically singular.
	ErrSingularMetric = errors.New("metric: singular metric")

	// ErrDimension is returned for quantities undefined in the manifold's
	// dimension, such as the Weyl tensor for n ≤ 2.
	ErrDimension = errors.New("metric: unsupported dimension")

	// ErrNoComponents is returned when the metric has no components in any
	// frame or chart usable for the request.
	ErrNoComponents = errors.New("metric: no components available")
)

// metricErrorf tags err with the failing operation.
func metricErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
