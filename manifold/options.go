// SPDX-License-Identifier: MIT

package manifold

import "fmt"

// Option configures a Manifold at construction time.
type Option func(*Options)

// Options holds construction parameters for New.
type Options struct {
	// StartIndex is the first index value; indices run over
	// [StartIndex, StartIndex+Dim). Default 0.
	StartIndex int

	// err records the first invalid option.
	err error
}

// DefaultOptions returns Options with StartIndex 0.
func DefaultOptions() Options {
	return Options{StartIndex: 0}
}

// WithStartIndex sets the first index value. Negative values are rejected
// with ErrOptionViolation.
func WithStartIndex(s int) Option {
	return func(o *Options) {
		if s < 0 {
			o.err = fmt.Errorf("%w: start index cannot be negative (%d)", ErrOptionViolation, s)
			return
		}
		o.StartIndex = s
	}
}
