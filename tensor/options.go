// SPDX-License-Identifier: MIT

package tensor

// Option configures a Field at construction time.
type Option func(*Options)

// Options holds construction parameters for NewField.
type Options struct {
	// Latex is the display name; defaults to the field name.
	Latex string

	// Symmetry declares slot groups; defaults to NoSymmetry.
	Symmetry *Symmetry
}

// WithLatex sets the display name.
func WithLatex(latex string) Option {
	return func(o *Options) {
		o.Latex = latex
	}
}

// WithSymmetry declares the slot symmetry shared by every storage.
func WithSymmetry(sym Symmetry) Option {
	return func(o *Options) {
		o.Symmetry = &sym
	}
}
