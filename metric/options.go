// SPDX-License-Identifier: MIT

package metric

import (
	"fmt"

	"go.uber.org/zap"
)

// Convention selects the overall sign of a Lorentzian metric.
type Convention int

const (
	// PositiveConvention is the mostly-plus signature (−,+,…,+), S = n−2.
	PositiveConvention Convention = iota
	// NegativeConvention is the mostly-minus signature (+,−,…,−), S = 2−n.
	NegativeConvention
)

// policyKind enumerates signature policies.
type policyKind int

const (
	policyRiemannian policyKind = iota
	policyLorentzian
	policyExplicit
)

// SignaturePolicy describes how the signature S follows from the dimension.
type SignaturePolicy struct {
	kind       policyKind
	convention Convention
	value      int
}

// Riemannian returns the positive-definite policy, S = n.
func Riemannian() SignaturePolicy { return SignaturePolicy{kind: policyRiemannian} }

// Lorentzian returns the policy with exactly one sign opposite to the others.
func Lorentzian(c Convention) SignaturePolicy {
	return SignaturePolicy{kind: policyLorentzian, convention: c}
}

// Explicit returns the policy with signature s.
func Explicit(s int) SignaturePolicy { return SignaturePolicy{kind: policyExplicit, value: s} }

// resolve computes and validates S for dimension n.
func (p SignaturePolicy) resolve(n int) (int, error) {
	s := n
	switch p.kind {
	case policyLorentzian:
		s = n - 2
		if p.convention == NegativeConvention {
			s = 2 - n
		}
	case policyExplicit:
		s = p.value
	}
	if s > n || s < -n {
		return 0, fmt.Errorf("S = %d with n = %d: %w", s, n, ErrSignatureRange)
	}
	if (n+s)%2 != 0 {
		return 0, fmt.Errorf("S = %d with n = %d: %w", s, n, ErrSignatureParity)
	}

	return s, nil
}

// Option configures a Metric at construction time.
type Option func(*Options)

// Options holds construction parameters for New.
type Options struct {
	// Signature selects S; default Riemannian().
	Signature SignaturePolicy

	// Latex is the display name; default is the metric name.
	Latex string

	// Logger receives debug events about cache builds and invalidations;
	// default zap.NewNop().
	Logger *zap.Logger
}

// DefaultOptions returns the Riemannian policy and a no-op logger.
func DefaultOptions() Options {
	return Options{Signature: Riemannian(), Logger: zap.NewNop()}
}

// WithSignature sets the signature policy.
func WithSignature(p SignaturePolicy) Option {
	return func(o *Options) {
		o.Signature = p
	}
}

// WithLatexName sets the display name.
func WithLatexName(latex string) Option {
	return func(o *Options) {
		o.Latex = latex
	}
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// NameOption names a derived tensor (Riemann, Ricci, Weyl, connection).
type NameOption func(*naming)

// naming holds the name pair of a derived tensor.
type naming struct {
	name  string
	latex string
}

// Name sets the name of a derived tensor.
func Name(name string) NameOption {
	return func(n *naming) {
		n.name = name
	}
}

// Latex sets the display name of a derived tensor.
func Latex(latex string) NameOption {
	return func(n *naming) {
		n.latex = latex
	}
}

// resolveNaming applies opts over the defaults.
func resolveNaming(name, latex string, opts []NameOption) naming {
	n := naming{name: name, latex: latex}
	for _, opt := range opts {
		opt(&n)
	}
	if n.latex == "" {
		n.latex = n.name
	}

	return n
}
