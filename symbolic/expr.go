// SPDX-License-Identifier: MIT

package symbolic

import (
	"fmt"
	"math/big"
)

// Expr is an exact symbolic scalar N/D. The zero value is the constant 0.
// A nil denominator stands for 1.
type Expr struct {
	num poly
	den poly
}

// Zero returns the exact zero expression.
func Zero() Expr { return Expr{} }

// One returns the constant 1.
func One() Expr { return Expr{num: onePoly()} }

// Int returns the integer constant n.
func Int(n int64) Expr { return Expr{num: constPoly(ratInt(n))} }

// Rat returns the rational constant a/b. It panics when b == 0.
func Rat(a, b int64) Expr {
	if b == 0 {
		panic(ErrDivisionByZero)
	}

	return Expr{num: constPoly(big.NewRat(a, b))}
}

// FromRat returns the constant c.
func FromRat(c *big.Rat) Expr { return Expr{num: constPoly(c)} }

// NewSymbol returns the atom expression for a coordinate or parameter name.
func NewSymbol(name string) (Expr, error) {
	if !validSymbolName(name) {
		return Expr{}, fmt.Errorf("NewSymbol(%q): %w", name, ErrBadSymbol)
	}

	return symbolAtom(name).asExpr(), nil
}

// Sym is NewSymbol for literal names; it panics on an invalid name.
func Sym(name string) Expr {
	e, err := NewSymbol(name)
	if err != nil {
		panic(err)
	}

	return e
}

// Symbols returns one symbol per name, in order.
func Symbols(names ...string) []Expr {
	out := make([]Expr, len(names))
	for i, n := range names {
		out[i] = Sym(n)
	}

	return out
}

// denom returns the denominator polynomial (1 when absent).
func (e Expr) denom() poly {
	if e.den == nil {
		return onePoly()
	}

	return e.den
}

// IsZero reports whether e is identically zero. Thanks to the normal form this
// is a structural test on the numerator.
func (e Expr) IsZero() bool { return len(e.num) == 0 }

// IsConst reports whether e contains no atom.
func (e Expr) IsConst() bool { return e.num.isConst() && e.den.isConst() }

// IsOne reports e == 1.
func (e Expr) IsOne() bool { return e.den == nil && e.num.isOne() }

// Rational returns the value of a constant expression.
func (e Expr) Rational() (*big.Rat, bool) {
	if !e.IsConst() {
		return nil, false
	}
	v := e.num.constValue()
	if e.den != nil {
		v.Quo(v, e.den.constValue())
	}

	return v, true
}

// Equal reports whether e − o is identically zero.
func (e Expr) Equal(o Expr) bool { return e.Sub(o).IsZero() }

// Neg returns −e.
func (e Expr) Neg() Expr {
	return Expr{num: scalePoly(e.num, ratInt(-1)), den: e.den}
}

// Add returns e + o, reusing a shared denominator when one divides the other.
func (e Expr) Add(o Expr) Expr {
	switch {
	case e.IsZero():
		return o
	case o.IsZero():
		return e
	case e.den == nil && o.den == nil:
		return normalize(addPoly(e.num, o.num, 1), nil)
	}
	d1, d2 := e.denom(), o.denom()
	if d1.equal(d2) {
		return normalize(addPoly(e.num, o.num, 1), d1)
	}
	if q, ok := divExact(d1, d2); ok {
		return normalize(addPoly(e.num, mulPoly(o.num, q), 1), d1)
	}
	if q, ok := divExact(d2, d1); ok {
		return normalize(addPoly(mulPoly(e.num, q), o.num, 1), d2)
	}

	return normalize(addPoly(mulPoly(e.num, d2), mulPoly(o.num, d1), 1), mulPoly(d1, d2))
}

// Sub returns e − o.
func (e Expr) Sub(o Expr) Expr { return e.Add(o.Neg()) }

// Mul returns e·o, cancelling across numerators and denominators first.
func (e Expr) Mul(o Expr) Expr {
	if e.IsZero() || o.IsZero() {
		return Expr{}
	}
	n1, d1, n2, d2 := e.num, e.denom(), o.num, o.denom()
	n1, d2 = crossCancel(n1, d2)
	n2, d1 = crossCancel(n2, d1)

	return normalize(mulPoly(n1, n2), mulPoly(d1, d2))
}

// crossCancel removes d from n (or n from d) when one exactly divides the other.
func crossCancel(n, d poly) (poly, poly) {
	if d.isConst() || n.isConst() {
		return n, d
	}
	if q, ok := divExact(n, d); ok {
		return q, onePoly()
	}
	if q, ok := divExact(d, n); ok {
		return onePoly(), q
	}

	return n, d
}

// Div returns e/o. It panics with ErrDivisionByZero when o is zero.
func (e Expr) Div(o Expr) Expr {
	if o.IsZero() {
		panic(ErrDivisionByZero)
	}

	return e.Mul(o.Inv())
}

// Inv returns 1/e. It panics with ErrDivisionByZero when e is zero.
func (e Expr) Inv() Expr {
	if e.IsZero() {
		panic(ErrDivisionByZero)
	}

	return normalize(e.denom(), e.num)
}

// Pow returns e^k for any integer k (k < 0 inverts).
func (e Expr) Pow(k int) Expr {
	if k < 0 {
		return e.Inv().Pow(-k)
	}
	if k == 0 {
		return One()
	}
	if e.den == nil {
		return normalize(powPoly(e.num, k), nil)
	}

	return normalize(powPoly(e.num, k), powPoly(e.den, k))
}

// Scale multiplies e by the rational c.
func (e Expr) Scale(c *big.Rat) Expr {
	if c.Sign() == 0 {
		return Expr{}
	}

	return Expr{num: scalePoly(e.num, c), den: e.den}
}

// Simplify returns the normal form of e. Arithmetic already keeps expressions
// normalised, so this is mostly useful after building from parts.
func (e Expr) Simplify() Expr { return normalize(e.num, e.den) }

// DependsOn reports whether e varies with the named symbol.
func (e Expr) DependsOn(name string) bool {
	return e.num.dependsOn(name) || e.den.dependsOn(name)
}

// String renders e deterministically; it doubles as the intern key of atoms.
func (e Expr) String() string {
	if e.den == nil {
		return e.num.String()
	}
	n, d := e.num.String(), e.den.String()
	if len(e.num) > 1 {
		n = "(" + n + ")"
	}
	if len(e.den) > 1 || len(e.den[0].mono) > 1 || (len(e.den[0].mono) == 1 && e.den[0].coef.Cmp(ratOne()) != 0) {
		d = "(" + d + ")"
	}

	return n + "/" + d
}

// normalize brings N/D to the normal form described in the package doc.
//
// Implementation:
//   - Stage 1: apply square rewrite rules to N and D.
//   - Stage 2: cancel the common monomial content of N and D.
//   - Stage 3: make D monic; drop D when it is the constant 1.
//   - Stage 4: attempt exact polynomial division N/D, then D/N.
func normalize(num, den poly) Expr {
	// Stage 1: rewrite rules
	num = reduce(num)
	if len(num) == 0 {
		return Expr{}
	}
	if den == nil {
		return Expr{num: num}
	}
	den = reduce(den)
	if len(den) == 0 {
		panic(ErrDivisionByZero)
	}

	// Stage 2: monomial content
	g := gcdMono(contentMono(num), contentMono(den))
	num, den = divByMono(num, g), divByMono(den, g)

	// Stage 3: monic denominator
	if lc := den[0].coef; lc.Cmp(ratOne()) != 0 {
		inv := new(big.Rat).Inv(lc)
		num, den = scalePoly(num, inv), scalePoly(den, inv)
	}
	if den.isOne() {
		return Expr{num: num}
	}

	// Stage 4: exact division
	if q, ok := divExact(num, den); ok {
		return Expr{num: reduce(q)}
	}
	if !num.isConst() {
		if q, ok := divExact(den, num); ok {
			q = reduce(q)
			if q.isConst() {
				return Expr{num: constPoly(new(big.Rat).Inv(q.constValue()))}
			}
			inv := new(big.Rat).Inv(q[0].coef)
			return Expr{num: constPoly(inv), den: scalePoly(q, inv)}
		}
	}

	return Expr{num: num, den: den}
}
