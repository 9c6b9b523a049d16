// SPDX-License-Identifier: MIT

package symbolic

import "math/big"

// Diff returns the partial derivative ∂e/∂name, treating every other symbol
// as independent of name.
func (e Expr) Diff(name string) Expr {
	if !e.DependsOn(name) {
		return Zero()
	}
	dn := diffPoly(e.num, name)
	if e.den == nil {
		return dn
	}
	n, d := Expr{num: e.num}, Expr{num: e.den}
	dd := diffPoly(e.den, name)

	// (N'·D − N·D') / D²
	return dn.Mul(d).Sub(n.Mul(dd)).Div(d.Mul(d))
}

// diffPoly differentiates a polynomial term by term with the chain rule.
func diffPoly(p poly, name string) Expr {
	out := Zero()
	for _, t := range p {
		for _, f := range t.mono {
			a := lookup(f.key)
			if a == nil || !a.dependsOn(name) {
				continue
			}
			da := diffAtom(a, name)
			if da.IsZero() {
				continue
			}
			c := new(big.Rat).Mul(t.coef, ratInt(int64(f.exp)))
			rest := Expr{num: poly{{mono: t.mono.without(f.key, 1), coef: c}}}
			out = out.Add(rest.Mul(da))
		}
	}

	return out
}

// diffAtom is d(atom)/d(name).
func diffAtom(a *atom, name string) Expr {
	switch a.kind {
	case kindSymbol:
		if a.name == name {
			return One()
		}
		return Zero()
	case kindSin:
		return Cos(a.arg).Mul(a.arg.Diff(name))
	case kindCos:
		return Sin(a.arg).Mul(a.arg.Diff(name)).Neg()
	case kindSinh:
		return Cosh(a.arg).Mul(a.arg.Diff(name))
	case kindCosh:
		return Sinh(a.arg).Mul(a.arg.Diff(name))
	case kindExp:
		return a.asExpr().Mul(a.arg.Diff(name))
	case kindLog:
		return a.arg.Diff(name).Div(a.arg)
	case kindSqrt:
		// (√p)' = p'·√p / (2p)
		p := Expr{num: a.radicand}
		return p.Diff(name).Mul(a.asExpr()).Div(p.Scale(ratInt(2)))
	default:
		return Zero()
	}
}

// Subs replaces symbols by expressions simultaneously, including inside
// function arguments and radicands.
func (e Expr) Subs(values map[string]Expr) Expr {
	if len(values) == 0 || e.IsZero() {
		return e
	}
	num := substPoly(e.num, values)
	if e.den == nil {
		return num
	}

	return num.Div(substPoly(e.den, values))
}

// SubsOne is Subs for a single symbol.
func (e Expr) SubsOne(name string, value Expr) Expr {
	return e.Subs(map[string]Expr{name: value})
}

// substPoly evaluates p with atoms replaced by their substituted values.
func substPoly(p poly, values map[string]Expr) Expr {
	cache := make(map[string]Expr)
	out := Zero()
	for _, t := range p {
		v := FromRat(t.coef)
		for _, f := range t.mono {
			av, ok := cache[f.key]
			if !ok {
				av = substAtom(lookup(f.key), values)
				cache[f.key] = av
			}
			v = v.Mul(av.Pow(f.exp))
		}
		out = out.Add(v)
	}

	return out
}

// substAtom rebuilds one atom after substitution.
func substAtom(a *atom, values map[string]Expr) Expr {
	switch a.kind {
	case kindSymbol:
		if v, ok := values[a.name]; ok {
			return v
		}
		return a.asExpr()
	case kindSin:
		return Sin(a.arg.Subs(values))
	case kindCos:
		return Cos(a.arg.Subs(values))
	case kindSinh:
		return Sinh(a.arg.Subs(values))
	case kindCosh:
		return Cosh(a.arg.Subs(values))
	case kindExp:
		return Exp(a.arg.Subs(values))
	case kindLog:
		return Log(a.arg.Subs(values))
	case kindSqrt:
		return substPoly(a.radicand, values).Sqrt()
	default:
		return a.asExpr()
	}
}
