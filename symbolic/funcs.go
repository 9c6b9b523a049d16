// SPDX-License-Identifier: MIT

package symbolic

// negative reports whether the leading coefficient of e is negative; used to
// pull signs out of odd/even functions so that sin(−x) and −sin(x) share atoms.
func (e Expr) negative() bool {
	return len(e.num) > 0 && e.num[0].coef.Sign() < 0
}

// Sin returns sin(u).
func Sin(u Expr) Expr {
	if u.IsZero() {
		return Zero()
	}
	if u.negative() {
		return Sin(u.Neg()).Neg()
	}

	return reduced(funcAtom(kindSin, u))
}

// Cos returns cos(u).
func Cos(u Expr) Expr {
	if u.IsZero() {
		return One()
	}
	if u.negative() {
		return Cos(u.Neg())
	}

	return reduced(funcAtom(kindCos, u))
}

// Tan returns sin(u)/cos(u).
func Tan(u Expr) Expr { return Sin(u).Div(Cos(u)) }

// Sinh returns sinh(u).
func Sinh(u Expr) Expr {
	if u.IsZero() {
		return Zero()
	}
	if u.negative() {
		return Sinh(u.Neg()).Neg()
	}

	return reduced(funcAtom(kindSinh, u))
}

// Cosh returns cosh(u).
func Cosh(u Expr) Expr {
	if u.IsZero() {
		return One()
	}
	if u.negative() {
		return Cosh(u.Neg())
	}

	return reduced(funcAtom(kindCosh, u))
}

// Exp returns exp(u).
func Exp(u Expr) Expr {
	if u.IsZero() {
		return One()
	}

	return reduced(funcAtom(kindExp, u))
}

// Log returns the natural logarithm of u. Log of 1 is 0; any other argument
// becomes an atom.
func Log(u Expr) Expr {
	if u.IsOne() {
		return Zero()
	}

	return reduced(funcAtom(kindLog, u))
}

// reduced lifts an atom to a normalised expression.
func reduced(a *atom) Expr { return a.asExpr() }
