// SPDX-License-Identifier: MIT

package symbolic

import "math/big"

// trialDivisionLimit bounds the search for square factors of integers.
const trialDivisionLimit = 1 << 16

// Sqrt returns the principal square root of e.
//
// Implementation:
//   - Stage 1: treat numerator and denominator separately.
//   - Stage 2: for a single term, extract square rational factors and even atom
//     powers; the rest goes under one sqrt atom.
//   - Stage 3: for a sum, extract the even part of the monomial content; the
//     remaining polynomial becomes the radicand unchanged.
//
// Atoms are assumed positive, so sqrt(x²) = x.
func (e Expr) Sqrt() Expr {
	if e.IsZero() {
		return Zero()
	}
	root := sqrtPoly(e.num)
	if e.den == nil {
		return root
	}

	return root.Div(sqrtPoly(e.den))
}

// Sqrt is the function form of Expr.Sqrt.
func Sqrt(e Expr) Expr { return e.Sqrt() }

// sqrtPoly returns sqrt(p) for a non-zero polynomial.
func sqrtPoly(p poly) Expr {
	if len(p) == 1 {
		t := p[0]
		even, odd := t.mono.splitSquare()
		outer, inner := sqrtRat(t.coef)
		res := Expr{num: poly{{mono: even, coef: outer}}}
		rest := poly{{mono: odd, coef: inner}}
		if rest.isOne() {
			return res
		}

		return res.Mul(sqrtAtom(rest).asExpr())
	}
	even, _ := contentMono(p).splitSquare()
	rest := divByMono(p, mulMono(even, even))
	res := Expr{num: poly{{mono: even, coef: ratOne()}}}

	return res.Mul(sqrtAtom(rest).asExpr())
}

// sqrtRat writes sqrt(c) = outer·sqrt(inner) with inner a square-free integer
// (sign included) as far as trial division can tell.
func sqrtRat(c *big.Rat) (outer, inner *big.Rat) {
	// sqrt(a/b) = sqrt(a·b)/b
	k := new(big.Int).Mul(c.Num(), c.Denom())
	sign := k.Sign()
	k.Abs(k)
	square := big.NewInt(1)
	p := big.NewInt(2)
	sq := new(big.Int)
	rem := new(big.Int)
	for p.Cmp(big.NewInt(trialDivisionLimit)) <= 0 {
		sq.Mul(p, p)
		if sq.Cmp(k) > 0 {
			break
		}
		for {
			q, r := new(big.Int).QuoRem(k, sq, rem)
			if r.Sign() != 0 {
				break
			}
			k = q
			square.Mul(square, p)
		}
		p.Add(p, big.NewInt(1))
	}
	if k.IsInt64() && isPerfectSquare(k) {
		r := new(big.Int).Sqrt(k)
		square.Mul(square, r)
		k.SetInt64(1)
	}
	if sign < 0 {
		k.Neg(k)
	}
	outer = new(big.Rat).SetFrac(square, c.Denom())
	inner = new(big.Rat).SetInt(k)

	return outer, inner
}

// isPerfectSquare reports whether k ≥ 0 is a square.
func isPerfectSquare(k *big.Int) bool {
	r := new(big.Int).Sqrt(k)

	return new(big.Int).Mul(r, r).Cmp(k) == 0
}
