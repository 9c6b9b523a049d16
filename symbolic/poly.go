// SPDX-License-Identifier: MIT

package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

// term is coef·mono with a non-zero coefficient.
type term struct {
	mono monomial
	coef *big.Rat
}

// poly is a sum of terms sorted by decreasing monomial, with unique monomials
// and no zero coefficients. The empty poly is 0.
type poly []term

// maxDivisionSteps bounds exact division; exceeding it reports "not divisible".
const maxDivisionSteps = 1 << 14

// constPoly builds the constant polynomial c (empty for c == 0).
func constPoly(c *big.Rat) poly {
	if c.Sign() == 0 {
		return nil
	}

	return poly{{mono: nil, coef: new(big.Rat).Set(c)}}
}

// onePoly is the constant 1.
func onePoly() poly { return poly{{mono: nil, coef: ratOne()}} }

// sorted orders the terms by decreasing monomial in place and returns p.
func (p poly) sorted() poly {
	sort.Slice(p, func(i, j int) bool { return compareMono(p[i].mono, p[j].mono) > 0 })

	return p
}

// isConst reports whether p has no atom (0 included).
func (p poly) isConst() bool {
	return len(p) == 0 || (len(p) == 1 && len(p[0].mono) == 0)
}

// isOne reports p == 1.
func (p poly) isOne() bool {
	return len(p) == 1 && len(p[0].mono) == 0 && p[0].coef.Cmp(ratOne()) == 0
}

// constValue returns the constant term of a constant polynomial.
func (p poly) constValue() *big.Rat {
	if len(p) == 0 {
		return new(big.Rat)
	}

	return new(big.Rat).Set(p[0].coef)
}

// equal compares two normalised polynomials.
func (p poly) equal(q poly) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if compareMono(p[i].mono, q[i].mono) != 0 || p[i].coef.Cmp(q[i].coef) != 0 {
			return false
		}
	}

	return true
}

// collect sums terms sharing a monomial and drops zeros.
func collect(terms []term) poly {
	acc := make(map[string]*term, len(terms))
	order := make([]string, 0, len(terms))
	for _, t := range terms {
		id := t.mono.id()
		if cur, ok := acc[id]; ok {
			cur.coef = new(big.Rat).Add(cur.coef, t.coef)
			continue
		}
		acc[id] = &term{mono: t.mono, coef: new(big.Rat).Set(t.coef)}
		order = append(order, id)
	}
	out := make(poly, 0, len(order))
	for _, id := range order {
		if t := acc[id]; t.coef.Sign() != 0 {
			out = append(out, *t)
		}
	}

	return out.sorted()
}

// addPoly returns p + sign·q by merging the sorted term lists.
func addPoly(p, q poly, sign int) poly {
	out := make(poly, 0, len(p)+len(q))
	i, j := 0, 0
	for i < len(p) && j < len(q) {
		switch c := compareMono(p[i].mono, q[j].mono); {
		case c > 0:
			out = append(out, p[i])
			i++
		case c < 0:
			out = append(out, term{mono: q[j].mono, coef: signed(q[j].coef, sign)})
			j++
		default:
			s := signed(q[j].coef, sign)
			s.Add(s, p[i].coef)
			if s.Sign() != 0 {
				out = append(out, term{mono: p[i].mono, coef: s})
			}
			i++
			j++
		}
	}
	out = append(out, p[i:]...)
	for ; j < len(q); j++ {
		out = append(out, term{mono: q[j].mono, coef: signed(q[j].coef, sign)})
	}

	return out
}

// signed returns a fresh copy of c multiplied by sign (±1).
func signed(c *big.Rat, sign int) *big.Rat {
	out := new(big.Rat).Set(c)
	if sign < 0 {
		out.Neg(out)
	}

	return out
}

// scalePoly multiplies every coefficient by c.
func scalePoly(p poly, c *big.Rat) poly {
	if c.Sign() == 0 {
		return nil
	}
	out := make(poly, len(p))
	for i, t := range p {
		out[i] = term{mono: t.mono, coef: new(big.Rat).Mul(t.coef, c)}
	}

	return out
}

// mulTerm multiplies p by a single term; monomial order is preserved.
func mulTerm(p poly, t term) poly {
	out := make(poly, len(p))
	for i, s := range p {
		out[i] = term{mono: mulMono(s.mono, t.mono), coef: new(big.Rat).Mul(s.coef, t.coef)}
	}

	return out
}

// mulPoly is the plain product in the polynomial ring (no rewriting).
func mulPoly(p, q poly) poly {
	if len(p) == 0 || len(q) == 0 {
		return nil
	}
	if len(p) == 1 {
		return mulTerm(q, p[0])
	}
	if len(q) == 1 {
		return mulTerm(p, q[0])
	}
	terms := make([]term, 0, len(p)*len(q))
	for _, a := range p {
		for _, b := range q {
			terms = append(terms, term{mono: mulMono(a.mono, b.mono), coef: new(big.Rat).Mul(a.coef, b.coef)})
		}
	}

	return collect(terms)
}

// powPoly raises p to k ≥ 0 by repeated squaring.
func powPoly(p poly, k int) poly {
	out := onePoly()
	base := p
	for k > 0 {
		if k&1 == 1 {
			out = reduce(mulPoly(out, base))
		}
		k >>= 1
		if k > 0 {
			base = reduce(mulPoly(base, base))
		}
	}

	return out
}

// divExact returns q with p = q·d in the polynomial ring, or false when d does
// not divide p. Division by the leading term is exact for a monomial order, so
// the first non-divisible leading term proves non-divisibility.
func divExact(p, d poly) (poly, bool) {
	if len(d) == 0 {
		return nil, false
	}
	var q []term
	rem := p
	for steps := 0; len(rem) > 0; steps++ {
		if steps > maxDivisionSteps {
			return nil, false
		}
		m, ok := divMono(rem[0].mono, d[0].mono)
		if !ok {
			return nil, false
		}
		t := term{mono: m, coef: new(big.Rat).Quo(rem[0].coef, d[0].coef)}
		q = append(q, t)
		rem = addPoly(rem, mulTerm(d, t), -1)
	}

	return collect(q), true
}

// contentMono is the gcd of all monomials of p (nil for p == 0).
func contentMono(p poly) monomial {
	if len(p) == 0 {
		return nil
	}
	g := p[0].mono
	for _, t := range p[1:] {
		if len(g) == 0 {
			break
		}
		g = gcdMono(g, t.mono)
	}

	return g
}

// divByMono divides every term by a monomial known to divide all of them.
func divByMono(p poly, m monomial) poly {
	if len(m) == 0 {
		return p
	}
	out := make(poly, len(p))
	for i, t := range p {
		q, _ := divMono(t.mono, m)
		out[i] = term{mono: q, coef: t.coef}
	}

	return out
}

// reduce applies the square rewrite rules until no monomial carries a
// reducible atom to a power ≥ 2, and folds the exponentials of a monomial
// into a single exp atom.
func reduce(p poly) poly {
	for {
		changed := false
		terms := make([]term, 0, len(p))
		for _, t := range p {
			if merged, ok := mergeExp(t); ok {
				changed = true
				terms = append(terms, merged...)
				continue
			}
			key, rule := reducibleFactor(t.mono)
			if rule == nil {
				terms = append(terms, t)
				continue
			}
			changed = true
			rest := term{mono: t.mono.without(key, 2), coef: t.coef}
			terms = append(terms, mulTerm(rule, rest)...)
		}
		if !changed {
			return p
		}
		p = collect(terms)
	}
}

// mergeExp rewrites exp(u)^a·exp(v)^b·rest as exp(a·u + b·v)·rest. It
// reports false when t has at most one exp factor, of power 1.
func mergeExp(t term) ([]term, bool) {
	var (
		count, power int
		arg          Expr
		rest         = make(monomial, 0, len(t.mono))
	)
	for _, f := range t.mono {
		a := lookup(f.key)
		if a == nil || a.kind != kindExp {
			rest = append(rest, f)
			continue
		}
		count++
		power += f.exp
		arg = arg.Add(Int(int64(f.exp)).Mul(a.arg))
	}
	if count == 0 || (count == 1 && power == 1) {
		return nil, false
	}
	e := Exp(arg)

	return mulTerm(e.num, term{mono: rest, coef: t.coef}), true
}

// reducibleFactor finds the first atom of m with exponent ≥ 2 that has a
// square rule.
func reducibleFactor(m monomial) (string, poly) {
	for _, f := range m {
		if f.exp < 2 {
			continue
		}
		a := lookup(f.key)
		if a == nil {
			continue
		}
		if rule, ok := a.squareRule(); ok {
			return f.key, rule
		}
	}

	return "", nil
}

// dependsOn reports whether any atom of p varies with name.
func (p poly) dependsOn(name string) bool {
	for _, t := range p {
		for _, f := range t.mono {
			if a := lookup(f.key); a != nil && a.dependsOn(name) {
				return true
			}
		}
	}

	return false
}

// String renders the polynomial in decreasing monomial order.
func (p poly) String() string {
	if len(p) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range p {
		c := new(big.Rat).Set(t.coef)
		switch {
		case i == 0 && c.Sign() < 0:
			sb.WriteString("-")
			c.Neg(c)
		case i > 0 && c.Sign() < 0:
			sb.WriteString(" - ")
			c.Neg(c)
		case i > 0:
			sb.WriteString(" + ")
		}
		ms := t.mono.String()
		switch {
		case ms == "":
			sb.WriteString(c.RatString())
		case c.Cmp(ratOne()) == 0:
			sb.WriteString(ms)
		default:
			sb.WriteString(c.RatString())
			sb.WriteString("*")
			sb.WriteString(ms)
		}
	}

	return sb.String()
}
