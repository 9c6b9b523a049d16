// SPDX-License-Identifier: MIT

package symbolic

import (
	"math/big"
	"strconv"
	"strings"
)

// factor is one atom raised to a positive power inside a monomial.
type factor struct {
	key string
	exp int
}

// monomial is a product of atom powers sorted by atom key (ascending).
// The empty monomial is 1.
type monomial []factor

// ratOne returns a fresh 1.
func ratOne() *big.Rat { return big.NewRat(1, 1) }

// ratInt returns a fresh integer rational.
func ratInt(n int64) *big.Rat { return big.NewRat(n, 1) }

// id is a map key unique to the monomial.
func (m monomial) id() string {
	var sb strings.Builder
	for _, f := range m {
		sb.WriteString(f.key)
		sb.WriteByte('\x1f')
		sb.WriteString(strconv.Itoa(f.exp))
		sb.WriteByte('\x1e')
	}

	return sb.String()
}

// degree is the total degree.
func (m monomial) degree() int {
	d := 0
	for _, f := range m {
		d += f.exp
	}

	return d
}

// exponent returns the power of key in m (0 when absent).
func (m monomial) exponent(key string) int {
	for _, f := range m {
		if f.key == key {
			return f.exp
		}
	}

	return 0
}

// compareMono orders monomials lexicographically, atoms with smaller keys
// being more significant. Returns 1 if a > b, -1 if a < b, 0 if equal.
func compareMono(a, b monomial) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].key == b[j].key:
			if a[i].exp != b[j].exp {
				if a[i].exp > b[j].exp {
					return 1
				}
				return -1
			}
			i++
			j++
		case a[i].key < b[j].key:
			return 1
		default:
			return -1
		}
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	default:
		return 0
	}
}

// mulMono merges two monomials, adding exponents.
func mulMono(a, b monomial) monomial {
	out := make(monomial, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].key == b[j].key:
			out = append(out, factor{key: a[i].key, exp: a[i].exp + b[j].exp})
			i++
			j++
		case a[i].key < b[j].key:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)

	return out
}

// divMono returns a/b when b divides a.
func divMono(a, b monomial) (monomial, bool) {
	out := make(monomial, 0, len(a))
	j := 0
	for _, f := range a {
		if j < len(b) && b[j].key < f.key {
			return nil, false // b has an atom a lacks
		}
		if j < len(b) && b[j].key == f.key {
			switch {
			case b[j].exp > f.exp:
				return nil, false
			case b[j].exp < f.exp:
				out = append(out, factor{key: f.key, exp: f.exp - b[j].exp})
			}
			j++
			continue
		}
		out = append(out, f)
	}
	if j < len(b) {
		return nil, false
	}

	return out, true
}

// gcdMono is the componentwise minimum of exponents.
func gcdMono(a, b monomial) monomial {
	out := monomial{}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].key == b[j].key:
			e := a[i].exp
			if b[j].exp < e {
				e = b[j].exp
			}
			out = append(out, factor{key: a[i].key, exp: e})
			i++
			j++
		case a[i].key < b[j].key:
			i++
		default:
			j++
		}
	}

	return out
}

// without returns m with the power of key lowered by k (dropping the factor at 0).
func (m monomial) without(key string, k int) monomial {
	out := make(monomial, 0, len(m))
	for _, f := range m {
		if f.key == key {
			if f.exp > k {
				out = append(out, factor{key: key, exp: f.exp - k})
			}
			continue
		}
		out = append(out, f)
	}

	return out
}

// splitSquare writes m = even² · odd with every exponent of odd in {0,1}.
func (m monomial) splitSquare() (even, odd monomial) {
	for _, f := range m {
		if h := f.exp / 2; h > 0 {
			even = append(even, factor{key: f.key, exp: h})
		}
		if f.exp%2 == 1 {
			odd = append(odd, factor{key: f.key, exp: 1})
		}
	}

	return even, odd
}

// String renders the monomial as a product of powers; "" for 1.
func (m monomial) String() string {
	parts := make([]string, 0, len(m))
	for _, f := range m {
		if f.exp == 1 {
			parts = append(parts, f.key)
			continue
		}
		parts = append(parts, f.key+"^"+strconv.Itoa(f.exp))
	}

	return strings.Join(parts, "*")
}
