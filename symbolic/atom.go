// SPDX-License-Identifier: MIT

package symbolic

import (
	"strings"
	"sync"
)

// atomKind tags the generator of the polynomial ring an atom stands for.
type atomKind uint8

const (
	kindSymbol atomKind = iota
	kindSin
	kindCos
	kindSinh
	kindCosh
	kindExp
	kindLog
	kindSqrt
)

// funcNames maps function atom kinds to their printed names.
var funcNames = map[atomKind]string{
	kindSin:  "sin",
	kindCos:  "cos",
	kindSinh: "sinh",
	kindCosh: "cosh",
	kindExp:  "exp",
	kindLog:  "log",
	kindSqrt: "sqrt",
}

// atom is an interned ring generator. Atoms are identified by key, which is
// also their printed form.
type atom struct {
	kind     atomKind
	name     string // kindSymbol only
	arg      Expr   // elementary functions
	radicand poly   // kindSqrt only; never a perfect square monomial
	key      string
}

// registry interns atoms so that monomials can refer to them by key.
var registry = struct {
	sync.RWMutex
	atoms map[string]*atom
}{atoms: make(map[string]*atom)}

// intern returns the canonical atom for a.key, registering a on first sight.
func intern(a *atom) *atom {
	registry.RLock()
	got, ok := registry.atoms[a.key]
	registry.RUnlock()
	if ok {
		return got
	}
	registry.Lock()
	defer registry.Unlock()
	if got, ok = registry.atoms[a.key]; ok {
		return got
	}
	registry.atoms[a.key] = a

	return a
}

// lookup fetches an interned atom. Keys found in monomials are always interned.
func lookup(key string) *atom {
	registry.RLock()
	defer registry.RUnlock()

	return registry.atoms[key]
}

// symbolAtom interns a coordinate/parameter symbol.
func symbolAtom(name string) *atom {
	return intern(&atom{kind: kindSymbol, name: name, key: name})
}

// funcAtom interns f(arg) for an elementary function kind.
func funcAtom(kind atomKind, arg Expr) *atom {
	key := funcNames[kind] + "(" + arg.String() + ")"

	return intern(&atom{kind: kind, arg: arg, key: key})
}

// sqrtAtom interns sqrt(p) for a polynomial radicand.
func sqrtAtom(p poly) *atom {
	key := "sqrt(" + p.String() + ")"

	return intern(&atom{kind: kindSqrt, radicand: p, key: key})
}

// asExpr lifts the atom to the expression consisting of the atom alone.
func (a *atom) asExpr() Expr {
	return Expr{num: poly{{mono: monomial{{key: a.key, exp: 1}}, coef: ratOne()}}}
}

// squareRule returns the polynomial that a² rewrites to, if a has one.
func (a *atom) squareRule() (poly, bool) {
	switch a.kind {
	case kindCos:
		s := funcAtom(kindSin, a.arg)
		return poly{
			{mono: nil, coef: ratOne()},
			{mono: monomial{{key: s.key, exp: 2}}, coef: ratInt(-1)},
		}.sorted(), true
	case kindCosh:
		s := funcAtom(kindSinh, a.arg)
		return poly{
			{mono: nil, coef: ratOne()},
			{mono: monomial{{key: s.key, exp: 2}}, coef: ratOne()},
		}.sorted(), true
	case kindSqrt:
		return a.radicand, true
	default:
		return nil, false
	}
}

// dependsOn reports whether the atom varies with the named symbol.
func (a *atom) dependsOn(name string) bool {
	switch a.kind {
	case kindSymbol:
		return a.name == name
	case kindSqrt:
		return a.radicand.dependsOn(name)
	default:
		return a.arg.DependsOn(name)
	}
}

// validSymbolName rejects names that would collide with function keys or
// printed operators.
func validSymbolName(name string) bool {
	if name == "" {
		return false
	}

	return !strings.ContainsAny(name, "()*/+-^, \t\n")
}
