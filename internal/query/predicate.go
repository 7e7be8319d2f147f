package query

import (
	"strings"

	"github.com/roach88/amazing/internal/property"
)

// Predicate is a compiled filter over integers.
//
// This is a sealed interface - only types in this package implement it.
//
// Predicate types:
//   - Is: a catalog property holds
//   - Not: the operand does not hold
//   - And: all operands hold (empty = always true)
type Predicate interface {
	Match(n int64) bool
	String() string
	predicateNode() // Marker method - seals interface to this package
}

// Always is the predicate an empty token list compiles to.
var Always Predicate = And{}

// Is holds when the wrapped property holds.
type Is struct {
	Property property.Property
}

func (Is) predicateNode() {}

// Match implements Predicate.
func (p Is) Match(n int64) bool {
	return p.Property.Test(n)
}

func (p Is) String() string {
	return string(p.Property.Name)
}

// Not negates its operand.
type Not struct {
	Predicate Predicate
}

func (Not) predicateNode() {}

// Match implements Predicate.
func (p Not) Match(n int64) bool {
	return !p.Predicate.Match(n)
}

func (p Not) String() string {
	return "NOT " + p.Predicate.String()
}

// And is a conjunction evaluated left to right with short-circuiting.
// Operand order never changes the result.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Match implements Predicate.
func (p And) Match(n int64) bool {
	for _, sub := range p.Predicates {
		if !sub.Match(n) {
			return false
		}
	}
	return true
}

func (p And) String() string {
	if len(p.Predicates) == 0 {
		return "TRUE"
	}
	parts := make([]string, len(p.Predicates))
	for i, sub := range p.Predicates {
		parts[i] = sub.String()
	}
	return strings.Join(parts, " AND ")
}

// Compile builds the conjunction of tokens in request order.
// Returns *property.UnknownPropertyError listing every name missing from reg.
// Compile does not check for mutually exclusive tokens; call Validate first.
func Compile(reg *property.Registry, tokens []Token) (Predicate, error) {
	preds := make([]Predicate, 0, len(tokens))
	var unknown []string
	for _, tok := range tokens {
		prop, ok := reg.Lookup(tok.Name)
		if !ok {
			unknown = append(unknown, string(tok.Name))
			continue
		}
		var p Predicate = Is{Property: prop}
		if tok.Negated {
			p = Not{Predicate: p}
		}
		preds = append(preds, p)
	}
	if len(unknown) > 0 {
		return nil, &property.UnknownPropertyError{Names: unknown, Available: reg.Strings()}
	}
	return And{Predicates: preds}, nil
}
