package query

import (
	"github.com/roach88/amazing/internal/property"
)

// exclusivePairs lists properties that can never hold together. Each pair
// is also contradictory when both members are negated.
var exclusivePairs = [][2]property.Name{
	{property.Even, property.Odd},
	{property.Sunny, property.Square},
	{property.Duck, property.Spy},
}

// Validate checks tokens against reg.
//
// Unknown names are collected first, in request order with repeats kept;
// if any exist *property.UnknownPropertyError is returned and no exclusion
// check is run. Otherwise the token set is rejected with
// *MutuallyExclusiveError when it contains a pair from exclusivePairs with
// the same polarity, or the same property both plain and negated.
//
// Validate is a pure function with no side effects.
func Validate(reg *property.Registry, tokens []Token) error {
	if err := checkUnknown(reg, tokens); err != nil {
		return err
	}
	return checkExclusive(tokens)
}

func checkUnknown(reg *property.Registry, tokens []Token) error {
	var unknown []string
	for _, tok := range tokens {
		if !reg.Exists(tok.Name) {
			unknown = append(unknown, string(tok.Name))
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	return &property.UnknownPropertyError{Names: unknown, Available: reg.Strings()}
}

func checkExclusive(tokens []Token) error {
	type key struct {
		name    property.Name
		negated bool
	}
	present := make(map[key]bool, len(tokens))
	for _, tok := range tokens {
		present[key{tok.Name, tok.Negated}] = true
	}

	c := &conflicts{seen: make(map[string]bool)}

	for _, pair := range exclusivePairs {
		for _, negated := range []bool{false, true} {
			a, b := key{pair[0], negated}, key{pair[1], negated}
			if present[a] && present[b] {
				c.add(Token{Name: a.name, Negated: negated}, Token{Name: b.name, Negated: negated})
			}
		}
	}

	for _, tok := range tokens {
		if !tok.Negated && present[key{tok.Name, true}] {
			c.add(Token{Name: tok.Name}, Token{Name: tok.Name, Negated: true})
		}
	}

	if len(c.names) == 0 {
		return nil
	}
	return &MutuallyExclusiveError{Names: c.names}
}

// conflicts accumulates conflicting token names without duplicates.
type conflicts struct {
	names []string
	seen  map[string]bool
}

func (c *conflicts) add(tokens ...Token) {
	for _, tok := range tokens {
		s := tok.String()
		if c.seen[s] {
			continue
		}
		c.seen[s] = true
		c.names = append(c.names, s)
	}
}
