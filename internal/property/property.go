package property

import (
	"strings"
)

// Name is the canonical upper-case identifier of a property.
type Name string

// Catalog names.
const (
	Buzz        Name = "BUZZ"
	Duck        Name = "DUCK"
	Even        Name = "EVEN"
	Gapful      Name = "GAPFUL"
	Jumping     Name = "JUMPING"
	Odd         Name = "ODD"
	Palindromic Name = "PALINDROMIC"
	Spy         Name = "SPY"
	Square      Name = "SQUARE"
	Sunny       Name = "SUNNY"
	Happy       Name = "HAPPY"
	Sad         Name = "SAD"
)

// Rule is a pure predicate over an integer.
type Rule func(n int64) bool

// Property is an immutable named rule.
type Property struct {
	Name        Name
	Description string
	rule        Rule
}

// Test evaluates the property against n.
func (p Property) Test(n int64) bool {
	return p.rule(n)
}

// Lower returns the lower-case form used in rendered output.
func (p Property) Lower() string {
	return strings.ToLower(string(p.Name))
}

// Registry is the read-only property catalog.
type Registry struct {
	props []Property
	index map[Name]int
}

// NewRegistry builds the catalog in declaration order.
func NewRegistry() *Registry {
	square := Rule(isSquare)
	happy := Rule(isHappy)

	r := &Registry{index: make(map[Name]int)}
	r.add(Buzz, "divisible by 7 or ends with 7", isBuzz)
	r.add(Duck, "contains the digit 0", isDuck)
	r.add(Even, "divisible by 2", isEven)
	r.add(Gapful, "at least 3 digits and divisible by its first and last digit concatenated", isGapful)
	r.add(Jumping, "adjacent digits differ by exactly 1", isJumping)
	r.add(Odd, "not divisible by 2", isOdd)
	r.add(Palindromic, "reads the same backwards", isPalindromic)
	r.add(Spy, "sum of digits equals product of digits", isSpy)
	r.add(Square, "perfect square", square)
	r.add(Sunny, "next number is a perfect square", func(n int64) bool {
		if n == maxInt64 {
			return isSquareUint(uint64(n) + 1)
		}
		return square(n + 1)
	})
	r.add(Happy, "digit-square-sum iteration reaches 1", happy)
	r.add(Sad, "not happy", func(n int64) bool { return !happy(n) })
	return r
}

func (r *Registry) add(name Name, description string, rule Rule) {
	if _, dup := r.index[name]; dup {
		panic("property: duplicate property " + string(name))
	}
	r.index[name] = len(r.props)
	r.props = append(r.props, Property{Name: name, Description: description, rule: rule})
}

// Names returns the catalog names in declaration order.
// The returned slice is a copy.
func (r *Registry) Names() []Name {
	names := make([]Name, len(r.props))
	for i, p := range r.props {
		names[i] = p.Name
	}
	return names
}

// Strings returns the catalog names as plain strings in declaration order.
func (r *Registry) Strings() []string {
	names := make([]string, len(r.props))
	for i, p := range r.props {
		names[i] = string(p.Name)
	}
	return names
}

// All returns every property in declaration order.
// The returned slice is a copy.
func (r *Registry) All() []Property {
	out := make([]Property, len(r.props))
	copy(out, r.props)
	return out
}

// Exists reports whether name is in the catalog. name must already be in
// canonical upper-case form.
func (r *Registry) Exists(name Name) bool {
	_, ok := r.index[name]
	return ok
}

// Lookup returns the property registered under name.
func (r *Registry) Lookup(name Name) (Property, bool) {
	i, ok := r.index[name]
	if !ok {
		return Property{}, false
	}
	return r.props[i], true
}

// Evaluate tests the named property against n.
// Returns *UnknownPropertyError if name is not in the catalog.
func (r *Registry) Evaluate(name Name, n int64) (bool, error) {
	p, ok := r.Lookup(name)
	if !ok {
		return false, &UnknownPropertyError{
			Names:     []string{string(name)},
			Available: r.Strings(),
		}
	}
	return p.Test(n), nil
}

// True returns the properties that hold for n in declaration order.
func (r *Registry) True(n int64) []Property {
	var out []Property
	for _, p := range r.props {
		if p.Test(n) {
			out = append(out, p)
		}
	}
	return out
}
