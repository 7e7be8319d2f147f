package query

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/amazing/internal/property"
)

// NegationMarker prefixes a token whose property must NOT hold.
const NegationMarker = "-"

// Token is a parsed request item.
type Token struct {
	Raw     string        // Token as supplied by the caller
	Negated bool          // Leading negation marker was present
	Name    property.Name // Canonical upper-case property name
}

// ParseToken strips one optional leading negation marker and canonicalizes
// the remainder to upper case.
func ParseToken(raw string) Token {
	s := strings.TrimSpace(raw)
	negated := strings.HasPrefix(s, NegationMarker)
	if negated {
		s = s[len(NegationMarker):]
	}

	// Casers carry state and are not safe to share between goroutines.
	upper := cases.Upper(language.Und)
	name := upper.String(norm.NFC.String(s))

	return Token{Raw: raw, Negated: negated, Name: property.Name(name)}
}

// ParseTokens parses every raw token in order.
// A nil input yields nil.
func ParseTokens(raws []string) []Token {
	if raws == nil {
		return nil
	}
	tokens := make([]Token, len(raws))
	for i, raw := range raws {
		tokens[i] = ParseToken(raw)
	}
	return tokens
}

// String renders the token in canonical form, e.g. "-EVEN".
func (t Token) String() string {
	if t.Negated {
		return NegationMarker + string(t.Name)
	}
	return string(t.Name)
}
