// Package property provides the fixed catalog of named number properties.
//
// A Property is a pure predicate over an int64. The catalog is built once by
// NewRegistry and never mutated afterwards, so a single *Registry may be
// shared by any number of goroutines without locking.
//
// CATALOG ORDER:
//
// Names() returns the declaration order. Reports, match rendering and the
// "available properties" hint all use it:
//
//	BUZZ, DUCK, EVEN, GAPFUL, JUMPING, ODD, PALINDROMIC,
//	SPY, SQUARE, SUNNY, HAPPY, SAD
//
// The digit and parity rules come first, alphabetically; the composite
// pairs SQUARE/SUNNY and HAPPY/SAD close the list.
//
// COMPOSITE RULES:
//
// SUNNY is defined through SQUARE and SAD through HAPPY. Both are wired as
// direct calls to the already-constructed rule during NewRegistry, never
// by looking a name up at evaluation time.
//
// DIGITS:
//
// Digit-based rules read the decimal digits of |n|, most significant first.
// math.MinInt64 is handled through its uint64 magnitude.
package property
