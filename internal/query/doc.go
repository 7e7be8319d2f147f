// Package query turns requested property tokens into a validated, combined
// predicate and executes single-number reports and forward scans.
//
// ARCHITECTURE:
//
//	[raw tokens] → ParseToken → Validate → Compile → [Predicate] → Scan
//
// Validate fails fast before any scan work begins. It reports every unknown
// property name at once (UnknownPropertyError), and only when all names are
// known does it look for contradictory combinations (MutuallyExclusiveError).
//
// PREDICATES:
//
// Predicate is a sealed interface using the marker method pattern. Only Is,
// Not and And implement it. An And with no operands is vacuously true, which
// is what an empty token list compiles to.
//
// SCAN LIMIT:
//
// A scan probes start, start+1, ... until count matches have been yielded.
// By default there is no upper bound: the scan keeps probing until the
// context is cancelled or math.MaxInt64 has been probed (ErrRangeExhausted).
// Validate rejects the combinations that are impossible by construction, but
// some valid combinations match very rarely (SPY with SQUARE), so callers
// that need bounded work set a probe budget with WithMaxProbes.
package query
