package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/amazing/internal/property"
)

// Error codes (E200-E299).
const (
	ErrCodeInvalidArgument   = "E201" // negative number or count
	ErrCodeUnknownProperty   = property.ErrCodeUnknownProperty
	ErrCodeMutuallyExclusive = "E203" // contradictory token combination
	ErrCodeRangeExhausted    = "E204" // scan ran past math.MaxInt64
	ErrCodeProbeLimit        = "E205" // scan used up its probe budget
)

// Argument names carried by InvalidArgumentError.
const (
	ArgNumber = "number"
	ArgCount  = "count"
)

// ErrRangeExhausted is yielded by a scan that probed math.MaxInt64 without
// collecting the requested number of matches.
var ErrRangeExhausted = errors.New("scan reached the largest representable number")

// InvalidArgumentError reports a negative start number or count.
type InvalidArgumentError struct {
	Argument string // ArgNumber or ArgCount
	Value    int64
}

// Code returns the error code.
func (e *InvalidArgumentError) Code() string {
	return ErrCodeInvalidArgument
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	if e.Argument == ArgCount {
		return "The second parameter should be a natural number."
	}
	return "The first parameter should be a natural number or zero."
}

// MutuallyExclusiveError reports a token set that no number can satisfy.
// Names lists every token that took part in a conflict, rendered in
// canonical form ("EVEN", "-ODD").
type MutuallyExclusiveError struct {
	Names []string
}

// Code returns the error code.
func (e *MutuallyExclusiveError) Code() string {
	return ErrCodeMutuallyExclusive
}

// Error implements the error interface.
func (e *MutuallyExclusiveError) Error() string {
	return fmt.Sprintf("The request contains mutually exclusive properties: [%s]", strings.Join(e.Names, ", "))
}

// Hint explains the consequence of the conflict.
func (e *MutuallyExclusiveError) Hint() string {
	return "There are no numbers with these properties."
}

// ProbeLimitError reports a scan that tested its whole probe budget without
// collecting enough matches.
type ProbeLimitError struct {
	Start  int64
	Probes int64
	Limit  int64
}

// Code returns the error code.
func (e *ProbeLimitError) Code() string {
	return ErrCodeProbeLimit
}

// Error implements the error interface.
func (e *ProbeLimitError) Error() string {
	return fmt.Sprintf("scan from %d stopped after %d probes (limit %d)", e.Start, e.Probes, e.Limit)
}

// IsProbeLimit returns true if err wraps a *ProbeLimitError.
func IsProbeLimit(err error) bool {
	var pl *ProbeLimitError
	return errors.As(err, &pl)
}

// IsInvalidArgument returns true if err wraps an *InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var ia *InvalidArgumentError
	return errors.As(err, &ia)
}

// IsMutuallyExclusive returns true if err wraps a *MutuallyExclusiveError.
func IsMutuallyExclusive(err error) bool {
	var me *MutuallyExclusiveError
	return errors.As(err, &me)
}

// IsUnknownProperty returns true if err wraps a *property.UnknownPropertyError.
func IsUnknownProperty(err error) bool {
	return property.IsUnknownProperty(err)
}

// ErrorCode extracts the code of a query error, or "" for any other error.
func ErrorCode(err error) string {
	if errors.Is(err, ErrRangeExhausted) {
		return ErrCodeRangeExhausted
	}
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}

// Hint returns the follow-up line a caller should print after err, if any.
func Hint(err error) string {
	var hinted interface{ Hint() string }
	if errors.As(err, &hinted) {
		return hinted.Hint()
	}
	return ""
}
