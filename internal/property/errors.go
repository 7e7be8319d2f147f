package property

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCodeUnknownProperty identifies requests naming a property outside the catalog.
const ErrCodeUnknownProperty = "E202"

// UnknownPropertyError reports one or more property names that are not in
// the catalog. Names keeps the offending names in request order, stripped of
// the negation marker and upper-cased. Available lists the whole catalog.
type UnknownPropertyError struct {
	Names     []string
	Available []string
}

// Code returns the error code.
func (e *UnknownPropertyError) Code() string {
	return ErrCodeUnknownProperty
}

// Error implements the error interface.
func (e *UnknownPropertyError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("The property [%s] is wrong.", e.Names[0])
	}
	return fmt.Sprintf("The properties [%s] are wrong.", strings.Join(e.Names, ", "))
}

// Hint returns the list of available properties.
func (e *UnknownPropertyError) Hint() string {
	return fmt.Sprintf("Available properties: [%s]", strings.Join(e.Available, ", "))
}

// IsUnknownProperty returns true if err wraps an *UnknownPropertyError.
func IsUnknownProperty(err error) bool {
	var upe *UnknownPropertyError
	return errors.As(err, &upe)
}
