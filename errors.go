package psc

import "errors"

// Sentinel errors for component compilation and dispatch.
var (
	ErrMissingTag         = errors.New("psc: definition missing required tag")
	ErrInvalidName        = errors.New("psc: component name is not a capitalized identifier")
	ErrDuplicateComponent = errors.New("psc: duplicate component name")
	ErrUnknownComponent   = errors.New("psc: unknown component")
	ErrUnmatchedTag       = errors.New("psc: unmatched component tag")
)

// IsDefinitionError checks if err is a component definition error.
func IsDefinitionError(err error) bool {
	return errors.Is(err, ErrMissingTag) ||
		errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrDuplicateComponent)
}

// IsLookupError checks if err is an unknown-component lookup error.
func IsLookupError(err error) bool {
	return errors.Is(err, ErrUnknownComponent)
}
