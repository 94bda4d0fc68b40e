package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common business logic failures.
var (
	ErrNotFound      = errors.New("requested resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
)

// FormatError reports a value that could not be parsed or formatted, such as
// a malformed week date arriving from a query parameter. It is surfaced to
// the request layer unmodified; rendering does not attempt to recover.
type FormatError struct {
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot format %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ResolutionError reports a named route, asset, or bundle that has no entry
// in its resolver's table. Renders abort when one propagates.
type ResolutionError struct {
	Kind string // "route", "asset" or "bundle"
	Name string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("unresolvable %s: %q", e.Kind, e.Name)
}
