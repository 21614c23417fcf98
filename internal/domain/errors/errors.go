package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Concrete error structs below report one of these through Is,
// so callers can branch with errors.Is without knowing the struct.
var (
	ErrHeaderMalformed      = errors.New("header malformed")
	ErrPropertyNotFound     = errors.New("property not found")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrUnsupportedType      = errors.New("unsupported type")
	ErrMandatoryDataMissing = errors.New("mandatory data missing")
	ErrNotPLY               = errors.New("not an ascii ply file")
)

// HeaderError reports an unexpected line shape while reading declarations
type HeaderError struct {
	Line   int    // 0-based line index in the input
	Text   string // offending line (empty when the input ended early)
	Reason string
}

func (e *HeaderError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("header malformed at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("header malformed at line %d (%q): %s", e.Line, e.Text, e.Reason)
}

func (e *HeaderError) Is(target error) bool { return target == ErrHeaderMalformed }

// PropertyNotFoundError is returned when a requested column is not declared on an element
type PropertyNotFoundError struct {
	Element  string
	Property string
}

func (e *PropertyNotFoundError) Error() string {
	return fmt.Sprintf("property '%s' not found in element '%s'", e.Property, e.Element)
}

func (e *PropertyNotFoundError) Is(target error) bool { return target == ErrPropertyNotFound }

// TypeMismatchError is returned when the requested columns do not share one value type
type TypeMismatchError struct {
	Element    string
	Properties []string
	Types      []string
}

func (e *TypeMismatchError) Error() string {
	pairs := make([]string, len(e.Properties))
	for i := range e.Properties {
		pairs[i] = fmt.Sprintf("%s:%s", e.Properties[i], e.Types[i])
	}
	return fmt.Sprintf("properties requested from '%s' are not all the same type (%s)",
		e.Element, strings.Join(pairs, ", "))
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// UnsupportedTypeError is returned when a buffer must be built for a type
// token outside the recognized set
type UnsupportedTypeError struct {
	TypeName string
}

func (e *UnsupportedTypeError) Error() string {
	if e.TypeName == "" {
		return "cannot materialize buffer: no value type (only constants requested?)"
	}
	return fmt.Sprintf("cannot materialize buffer: invalid type '%s'", e.TypeName)
}

func (e *UnsupportedTypeError) Is(target error) bool { return target == ErrUnsupportedType }

// MissingDataError aborts mesh assembly when positions or indices are absent
type MissingDataError struct {
	Element string
	What    string
	Err     error // underlying cause, may be nil
}

func (e *MissingDataError) Error() string {
	msg := fmt.Sprintf("mandatory %s missing from element '%s'", e.What, e.Element)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MissingDataError) Is(target error) bool { return target == ErrMandatoryDataMissing }

func (e *MissingDataError) Unwrap() error { return e.Err }
