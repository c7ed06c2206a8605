package errors

import (
	// Go Internal Packages
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies an error so callers can branch on what happened
// without string matching.
type Kind uint8

const (
	Other    Kind = iota // unclassified
	Invalid              // the input was invalid
	NotFound             // the entity does not exist
	Exist                // the entity already exists
	Internal             // infrastructure or programmer error
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case NotFound:
		return "not found"
	case Exist:
		return "already exists"
	case Internal:
		return "internal"
	}
	return "other"
}

// Error carries a kind, a caller-facing message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// E builds an *Error from its arguments: a Kind, a string message and
// an underlying error, in any order. Unknown argument types are ignored.
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Kind:
			e.Kind = a
		case string:
			e.Msg = a
		case error:
			e.Err = a
		}
	}
	return e
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether any error in err's chain carries the given kind.
func Is(kind Kind, err error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// ValidationError accumulates per-field validation failures.
type ValidationError struct {
	fields map[string]string
}

// ValidationErrs returns an empty accumulator.
func ValidationErrs() *ValidationError {
	return &ValidationError{fields: make(map[string]string)}
}

// Add records a failure for a field. The last message per field wins.
func (v *ValidationError) Add(field, msg string) {
	v.fields[field] = msg
}

// Err returns nil when no failures were recorded, else the accumulator
// itself.
func (v *ValidationError) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v.fields[k]))
	}
	return strings.Join(parts, "; ")
}
