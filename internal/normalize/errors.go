package normalize

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolved marks a well-formed token with no entry in the lookup table
	ErrUnresolved = errors.New("unresolved reference")
	// ErrMalformed marks a token that does not match any expected layout
	ErrMalformed = errors.New("malformed input")
)

// ResolutionError describes a token that could not be resolved
type ResolutionError struct {
	Kind   error // ErrUnresolved or ErrMalformed
	Field  string
	Input  string
	Reason string
}

func (e *ResolutionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %q: %v: %s", e.Field, e.Input, e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Input, e.Kind)
}

func (e *ResolutionError) Unwrap() error { return e.Kind }

func malformed(field, input, reason string) error {
	return &ResolutionError{Kind: ErrMalformed, Field: field, Input: input, Reason: reason}
}
