package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is returned when a manifest fails validation.
var ErrInvalid = errors.New("invalid manifest")

// FieldError describes a single invalid manifest field.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationError aggregates all field errors found in one manifest.
type ValidationError struct {
	Name   string
	Fields []*FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	if e.Name != "" {
		return fmt.Sprintf("manifest %s: %s", e.Name, strings.Join(msgs, "; "))
	}
	return "manifest: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// UnknownFormatError is returned when no loader is registered for a format.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown manifest format: %s", e.Format)
}
