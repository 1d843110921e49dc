package forms

import (
	"fmt"
	"strings"
)

// Code classifies a field error.
type Code string

const (
	CodeMissing     Code = "missing"
	CodeInvalidType Code = "invalid_type"
	CodeBounds      Code = "bounds"
	CodeFormat      Code = "format"
	CodeCrossField  Code = "cross_field"
)

// FieldError is one user-facing failure at a dot/bracket field path.
type FieldError struct {
	Path    string `json:"path"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// FieldErrors keeps errors in the order they were found.
type FieldErrors []FieldError

// ByPath groups messages by field path, preserving per-path order.
func (fe FieldErrors) ByPath() map[string][]string {
	out := make(map[string][]string, len(fe))
	for _, e := range fe {
		out[e.Path] = append(out[e.Path], e.Message)
	}
	return out
}

// Messages returns the messages reported at path.
func (fe FieldErrors) Messages(path string) []string {
	var out []string
	for _, e := range fe {
		if e.Path == path {
			out = append(out, e.Message)
		}
	}
	return out
}

// Paths returns the distinct paths in first-seen order.
func (fe FieldErrors) Paths() []string {
	seen := make(map[string]bool, len(fe))
	var out []string
	for _, e := range fe {
		if !seen[e.Path] {
			seen[e.Path] = true
			out = append(out, e.Path)
		}
	}
	return out
}

// ValidationError is returned by Result.Err and the Parse helpers when a submission fails.
type ValidationError struct {
	Form   string
	Errors FieldErrors
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	if ve.Form != "" {
		sb.WriteString(fmt.Sprintf("%s validation failed:\n", ve.Form))
	} else {
		sb.WriteString("validation failed:\n")
	}
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Path, err.Message))
	}
	return sb.String()
}

// SchemaDefinitionError reports a malformed schema. It is a programming error,
// surfaced at startup rather than per submission.
type SchemaDefinitionError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *SchemaDefinitionError) Error() string {
	name := e.Schema
	if name == "" {
		name = "(unnamed)"
	}
	if e.Cause != nil {
		return fmt.Sprintf("invalid schema %s: %s: %v", name, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid schema %s: %s", name, e.Message)
}

func (e *SchemaDefinitionError) Unwrap() error {
	return e.Cause
}

// DecodeError reports a failure converting a normalized record into a typed value.
type DecodeError struct {
	Form  string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Form, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
