// Package forms validates and normalizes form submissions against declarative schemas.
//
// A Schema is an ordered list of field rules plus cross-field refinements.
// Each rule is a tagged variant (Kind) interpreted by a single evaluator, so
// schemas are plain data built once at startup and shared read-only by any
// number of concurrent callers.
package forms

import (
	"fmt"
	"strings"

	"github.com/jonathan/careerflow-forms/internal/schemas"
)

// Kind selects how a field's raw value is checked and normalized.
type Kind int

const (
	// KindString is a plain string, optionally non-empty, length- or format-bounded.
	KindString Kind = iota
	// KindIntFromString is a decimal string parsed into an int and range-checked.
	KindIntFromString
	// KindListFromString is a comma-separated string split into trimmed, non-empty tokens.
	KindListFromString
	// KindBool is a boolean, usually with a default.
	KindBool
	// KindObject is a nested record validated against Field.Schema.
	KindObject
	// KindObjectList is a list of nested records, each validated against Field.Schema.
	KindObjectList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindIntFromString:
		return "int_from_string"
	case KindListFromString:
		return "list_from_string"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindObjectList:
		return "object_list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Format is a string format constraint.
type Format string

const (
	FormatNone  Format = ""
	FormatEmail Format = "email"
	FormatURL   Format = "url"
)

// Range bounds an integer field (inclusive on both ends).
type Range struct {
	Min        int
	Max        int
	MinMessage string
	MaxMessage string
}

// Field is one rule of a Schema. Zero-valued options are disabled.
type Field struct {
	Name string
	Kind Kind

	// Required fields report MissingMessage ("Required" if unset) when absent.
	Required       bool
	MissingMessage string

	// NonEmpty rejects "" with EmptyMessage before any transform runs.
	NonEmpty     bool
	EmptyMessage string

	MaxLength        int // in UTF-16 code units; 0 means unbounded
	MaxLengthMessage string

	Range *Range

	Format        Format
	FormatMessage string

	// Default is stored in the output when an optional field is absent.
	Default any

	// Schema describes the elements of KindObject and KindObjectList fields.
	Schema *Schema

	MinItems        int
	MinItemsMessage string
}

// Refinement is a predicate over an object's normalized record. It runs only
// after every field of that object passed, and reports Message at Path.
type Refinement struct {
	Path    string
	Message string
	Check   func(Record) bool
}

// Schema is an immutable, ordered set of field rules and refinements.
type Schema struct {
	name        string
	fields      []Field
	refinements []Refinement
}

// NewSchema builds a schema and checks the definition for programming errors.
func NewSchema(name string, fields []Field, refinements ...Refinement) (*Schema, error) {
	s := &Schema{
		name:        name,
		fields:      append([]Field(nil), fields...),
		refinements: append([]Refinement(nil), refinements...),
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	if err := schemas.Compile(s.JSONSchema()); err != nil {
		return nil, &SchemaDefinitionError{Schema: name, Message: "exported JSON Schema does not compile", Cause: err}
	}
	return s, nil
}

// MustSchema is NewSchema for package-level definitions; it panics on a malformed schema.
func MustSchema(name string, fields []Field, refinements ...Refinement) *Schema {
	s, err := NewSchema(name, fields, refinements...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema's name.
func (s *Schema) Name() string {
	return s.name
}

// Fields returns a copy of the schema's field rules in declaration order.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

func (s *Schema) check() error {
	if s.name == "" {
		return &SchemaDefinitionError{Message: "schema name is empty"}
	}
	fail := func(format string, args ...any) error {
		return &SchemaDefinitionError{Schema: s.name, Message: fmt.Sprintf(format, args...)}
	}

	seen := make(map[string]bool, len(s.fields))
	for _, f := range s.fields {
		if f.Name == "" {
			return fail("field with empty name")
		}
		if seen[f.Name] {
			return fail("duplicate field %q", f.Name)
		}
		seen[f.Name] = true

		nested := f.Kind == KindObject || f.Kind == KindObjectList
		switch {
		case f.Kind < KindString || f.Kind > KindObjectList:
			return fail("field %q has unknown kind %s", f.Name, f.Kind)
		case nested && f.Schema == nil:
			return fail("field %q of kind %s needs a nested schema", f.Name, f.Kind)
		case !nested && f.Schema != nil:
			return fail("field %q of kind %s cannot carry a nested schema", f.Name, f.Kind)
		case f.MaxLength < 0:
			return fail("field %q has negative max length", f.Name)
		case f.MaxLength > 0 && f.Kind != KindString:
			return fail("field %q: max length applies to strings only", f.Name)
		case f.Range != nil && f.Kind != KindIntFromString:
			return fail("field %q: range applies to integer fields only", f.Name)
		case f.Range != nil && f.Range.Min > f.Range.Max:
			return fail("field %q: range min %d exceeds max %d", f.Name, f.Range.Min, f.Range.Max)
		case f.Format != FormatNone && f.Kind != KindString:
			return fail("field %q: format applies to strings only", f.Name)
		case f.Format != FormatNone && f.Format != FormatEmail && f.Format != FormatURL:
			return fail("field %q has unknown format %q", f.Name, f.Format)
		case f.MinItems < 0 || (f.MinItems > 0 && f.Kind != KindObjectList):
			return fail("field %q: min items applies to object lists only", f.Name)
		case f.NonEmpty && (f.Kind == KindBool || nested):
			return fail("field %q: non-empty applies to string-valued fields only", f.Name)
		case f.Default != nil && f.Required:
			return fail("field %q is required and cannot have a default", f.Name)
		case f.Default != nil && !defaultMatchesKind(f.Kind, f.Default):
			return fail("field %q: default %v does not match kind %s", f.Name, f.Default, f.Kind)
		}
	}

	for _, r := range s.refinements {
		if r.Check == nil {
			return fail("refinement at %q has no check", r.Path)
		}
		if r.Message == "" {
			return fail("refinement at %q has no message", r.Path)
		}
		if !seen[rootSegment(r.Path)] {
			return fail("refinement path %q does not name a field", r.Path)
		}
	}
	return nil
}

func defaultMatchesKind(k Kind, v any) bool {
	switch k {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindIntFromString:
		_, ok := v.(int)
		return ok
	case KindListFromString:
		_, ok := v.([]string)
		return ok
	case KindBool:
		_, ok := v.(bool)
		return ok
	default:
		return false
	}
}

// rootSegment returns the leading field name of a dot/bracket path.
func rootSegment(path string) string {
	if i := strings.IndexAny(path, ".["); i >= 0 {
		return path[:i]
	}
	return path
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
