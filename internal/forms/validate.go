package forms

import (
	"fmt"
	"math"
)

const defaultMissingMessage = "Required"

// Validate checks input against the schema. Every field is evaluated, so the
// result carries all field failures rather than the first one. Refinements run
// per object once that object's fields all passed.
func (s *Schema) Validate(input map[string]any) Result {
	data, errs := s.evaluate(input, "")
	if len(errs) > 0 {
		return Result{Form: s.name, Errors: errs}
	}
	return Result{Form: s.name, Data: data}
}

func (s *Schema) evaluate(input map[string]any, prefix string) (Record, FieldErrors) {
	out := make(Record, len(s.fields))
	var errs FieldErrors

	for i := range s.fields {
		f := &s.fields[i]
		path := joinPath(prefix, f.Name)

		raw, ok := input[f.Name]
		if !ok || raw == nil {
			if f.Required {
				errs = append(errs, FieldError{Path: path, Code: CodeMissing, Message: f.missingMessage()})
			} else if f.Default != nil {
				out[f.Name] = f.Default
			}
			continue
		}

		value, ferrs := f.evaluate(raw, path)
		if len(ferrs) > 0 {
			errs = append(errs, ferrs...)
			continue
		}
		out[f.Name] = value
	}
	if len(errs) > 0 {
		return nil, errs
	}

	for _, r := range s.refinements {
		if !r.Check(out) {
			errs = append(errs, FieldError{Path: joinPath(prefix, r.Path), Code: CodeCrossField, Message: r.Message})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (f *Field) evaluate(raw any, path string) (any, FieldErrors) {
	switch f.Kind {
	case KindString:
		return f.evalString(raw, path)
	case KindIntFromString:
		return f.evalInt(raw, path)
	case KindListFromString:
		return f.evalList(raw, path)
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, typeError(path, "boolean", raw)
		}
		return b, nil
	case KindObject:
		m, ok := asMap(raw)
		if !ok {
			return nil, typeError(path, "object", raw)
		}
		rec, errs := f.Schema.evaluate(m, path)
		if len(errs) > 0 {
			return nil, errs
		}
		return rec, nil
	case KindObjectList:
		return f.evalObjectList(raw, path)
	default:
		// NewSchema rejects unknown kinds.
		panic(fmt.Sprintf("forms: field %q has unknown kind %s", f.Name, f.Kind))
	}
}

func (f *Field) evalString(raw any, path string) (any, FieldErrors) {
	s, ok := raw.(string)
	if !ok {
		return nil, typeError(path, "string", raw)
	}
	if f.NonEmpty && s == "" {
		return nil, FieldErrors{f.emptyError(path)}
	}

	var errs FieldErrors
	if f.MaxLength > 0 && textLength(s) > f.MaxLength {
		errs = append(errs, FieldError{Path: path, Code: CodeBounds, Message: f.maxLengthMessage()})
	}
	if f.Format != FormatNone && !matchesFormat(f.Format, s) {
		errs = append(errs, FieldError{Path: path, Code: CodeFormat, Message: f.formatMessage()})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return s, nil
}

func (f *Field) evalInt(raw any, path string) (any, FieldErrors) {
	var n int
	switch v := raw.(type) {
	case string:
		if f.NonEmpty && v == "" {
			return nil, FieldErrors{f.emptyError(path)}
		}
		parsed, ok := parseLeadingInt(v)
		if !ok {
			return nil, FieldErrors{{Path: path, Code: CodeInvalidType, Message: "Expected number, received nan"}}
		}
		n = parsed
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		// Already-normalized integers come back as float64 after a JSON round trip.
		if math.IsNaN(v) || v != math.Trunc(v) || math.Abs(v) > 1<<53 {
			return nil, FieldErrors{{Path: path, Code: CodeInvalidType, Message: "Expected integer, received float"}}
		}
		n = int(v)
	default:
		return nil, typeError(path, "string", raw)
	}

	if r := f.Range; r != nil {
		var errs FieldErrors
		if n < r.Min {
			errs = append(errs, FieldError{Path: path, Code: CodeBounds, Message: orDefault(r.MinMessage,
				fmt.Sprintf("Number must be greater than or equal to %d", r.Min))})
		}
		if n > r.Max {
			errs = append(errs, FieldError{Path: path, Code: CodeBounds, Message: orDefault(r.MaxMessage,
				fmt.Sprintf("Number must be less than or equal to %d", r.Max))})
		}
		if len(errs) > 0 {
			return nil, errs
		}
	}
	return n, nil
}

func (f *Field) evalList(raw any, path string) (any, FieldErrors) {
	switch v := raw.(type) {
	case string:
		if f.NonEmpty && v == "" {
			return nil, FieldErrors{f.emptyError(path)}
		}
		return splitList(v), nil
	case []string:
		return cleanList(v), nil
	case []any:
		items := make([]string, 0, len(v))
		var errs FieldErrors
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				errs = append(errs, typeError(indexPath(path, i), "string", item)...)
				continue
			}
			items = append(items, s)
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return cleanList(items), nil
	default:
		return nil, typeError(path, "string", raw)
	}
}

func (f *Field) evalObjectList(raw any, path string) (any, FieldErrors) {
	items, ok := asList(raw)
	if !ok {
		return nil, typeError(path, "array", raw)
	}

	out := make([]Record, 0, len(items))
	var errs FieldErrors
	for i, item := range items {
		itemPath := indexPath(path, i)
		m, ok := asMap(item)
		if !ok {
			errs = append(errs, typeError(itemPath, "object", item)...)
			continue
		}
		rec, itemErrs := f.Schema.evaluate(m, itemPath)
		if len(itemErrs) > 0 {
			errs = append(errs, itemErrs...)
			continue
		}
		out = append(out, rec)
	}
	if len(items) < f.MinItems {
		errs = append(errs, FieldError{Path: path, Code: CodeBounds, Message: orDefault(f.MinItemsMessage,
			fmt.Sprintf("Array must contain at least %d element(s)", f.MinItems))})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func typeError(path, expected string, got any) FieldErrors {
	return FieldErrors{{
		Path:    path,
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("Expected %s, received %s", expected, typeName(got)),
	}}
}

func (f *Field) missingMessage() string {
	return orDefault(f.MissingMessage, defaultMissingMessage)
}

func (f *Field) emptyError(path string) FieldError {
	return FieldError{
		Path:    path,
		Code:    CodeMissing,
		Message: orDefault(f.EmptyMessage, "String must contain at least 1 character(s)"),
	}
}

func (f *Field) maxLengthMessage() string {
	return orDefault(f.MaxLengthMessage, fmt.Sprintf("String must contain at most %d character(s)", f.MaxLength))
}

func (f *Field) formatMessage() string {
	return orDefault(f.FormatMessage, defaultFormatMessages[f.Format])
}

func orDefault(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
