package forms

import (
	"encoding/json"
	"fmt"
)

// Record is a flat or nested key-value submission. Validated output uses
// string, int, bool, []string, Record and []Record values only.
type Record map[string]any

// Decode converts the record into v through its JSON shape.
func (r Record) Decode(v any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return nil
}

// Result is either normalized data or a non-empty set of field errors, never both.
type Result struct {
	Form   string
	Data   Record
	Errors FieldErrors
}

// Success reports whether validation passed.
func (r Result) Success() bool {
	return len(r.Errors) == 0
}

// Err returns a *ValidationError for failed results and nil otherwise.
func (r Result) Err() error {
	if r.Success() {
		return nil
	}
	return &ValidationError{Form: r.Form, Errors: r.Errors}
}

type resultJSON struct {
	Success bool                `json:"success"`
	Data    Record              `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// MarshalJSON renders {success, data} or {success, errors: {path: [messages]}}.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{Success: r.Success()}
	if out.Success {
		out.Data = r.Data
	} else {
		out.Errors = r.Errors.ByPath()
	}
	return json.Marshal(out)
}
