package forms

// leadingIntPattern matches strings that parseLeadingInt accepts.
const leadingIntPattern = `^\s*[+-]?[0-9]`

var jsonSchemaFormats = map[Format]string{
	FormatEmail: "email",
	FormatURL:   "uri",
}

// JSONSchema exports the wire shape of a submission (before transforms) as a
// draft-07 JSON Schema document. Refinements have no JSON Schema equivalent
// and are not exported.
func (s *Schema) JSONSchema() map[string]any {
	doc := s.objectSchema()
	doc["$schema"] = "http://json-schema.org/draft-07/schema#"
	doc["title"] = s.name
	return doc
}

func (s *Schema) objectSchema() map[string]any {
	props := make(map[string]any, len(s.fields))
	var required []string
	for i := range s.fields {
		f := &s.fields[i]
		props[f.Name] = f.jsonSchema()
		if f.Required {
			required = append(required, f.Name)
		}
	}

	out := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func (f *Field) jsonSchema() map[string]any {
	var out map[string]any
	switch f.Kind {
	case KindString, KindListFromString:
		out = map[string]any{"type": "string"}
		// JSON Schema counts code points, not UTF-16 units; Validate is stricter for emoji.
		if f.MaxLength > 0 {
			out["maxLength"] = f.MaxLength
		}
		if format, ok := jsonSchemaFormats[f.Format]; ok {
			out["format"] = format
		}
	case KindIntFromString:
		out = map[string]any{"type": "string", "pattern": leadingIntPattern}
	case KindBool:
		out = map[string]any{"type": "boolean"}
	case KindObject:
		out = f.Schema.objectSchema()
	case KindObjectList:
		out = map[string]any{
			"type":  "array",
			"items": f.Schema.objectSchema(),
		}
		if f.MinItems > 0 {
			out["minItems"] = f.MinItems
		}
	default:
		out = map[string]any{}
	}

	if f.NonEmpty {
		out["minLength"] = 1
	}
	if f.Default != nil {
		out["default"] = f.Default
	}
	return out
}
