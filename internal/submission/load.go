// Package submission loads form submissions from JSON or YAML documents.
package submission

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stdin is the source name that reads from standard input.
const Stdin = "-"

// Load reads one submission. YAML is used for .yaml/.yml paths, JSON otherwise.
func Load(path string) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == Stdin {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, &LoadError{Source: path, Message: "failed to read submission", Cause: err}
	}
	return Decode(path, data)
}

// Decode parses a submission document; source selects the format by extension.
func Decode(source string, data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &LoadError{Source: source, Message: "submission is empty"}
	}

	var doc map[string]any
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &LoadError{Source: source, Message: "failed to parse submission YAML", Cause: err}
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &LoadError{Source: source, Message: "failed to parse submission JSON", Cause: err}
		}
	}
	if doc == nil {
		return nil, &LoadError{Source: source, Message: "submission is not an object"}
	}
	return doc, nil
}
