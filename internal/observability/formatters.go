// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/careerflow-forms/internal/forms"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for human-readable mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))

	if content != "" {
		fmt.Fprintf(p.out, "├%s┤\n", border)
		for _, line := range strings.Split(content, "\n") {
			fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResult outputs the outcome of validating one submission.
func (p *Printer) PrintResult(source string, res forms.Result) {
	if res.Success() {
		p.printBox(fmt.Sprintf("✅ %s: %s OK", source, res.Form), summarizeRecord(res.Data))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", len(res.Errors)))
	byPath := res.Errors.ByPath()
	paths := res.Errors.Paths()
	for i, path := range paths {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", path))
		for _, msg := range byPath[path] {
			sb.WriteString(fmt.Sprintf("  %s\n", msg))
		}
		if i < len(paths)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("❌ %s: %s FAILED", source, res.Form), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSchema outputs the field rules of a schema.
func (p *Printer) PrintSchema(s *forms.Schema) {
	var sb strings.Builder
	fields := s.Fields()
	for i, f := range fields {
		presence := "optional"
		if f.Required {
			presence = "required"
		}
		sb.WriteString(fmt.Sprintf("%-16s %-16s %s", f.Name, f.Kind, presence))
		if i < len(fields)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("FORM %s", s.Name()), sb.String())
}

// summarizeRecord renders the top-level keys of a normalized record.
func summarizeRecord(rec forms.Record) string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		switch v := rec[k].(type) {
		case []string:
			shown := v[:min(len(v), maxItemsToShow)]
			sb.WriteString(fmt.Sprintf("%s: %s", k, strings.Join(shown, ", ")))
			if len(v) > maxItemsToShow {
				sb.WriteString(fmt.Sprintf(" ... and %d more", len(v)-maxItemsToShow))
			}
		case []forms.Record:
			sb.WriteString(fmt.Sprintf("%s: %d item(s)", k, len(v)))
		case forms.Record:
			sb.WriteString(fmt.Sprintf("%s: %d field(s)", k, len(v)))
		default:
			sb.WriteString(fmt.Sprintf("%s: %v", k, v))
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
