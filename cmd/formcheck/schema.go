package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/careerflow-forms/internal/config"
	"github.com/jonathan/careerflow-forms/internal/forms"
	"github.com/jonathan/careerflow-forms/internal/observability"
	"github.com/jonathan/careerflow-forms/internal/schemas"
	"github.com/jonathan/careerflow-forms/internal/submission"
	"github.com/spf13/cobra"
)

type schemaOptions struct {
	form     string
	check    string
	describe bool
}

func newSchemaCmd(root *rootOptions) *cobra.Command {
	opts := &schemaOptions{}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print or check the JSON Schema of a form",
		Long: `Prints the draft-07 JSON Schema describing a form's wire shape.
With --check, validates a submission's shape against it instead; cross-field rules are not part of the JSON Schema.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig(cmd, config.Config{Form: opts.form})
			if err != nil {
				return err
			}
			return runSchema(cmd, cfg.Form, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.form, "form", "f", "", "Form name: contact, cover_letter, entry, onboarding, resume")
	cmd.Flags().StringVar(&opts.check, "check", "", "Path to a JSON or YAML submission to check against the schema")
	cmd.Flags().BoolVar(&opts.describe, "describe", false, "Print a field summary instead of JSON Schema")
	return cmd
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runSchema(cmd *cobra.Command, form string, opts *schemaOptions) error {
	schema, err := lookupForm(form)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if opts.describe {
		observability.NewPrinter(out).PrintSchema(schema)
		return nil
	}

	if opts.check == "" {
		data, err := json.MarshalIndent(schema.JSONSchema(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON Schema: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	err = checkDocument(schema, opts.check)
	var (
		loadErr       *submission.LoadError
		validationErr *schemas.ValidationError
	)
	switch {
	case err == nil:
		fmt.Fprintf(out, "Schema check passed: %s matches %s\n", opts.check, schema.Name())
		return nil
	case errors.As(err, &loadErr):
		return err
	case errors.As(err, &validationErr):
		fmt.Fprintf(out, "Schema check failed for %s:\n", opts.check)
		for _, fe := range validationErr.Errors {
			fmt.Fprintf(out, "  %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("schema check found %d error(s)", len(validationErr.Errors))
	default:
		return fmt.Errorf("failed to check %s: %w", opts.check, err)
	}
}

// checkDocument checks JSON files as raw text so the document is judged exactly
// as written. YAML and stdin are decoded first.
func checkDocument(schema *forms.Schema, path string) error {
	if strings.ToLower(filepath.Ext(path)) != ".json" {
		doc, err := submission.Load(path)
		if err != nil {
			return err
		}
		return schemas.ValidateDocument(schema.JSONSchema(), doc)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &submission.LoadError{Source: path, Message: "failed to read submission", Cause: err}
	}
	// Reject malformed and non-object documents with the same errors validate reports.
	if _, err := submission.Decode(path, data); err != nil {
		return err
	}
	schemaJSON, err := json.Marshal(schema.JSONSchema())
	if err != nil {
		return fmt.Errorf("failed to marshal JSON Schema: %w", err)
	}
	return schemas.ValidateJSONString(string(schemaJSON), string(data))
}
