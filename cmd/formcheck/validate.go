package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/careerflow-forms/internal/config"
	"github.com/jonathan/careerflow-forms/internal/forms"
	"github.com/jonathan/careerflow-forms/internal/observability"
	"github.com/jonathan/careerflow-forms/internal/observability/logging"
	"github.com/jonathan/careerflow-forms/internal/submission"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type validateOptions struct {
	form    string
	format  string
	workers int
	out     string
}

// fileResult pairs a submission source with its validation result.
type fileResult struct {
	Source string       `json:"source"`
	Result forms.Result `json:"result"`
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate form submissions",
		Long: `Validates one or more JSON or YAML submissions against a registered form.
Use "-" to read a single submission from stdin. Exits with code 1 if any submission is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd, config.Config{Form: opts.form, Format: opts.format, Workers: opts.workers})
			if err != nil {
				return err
			}
			return runValidate(cmd, cfg, opts.out, args)
		},
	}
	cmd.Flags().StringVarP(&opts.form, "form", "f", "", "Form name: contact, cover_letter, entry, onboarding, resume")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format: text or json")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Submissions validated concurrently")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write results to this file instead of stdout")
	return cmd
}

func runValidate(cmd *cobra.Command, cfg config.Config, outPath string, sources []string) error {
	schema, err := lookupForm(cfg.Form)
	if err != nil {
		return err
	}

	stdinCount := 0
	for _, source := range sources {
		if source == submission.Stdin {
			stdinCount++
		}
	}
	if stdinCount > 1 {
		return fmt.Errorf("stdin (%q) can be given only once", submission.Stdin)
	}

	results, err := validateAll(schema, sources, cfg.Workers)
	if err != nil {
		return err
	}
	cliLog := logging.WithComponent("cli")
	cliLog.Debug().Int("submissions", len(results)).Msg("validation run finished")

	if outPath == "" {
		err = writeResults(cmd.OutOrStdout(), cfg.Format, results)
	} else {
		err = writeResultsFile(outPath, cfg.Format, results)
	}
	if err != nil {
		return err
	}

	invalid := 0
	for _, r := range results {
		if !r.Result.Success() {
			invalid++
		}
	}
	if invalid > 0 {
		// Return error to indicate invalid submissions (exit code 1)
		return fmt.Errorf("validation found %d invalid submission(s)", invalid)
	}
	return nil
}

// validateAll loads and validates every source, keeping results in argument order.
func validateAll(schema *forms.Schema, sources []string, workers int) ([]fileResult, error) {
	results := make([]fileResult, len(sources))

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			input, err := submission.Load(source)
			if err != nil {
				return err
			}
			res := schema.Validate(input)

			logger := logging.WithForm(schema.Name(), source)
			if res.Success() {
				logger.Debug().Msg("submission valid")
			} else {
				logger.Info().Int("errors", len(res.Errors)).Strs("paths", res.Errors.Paths()).Msg("submission invalid")
			}

			results[i] = fileResult{Source: source, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeResultsFile(path, format string, results []fileResult) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	return writeAndClose(f, format, results)
}

// writeAndClose reports the close error when writing succeeded.
func writeAndClose(wc io.WriteCloser, format string, results []fileResult) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()
	return writeResults(wc, format, results)
}

func writeResults(w io.Writer, format string, results []fileResult) error {
	if format == config.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to write results JSON: %w", err)
		}
		return nil
	}

	p := observability.NewPrinter(w)
	for _, r := range results {
		p.PrintResult(r.Source, r.Result)
	}
	return nil
}
