package main

import (
	"fmt"
	"os"

	"github.com/jonathan/careerflow-forms/internal/config"
	"github.com/jonathan/careerflow-forms/internal/forms"
	"github.com/jonathan/careerflow-forms/internal/observability/logging"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "formcheck",
		Short:         "Validate careerflow form submissions",
		Long:          "formcheck validates onboarding, contact, resume entry, resume and cover letter submissions and prints normalized data or field errors.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file, JSON or YAML (values can be overridden by other flags)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: console or json")

	cmd.AddCommand(newValidateCmd(opts), newSchemaCmd(opts), newFormsCmd())
	return cmd
}

// loadConfig merges flags over the config file, then the environment, then defaults.
func (o *rootOptions) loadConfig(cmd *cobra.Command, flags config.Config) (config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if flags.Form != "" {
		cfg.Form = flags.Form
	}
	if flags.Format != "" {
		cfg.Format = flags.Format
	}
	if flags.Workers != 0 {
		cfg.Workers = flags.Workers
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}

	cfg = cfg.WithEnv(os.Getenv)
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Format = cfg.LogFormat
	logCfg.Out = cmd.ErrOrStderr()
	logging.Init(logCfg)

	cliLog := logging.WithComponent("cli")
	cliLog.Debug().
		Str("command", cmd.Name()).
		Str("config", o.configPath).
		Str("form", cfg.Form).
		Str("format", cfg.Format).
		Int("workers", cfg.Workers).
		Msg("config loaded")
	return cfg, nil
}

func lookupForm(name string) (*forms.Schema, error) {
	if name == "" {
		return nil, fmt.Errorf("--form is required (one of: %v)", forms.Names())
	}
	s, ok := forms.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown form %q (one of: %v)", name, forms.Names())
	}
	return s, nil
}
