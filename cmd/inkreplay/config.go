package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/gogpu/ink/engine"
)

type configOptions struct {
	*rootOptions
	file string
}

func newConfigCommand(root *rootOptions) *cobra.Command {
	opts := &configOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the engine configuration",
		Long: `Print the default engine configuration, or the validated contents of a
config file when --file is given. The text format is TOML and can be loaded
back with --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.file, "file", "", "config file to validate and print")
	return cmd
}

func runConfig(cmd *cobra.Command, opts *configOptions) error {
	cfg := engine.DefaultConfig()
	if opts.file != "" {
		var err error
		if cfg, err = engine.LoadConfigFile(opts.file); err != nil {
			return wrapExitError(exitCommandError, "failed to load config", err)
		}
	}

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}
	data, err := cfg.TOML()
	if err != nil {
		return wrapExitError(exitFailure, "failed to encode config", err)
	}
	_, err = out.Write(data)
	return err
}
