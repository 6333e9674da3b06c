package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/ink/engine"
	"github.com/gogpu/ink/internal/scenario"
)

type replayOptions struct {
	*rootOptions
	config  string
	png     string
	timeout time.Duration
}

func newReplayCommand(root *rootOptions) *cobra.Command {
	opts := &replayOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>",
		Short: "Replay a scenario and report the flags of every step",
		Long: `Replay the steps of a scenario file against a fresh engine and print the
flags every step produced together with the final document state.

Exit codes:
  0 - scenario replayed
  1 - replay failed
  2 - invalid arguments, config or scenario file

Examples:
  inkreplay replay line.yaml
  inkreplay replay line.yaml --config ink.toml --png line.png
  inkreplay replay line.yaml --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.config, "config", "", "engine config file (TOML)")
	cmd.Flags().StringVar(&opts.png, "png", "", "write a snapshot of the final viewport to this file")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "limit for the whole replay")
	return cmd
}

func runReplay(cmd *cobra.Command, opts *replayOptions, path string) error {
	base := engine.DefaultConfig()
	if opts.config != "" {
		cfg, err := engine.LoadConfigFile(opts.config)
		if err != nil {
			return wrapExitError(exitCommandError, "failed to load config", err)
		}
		base = cfg
	}

	sc, err := scenario.Load(path)
	if err != nil {
		return wrapExitError(exitCommandError, "failed to load scenario", err)
	}
	cfg, err := sc.Config(base)
	if err != nil {
		return wrapExitError(exitCommandError, "invalid scenario setup", err)
	}

	e, err := engine.New(cfg)
	if err != nil {
		return wrapExitError(exitCommandError, "failed to create engine", err)
	}
	defer e.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()
	res, err := scenario.Run(ctx, e, sc, time.Now())
	if err != nil {
		return wrapExitError(exitFailure, "replay failed", err)
	}

	if opts.png != "" {
		if err := writePNG(e, opts.png); err != nil {
			return wrapExitError(exitFailure, "failed to write snapshot", err)
		}
	}

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	_, err = fmt.Fprint(out, res.Text())
	return err
}

func writePNG(e *engine.Engine, path string) error {
	img, err := e.RenderViewport()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
