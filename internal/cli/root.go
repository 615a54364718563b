// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the termfolio command line.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// skipSetup marks commands that run without loading config or logging.
const skipSetup = "skip-setup"

// Execute runs the command line against the process arguments and stdio.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	return run(ctx, a, os.Args[1:])
}

// newApp returns an app wired to the given streams.
func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		interactive: func() bool { return IsTTY() && IsStdoutTTY() },
		colorOut:    ColorsEnabled,
	}
}

// run executes args with a and releases its resources afterwards.
func run(ctx context.Context, a *app, args []string) error {
	defer a.close()

	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	return root.ExecuteContext(ctx)
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "termfolio",
		Short: "A portfolio you browse from the terminal",
		Long: `termfolio is a terminal-style portfolio. Type about, education, skills,
projects or experience at the prompt and the answer is fetched from the
portfolio API (or a local data directory, or the built-in demo) and typed out.

With no subcommand it starts the interactive terminal. When stdin or stdout
is not a terminal, or with --plain, it falls back to a line-oriented prompt.`,
		Example: `  termfolio                         Start the interactive terminal
  termfolio --demo                  Browse the built-in sample portfolio
  termfolio run skills              Print one answer and exit
  termfolio run about --raw         Print the raw JSON payload
  termfolio --data-dir ./portfolio  Serve <endpoint>.json files from a directory
  termfolio serve --demo            Serve the demo portfolio over HTTP`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := cmd.Annotations[skipSetup]; ok {
				return nil
			}
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(); err != nil {
				return err
			}
			if !a.flags.plain && a.interactive() {
				return runTUI(cmd.Context(), a)
			}
			return runREPL(cmd.Context(), a, a.newLineReader())
		},
	}
	root.SetVersionTemplate(versionText())

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default ~/.termfolio/config.toml)")
	pf.StringVar(&a.flags.baseURL, "base-url", "", "portfolio API base URL")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "serve <endpoint>.json files from this directory")
	pf.BoolVar(&a.flags.demo, "demo", false, "serve the built-in sample portfolio")
	pf.BoolVar(&a.flags.noCache, "no-cache", false, "do not read or write the payload cache")
	pf.BoolVar(&a.flags.debug, "debug", false, "enable debug logging")
	pf.BoolVar(&a.flags.plain, "plain", false, "use the line-oriented prompt and no colors")

	root.AddCommand(
		newRunCommand(a),
		newPrefetchCommand(a),
		newHistoryCommand(a),
		newConfigCommand(a),
		newServeCommand(a),
		newVersionCommand(a),
	)
	return root
}
