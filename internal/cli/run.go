// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jeranaias/termfolio-tui/internal/backend"
	"github.com/jeranaias/termfolio-tui/internal/commands"
	"github.com/jeranaias/termfolio-tui/internal/ui/components"
)

// newRunCommand builds "termfolio run".
func newRunCommand(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "run <command...>",
		Short: "Run one prompt command and print the answer",
		Long: `Runs a single prompt command (about, education, skills, projects,
experience, help) and prints the answer without animation.`,
		Example: `  termfolio run skills
  termfolio run projects --raw | jq .`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), a, strings.Join(args, " "), raw)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the payload as received (JSON is pretty-printed)")
	return cmd
}

// runOnce parses input and prints its answer to stdout.
func runOnce(ctx context.Context, a *app, input string, raw bool) error {
	res := commands.Parse(input)

	switch res.Kind {
	case commands.KindClear:
		return nil
	case commands.KindStaticOutput:
		fmt.Fprintln(a.stdout, res.Output)
		return nil
	}

	if err := a.open(); err != nil {
		return err
	}

	p, err := a.source.Fetch(ctx, res.Endpoint)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", res.Endpoint, err)
	}
	if p.Stale {
		fmt.Fprintf(a.stderr, "warning: %s is unreachable, showing the copy cached %s\n",
			a.source.Name(), humanize.Time(p.FetchedAt))
	}

	if raw {
		fmt.Fprintln(a.stdout, strings.TrimRight(components.HighlightJSON(p.Raw, !a.colorOut()), "\n"))
		return nil
	}
	printLines(a.stdout, backend.Render(p))
	return nil
}

// printLines writes each line followed by a newline.
func printLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
