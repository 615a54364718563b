// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Line-oriented prompt for termfolio.
//
// Used when the full-screen terminal cannot run (piped stdin or stdout)
// or with --plain. Same commands as the TUI, answers are printed at once
// instead of typed out.
//
// Interactive keys (liner):
//   Up/Down    Walk command history
//   Tab        Complete a command name
//   Ctrl+C     Abandon the current line
//   Ctrl+D     Exit

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/jeranaias/termfolio-tui/internal/backend"
	"github.com/jeranaias/termfolio-tui/internal/commands"
	"github.com/jeranaias/termfolio-tui/internal/ui/components"
	"github.com/jeranaias/termfolio-tui/internal/ui/terminal"
)

// replHistoryLimit bounds how much persisted history seeds the prompt.
const replHistoryLimit = 500

// =============================================================================
// LINE READERS
// =============================================================================

// lineReader reads one input line per prompt. *liner.State implements it.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// newLineReader returns a liner prompt when stdin is a terminal, else a
// plain reader over a.stdin.
func (a *app) newLineReader() lineReader {
	if a.stdin == os.Stdin && IsTTY() {
		line := liner.NewLiner()
		line.SetCtrlCAborts(true)
		line.SetTabCompletionStyle(liner.TabPrints)
		completer := commands.NewCompleter(commands.NewRegistry())
		line.SetCompleter(completer.CompleteNames)
		return line
	}
	return newScannerReader(a.stdin, a.stdout)
}

// scannerReader reads lines from a non-terminal stream. The prompt is
// written to out so transcripts look like an interactive session.
type scannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newScannerReader(in io.Reader, out io.Writer) *scannerReader {
	return &scannerReader{scanner: bufio.NewScanner(in), out: out}
}

// Prompt writes prompt and returns the next line, or io.EOF.
func (r *scannerReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		fmt.Fprintln(r.out)
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := r.scanner.Text()
	fmt.Fprintln(r.out, line)
	return line, nil
}

// AppendHistory does nothing; a non-terminal has no history to walk.
func (r *scannerReader) AppendHistory(string) {}

// Close does nothing.
func (r *scannerReader) Close() error { return nil }

// =============================================================================
// REPL
// =============================================================================

// runREPL reads commands from lr until EOF, "exit" or ctx is done.
func runREPL(ctx context.Context, a *app, lr lineReader) error {
	defer lr.Close()

	if a.store != nil {
		cmds, err := a.store.HistoryCommands(ctx, replHistoryLimit)
		if err != nil {
			a.logger.Warn("HISTORY_LOAD_FAILED", zap.Error(err))
		}
		for _, c := range cmds {
			lr.AppendHistory(c)
		}
	}

	printLines(a.stdout, components.Intro(a.cfg.UI))
	if badge := a.badge(); badge != "" {
		fmt.Fprintln(a.stdout, badge)
	}

	prompt := a.cfg.Prompt()
	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := lr.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(a.stdout, terminal.CanceledLine)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(input) == "" {
			continue
		}
		lr.AppendHistory(input)
		if quit := handleLine(ctx, a, input); quit {
			return nil
		}
	}
}

// handleLine answers one submitted line. It returns true when the
// visitor asked to leave.
func handleLine(ctx context.Context, a *app, input string) bool {
	a.appendHistory(ctx, strings.TrimSpace(input))

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "exit", "quit":
		return true
	}

	res := commands.Parse(input)
	switch res.Kind {
	case commands.KindClear:
		printLines(a.stdout, components.Intro(a.cfg.UI))
	case commands.KindStaticOutput:
		fmt.Fprintln(a.stdout)
		fmt.Fprintln(a.stdout, res.Output)
	case commands.KindAPIRequest:
		p, err := a.source.Fetch(ctx, res.Endpoint)
		if err != nil {
			a.logger.Warn("FETCH_FAILED",
				zap.String("endpoint", res.Endpoint.String()),
				zap.Error(err))
			fmt.Fprintln(a.stdout, terminal.ErrorLine)
			return false
		}
		fmt.Fprintln(a.stdout)
		printLines(a.stdout, backend.Render(p))
	}
	return false
}
