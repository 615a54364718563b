// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jeranaias/termfolio-tui/internal/util"
)

// defaultHistoryLimit is how many entries "history" prints without -n.
const defaultHistoryLimit = 20

// newHistoryCommand builds "termfolio history".
func newHistoryCommand(a *app) *cobra.Command {
	var (
		clearAll bool
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear the command history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.openStore()
			if store == nil {
				return errors.New("history database is unavailable (see the log file)")
			}

			if clearAll {
				if err := store.ClearHistory(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, "History cleared.")
				return nil
			}

			entries, err := store.RecentHistory(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(a.stdout, "No history yet.")
				return nil
			}

			// Room for the index column and a relative time.
			width := GetTerminalWidth() - 24
			for i, e := range entries {
				fmt.Fprintf(a.stdout, "%4d  %s  %s\n",
					i+1,
					util.PadRight(util.TruncateWidth(e.Command, width), 16),
					humanize.Time(e.CreatedAt))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete all history")
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "number of entries to show (0 = all)")
	return cmd
}
