// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionText is shared by "termfolio version" and "termfolio --version".
func versionText() string {
	return fmt.Sprintf("termfolio version %s\n  Git commit: %s\n  Build date: %s\n",
		Version, GitCommit, BuildDate)
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: ""},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(a.stdout, versionText())
		},
	}
}
