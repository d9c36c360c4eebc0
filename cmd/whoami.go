// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"mural/cli/internal/auth"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// whoamiCmd shows who the stored session belongs to. The identity is read from
// the token itself; the backend is not contacted.
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"me"},
	Short:   "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := auth.MustFromContext(cmd.Context()).RequireSession()
		if err != nil {
			showNotLoggedIn()
			return nil
		}
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Current user")).
			Println(
				pterm.NewStyle(pterm.FgLightCyan).Sprint("Email: ") + s.User.Email + "\n" +
					pterm.NewStyle(pterm.FgLightCyan).Sprint("Role:  ") + string(s.User.Role) + "\n" +
					pterm.NewStyle(pterm.FgLightCyan).Sprint("ID:    ") + s.User.ID,
			)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
