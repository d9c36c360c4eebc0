// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// logoutCmd clears the session token from the keychain. The backend holds no
// session, so nothing is sent over the network.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the saved session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		if err := a.auth.Logout(); err != nil {
			return a.fail("signing out", err)
		}
		fmt.Println("✅ Signed out. The session token has been removed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
