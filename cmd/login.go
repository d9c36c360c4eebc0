// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"math/rand"

	"mural/cli/internal/auth"
	"mural/cli/internal/backend"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var loginEmail string

// loginCmd asks for email and password, exchanges them for a session token and
// keeps the token in the OS keychain for later commands.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Sign in with your school email and password",
	Long: `The login command signs you in to the school board. The password is read
without echo. On success the session token is stored in the OS keychain, so
later commands run as you until 'mural logout'.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Timeout())
		defer cancel()

		if id, ok := a.auth.WhoAmI(); ok {
			fmt.Printf("Already logged in as %s\n", id.Email)
			fmt.Println("   Run 'mural logout' first to switch accounts.")
			return nil
		}

		email := loginEmail
		if email == "" {
			var err error
			if email, err = a.prompt.ReadLine("Email", ""); err != nil {
				return err
			}
		}
		password, err := a.prompt.ReadSecret("Password")
		if err != nil {
			return err
		}

		var id auth.Identity
		err = withSpinner("Signing in", func() error {
			var lerr error
			id, lerr = a.auth.Login(ctx, backend.Credentials{Email: email, Password: password})
			return lerr
		})
		if err != nil {
			return a.fail("signing in", err)
		}
		pterm.Println(getRandomLoginGreeting(id))
		if a.ephemeral {
			pterm.Warning.Println("Secure storage is not available; this session will not be remembered.")
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (prompted when empty)")
	rootCmd.AddCommand(loginCmd)
}

// getRandomLoginGreeting returns a greeting for id, worded for the role.
func getRandomLoginGreeting(id auth.Identity) string {
	greetings := []string{
		"🎉 Welcome back, %s!",
		"👋 Hello %s!",
		"✅ Signed in as %s",
		"🔓 You're in, %s!",
	}
	line := fmt.Sprintf(greetings[rand.Intn(len(greetings))], id.Email)
	if id.Role == backend.RoleProfessor {
		return line + " You can publish posts and manage accounts."
	}
	return line + " Run 'mural posts list' to read the board."
}
