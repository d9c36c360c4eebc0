// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"

	"mural/cli/internal/auth"
	"mural/cli/internal/backend"
	"mural/cli/internal/board"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	userEmail string
	userRole  string
	userYes   bool
)

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"user"},
	Short:   "Manage teacher and student accounts (teachers only)",
	// Students never reach the backend from here.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd); err != nil {
			return err
		}
		return appFrom(cmd).requireTeacher(auth.MustFromContext(cmd.Context()))
	},
}

var usersListCmd = &cobra.Command{
	Use:       "list <professor|aluno>",
	Aliases:   []string{"ls"},
	Short:     "List the accounts of one role",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(backend.RoleProfessor), string(backend.RoleAluno)},
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		role, err := backend.ParseRole(args[0])
		if err != nil {
			return err
		}
		var users []backend.ManagedUser
		err = withSpinner("Loading accounts", func() error {
			var lerr error
			users, lerr = a.board.Users(cmd.Context(), role)
			return lerr
		})
		if err != nil {
			return a.fail("loading accounts", err)
		}
		if len(users) == 0 {
			pterm.Info.Printfln("No %s accounts.", role)
			return nil
		}
		return renderUsers(users)
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		role, err := backend.ParseRole(userRole)
		if err != nil {
			return err
		}
		form := board.UserForm{Email: userEmail, Role: role}
		if form.Email == "" {
			if form.Email, err = a.prompt.ReadLine("Email", ""); err != nil {
				return err
			}
		}
		if form.Password, err = a.prompt.ReadSecret("Password"); err != nil {
			return err
		}
		var created backend.ManagedUser
		err = withSpinner("Creating account", func() error {
			var cerr error
			created, cerr = a.board.CreateUser(cmd.Context(), form)
			return cerr
		})
		if err != nil {
			return a.fail("creating the account", err)
		}
		pterm.Success.Printfln("Account %s created as %s.", created.Email, created.Role)
		return nil
	},
}

var usersEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an account's email or password",
	Long: `Change an account. The account is looked up first and keeps the role it
already holds. Leave the password empty to keep the current one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		email := ""
		if cmd.Flags().Changed("email") {
			email = userEmail
		}
		return a.editUser(cmd.Context(), args[0], email)
	},
}

// editUser updates account id under the role it is stored with. An empty
// email is prompted for, offering the current one.
func (a *app) editUser(ctx context.Context, id, email string) error {
	var (
		current backend.ManagedUser
		found   bool
	)
	err := withSpinner("Looking up account", func() error {
		var ferr error
		current, found, ferr = a.board.FindUser(ctx, id)
		return ferr
	})
	if err != nil {
		return a.fail("looking up the account", err)
	}
	if !found {
		pterm.Warning.Printfln("Account %s not found.", id)
		return nil
	}

	form := board.UserForm{Email: email, Role: current.Role}
	if form.Email == "" {
		if form.Email, err = a.prompt.ReadLine("Email", current.Email); err != nil {
			return err
		}
	}
	if form.Password, err = a.prompt.ReadSecret("New password (leave empty to keep)"); err != nil {
		return err
	}
	err = withSpinner("Saving account", func() error {
		_, uerr := a.board.UpdateUser(ctx, id, form)
		return uerr
	})
	if err != nil {
		return a.fail("saving the account", err)
	}
	pterm.Success.Printfln("Account %s (%s) updated.", form.Email, current.Role)
	return nil
}

var usersDeleteCmd = &cobra.Command{
	Use:     "delete <professor|aluno> <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an account",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		role, err := backend.ParseRole(args[0])
		if err != nil {
			return err
		}
		if !userYes {
			ok, err := a.prompt.Confirm("Delete " + string(role) + " account " + args[1] + "?")
			if err != nil {
				return err
			}
			if !ok {
				pterm.Info.Println("Nothing deleted.")
				return nil
			}
		}
		err = withSpinner("Deleting account", func() error {
			return a.board.DeleteUser(cmd.Context(), role, args[1])
		})
		if err != nil {
			return a.fail("deleting the account", err)
		}
		pterm.Success.Println("Account deleted.")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{usersCreateCmd, usersEditCmd} {
		c.Flags().StringVar(&userEmail, "email", "", "Account email (prompted when empty)")
	}
	usersCreateCmd.Flags().StringVar(&userRole, "role", string(backend.RoleAluno), "professor or aluno")
	usersDeleteCmd.Flags().BoolVarP(&userYes, "yes", "y", false, "Do not ask for confirmation")

	usersCmd.AddCommand(usersListCmd, usersCreateCmd, usersEditCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}
