// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strconv"

	"mural/cli/internal/config"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change CLI settings",
	// Settings never need a session.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		return pterm.DefaultTable.WithData(pterm.TableData{
			{"api_url", c.APIURL},
			{"log_level", c.LogLevel},
			{"restore_session", strconv.FormatBool(c.RestoreSession)},
			{"timeout", c.Timeout().String()},
		}).Render()
	},
}

var configSetCmd = &cobra.Command{
	Use:       "set <api_url|log_level|restore_session|timeout_seconds> <value>",
	Short:     "Change one setting in config.json",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"api_url", "log_level", "restore_session", "timeout_seconds"},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			c = config.Defaults()
		}
		if err := config.Set(&c, args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(c); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		pterm.Success.Printfln("%s = %s", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
