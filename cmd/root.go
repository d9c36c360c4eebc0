// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the mural CLI, the school
// announcements board. Each subcommand plays the part of one screen: signing in,
// reading and publishing posts, and managing student and teacher accounts.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"mural/cli/internal/auth"
	"mural/cli/internal/backend"
	"mural/cli/internal/board"
	"mural/cli/internal/config"
	"mural/cli/internal/keychain"
	"mural/cli/internal/logging"
	"mural/cli/internal/terminal"

	"github.com/99designs/keyring"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	showVersion bool
	verbose     bool
	apiURL      string
)

// app bundles what the screens share for one invocation.
type app struct {
	cfg    config.Config
	api    backend.API
	board  *board.Board
	auth   *auth.Service
	prompt *terminal.Prompter

	// ephemeral is set when the OS keychain could not be opened.
	ephemeral bool
}

type appKey struct{}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "mural",
	Short:         "School announcements board from the terminal",
	Long:          `mural lets teachers publish announcements and manage accounts, and lets students read the board.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if showVersion && cmd == cmd.Root() {
			return nil
		}
		return setup(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion()
			return nil
		}
		return cmd.Help()
	},
}

// setup loads configuration, opens the keychain, restores the session and
// attaches everything to the command context.
func setup(cmd *cobra.Command) error {
	// .env is optional
	_ = godotenv.Load()

	if verbose || os.Getenv("MURAL_VERBOSE") != "" {
		pterm.EnableDebugMessages()
	}

	cfg, err := config.Load()
	if err != nil && apiURL == "" {
		return err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if cfg.Verbose() {
		pterm.EnableDebugMessages()
	}
	logging.Debugf("config: api_url=%s restore_session=%t timeout=%s", cfg.APIURL, cfg.RestoreSession, cfg.Timeout())

	// Without a keychain there is simply no stored session; the token then
	// lives only as long as this process.
	km, err := keychain.GetManager()
	ephemeral := err != nil
	if ephemeral {
		logging.Debugf("keychain unavailable, using in-memory token store: %v", err)
		km = keychain.NewManagerWithRing(keyring.NewArrayKeyring(nil))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store := auth.NewStore(km, auth.WithRestore(cfg.RestoreSession))
	store.Initialize(ctx)

	backend.UserAgent = "mural-cli/" + Version
	api := backend.New(cfg.APIURL, backend.DefaultEndpoints(), cfg.Timeout())

	a := &app{
		cfg:       cfg,
		api:       api,
		board:     board.New(api, store, board.DefaultCacheTTL),
		auth:      auth.NewService(api, store),
		prompt:    terminal.NewPrompter(),
		ephemeral: ephemeral,
	}
	ctx = auth.WithStore(ctx, store)
	ctx = context.WithValue(ctx, appKey{}, a)
	cmd.SetContext(ctx)
	return nil
}

// appFrom returns the app attached by setup.
func appFrom(cmd *cobra.Command) *app {
	a, ok := cmd.Context().Value(appKey{}).(*app)
	if !ok {
		panic("cmd: app not initialized (PersistentPreRunE did not run)")
	}
	return a
}

// Execute runs the CLI application.
// Failures already shown to the user are not printed a second time.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var shown *reportedError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, logging.Mask(err.Error()))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (overrides config and MURAL_API_URL)")
}
