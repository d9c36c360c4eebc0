// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"strings"

	"mural/cli/internal/auth"
	"mural/cli/internal/backend"
	"mural/cli/internal/board"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	postSearch string
	postYes    bool
	postFlags  board.PostForm
)

var postsCmd = &cobra.Command{
	Use:     "posts",
	Aliases: []string{"post", "mural"},
	Short:   "Read and publish announcements",
}

var postsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List announcements, optionally filtered by title or author",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		var posts []backend.Announcement
		err := withSpinner("Loading posts", func() error {
			var lerr error
			posts, lerr = a.board.Search(cmd.Context(), postSearch)
			return lerr
		})
		if err != nil {
			return a.fail("loading posts", err)
		}
		if len(posts) == 0 {
			if postSearch != "" {
				pterm.Info.Printfln("No posts match %q.", postSearch)
			} else {
				pterm.Info.Println("No posts yet.")
			}
			return nil
		}
		return renderPosts(posts)
	},
}

var postsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one announcement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		p, ok, err := a.board.Post(cmd.Context(), args[0])
		if err != nil {
			return a.fail("loading the post", err)
		}
		if !ok {
			pterm.Warning.Printfln("Post %s not found.", args[0])
			return nil
		}
		renderPost(p)
		return nil
	},
}

var postsCreateCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"new"},
	Short:   "Publish an announcement (teachers only)",
	Long: `Publish an announcement. Fields not given as flags are prompted for.
The author defaults to your email and the type to Comunicado.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		if err := a.requireTeacher(auth.MustFromContext(cmd.Context())); err != nil {
			return err
		}
		form, err := a.fillPostForm(cmd, a.board.DefaultPostForm())
		if err != nil {
			return err
		}
		var created backend.Announcement
		err = withSpinner("Publishing", func() error {
			var cerr error
			created, cerr = a.board.CreatePost(cmd.Context(), form)
			return cerr
		})
		if err != nil {
			return a.fail("publishing the post", err)
		}
		pterm.Success.Printfln("Post published (%s).", created.ID)
		return nil
	},
}

var postsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an announcement (teachers only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		if err := a.requireTeacher(auth.MustFromContext(cmd.Context())); err != nil {
			return err
		}
		current, ok, err := a.board.Post(cmd.Context(), args[0])
		if err != nil {
			return a.fail("loading the post", err)
		}
		if !ok {
			pterm.Warning.Printfln("Post %s not found.", args[0])
			return nil
		}
		form, err := a.fillPostForm(cmd, board.PostFormFrom(current))
		if err != nil {
			return err
		}
		err = withSpinner("Saving", func() error {
			_, uerr := a.board.UpdatePost(cmd.Context(), args[0], form)
			return uerr
		})
		if err != nil {
			return a.fail("saving the post", err)
		}
		pterm.Success.Println("Post updated.")
		return nil
	},
}

var postsDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an announcement (teachers only)",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		if err := a.requireTeacher(auth.MustFromContext(cmd.Context())); err != nil {
			return err
		}
		if !postYes {
			ok, err := a.prompt.Confirm("Delete post " + args[0] + "?")
			if err != nil {
				return err
			}
			if !ok {
				pterm.Info.Println("Nothing deleted.")
				return nil
			}
		}
		err := withSpinner("Deleting", func() error {
			return a.board.DeletePost(cmd.Context(), args[0])
		})
		if err != nil {
			return a.fail("deleting the post", err)
		}
		pterm.Success.Println("Post deleted.")
		return nil
	},
}

// fillPostForm applies flags on top of base and prompts for the fields no
// flag set, offering the base value as default.
func (a *app) fillPostForm(cmd *cobra.Command, base board.PostForm) (board.PostForm, error) {
	fields := []struct {
		flag   string
		label  string
		target *string
		value  string
	}{
		{"titulo", "Título", &base.Titulo, postFlags.Titulo},
		{"descricao", "Descrição", &base.Descricao, postFlags.Descricao},
		{"autor", "Autor", &base.Autor, postFlags.Autor},
		{"tipo", "Tipo (" + strings.Join(board.PostTypes, "/") + ")", &base.Tipo, postFlags.Tipo},
	}
	for _, f := range fields {
		if cmd.Flags().Changed(f.flag) {
			*f.target = f.value
			continue
		}
		v, err := a.prompt.ReadLine(f.label, *f.target)
		if err != nil {
			return base, err
		}
		*f.target = v
	}
	return base, nil
}

func init() {
	postsListCmd.Flags().StringVarP(&postSearch, "search", "s", "", "Filter by title or author")
	for _, c := range []*cobra.Command{postsCreateCmd, postsEditCmd} {
		c.Flags().StringVar(&postFlags.Titulo, "titulo", "", "Title")
		c.Flags().StringVar(&postFlags.Descricao, "descricao", "", "Body text")
		c.Flags().StringVar(&postFlags.Autor, "autor", "", "Author shown on the post")
		c.Flags().StringVar(&postFlags.Tipo, "tipo", "", "Comunicado, Aviso or Outros")
	}
	postsDeleteCmd.Flags().BoolVarP(&postYes, "yes", "y", false, "Do not ask for confirmation")

	postsCmd.AddCommand(postsListCmd, postsShowCmd, postsCreateCmd, postsEditCmd, postsDeleteCmd)
	rootCmd.AddCommand(postsCmd)
}
