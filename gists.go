package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/gist-go/internal/github"
)

// defaultListEntries is the default --nentries budget.
const defaultListEntries = 30

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your gists, or another user's public gists",
		Long: `List gists one per line as: id, visibility, description.

Without --user, lists the gists of the logged-in user (or public gists when
not logged in). --nentries 0 lists everything.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringP("user", "u", "", "list the public gists of this GitHub user")
	cmd.Flags().IntP("nentries", "n", defaultListEntries, "maximum number of gists to list (0 for no limit)")

	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info GISTID",
		Short: "Show gist metadata without file contents",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get GISTID",
		Short: "Download every file of a gist into the current directory",
		Long: `Download every file of a gist into the current directory.

Nothing is written if any file already exists locally (unless --override
is given) or if GitHub truncated any file.`,
		Args: cobra.ExactArgs(1),
		RunE: runGet,
	}

	cmd.Flags().Bool("override", false, "overwrite existing local files")

	return cmd
}

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create FILE...",
		Short: "Create a new gist from local files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCreate,
	}

	cmd.Flags().StringP("title", "t", "", "gist description (default: the file names)")
	cmd.Flags().Bool("public", false, "make the gist public")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	user, _ := cmd.Flags().GetString("user")
	limit, _ := cmd.Flags().GetInt("nentries")

	out := cmd.OutOrStdout()

	res, err := newApp(cmd).lister.List(cmd.Context(), user, limit, func(g github.GistSummary) error {
		return printSummary(out, g)
	})
	if err != nil {
		return err
	}

	if res.LimitReached {
		statusf(cmd, "Stopped after %d entries (use --nentries to list more)\n", res.Emitted)
	}

	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	out, err := newApp(cmd).transfer.Info(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(out)

	return err
}

func runGet(cmd *cobra.Command, args []string) error {
	override, _ := cmd.Flags().GetBool("override")

	written, err := newApp(cmd).transfer.Fetch(cmd.Context(), args[0], override)
	for _, name := range written {
		statusf(cmd, "Wrote %s\n", name)
	}

	return err
}

func runCreate(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	public, _ := cmd.Flags().GetBool("public")

	g, err := newApp(cmd).transfer.Create(cmd.Context(), args, title, public)
	if err != nil {
		return err
	}

	statusf(cmd, "Created gist %s\n", g.ID)

	if g.HTMLURL != "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), g.HTMLURL)
	}

	return err
}
