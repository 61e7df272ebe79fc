package main

import (
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login USER",
		Short: "Log on to GitHub and obtain an application token",
		Long: `Log on to GitHub with your password and obtain a gist-scoped application
token. The token is stored in the token file with mode 0600. See
https://github.com/settings/applications to review or revoke tokens.`,
		Args: cobra.ExactArgs(1),
		RunE: runLogin,
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke and forget the stored application token",
		Long: `Revoke the stored application token on GitHub, then delete the local token
file. Revocation needs your password; leave it blank to abort.`,
		Args: cobra.NoArgs,
		RunE: runLogout,
	}
}

func runLogin(cmd *cobra.Command, args []string) error {
	if err := newApp(cmd).session.Login(cmd.Context(), args[0]); err != nil {
		return err
	}

	statusf(cmd, "Log in successful\n")

	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	outcome, err := newApp(cmd).session.Logout(cmd.Context())
	if err != nil {
		return err
	}

	statusf(cmd, "%s\n", outcome.Message())

	return nil
}
