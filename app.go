package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/gist-go/internal/gists"
	"github.com/tonimelisma/gist-go/internal/github"
	"github.com/tonimelisma/gist-go/internal/session"
	"github.com/tonimelisma/gist-go/internal/tokenfile"
)

// workDir is where get writes files. Tests point it at a temp dir.
var workDir = "."

// app is the set of core components one command invocation works with.
type app struct {
	session  *session.Session
	lister   *gists.Lister
	transfer *gists.Transfer
}

// newApp wires the store, API client, and session from resolvedCfg.
// Prompts and advisories go to the command's stderr.
func newApp(cmd *cobra.Command) *app {
	logger := buildLogger()

	store := tokenfile.NewStore(resolvedCfg.TokenFile, logger)
	client := github.NewClient(resolvedCfg.APIURL, &http.Client{Timeout: resolvedCfg.Timeout},
		resolvedCfg.UserAgent, logger)

	notices := cmd.ErrOrStderr()
	sess := session.New(store, client, newPrompter(cmd.InOrStdin(), notices), notices, logger)

	return &app{
		session:  sess,
		lister:   gists.NewLister(client, sess, logger),
		transfer: gists.NewTransfer(client, sess, workDir, logger),
	}
}
