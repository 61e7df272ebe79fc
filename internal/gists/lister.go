// Package gists implements the gist operations behind the CLI: walking
// cursor-linked listings, fetching a gist's files to disk, creating a gist
// from local files, and printing redacted gist metadata.
package gists

import (
	"context"
	"log/slog"

	"github.com/tonimelisma/gist-go/internal/github"
)

// Credentials derives request authentication. Satisfied by *session.Session.
type Credentials interface {
	// Auth returns the stored token, or anonymous access with an advisory.
	Auth() github.Authenticator
	// RequireAuth fails when no token is stored.
	RequireAuth() (github.Authenticator, error)
}

// ListResult summarizes a finished listing.
type ListResult struct {
	Emitted int
	Pages   int
	// LimitReached is set when the walk stopped at the limit while more
	// gists were left to list.
	LimitReached bool
}

// Lister walks gist listings page by page.
type Lister struct {
	client *github.Client
	creds  Credentials
	logger *slog.Logger
}

// NewLister creates a Lister.
func NewLister(client *github.Client, creds Credentials, logger *slog.Logger) *Lister {
	if logger == nil {
		logger = slog.Default()
	}

	return &Lister{client: client, creds: creds, logger: logger}
}

// List emits gists in server order until the listing ends or limit items have
// been emitted (limit <= 0 means no limit). With an owner, that user's public
// gists are listed anonymously; without one, the caller's own gists are
// listed with the stored token.
//
// The next page is only requested when the limit has not been reached. An
// error on any page stops the walk; items already emitted stay emitted.
func (l *Lister) List(ctx context.Context, owner string, limit int, emit func(github.GistSummary) error) (ListResult, error) {
	var auth github.Authenticator = github.NoAuth{}
	if owner == "" {
		auth = l.creds.Auth()
	}

	var res ListResult

	path := github.GistsPath(owner)
	for path != "" {
		page, err := l.client.ListGistsPage(ctx, path, auth)
		if err != nil {
			return res, err
		}

		res.Pages++

		for i, item := range page.Items {
			if err := emit(item); err != nil {
				return res, err
			}

			res.Emitted++

			if limit > 0 && res.Emitted >= limit {
				res.LimitReached = i < len(page.Items)-1 || page.Next != ""

				l.logger.Debug("listing stopped at limit",
					slog.Int("limit", limit),
					slog.Int("pages", res.Pages),
				)

				return res, nil
			}
		}

		path = page.Next
	}

	l.logger.Debug("listing complete",
		slog.Int("emitted", res.Emitted),
		slog.Int("pages", res.Pages),
	)

	return res, nil
}
