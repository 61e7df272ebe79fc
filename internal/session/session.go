// Package session implements the gist-go credential lifecycle: obtaining a
// gist-scoped token with basic auth (login), revoking it (logout), and
// deriving the Authorization header every other request carries.
//
// The two states are LoggedOut (no stored credential) and LoggedIn. The
// stored credential file is the only state; nothing is cached in memory
// between commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"

	"github.com/tonimelisma/gist-go/internal/github"
	"github.com/tonimelisma/gist-go/internal/tokenfile"
)

// gistScope is the only scope gist-go asks for.
const gistScope = "gist"

// Sentinel errors. Callers branch with errors.Is.
var (
	ErrAlreadyLoggedIn = errors.New("a GitHub token already exists; run 'gist-go logout' before logging in again")
	ErrNotLoggedIn     = errors.New("not logged in; run 'gist-go login USER' first")
	ErrRevokeFailed    = errors.New("could not delete the token on GitHub; the local token file was kept")
	// ErrAuthorizationNotFound means the stored token has no remote record.
	// Local and remote state disagree and must be reconciled by hand.
	ErrAuthorizationNotFound = errors.New("no matching token found on GitHub")
)

// LogoutOutcome is the non-error result of Logout.
type LogoutOutcome int

// Logout outcomes.
const (
	LogoutNone LogoutOutcome = iota // returned alongside errors
	LogoutRevoked
	LogoutNothingToDo
	LogoutAborted
)

// Message returns the user-facing line for an outcome.
func (o LogoutOutcome) Message() string {
	switch o {
	case LogoutNone:
		return ""
	case LogoutRevoked:
		return "Log out successful"
	case LogoutNothingToDo:
		return "No stored token found. Did you already log out?"
	case LogoutAborted:
		return "Aborting logout"
	default:
		return fmt.Sprintf("unknown logout outcome %d", int(o))
	}
}

// Store is the credential persistence the session drives. Satisfied by
// *tokenfile.Store.
type Store interface {
	Load() (tokenfile.Credential, bool)
	Save(tokenfile.Credential) error
	Delete() error
	Path() string
}

// Prompter reads a secret from the user without echo. The returned value is
// used for exactly one request sequence and then dropped.
type Prompter func(label string) (string, error)

// Session runs login, logout, and header derivation against one store and
// one API client.
type Session struct {
	store   Store
	client  *github.Client
	prompt  Prompter
	notices io.Writer
	logger  *slog.Logger

	// hostInfo returns the host name and address used in the token note.
	// Tests override this to avoid DNS.
	hostInfo func() (string, string)

	advised bool
}

// New creates a Session. notices receives user-visible advisories (the
// unauthenticated-request warning, the basic-auth notice on logout).
func New(store Store, client *github.Client, prompt Prompter, notices io.Writer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	if notices == nil {
		notices = io.Discard
	}

	return &Session{
		store:    store,
		client:   client,
		prompt:   prompt,
		notices:  notices,
		logger:   logger,
		hostInfo: localHostInfo,
	}
}

// Login exchanges user's password for a gist-scoped token and stores it.
// Refuses without any request when a credential already exists.
func (s *Session) Login(ctx context.Context, user string) error {
	if _, ok := s.store.Load(); ok {
		return ErrAlreadyLoggedIn
	}

	password, err := s.prompt("GitHub password: ")
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	s.logger.Info("requesting token", slog.String("user", user))

	auth, err := s.client.CreateAuthorization(ctx,
		github.BasicAuth{User: user, Password: password},
		github.AuthorizationRequest{Note: s.note(), Scopes: []string{gistScope}},
	)
	if err != nil {
		return err
	}

	if err := s.store.Save(tokenfile.Credential{User: user, Token: auth.Token}); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	s.logger.Info("login successful",
		slog.String("user", user),
		slog.String("path", s.store.Path()),
	)

	return nil
}

// Logout revokes the stored token on GitHub and then forgets it locally.
// The local file is only removed after GitHub confirmed the revocation.
func (s *Session) Logout(ctx context.Context) (LogoutOutcome, error) {
	cred, ok := s.store.Load()
	if !ok {
		return LogoutNothingToDo, nil
	}

	fmt.Fprintln(s.notices, "To delete the token on GitHub you must use basic authorization. Leave blank to abort.")

	password, err := s.prompt("GitHub password: ")
	if err != nil {
		return LogoutNone, fmt.Errorf("reading password: %w", err)
	}

	if password == "" {
		s.logger.Info("logout aborted by user")
		return LogoutAborted, nil
	}

	basic := github.BasicAuth{User: cred.User, Password: password}

	auths, err := s.client.ListAuthorizations(ctx, basic)
	if err != nil {
		return LogoutNone, err
	}

	for _, a := range auths {
		if a.Token != cred.Token {
			continue
		}

		if err := s.client.DeleteAuthorization(ctx, basic, a.ID); err != nil {
			return LogoutNone, fmt.Errorf("%w: %w", ErrRevokeFailed, err)
		}

		if err := s.store.Delete(); err != nil {
			return LogoutNone, fmt.Errorf("token revoked on GitHub but %s could not be removed: %w", s.store.Path(), err)
		}

		s.logger.Info("logout successful", slog.String("user", cred.User))

		return LogoutRevoked, nil
	}

	s.logger.Warn("stored token not found among authorizations",
		slog.String("user", cred.User),
		slog.Int("authorizations", len(auths)),
	)

	return LogoutNone, fmt.Errorf("%w: delete the token on GitHub by hand and remove %s", ErrAuthorizationNotFound, s.store.Path())
}

// Auth returns the authenticator for gist requests: the stored token when
// logged in, anonymous otherwise. The anonymous case writes a one-line
// advisory (once per session) before any request goes out.
func (s *Session) Auth() github.Authenticator {
	cred, ok := s.store.Load()
	if ok {
		return github.TokenAuth(cred.Token)
	}

	if !s.advised {
		fmt.Fprintln(s.notices, "No stored token; sending an unauthenticated request (private gists are not visible).")
		s.advised = true
	}

	return github.NoAuth{}
}

// RequireAuth is Auth for operations GitHub refuses anonymously.
func (s *Session) RequireAuth() (github.Authenticator, error) {
	cred, ok := s.store.Load()
	if !ok {
		return nil, ErrNotLoggedIn
	}

	return github.TokenAuth(cred.Token), nil
}

// note is the human-readable label GitHub shows for the token.
func (s *Session) note() string {
	host, addr := s.hostInfo()

	return fmt.Sprintf("gist-go CLI helper, first authenticated from %s (%s)", host, addr)
}

// localHostInfo resolves this machine's host name and first address.
// Resolution failures degrade to "unknown" rather than blocking login.
func localHostInfo() (string, string) {
	host, err := os.Hostname()
	if err != nil {
		return "unknown", "unknown"
	}

	addrs, err := net.LookupHost(host)
	if err != nil || len(addrs) == 0 {
		return host, "unknown"
	}

	return host, addrs[0]
}
