package github

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// DefaultBaseURL is the public GitHub REST API origin.
const DefaultBaseURL = "https://api.github.com"

// acceptHeader pins the REST media type.
const acceptHeader = "application/vnd.github+json"

// Authenticator decorates an outgoing request with credentials.
type Authenticator interface {
	Authorize(req *http.Request)
}

// NoAuth sends the request anonymously.
type NoAuth struct{}

// Authorize implements Authenticator.
func (NoAuth) Authorize(*http.Request) {}

// BasicAuth authenticates with a user handle and password. Only used for the
// authorizations endpoints; the password is never stored or logged.
type BasicAuth struct {
	User     string
	Password string
}

// Authorize implements Authenticator.
func (b BasicAuth) Authorize(req *http.Request) {
	req.SetBasicAuth(b.User, b.Password)
}

// TokenAuth sends "Authorization: token <value>", the header form GitHub uses
// for personal and OAuth tokens.
type TokenAuth string

// Authorize implements Authenticator.
func (t TokenAuth) Authorize(req *http.Request) {
	tok := &oauth2.Token{AccessToken: string(t), TokenType: "token"}
	tok.SetAuthHeader(req)
}

// Client is an HTTP client for the GitHub REST API. Every request is sent
// exactly once; there is no retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates a GitHub API client. baseURL is typically DefaultBaseURL;
// tests pass an httptest server URL.
func NewClient(baseURL string, httpClient *http.Client, userAgent string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		userAgent:  userAgent,
		logger:     logger,
	}
}

// Do executes a single request against the API. The path is appended to the
// client's base URL. Non-2xx responses are drained, closed, and returned as
// *APIError. The caller closes the body of a successful response.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, auth Authenticator) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("github: creating request: %w", err)
	}

	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if auth == nil {
		auth = NoAuth{}
	}

	auth.Authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("github: request canceled: %w", ctx.Err())
		}

		return nil, fmt.Errorf("github: %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		c.logger.Debug("request succeeded",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)

		return resp, nil
	}

	apiErr := newAPIError(resp, classifyStatus(resp.StatusCode), defaultErrorMessage)

	c.logger.Debug("request failed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.String("message", apiErr.Message),
	)

	return nil, apiErr
}

// stripBaseURL turns a cursor URL from a Link header into a path for Do.
// Cursors pointing at another origin are rejected so credentials are never
// sent anywhere but the configured API.
func (c *Client) stripBaseURL(fullURL string) (string, error) {
	if !strings.HasPrefix(fullURL, c.baseURL+"/") {
		return "", fmt.Errorf("github: next link %q does not match base URL %q", fullURL, c.baseURL)
	}

	return fullURL[len(c.baseURL):], nil
}
