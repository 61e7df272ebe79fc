package github

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a Client pointing at the given httptest server.
func newTestClient(t *testing.T, url string) *Client {
	t.Helper()

	return NewClient(url, http.DefaultClient, "test-agent", nil)
}

func TestDo_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"value":"ok"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	resp, err := client.Do(context.Background(), http.MethodGet, "/gists", nil, NoAuth{})
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"value":"ok"}`, string(body))
}

func TestDo_Headers(t *testing.T) {
	var got http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	resp, err := client.Do(context.Background(), http.MethodPost, "/gists", strings.NewReader(`{}`), TokenAuth("abc123"))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "token abc123", got.Get("Authorization"))
	assert.Equal(t, "test-agent", got.Get("User-Agent"))
	assert.Equal(t, acceptHeader, got.Get("Accept"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
}

func TestDo_AuthModes(t *testing.T) {
	tests := []struct {
		name string
		auth Authenticator
		want string
	}{
		{"none", NoAuth{}, ""},
		{"nil", nil, ""},
		{"token", TokenAuth("t0k"), "token t0k"},
		{"basic", BasicAuth{User: "octocat", Password: "pw"}, "Basic b2N0b2NhdDpwdw=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("Authorization")
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			resp, err := newTestClient(t, srv.URL).Do(context.Background(), http.MethodGet, "/x", nil, tt.auth)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDo_ErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"bad request", http.StatusBadRequest, ErrBadRequest},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"unprocessable", http.StatusUnprocessableEntity, ErrUnprocessable},
		{"throttled", http.StatusTooManyRequests, ErrThrottled},
		{"server error", http.StatusBadGateway, ErrServerError},
		{"conflict", http.StatusConflict, ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("X-GitHub-Request-Id", "req-1")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"something broke"}`))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).Do(context.Background(), http.MethodGet, "/test", nil, NoAuth{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "req-1", apiErr.RequestID)
			assert.Equal(t, "something broke", apiErr.Message)
		})
	}
}

func TestDo_ErrorWithoutMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"not json", "<html>oops</html>"},
		{"no message field", `{"documentation_url":"https://docs.github.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).Do(context.Background(), http.MethodGet, "/x", nil, nil)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, defaultErrorMessage, apiErr.Message)
			assert.Equal(t, "github: HTTP 401: "+defaultErrorMessage, apiErr.Error())
		})
	}
}

func TestDo_NoRetry(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Do(context.Background(), http.MethodGet, "/x", nil, nil)
	require.ErrorIs(t, err, ErrServerError)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDo_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, srv.URL).Do(ctx, http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c := NewClient("https://api.github.com/", nil, "ua", nil)
	assert.Equal(t, "https://api.github.com", c.baseURL)
}

func TestStripBaseURL(t *testing.T) {
	c := NewClient("https://api.github.com", nil, "ua", nil)

	path, err := c.stripBaseURL("https://api.github.com/gists?page=2")
	require.NoError(t, err)
	assert.Equal(t, "/gists?page=2", path)

	_, err = c.stripBaseURL("https://evil.example.com/gists?page=2")
	assert.Error(t, err)

	_, err = c.stripBaseURL("https://api.github.com.evil.example.com/gists")
	assert.Error(t, err)
}
