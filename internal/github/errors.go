// Package github provides a single-attempt HTTP client for the parts of the
// GitHub REST API that gist-go consumes: authorizations, gist listings,
// single gists, and gist creation.
package github

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// Sentinel errors for HTTP status code classification.
// Use errors.Is(err, github.ErrNotFound) to check.
var (
	ErrBadRequest       = errors.New("github: bad request")
	ErrUnauthorized     = errors.New("github: unauthorized")
	ErrForbidden        = errors.New("github: forbidden")
	ErrNotFound         = errors.New("github: not found")
	ErrUnprocessable    = errors.New("github: unprocessable entity")
	ErrThrottled        = errors.New("github: rate limited")
	ErrServerError      = errors.New("github: server error")
	ErrUnexpectedStatus = errors.New("github: unexpected status")
)

// defaultErrorMessage is used when the response carries no "message" field.
const defaultErrorMessage = "No message returned from server."

// APIError wraps a sentinel error with the HTTP status code, GitHub request
// ID, and the service's own "message" field.
type APIError struct {
	StatusCode int
	RequestID  string
	Message    string
	Err        error // sentinel, for errors.Is()
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("github: HTTP %d (request-id: %s): %s", e.StatusCode, e.RequestID, e.Message)
	}

	return fmt.Sprintf("github: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// newAPIError drains and closes resp.Body and builds an APIError from it.
// fallback replaces the generic message when the body has no "message".
func newAPIError(resp *http.Response, sentinel error, fallback string) *APIError {
	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()

	msg := ""
	if readErr == nil {
		msg = errorMessage(body)
	}

	if msg == "" {
		msg = fallback
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get("X-GitHub-Request-Id"),
		Message:    msg,
		Err:        sentinel,
	}
}

// errorMessage extracts the "message" field of a GitHub error body.
// Returns "" for non-JSON bodies or bodies without the field.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}

	return gjson.GetBytes(body, "message").String()
}

// classifyStatus maps an HTTP status code to a sentinel error.
// Returns nil for 2xx success codes.
func classifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnprocessableEntity:
		return ErrUnprocessable
	case http.StatusTooManyRequests:
		return ErrThrottled
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}

		if code >= http.StatusOK && code < http.StatusMultipleChoices {
			return nil
		}

		return ErrUnexpectedStatus
	}
}

// expectStatus checks that a successful response carries exactly the status
// the endpoint documents (201 for create, 204 for delete). On mismatch the
// body is consumed and an APIError wrapping ErrUnexpectedStatus is returned.
func expectStatus(resp *http.Response, want int) error {
	if resp.StatusCode == want {
		return nil
	}

	return newAPIError(resp, ErrUnexpectedStatus,
		fmt.Sprintf("Was expecting code %d but got %d.", want, resp.StatusCode))
}
