package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// ErrMissingToken is returned when a successful authorization response
// carries no token.
var ErrMissingToken = errors.New("github: authorization response has no token")

// CreateAuthorization issues a new token under basic auth.
func (c *Client) CreateAuthorization(ctx context.Context, auth BasicAuth, req AuthorizationRequest) (*Authorization, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("github: marshaling authorization request: %w", err)
	}

	resp, err := c.Do(ctx, http.MethodPost, "/authorizations", bytes.NewReader(body), auth)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var a Authorization
	if err := json.NewDecoder(resp.Body).Decode(&a); err != nil {
		return nil, fmt.Errorf("github: decoding authorization response: %w", err)
	}

	if a.Token == "" {
		return nil, ErrMissingToken
	}

	c.logger.Info("authorization created", slog.Int64("id", a.ID))

	return &a, nil
}

// ListAuthorizations returns every authorization of the basic-auth user,
// following Link cursors until the last page. Each page must answer 200.
func (c *Client) ListAuthorizations(ctx context.Context, auth BasicAuth) ([]Authorization, error) {
	var all []Authorization

	path := "/authorizations"
	for path != "" {
		resp, err := c.Do(ctx, http.MethodGet, path, nil, auth)
		if err != nil {
			return nil, err
		}

		if err := expectStatus(resp, http.StatusOK); err != nil {
			return nil, err
		}

		var page []Authorization
		decodeErr := json.NewDecoder(resp.Body).Decode(&page)
		next := nextLink(resp.Header)
		resp.Body.Close()

		if decodeErr != nil {
			return nil, fmt.Errorf("github: decoding authorizations: %w", decodeErr)
		}

		all = append(all, page...)

		path = ""
		if next != "" {
			if path, err = c.stripBaseURL(next); err != nil {
				return nil, err
			}
		}
	}

	c.logger.Debug("listed authorizations", slog.Int("count", len(all)))

	return all, nil
}

// DeleteAuthorization revokes one authorization. GitHub answers 204 No
// Content; any other status is an error.
func (c *Client) DeleteAuthorization(ctx context.Context, auth BasicAuth, id int64) error {
	resp, err := c.Do(ctx, http.MethodDelete, "/authorizations/"+strconv.FormatInt(id, 10), nil, auth)
	if err != nil {
		return err
	}

	if err := expectStatus(resp, http.StatusNoContent); err != nil {
		return err
	}

	resp.Body.Close()

	c.logger.Info("authorization deleted", slog.Int64("id", id))

	return nil
}
