package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

// gistResponse mirrors the GitHub gist JSON for the fields gist-go reads.
// Unexported; callers use Gist / GistSummary via the to* normalizers.
type gistResponse struct {
	ID          string                  `json:"id"`
	Description *string                 `json:"description"`
	Public      bool                    `json:"public"`
	HTMLURL     string                  `json:"html_url"`
	Files       map[string]fileResponse `json:"files"`
}

type fileResponse struct {
	Filename  string `json:"filename"`
	Content   string `json:"content"`
	Truncated bool   `json:"truncated"`
	Size      int64  `json:"size"`
	RawURL    string `json:"raw_url"`
}

func (g *gistResponse) description() string {
	if g.Description == nil {
		return ""
	}

	return *g.Description
}

func (g *gistResponse) toSummary() GistSummary {
	return GistSummary{
		ID:          g.ID,
		Public:      g.Public,
		Description: g.description(),
	}
}

func (g *gistResponse) toGist(raw []byte) *Gist {
	files := make(map[string]File, len(g.Files))

	for name, f := range g.Files {
		// The map key is authoritative; "filename" may be absent in some
		// listing shapes.
		filename := f.Filename
		if filename == "" {
			filename = name
		}

		files[name] = File{
			Filename:  filename,
			Content:   f.Content,
			Truncated: f.Truncated,
			Size:      f.Size,
			RawURL:    f.RawURL,
		}
	}

	return &Gist{
		ID:          g.ID,
		Description: g.description(),
		Public:      g.Public,
		HTMLURL:     g.HTMLURL,
		Files:       files,
		Raw:         raw,
	}
}

// GistsPath returns the first-page path of a gist listing: the named user's
// public gists, or the authenticated caller's own gists when owner is "".
func GistsPath(owner string) string {
	if owner == "" {
		return "/gists"
	}

	return "/users/" + url.PathEscape(owner) + "/gists"
}

// ListGistsPage fetches one page of a gist listing. path is GistsPath(...) for
// the first page and Page.Next afterwards.
func (c *Client) ListGistsPage(ctx context.Context, path string, auth Authenticator) (*Page, error) {
	resp, err := c.Do(ctx, http.MethodGet, path, nil, auth)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var gists []gistResponse
	if err := json.NewDecoder(resp.Body).Decode(&gists); err != nil {
		return nil, fmt.Errorf("github: decoding gist listing: %w", err)
	}

	page := &Page{Items: make([]GistSummary, 0, len(gists))}
	for i := range gists {
		page.Items = append(page.Items, gists[i].toSummary())
	}

	if link := nextLink(resp.Header); link != "" {
		next, stripErr := c.stripBaseURL(link)
		if stripErr != nil {
			return nil, stripErr
		}

		page.Next = next
	}

	c.logger.Debug("fetched gist page",
		slog.String("path", path),
		slog.Int("count", len(page.Items)),
		slog.Bool("has_next", page.Next != ""),
	)

	return page, nil
}

// GetGist fetches a single gist by ID, keeping the raw body alongside the
// decoded form.
func (c *Client) GetGist(ctx context.Context, id string, auth Authenticator) (*Gist, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/gists/"+url.PathEscape(id), nil, auth)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("github: reading gist %s: %w", id, err)
	}

	var gr gistResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return nil, fmt.Errorf("github: decoding gist %s: %w", id, err)
	}

	c.logger.Debug("fetched gist",
		slog.String("id", gr.ID),
		slog.Int("files", len(gr.Files)),
	)

	return gr.toGist(raw), nil
}

// CreateGist creates a gist. GitHub answers 201 Created; any other status
// is an error.
func (c *Client) CreateGist(ctx context.Context, req CreateGistRequest, auth Authenticator) (*Gist, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("github: marshaling create gist request: %w", err)
	}

	resp, err := c.Do(ctx, http.MethodPost, "/gists", bytes.NewReader(body), auth)
	if err != nil {
		return nil, err
	}

	if err := expectStatus(resp, http.StatusCreated); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("github: reading create gist response: %w", err)
	}

	var gr gistResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return nil, fmt.Errorf("github: decoding create gist response: %w", err)
	}

	c.logger.Info("created gist",
		slog.String("id", gr.ID),
		slog.Bool("public", gr.Public),
		slog.Int("files", len(gr.Files)),
	)

	return gr.toGist(raw), nil
}
