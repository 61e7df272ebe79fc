// Package ghtest provides an in-process fake of the GitHub gist and
// authorization endpoints for tests. It speaks the same JSON shapes, status
// codes, and Link-header pagination as the real API.
package ghtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// DefaultPageSize matches GitHub's default per_page for gist listings.
const DefaultPageSize = 30

type authorization struct {
	ID    int64  `json:"id"`
	Token string `json:"token"`
	Note  string `json:"note"`
	user  string
}

type gist struct {
	id          string
	owner       string
	public      bool
	description string
	files       map[string]string
}

// Server is a fake GitHub API. Zero-valued knobs mean "behave like GitHub".
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	requests  atomic.Int32
	passwords map[string]string
	auths     []authorization
	gists     map[string]*gist
	order     []string
	nextID    int64

	// PageSize is the number of gists per listing page.
	PageSize int
	// TruncateAt marks file content longer than this many bytes as
	// truncated in single-gist responses. 0 disables truncation.
	TruncateAt int
	// DeleteStatus, when non-zero, is returned by DELETE /authorizations/{id}
	// instead of 204, and the authorization is kept.
	DeleteStatus int
}

// NewServer starts a fake and registers its shutdown with t.Cleanup.
func NewServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		passwords: make(map[string]string),
		gists:     make(map[string]*gist),
		PageSize:  DefaultPageSize,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /authorizations", s.createAuthorization)
	mux.HandleFunc("GET /authorizations", s.listAuthorizations)
	mux.HandleFunc("DELETE /authorizations/{id}", s.deleteAuthorization)
	mux.HandleFunc("GET /gists", s.listOwnGists)
	mux.HandleFunc("POST /gists", s.createGist)
	mux.HandleFunc("GET /gists/{id}", s.getGist)
	mux.HandleFunc("GET /users/{user}/gists", s.listUserGists)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)

	return s
}

// Requests returns how many requests the fake has received.
func (s *Server) Requests() int {
	return int(s.requests.Load())
}

// AddUser registers a basic-auth account.
func (s *Server) AddUser(user, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.passwords[user] = password
}

// IssueToken creates an authorization for user directly, as if a prior login
// had happened, and returns its token.
func (s *Server) IssueToken(user string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.issueLocked(user, "issued by test").Token
}

// HasToken reports whether an authorization with this token still exists.
func (s *Server) HasToken(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.userForTokenLocked(token) != ""
}

// AddGist stores a gist and returns its ID.
func (s *Server) AddGist(owner string, public bool, description string, files map[string]string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addGistLocked(owner, public, description, files)
}

func (s *Server) addGistLocked(owner string, public bool, description string, files map[string]string) string {
	s.nextID++
	id := fmt.Sprintf("%032x", s.nextID)

	copied := make(map[string]string, len(files))
	for k, v := range files {
		copied[k] = v
	}

	s.gists[id] = &gist{id: id, owner: owner, public: public, description: description, files: copied}
	s.order = append(s.order, id)

	return id
}

func (s *Server) issueLocked(user, note string) authorization {
	s.nextID++
	a := authorization{
		ID:    s.nextID,
		Token: fmt.Sprintf("gho_%s_%d", user, s.nextID),
		Note:  note,
		user:  user,
	}
	s.auths = append(s.auths, a)

	return a
}

func (s *Server) userForTokenLocked(token string) string {
	for _, a := range s.auths {
		if a.Token == token {
			return a.user
		}
	}

	return ""
}

// basicUser validates basic auth and returns the user, writing 401 on failure.
func (s *Server) basicUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, pass, ok := r.BasicAuth()
	if !ok || s.passwords[user] == "" || s.passwords[user] != pass {
		writeMessage(w, http.StatusUnauthorized, "Bad credentials")
		return "", false
	}

	return user, true
}

// tokenUser returns the user behind an "Authorization: token ..." header,
// "" for anonymous requests. An unknown token is a 401.
func (s *Server) tokenUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", true
	}

	tok, ok := strings.CutPrefix(h, "token ")
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Bad credentials")
		return "", false
	}

	user := s.userForTokenLocked(tok)
	if user == "" {
		writeMessage(w, http.StatusUnauthorized, "Bad credentials")
		return "", false
	}

	return user, true
}

func (s *Server) createAuthorization(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.basicUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Note   string   `json:"note"`
		Scopes []string `json:"scopes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Note == "" {
		writeMessage(w, http.StatusUnprocessableEntity, "Validation Failed")
		return
	}

	writeJSON(w, http.StatusCreated, s.issueLocked(user, req.Note))
}

func (s *Server) listAuthorizations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.basicUser(w, r)
	if !ok {
		return
	}

	out := []authorization{}
	for _, a := range s.auths {
		if a.user == user {
			out = append(out, a)
		}
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteAuthorization(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.basicUser(w, r)
	if !ok {
		return
	}

	if s.DeleteStatus != 0 {
		writeMessage(w, s.DeleteStatus, "Delete refused by test server")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}

	for i, a := range s.auths {
		if a.ID == id && a.user == user {
			s.auths = append(s.auths[:i], s.auths[i+1:]...)
			w.WriteHeader(http.StatusNoContent)

			return
		}
	}

	writeMessage(w, http.StatusNotFound, "Not Found")
}

func (s *Server) listOwnGists(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.tokenUser(w, r)
	if !ok {
		return
	}

	// Anonymous /gists lists every public gist, as GitHub does.
	s.writeListing(w, r, func(g *gist) bool {
		if user == "" {
			return g.public
		}

		return g.owner == user
	})
}

func (s *Server) listUserGists(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokenUser(w, r); !ok {
		return
	}

	owner := r.PathValue("user")
	s.writeListing(w, r, func(g *gist) bool {
		return g.owner == owner && g.public
	})
}

func (s *Server) writeListing(w http.ResponseWriter, r *http.Request, match func(*gist) bool) {
	var selected []*gist

	for _, id := range s.order {
		if g := s.gists[id]; match(g) {
			selected = append(selected, g)
		}
	}

	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	size := s.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	start := min((page-1)*size, len(selected))
	end := min(start+size, len(selected))

	out := make([]map[string]any, 0, end-start)
	for _, g := range selected[start:end] {
		out = append(out, s.summaryJSON(g))
	}

	if end < len(selected) {
		w.Header().Set("Link", fmt.Sprintf(`<%s%s?page=%d>; rel="next"`, s.URL, r.URL.Path, page+1))
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getGist(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokenUser(w, r); !ok {
		return
	}

	g, found := s.gists[r.PathValue("id")]
	if !found {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}

	out := s.summaryJSON(g)
	out["history"] = []map[string]any{{"version": "v1", "user": map[string]any{"login": g.owner}}}
	out["forks"] = []any{}

	files := out["files"].(map[string]any)
	for name, content := range g.files {
		f := files[name].(map[string]any)

		truncated := s.TruncateAt > 0 && len(content) > s.TruncateAt
		if truncated {
			content = content[:s.TruncateAt]
		}

		f["content"] = content
		f["truncated"] = truncated
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createGist(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.tokenUser(w, r)
	if !ok {
		return
	}

	if user == "" {
		writeMessage(w, http.StatusUnauthorized, "Requires authentication")
		return
	}

	var req struct {
		Description string `json:"description"`
		Public      bool   `json:"public"`
		Files       map[string]struct {
			Content string `json:"content"`
		} `json:"files"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Files) == 0 {
		writeMessage(w, http.StatusUnprocessableEntity, "Validation Failed")
		return
	}

	files := make(map[string]string, len(req.Files))
	for name, f := range req.Files {
		files[name] = f.Content
	}

	id := s.addGistLocked(user, req.Public, req.Description, files)
	writeJSON(w, http.StatusCreated, s.summaryJSON(s.gists[id]))
}

// summaryJSON renders the listing shape of a gist: metadata and per-file
// metadata, no content.
func (s *Server) summaryJSON(g *gist) map[string]any {
	names := make([]string, 0, len(g.files))
	for name := range g.files {
		names = append(names, name)
	}

	sort.Strings(names)

	files := make(map[string]any, len(names))
	for _, name := range names {
		files[name] = map[string]any{
			"filename": name,
			"size":     len(g.files[name]),
			"raw_url":  fmt.Sprintf("%s/raw/%s/%s", s.URL, g.id, name),
		}
	}

	return map[string]any{
		"id":          g.id,
		"public":      g.public,
		"description": g.description,
		"html_url":    "https://gist.github.com/" + g.id,
		"owner":       map[string]any{"login": g.owner},
		"files":       files,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
