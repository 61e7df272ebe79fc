package github

// Visibility labels for gists.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// GistSummary is one entry of a gist listing.
type GistSummary struct {
	ID          string
	Public      bool
	Description string
}

// Visibility returns "public" or "private".
func (g GistSummary) Visibility() string {
	if g.Public {
		return VisibilityPublic
	}

	return VisibilityPrivate
}

// Gist is a single gist with its files.
type Gist struct {
	ID          string
	Description string
	Public      bool
	HTMLURL     string
	Files       map[string]File

	// Raw is the undecoded response body. Fields gist-go does not model
	// (history, forks, timestamps) travel through it untouched.
	Raw []byte
}

// File is one file inside a gist. Content is not guaranteed complete when
// Truncated is set; GitHub truncates inline content of large files.
type File struct {
	Filename  string
	Content   string
	Truncated bool
	Size      int64
	RawURL    string // NEVER log for private gists, it embeds a secret path
}

// Page is one page of a cursor-linked listing. Next is the API path of the
// following page, "" on the last page.
type Page struct {
	Items []GistSummary
	Next  string
}

// CreateGistRequest is the body of POST /gists.
type CreateGistRequest struct {
	Description string                `json:"description"`
	Public      bool                  `json:"public"`
	Files       map[string]CreateFile `json:"files"`
}

// CreateFile is the inline content of one file in a CreateGistRequest.
type CreateFile struct {
	Content string `json:"content"`
}

// Authorization is a token record from the (legacy) authorizations API.
type Authorization struct {
	ID    int64  `json:"id"`
	Token string `json:"token"`
	Note  string `json:"note"`
}

// AuthorizationRequest is the body of POST /authorizations.
type AuthorizationRequest struct {
	Note   string   `json:"note"`
	Scopes []string `json:"scopes"`
}
