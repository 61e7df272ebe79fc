package github

import (
	"net/http"
	"strings"
)

// nextLink returns the target of the rel="next" entry in the response's Link
// headers, or "" when the response is the last page.
//
//	Link: <https://api.github.com/gists?page=2>; rel="next", <...>; rel="last"
func nextLink(h http.Header) string {
	for _, header := range h.Values("Link") {
		for _, entry := range strings.Split(header, ",") {
			target, params, ok := splitLinkEntry(entry)
			if !ok {
				continue
			}

			if hasRel(params, "next") {
				return target
			}
		}
	}

	return ""
}

// splitLinkEntry splits `<url>; a=b; rel="next"` into the URL and its params.
func splitLinkEntry(entry string) (string, []string, bool) {
	entry = strings.TrimSpace(entry)

	if !strings.HasPrefix(entry, "<") {
		return "", nil, false
	}

	end := strings.Index(entry, ">")
	if end < 0 {
		return "", nil, false
	}

	target := entry[1:end]
	params := strings.Split(entry[end+1:], ";")

	return target, params, true
}

// hasRel reports whether any rel param lists the wanted relation. A rel value
// may carry several space-separated relation types.
func hasRel(params []string, want string) bool {
	for _, p := range params {
		key, value, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "rel") {
			continue
		}

		value = strings.Trim(strings.TrimSpace(value), `"`)
		for _, rel := range strings.Fields(value) {
			if strings.EqualFold(rel, want) {
				return true
			}
		}
	}

	return false
}
