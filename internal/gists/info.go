package gists

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// redactedKeys are top-level gist fields dropped by Info: owner identity,
// revision history, and forks (which embed their owners).
var redactedKeys = []string{"owner", "user", "history", "forks"}

// Info fetches gist id and returns its metadata as indented JSON, with
// identity fields, revision history, and every file's inline content removed.
// Everything else GitHub returns is passed through untouched.
func (t *Transfer) Info(ctx context.Context, id string) ([]byte, error) {
	g, err := t.client.GetGist(ctx, id, t.creds.Auth())
	if err != nil {
		return nil, err
	}

	out, err := redact(g.Raw)
	if err != nil {
		return nil, fmt.Errorf("redacting gist %s: %w", id, err)
	}

	return pretty.Pretty(out), nil
}

// redact strips payload and identity fields from a raw gist document.
func redact(raw []byte) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("response is not valid JSON")
	}

	out := raw

	var err error

	for _, key := range redactedKeys {
		if out, err = sjson.DeleteBytes(out, key); err != nil {
			return nil, err
		}
	}

	var names []string

	gjson.GetBytes(out, "files").ForEach(func(key, _ gjson.Result) bool {
		names = append(names, key.String())
		return true
	})

	for _, name := range names {
		if out, err = sjson.DeleteBytes(out, "files."+escapePathKey(name)+".content"); err != nil {
			return nil, err
		}
	}

	// Refuse to print anything if some file name defeated the path escaping.
	var leaked string

	gjson.GetBytes(out, "files").ForEach(func(key, file gjson.Result) bool {
		if file.Get("content").Exists() {
			leaked = key.String()
			return false
		}

		return true
	})

	if leaked != "" {
		return nil, fmt.Errorf("could not strip content of file %q", leaked)
	}

	return out, nil
}

// escapePathKey escapes gjson/sjson path syntax so a file name such as
// "main.go" or "{x}" addresses one key rather than a nested path, a
// multipath, or a query.
func escapePathKey(key string) string {
	var b strings.Builder

	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '!', '\\', ':',
			'{', '}', '[', ']', ',', '"', '=', '<', '>', '%', '~', '(', ')':
			b.WriteRune('\\')
		}

		b.WriteRune(r)
	}

	return b.String()
}
