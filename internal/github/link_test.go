package github

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextLink(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    string
	}{
		{"absent", nil, ""},
		{
			"next and last",
			[]string{`<https://api.github.com/gists?page=2>; rel="next", <https://api.github.com/gists?page=5>; rel="last"`},
			"https://api.github.com/gists?page=2",
		},
		{
			"last page",
			[]string{`<https://api.github.com/gists?page=1>; rel="first", <https://api.github.com/gists?page=4>; rel="prev"`},
			"",
		},
		{
			"next listed second",
			[]string{`<https://api.github.com/gists?page=1>; rel="prev", <https://api.github.com/gists?page=3>; rel="next"`},
			"https://api.github.com/gists?page=3",
		},
		{
			"unquoted rel",
			[]string{`<https://api.github.com/gists?page=2>; rel=next`},
			"https://api.github.com/gists?page=2",
		},
		{
			"multi-valued rel",
			[]string{`<https://api.github.com/gists?page=2>; rel="next last"`},
			"https://api.github.com/gists?page=2",
		},
		{
			"split across headers",
			[]string{`<https://api.github.com/gists?page=1>; rel="prev"`, `<https://api.github.com/gists?page=3>; rel="next"`},
			"https://api.github.com/gists?page=3",
		},
		{"malformed", []string{`https://api.github.com/gists?page=2; rel="next"`}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for _, v := range tt.headers {
				h.Add("Link", v)
			}

			assert.Equal(t, tt.want, nextLink(h))
		})
	}
}
