package config

import (
	"fmt"
	"io"
)

// RenderEffective writes the resolved configuration to w in TOML form,
// headed by the file it was read from. Powers "config show".
func RenderEffective(r *Resolved, w io.Writer) error {
	ew := &errWriter{w: w}

	ew.printf("# Effective configuration (file: %s)\n\n", r.ConfigPath)
	ew.printf("api_url    = %q\n", r.APIURL)
	ew.printf("token_file = %q\n", r.TokenFile)
	ew.printf("user_agent = %q\n", r.UserAgent)
	ew.printf("timeout    = %q\n", r.Timeout.String())
	ew.printf("log_level  = %q\n", r.LogLevel)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first write error.
// Subsequent writes after an error are no-ops.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}

	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
