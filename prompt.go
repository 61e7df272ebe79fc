package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/tonimelisma/gist-go/internal/session"
)

// readPassword reads a line without echo from a terminal fd.
var readPassword = term.ReadPassword

// newPrompter returns a session.Prompter that writes the label to out and
// reads one line from in. A terminal is read without echo; anything else
// (pipes, tests) is read as a plain line.
func newPrompter(in io.Reader, out io.Writer) session.Prompter {
	var lines *bufio.Reader

	return func(label string) (string, error) {
		fmt.Fprint(out, label)

		if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			secret, err := readPassword(int(f.Fd()))
			fmt.Fprintln(out)

			if err != nil {
				return "", fmt.Errorf("reading password: %w", err)
			}

			return string(secret), nil
		}

		if lines == nil {
			lines = bufio.NewReader(in)
		}

		line, err := lines.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading password: %w", err)
		}

		return strings.TrimRight(line, "\r\n"), nil
	}
}
