package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tonimelisma/gist-go/internal/github"
)

var (
	publicColor  = color.New(color.FgGreen)
	privateColor = color.New(color.FgYellow)
)

// visibilityWidth pads the visibility column to len("private").
const visibilityWidth = 7

// statusf prints an outcome line to stdout unless --quiet is set.
func statusf(cmd *cobra.Command, format string, args ...any) {
	if !flagQuiet {
		fmt.Fprintf(cmd.OutOrStdout(), format, args...)
	}
}

// printSummary writes one listing line: id, visibility, description.
func printSummary(w io.Writer, g github.GistSummary) error {
	vis := fmt.Sprintf("%-*s", visibilityWidth, g.Visibility())

	c := privateColor
	if g.Public {
		c = publicColor
	}

	_, err := fmt.Fprintf(w, "%s  %s  %s\n", g.ID, c.Sprint(vis), g.Description)

	return err
}
