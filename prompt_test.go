package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_ReadsLine(t *testing.T) {
	var out bytes.Buffer

	prompt := newPrompter(strings.NewReader("s3cret\r\nsecond\n"), &out)

	got, err := prompt("GitHub password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Equal(t, "GitHub password: ", out.String())

	got, err = prompt("again: ")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestPrompter_EOF(t *testing.T) {
	prompt := newPrompter(strings.NewReader(""), &bytes.Buffer{})

	got, err := prompt("GitHub password: ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPrompter_NoTrailingNewline(t *testing.T) {
	prompt := newPrompter(strings.NewReader("pw"), &bytes.Buffer{})

	got, err := prompt("GitHub password: ")
	require.NoError(t, err)
	assert.Equal(t, "pw", got)
}
