package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindModuleRoot(t *testing.T) {
	root := FindModuleRoot("..")

	_, err := os.Stat(filepath.Join(root, "go.mod"))
	assert.NoError(t, err)
}

func TestIsolatedEnv(t *testing.T) {
	t.Setenv("GIST_GO_TOKEN_FILE", "/real/token")
	t.Setenv("HOME", "/real/home")

	env := IsolatedEnv("/tmp/fake", "GIST_GO_API_URL=http://127.0.0.1:1")

	joined := strings.Join(env, "\n")
	assert.NotContains(t, joined, "/real/token")
	assert.NotContains(t, joined, "HOME=/real/home")
	assert.Contains(t, env, "HOME=/tmp/fake")
	assert.Contains(t, env, "XDG_CONFIG_HOME="+filepath.Join("/tmp/fake", ".config"))
	assert.Contains(t, env, "GIST_GO_API_URL=http://127.0.0.1:1")
}
