// Package testutil provides shared helpers for the binary-level E2E tests.
// It depends only on stdlib.
package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// FindModuleRoot walks up from the current directory to find go.mod.
// Returns the fallback if the root is not found.
func FindModuleRoot(fallback string) string {
	dir, err := os.Getwd()
	if err != nil {
		return fallback
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return fallback
		}

		dir = parent
	}
}

// BuildBinary compiles the module's main package into dir and returns the
// binary path.
func BuildBinary(moduleRoot, dir, name string) (string, error) {
	out := filepath.Join(dir, name)

	cmd := exec.Command("go", "build", "-o", out, ".")
	cmd.Dir = moduleRoot
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("building %s: %w", name, err)
	}

	return out, nil
}

// IsolatedEnv returns os.Environ() with HOME, XDG_CONFIG_HOME, and every
// GIST_GO_ variable replaced, so a test run never touches the user's real
// token or config. extra entries are appended as KEY=VALUE.
func IsolatedEnv(home string, extra ...string) []string {
	var env []string

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if key == "HOME" || key == "XDG_CONFIG_HOME" || strings.HasPrefix(key, "GIST_GO_") {
			continue
		}

		env = append(env, kv)
	}

	env = append(env, "HOME="+home, "XDG_CONFIG_HOME="+filepath.Join(home, ".config"))

	return append(env, extra...)
}
