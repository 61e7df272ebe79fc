package main

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonimelisma/gist-go/internal/github"
	"github.com/tonimelisma/gist-go/internal/session"
)

func TestLogin_StoresToken(t *testing.T) {
	env := newCLIEnv(t)
	env.srv.AddUser("octocat", "hunter2")

	stdout, stderr, err := env.run(t, "hunter2\n", "login", "octocat")
	require.NoError(t, err)

	assert.Equal(t, "Log in successful\n", stdout)
	assert.Contains(t, stderr, "GitHub password: ")

	data, err := os.ReadFile(env.tokenPath)
	require.NoError(t, err)

	var cred struct {
		User  string `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(data, &cred))
	assert.Equal(t, "octocat", cred.User)
	assert.True(t, env.srv.HasToken(cred.Token))

	info, err := os.Stat(env.tokenPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLogin_AlreadyLoggedIn(t *testing.T) {
	env := newCLIEnv(t)
	env.srv.AddUser("octocat", "hunter2")

	_, _, err := env.run(t, "hunter2\n", "login", "octocat")
	require.NoError(t, err)

	before := env.srv.Requests()

	_, _, err = env.run(t, "hunter2\n", "login", "octocat")
	require.ErrorIs(t, err, session.ErrAlreadyLoggedIn)
	assert.Equal(t, before, env.srv.Requests())
}

func TestLogin_BadCredentials(t *testing.T) {
	env := newCLIEnv(t)
	env.srv.AddUser("octocat", "hunter2")

	_, _, err := env.run(t, "wrong\n", "login", "octocat")
	require.ErrorIs(t, err, github.ErrUnauthorized)
	assert.Contains(t, err.Error(), "Bad credentials")
	assert.False(t, env.tokenExists())
}

func TestLogin_RequiresUser(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "", "login")
	require.Error(t, err)
	assert.Equal(t, 0, env.srv.Requests())
}

func TestLogout_Revokes(t *testing.T) {
	env := newCLIEnv(t)
	env.srv.AddUser("octocat", "hunter2")

	_, _, err := env.run(t, "hunter2\n", "login", "octocat")
	require.NoError(t, err)

	stdout, stderr, err := env.run(t, "hunter2\n", "logout")
	require.NoError(t, err)

	assert.Equal(t, "Log out successful\n", stdout)
	assert.Contains(t, stderr, "basic authorization")
	assert.False(t, env.tokenExists())
}

func TestLogout_NothingToDo(t *testing.T) {
	env := newCLIEnv(t)

	stdout, _, err := env.run(t, "", "logout")
	require.NoError(t, err)
	assert.Equal(t, "No stored token found. Did you already log out?\n", stdout)
	assert.Equal(t, 0, env.srv.Requests())
}

func TestLogout_BlankAborts(t *testing.T) {
	env := newCLIEnv(t)
	env.srv.AddUser("octocat", "hunter2")

	_, _, err := env.run(t, "hunter2\n", "login", "octocat")
	require.NoError(t, err)

	before := env.srv.Requests()

	stdout, _, err := env.run(t, "\n", "logout")
	require.NoError(t, err)
	assert.Equal(t, "Aborting logout\n", stdout)
	assert.Equal(t, before, env.srv.Requests())
	assert.True(t, env.tokenExists())
}

func TestLogout_RevokeFailsKeepsToken(t *testing.T) {
	env := newCLIEnv(t)
	env.srv.AddUser("octocat", "hunter2")

	_, _, err := env.run(t, "hunter2\n", "login", "octocat")
	require.NoError(t, err)

	env.srv.DeleteStatus = http.StatusForbidden

	_, _, err = env.run(t, "hunter2\n", "logout")
	require.ErrorIs(t, err, session.ErrRevokeFailed)
	assert.True(t, env.tokenExists())
}

func TestLogout_QuietSuppressesOutcome(t *testing.T) {
	env := newCLIEnv(t)

	stdout, _, err := env.run(t, "", "--quiet", "logout")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}
