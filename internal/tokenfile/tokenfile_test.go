package tokenfile

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	return NewStore(filepath.Join(t.TempDir(), ".gist_token"), nil)
}

func TestLoad_FileNotFound(t *testing.T) {
	s := NewStore("/nonexistent/path/.gist_token", nil)

	cred, ok := s.Load()
	assert.False(t, ok)
	assert.Equal(t, Credential{}, cred)
}

func TestSaveThenLoad(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(Credential{User: "octocat", Token: "tok-123"}))

	cred, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, "octocat", cred.User)
	assert.Equal(t, "tok-123", cred.Token)
}

func TestDeleteThenLoad(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(Credential{User: "octocat", Token: "tok-123"}))
	require.NoError(t, s.Delete())

	_, ok := s.Load()
	assert.False(t, ok)
}

func TestDelete_Missing(t *testing.T) {
	s := newTestStore(t)

	assert.NoError(t, s.Delete())
}

func TestLoad_InvalidJSON(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{not json}`), FilePerms))

	_, ok := s.Load()
	assert.False(t, ok)
}

func TestLoad_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no token", `{"user":"octocat"}`},
		{"no user", `{"token":"abc"}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.body), FilePerms))

			_, ok := s.Load()
			assert.False(t, ok)
		})
	}
}

func TestLoad_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}

	s := newTestStore(t)
	require.NoError(t, s.Save(Credential{User: "octocat", Token: "tok"}))
	require.NoError(t, os.Chmod(s.Path(), 0o000))

	_, ok := s.Load()
	assert.False(t, ok)
}

func TestSave_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits only")
	}

	s := newTestStore(t)
	require.NoError(t, s.Save(Credential{User: "octocat", Token: "tok"}))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FilePerms), info.Mode().Perm())
}

func TestSave_CreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "sub", "dir", ".gist_token")
	s := NewStore(nested, nil)

	require.NoError(t, s.Save(Credential{User: "octocat", Token: "tok"}))

	_, ok := s.Load()
	assert.True(t, ok)
}

func TestSave_Overwrites(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(Credential{User: "first", Token: "one"}))
	require.NoError(t, s.Save(Credential{User: "second", Token: "two"}))

	cred, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, Credential{User: "second", Token: "two"}, cred)
}

func TestSave_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, ".gist_token"), nil)

	require.NoError(t, s.Save(Credential{User: "octocat", Token: "tok"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".gist_token", entries[0].Name())
}

func TestSave_OnDiskFormat(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(Credential{User: "octocat", Token: "tok"}))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":"octocat","token":"tok"}`, string(data))
}
