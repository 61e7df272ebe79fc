// Package tokenfile persists the single GitHub credential (user handle and
// gist-scoped token) used by gist-go. It is a leaf package: session/ owns the
// login state machine and only asks this package to load, save, or forget.
package tokenfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// FilePerms restricts token files to owner-only read/write.
const FilePerms = 0o600

// DirPerms is used when the token file's directory has to be created.
const DirPerms = 0o700

// Credential is the on-disk format of the token file.
type Credential struct {
	User  string `json:"user"`
	Token string `json:"token"`
}

// Store reads and writes the credential at a fixed path. The path is supplied
// by the caller (config.ResolvedConfig.TokenFile) so tests can point it at a
// temp directory.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore returns a Store for the token file at path.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{path: path, logger: logger}
}

// Path returns the location of the token file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored credential. The boolean is false when no usable
// credential exists: a missing file, unreadable file, corrupt JSON, or a
// record without user or token are all the same "logged out" state.
func (s *Store) Load() (Credential, bool) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no token file", slog.String("path", s.path))

		return Credential{}, false
	}

	if err != nil {
		s.logger.Debug("token file unreadable, treating as logged out",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)

		return Credential{}, false
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		s.logger.Debug("token file corrupt, treating as logged out",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)

		return Credential{}, false
	}

	if cred.User == "" || cred.Token == "" {
		s.logger.Debug("token file incomplete, treating as logged out",
			slog.String("path", s.path),
		)

		return Credential{}, false
	}

	return cred, true
}

// Save writes the credential atomically (write-to-temp + rename). The temp
// file is chmod'ed to 0600 before any content is written, so the token is
// never readable by group or world. Never logs token values.
func (s *Store) Save(cred Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("tokenfile: encoding: %w", err)
	}

	dir := filepath.Dir(s.path)
	if mkErr := os.MkdirAll(dir, DirPerms); mkErr != nil {
		return fmt.Errorf("tokenfile: creating directory %s: %w", dir, mkErr)
	}

	// Same directory guarantees same filesystem for rename(2).
	tmp, err := os.CreateTemp(dir, ".gist-token-*.tmp")
	if err != nil {
		return fmt.Errorf("tokenfile: creating temp file: %w", err)
	}

	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := os.Chmod(tmpPath, FilePerms); err != nil {
		tmp.Close()
		return fmt.Errorf("tokenfile: setting permissions: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("tokenfile: writing: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("tokenfile: syncing: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tokenfile: closing: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("tokenfile: renaming: %w", err)
	}

	success = true

	s.logger.Debug("saved token file",
		slog.String("path", s.path),
		slog.String("user", cred.User),
	)

	return nil
}

// Delete removes the token file. A file that is already gone is not an error.
func (s *Store) Delete() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no token file to remove", slog.String("path", s.path))

		return nil
	}

	if err != nil {
		return fmt.Errorf("tokenfile: removing %s: %w", s.path, err)
	}

	s.logger.Debug("removed token file", slog.String("path", s.path))

	return nil
}
