package gists

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tonimelisma/gist-go/internal/github"
)

// Local precondition and capability errors. Each is wrapped with the file
// it concerns; branch with errors.Is.
var (
	ErrFileExists              = errors.New("local file already exists (use --override to replace it)")
	ErrTruncatedNotImplemented = errors.New("file is truncated by GitHub; fetching large files is not implemented")
	ErrUnsafeFilename          = errors.New("gist filename is not a plain file name")
	ErrReadInput               = errors.New("cannot read input file")
	ErrDuplicateName           = errors.New("two files share the same name")
	ErrNoInputFiles            = errors.New("no input files")
)

// writePerms is the mode of files written by Fetch.
const writePerms = 0o644

// Transfer moves gist files between GitHub and a local directory.
type Transfer struct {
	client *github.Client
	creds  Credentials
	dir    string
	logger *slog.Logger
}

// NewTransfer creates a Transfer that reads and writes relative to dir.
func NewTransfer(client *github.Client, creds Credentials, dir string, logger *slog.Logger) *Transfer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Transfer{client: client, creds: creds, dir: dir, logger: logger}
}

// Fetch writes every file of gist id into the transfer directory under its
// gist name and returns the names written, in write order.
//
// All files are checked before anything is written: an existing local file
// (without overwrite), a truncated file, an unsafe name, or two names that
// normalize to the same one abort the whole fetch with no writes at all.
func (t *Transfer) Fetch(ctx context.Context, id string, overwrite bool) ([]string, error) {
	g, err := t.client.GetGist(ctx, id, t.creds.Auth())
	if err != nil {
		return nil, err
	}

	names := sortedNames(g.Files)

	if err := checkDistinctNames(names); err != nil {
		return nil, err
	}

	for _, name := range names {
		if err := t.checkFetchable(name, g.Files[name], overwrite); err != nil {
			return nil, err
		}
	}

	written := make([]string, 0, len(names))

	for _, name := range names {
		target := filepath.Join(t.dir, name)

		if err := os.WriteFile(target, []byte(g.Files[name].Content), writePerms); err != nil {
			return written, fmt.Errorf("writing %s: %w", target, err)
		}

		t.logger.Debug("wrote gist file",
			slog.String("gist", g.ID),
			slog.String("path", target),
		)

		written = append(written, name)
	}

	return written, nil
}

// checkFetchable validates one file before any write happens.
func (t *Transfer) checkFetchable(name string, f github.File, overwrite bool) error {
	if !isPlainName(name) {
		return fmt.Errorf("%w: %q", ErrUnsafeFilename, name)
	}

	target := filepath.Join(t.dir, name)

	if !overwrite {
		_, err := os.Lstat(target)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrFileExists, name)
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", target, err)
		}
	}

	if f.Truncated {
		return fmt.Errorf("%w: %s", ErrTruncatedNotImplemented, name)
	}

	return nil
}

// Create reads every path and uploads them as one new gist. All files are
// read, and the credential checked, before any request is sent. title
// defaults to the space-joined file names.
func (t *Transfer) Create(ctx context.Context, paths []string, title string, public bool) (*github.Gist, error) {
	if len(paths) == 0 {
		return nil, ErrNoInputFiles
	}

	files := make(map[string]github.CreateFile, len(paths))
	names := make([]string, 0, len(paths))

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, p, err)
		}

		name := norm.NFC.String(filepath.Base(p))
		if _, dup := files[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}

		files[name] = github.CreateFile{Content: string(data)}
		names = append(names, name)
	}

	description := title
	if description == "" {
		description = strings.Join(names, " ")
	}

	auth, err := t.creds.RequireAuth()
	if err != nil {
		return nil, err
	}

	t.logger.Info("creating gist",
		slog.Int("files", len(files)),
		slog.Bool("public", public),
	)

	return t.client.CreateGist(ctx, github.CreateGistRequest{
		Description: description,
		Public:      public,
		Files:       files,
	}, auth)
}

// sortedNames returns the gist's file names in byte order. GitHub's own
// order is not stable across calls, so a fixed order keeps reports and
// abort points reproducible.
func sortedNames(files map[string]github.File) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// checkDistinctNames rejects gists whose file names differ only in Unicode
// normalization form. Such names share one path on normalizing filesystems,
// so writing both would silently replace the first.
func checkDistinctNames(names []string) error {
	seen := make(map[string]string, len(names))

	for _, name := range names {
		key := norm.NFC.String(name)
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("%w: %q and %q", ErrDuplicateName, prev, name)
		}

		seen[key] = name
	}

	return nil
}

// isPlainName rejects names that would escape the target directory.
func isPlainName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, 0)
}
