package linkstore

import (
	"errors"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"

	"github.com/agentx-labs/extreg/internal/branding"
	"github.com/agentx-labs/extreg/internal/platform"
	"github.com/agentx-labs/extreg/internal/userdata"
)

// Sentinel errors returned by Store operations. Other failures are I/O
// errors wrapping the underlying os error.
var (
	ErrNotPresent    = errors.New("link record not present")
	ErrAlreadyExists = errors.New("link record already exists")
	ErrInvalidName   = errors.New("invalid extension name")
)

// Store reads and writes link records in one registry root.
type Store struct {
	root   string
	suffix string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithSuffix overrides the link file suffix (default from branding, ".extlnk").
func WithSuffix(suffix string) Option {
	return func(s *Store) {
		s.suffix = suffix
	}
}

// WithLogger sets the logger used to report skipped files.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// Open returns a Store rooted at root. The directory is not created until
// EnsureRoot is called.
func Open(root string, opts ...Option) *Store {
	s := &Store{
		root:   root,
		suffix: branding.LinkSuffix(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the registry root directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the link file path for name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, name+s.suffix)
}

// Lookup returns the spelling under which a record for name is stored.
// Names compare case-insensitively and an exact match wins, so one
// extension never has two records that differ only in case.
func (s *Store) Lookup(name string) (string, bool, error) {
	if err := ValidateName(name); err != nil {
		return "", false, err
	}

	info, err := os.Lstat(s.Path(name))
	switch {
	case err == nil && info.Mode().IsRegular():
		return name, true, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return "", false, oops.In("linkstore").With("name", name).Wrapf(err, "stat link record")
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, oops.In("linkstore").With("root", s.root).Wrapf(err, "list registry root")
	}
	for _, entry := range entries {
		if stored, ok := s.nameFromFile(entry); ok && strings.EqualFold(stored, name) {
			return stored, true, nil
		}
	}
	return "", false, nil
}

// EnsureRoot creates the registry root if needed. It is idempotent.
func (s *Store) EnsureRoot() error {
	if err := os.MkdirAll(s.root, userdata.DirPermNormal); err != nil {
		return oops.In("linkstore").With("root", s.root).Wrapf(err, "create registry root")
	}
	return nil
}

// Read returns the record for name, or ErrNotPresent.
func (s *Store) Read(name string) (Record, error) {
	if err := ValidateName(name); err != nil {
		return Record{}, err
	}

	stored, ok, err := s.Lookup(name)
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, oops.In("linkstore").With("name", name).Wrap(ErrNotPresent)
	}

	path := s.Path(stored)
	data, err := os.ReadFile(path) //nolint:gosec // path is built from a validated name
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, oops.In("linkstore").With("name", name).Wrap(ErrNotPresent)
		}
		return Record{}, oops.In("linkstore").With("path", path).Wrapf(err, "read link record")
	}

	rec, err := decodeRecord(data)
	if err != nil {
		return Record{}, oops.In("linkstore").With("path", path).Wrapf(err, "decode link record")
	}
	return rec, nil
}

// ReadAll lists the link files in the registry root and returns a sequence
// that decodes them lazily, yielding (name, record) pairs in no particular
// order. A missing root yields an empty sequence. Files that cannot be read
// or decoded are logged and skipped.
func (s *Store) ReadAll() (iter.Seq2[string, Record], error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return func(func(string, Record) bool) {}, nil
		}
		return nil, oops.In("linkstore").With("root", s.root).Wrapf(err, "list registry root")
	}

	return func(yield func(string, Record) bool) {
		for _, entry := range entries {
			name, ok := s.nameFromFile(entry)
			if !ok {
				continue
			}
			rec, err := s.Read(name)
			if err != nil {
				s.logger.Warn("skipping unreadable link record",
					"file", entry.Name(),
					"error", err)
				continue
			}
			if !yield(name, rec) {
				return
			}
		}
	}, nil
}

// nameFromFile derives the extension name from a link file entry.
func (s *Store) nameFromFile(entry fs.DirEntry) (string, bool) {
	if entry.IsDir() {
		return "", false
	}
	fileName := entry.Name()
	if !strings.HasSuffix(fileName, s.suffix) || strings.HasPrefix(fileName, ".") {
		return "", false
	}
	name := strings.TrimSuffix(fileName, s.suffix)
	if ValidateName(name) != nil {
		return "", false
	}
	return name, true
}

// Write creates the record for name. It fails with ErrAlreadyExists if a
// record is present under any spelling of name and never replaces it.
//
// The document is written to a hidden temporary file in the root and then
// published under its final name with platform.PublishFile, which refuses
// to replace an existing file.
func (s *Store) Write(name string, rec Record) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	stored, ok, err := s.Lookup(name)
	if err != nil {
		return err
	}
	if ok {
		return oops.In("linkstore").With("name", name).With("path", s.Path(stored)).Wrap(ErrAlreadyExists)
	}

	data, err := encodeRecord(rec)
	if err != nil {
		return oops.In("linkstore").With("name", name).Wrapf(err, "encode link record")
	}

	tmp, err := os.CreateTemp(s.root, "."+name+".*.tmp")
	if err != nil {
		return oops.In("linkstore").With("root", s.root).Wrapf(err, "create temporary link file")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return oops.In("linkstore").With("path", tmpName).Wrapf(err, "write temporary link file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return oops.In("linkstore").With("path", tmpName).Wrapf(err, "sync temporary link file")
	}
	if err := tmp.Close(); err != nil {
		return oops.In("linkstore").With("path", tmpName).Wrapf(err, "close temporary link file")
	}
	if err := platform.Chmod(tmpName, userdata.FilePermNormal); err != nil {
		return oops.In("linkstore").With("path", tmpName).Wrapf(err, "set link file permissions")
	}

	path := s.Path(name)
	if err := platform.PublishFile(tmpName, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return oops.In("linkstore").With("name", name).With("path", path).Wrap(ErrAlreadyExists)
		}
		return oops.In("linkstore").With("path", path).Wrapf(err, "publish link record")
	}
	return nil
}

// Delete removes the record for name, under whatever spelling it is
// stored, or returns ErrNotPresent.
func (s *Store) Delete(name string) error {
	stored, ok, err := s.Lookup(name)
	if err != nil {
		return err
	}
	if !ok {
		return oops.In("linkstore").With("name", name).Wrap(ErrNotPresent)
	}

	path := s.Path(stored)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return oops.In("linkstore").With("name", name).Wrap(ErrNotPresent)
		}
		return oops.In("linkstore").With("path", path).Wrapf(err, "remove link record")
	}
	return nil
}
