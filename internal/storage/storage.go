package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Content source modes.
const (
	ModeEmbed = "embed"
	ModeDisk  = "disk"
)

// Source is a filesystem holding course section files, plus the root the
// loader should walk. Dir is the on-disk directory for ModeDisk and empty for
// embedded content.
type Source struct {
	Fs   afero.Fs
	Root string
	Dir  string
}

// Watchable reports whether the source is backed by a real directory.
func (s Source) Watchable() bool { return s.Dir != "" }

// OpenSource returns the content filesystem for mode. embedded must contain a
// "content" directory.
func OpenSource(mode, dir string, embedded fs.FS) (Source, error) {
	switch mode {
	case ModeEmbed, "":
		sub, err := fs.Sub(embedded, "content")
		if err != nil {
			return Source{}, fmt.Errorf("failed to open embedded content: %w", err)
		}
		return Source{Fs: afero.FromIOFS{FS: sub}, Root: "."}, nil
	case ModeDisk:
		info, err := os.Stat(dir)
		if err != nil {
			return Source{}, fmt.Errorf("content directory %q: %w", dir, err)
		}
		if !info.IsDir() {
			return Source{}, fmt.Errorf("content directory %q is not a directory", dir)
		}
		return Source{Fs: afero.NewOsFs(), Root: dir, Dir: dir}, nil
	default:
		return Source{}, fmt.Errorf("unknown content mode %q (want %q or %q)", mode, ModeEmbed, ModeDisk)
	}
}

// AferoStore implements Store on top of any afero filesystem.
type AferoStore struct {
	fs afero.Fs
}

// NewAferoStore creates a new AferoStore.
func NewAferoStore(fs afero.Fs) *AferoStore {
	return &AferoStore{fs: fs}
}

// Save writes the content of the reader to path, creating parent directories.
func (s *AferoStore) Save(ctx context.Context, path string, reader io.Reader) (int64, error) {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, err
	}
	f, err := s.fs.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(f, reader)
}

// Open opens a file for reading.
func (s *AferoStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.fs.OpenFile(path, os.O_RDONLY, 0)
}

// Exists reports whether path exists.
func (s *AferoStore) Exists(ctx context.Context, path string) (bool, error) {
	return afero.Exists(s.fs, path)
}

// Delete removes a file.
func (s *AferoStore) Delete(ctx context.Context, path string) error {
	return s.fs.Remove(path)
}
