// Package content loads course sections from YAML files and keeps the
// validated set in a Catalog that handlers read from.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/nfrund/tradeskills/internal/domain"
)

var titleCaser = cases.Title(language.BritishEnglish)

// Loader reads section files from a filesystem rooted at root.
type Loader struct {
	fs   afero.Fs
	root string
}

// NewLoader creates a Loader. Use afero.NewMemMapFs in tests, an OS-backed
// filesystem for a content directory, or the embedded content for production.
func NewLoader(fsys afero.Fs, root string) *Loader {
	if root == "" {
		root = "."
	}
	return &Loader{fs: fsys, root: root}
}

// IsSectionFile reports whether name looks like a section file.
func IsSectionFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	base := filepath.Base(name)
	return (ext == ".yaml" || ext == ".yml") && !strings.HasPrefix(base, "_") && !strings.HasPrefix(base, ".")
}

// LoadAll loads every section file under the root. It reports every broken
// file at once rather than stopping at the first.
func (l *Loader) LoadAll() ([]*domain.Section, error) {
	var (
		sections []*domain.Section
		errs     []error
	)
	err := afero.Walk(l.fs, l.root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !IsSectionFile(p) {
			return nil
		}
		s, err := l.LoadFile(p)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		sections = append(sections, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking content root %s: %w", l.root, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	slog.Debug("Loaded course sections", "root", l.root, "count", len(sections))
	return sections, nil
}

// LoadFile loads and validates a single section file.
func (l *Loader) LoadFile(p string) (*domain.Section, error) {
	data, err := afero.ReadFile(l.fs, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	s, err := Parse(data, l.courseFromPath(p), slugFromPath(p))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return s, nil
}

// Parse decodes one section document. defaultCourse and defaultSlug fill in
// fields the document leaves out.
func Parse(data []byte, defaultCourse, defaultSlug string) (*domain.Section, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f sectionFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if f.Slug == "" {
		f.Slug = defaultSlug
	}
	if f.Course == "" {
		f.Course = defaultCourse
	}
	if err := validatorInstance.Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid section: %w", err)
	}
	if f.Course == "" {
		return nil, domain.NewValidationError("course", "is required for files at the content root")
	}

	s, err := f.toDomain()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// courseFromPath derives a display name from the file's directory, e.g.
// "asbestos-awareness/1-1.yaml" becomes "Asbestos Awareness".
func (l *Loader) courseFromPath(p string) string {
	rel, err := filepath.Rel(l.root, p)
	if err != nil {
		rel = p
	}
	dir := path.Dir(filepath.ToSlash(rel))
	if dir == "." || dir == "/" {
		return ""
	}
	return CourseName(path.Base(dir))
}

// CourseName turns a directory or slug such as "pasma-towers" into "Pasma Towers".
func CourseName(dir string) string {
	return titleCaser.String(strings.NewReplacer("-", " ", "_", " ").Replace(dir))
}

func slugFromPath(p string) string {
	base := filepath.Base(p)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
