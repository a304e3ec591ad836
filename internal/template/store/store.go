// Package store manages the project-local templates root: initialization,
// listing, and resolving user-typed names to template directories.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tacogips/tpy/internal/debug"
	"github.com/tacogips/tpy/internal/template/model"
)

// Store is a templates root directory.
type Store struct {
	root string
}

// New creates a Store rooted at root.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the templates root directory.
func (s *Store) Root() string {
	return s.root
}

// Dir returns the directory of the named template.
func (s *Store) Dir(name string) string {
	return filepath.Join(s.root, name)
}

// Initialized reports whether the templates root exists.
func (s *Store) Initialized() bool {
	info, err := os.Stat(s.root)
	return err == nil && info.IsDir()
}

// EnsureInitialized returns a NotInitialized error when the root is missing.
func (s *Store) EnsureInitialized() error {
	if !s.Initialized() {
		return newStoreError(StoreNotInitialized, "",
			fmt.Sprintf("templates directory %s does not exist", s.root), nil)
	}
	return nil
}

// Init creates the templates root. It fails with AlreadyExists when present.
func (s *Store) Init() error {
	if _, err := os.Stat(s.root); err == nil {
		return newStoreError(StoreAlreadyExists, "",
			fmt.Sprintf("templates directory %s already exists", s.root), nil)
	}
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return newStoreError(StoreIOFailed, "", "failed to create templates directory", err)
	}
	debug.Debug("[store] Initialized templates root: %s", s.root)
	return nil
}

// Names returns the template directory names in lexical order. Reload
// backups are not templates and are skipped.
func (s *Store) Names() ([]string, error) {
	if err := s.EnsureInitialized(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, newStoreError(StoreIOFailed, "", "failed to read templates directory", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasSuffix(e.Name(), model.BackupSuffix) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// List parses the descriptor of every template.
func (s *Store) List() ([]*model.TemplateMeta, error) {
	names, err := s.Names()
	if err != nil {
		return nil, err
	}
	metas := make([]*model.TemplateMeta, 0, len(names))
	for _, name := range names {
		metas = append(metas, model.ParseMeta(s.root, name))
	}
	return metas, nil
}

// Resolve maps a user-typed name to an on-disk template name. A
// case-insensitive exact match always wins. Unless strict, a unique
// case-insensitive prefix match is accepted as well.
func (s *Store) Resolve(name string, strict bool) (string, error) {
	names, err := s.Names()
	if err != nil {
		return "", err
	}

	wanted := strings.ToLower(name)
	var prefixed []string
	for _, candidate := range names {
		lower := strings.ToLower(candidate)
		if lower == wanted {
			debug.Debug("[store] Resolved %q to %q (exact)", name, candidate)
			return candidate, nil
		}
		if !strict && wanted != "" && strings.HasPrefix(lower, wanted) {
			prefixed = append(prefixed, candidate)
		}
	}

	switch len(prefixed) {
	case 0:
		return "", newStoreError(StoreNotFound, name, fmt.Sprintf("template %s not found", name), nil)
	case 1:
		debug.Debug("[store] Resolved %q to %q (prefix)", name, prefixed[0])
		return prefixed[0], nil
	default:
		e := newStoreError(StoreAmbiguous, name,
			fmt.Sprintf("template %s is not unique, use a more specific name", name), nil)
		e.Candidates = prefixed
		return "", e
	}
}

// Create makes an empty directory for a new template.
func (s *Store) Create(name string) (string, error) {
	if err := s.EnsureInitialized(); err != nil {
		return "", err
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", newStoreError(StoreInvalidName, name, fmt.Sprintf("invalid template name %q", name), nil)
	}
	dir := s.Dir(name)
	if _, err := os.Stat(dir); err == nil {
		return "", newStoreError(StoreAlreadyExists, name, fmt.Sprintf("template %s already exists", name), nil)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", newStoreError(StoreIOFailed, name, "failed to create template directory", err)
	}
	return dir, nil
}
