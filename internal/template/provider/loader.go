package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tacogips/tpy/internal/debug"
	"github.com/tacogips/tpy/internal/template/model"
	"github.com/tacogips/tpy/internal/template/store"
)

// Loader copies remote template trees into a template store.
type Loader struct {
	// Store is the local templates root.
	Store *store.Store
	// NewProvider builds the provider for a URL.
	NewProvider func(url string) (Provider, error)
}

// NewLoader creates a loader writing into s.
func NewLoader(s *store.Store, config ProviderConfig) *Loader {
	return &Loader{Store: s, NewProvider: config.Factory()}
}

// LoadResult describes one loaded template.
type LoadResult struct {
	// Name is the template directory name.
	Name string
	// Dir is the local template directory.
	Dir string
	// URL is the remote source.
	URL string
	// Files is the number of files written.
	Files int
	// Dirs is the number of directories created below Dir.
	Dirs int
	// SourceRecorded is true when the source was appended to the descriptor.
	SourceRecorded bool
}

// ReloadResult describes the outcome for one template of a reload.
type ReloadResult struct {
	Name   string
	Source string
	Load   *LoadResult
	Err    error
}

// LoadTemplate fetches the remote directory at url into path. Without force
// an existing path, directory or file fails with ProviderAlreadyExists. A
// directory created by this call is removed again when the load fails.
func (l *Loader) LoadTemplate(ctx context.Context, path, url string, force bool) (*LoadResult, error) {
	p, err := l.NewProvider(url)
	if err != nil {
		return nil, err
	}

	debug.Debug("[loader] Loading %s into %s (force=%v)", url, path, force)

	created := false
	if _, statErr := os.Stat(path); statErr == nil {
		if !force {
			return nil, NewAlreadyExistsError(path)
		}
	} else {
		created = true
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, NewWriteError(path, err)
	}

	result := &LoadResult{Name: filepath.Base(path), Dir: path, URL: url}
	if err := l.fetchDir(ctx, p, url, path, force, result); err != nil {
		if created {
			if rmErr := os.RemoveAll(path); rmErr != nil {
				debug.Warn("[loader] Failed to clean up %s: %v", path, rmErr)
			}
		}
		return nil, err
	}

	recorded, err := model.AppendSource(path, url)
	if err != nil {
		return nil, NewWriteError(path, err)
	}
	result.SourceRecorded = recorded

	debug.Debug("[loader] Loaded %s: %d files, %d dirs", result.Name, result.Files, result.Dirs)
	return result, nil
}

func (l *Loader) fetchDir(ctx context.Context, p Provider, url, dir string, force bool, result *LoadResult) error {
	nodes, err := p.ListChildren(ctx, url)
	if err != nil {
		return err
	}

	for _, node := range nodes {
		if !validEntryName(node.Name) {
			return NewDecodeError(p.Name(), url, fmt.Sprintf("invalid entry name %q", node.Name), nil)
		}
		target := filepath.Join(dir, node.Name)
		_, statErr := os.Stat(target)
		exists := statErr == nil

		if node.IsDir() {
			if exists && !force {
				return NewAlreadyExistsError(target)
			}
			if err := os.MkdirAll(target, 0755); err != nil {
				return NewWriteError(target, err)
			}
			result.Dirs++
			if err := l.fetchDir(ctx, p, node.URL, target, force, result); err != nil {
				return err
			}
			continue
		}

		if exists && !force {
			return NewAlreadyExistsError(target)
		}
		data, err := p.ReadFile(ctx, node)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return NewWriteError(target, err)
		}
		result.Files++
		debug.Debug("[loader] Wrote %s (%d bytes)", target, len(data))
	}
	return nil
}

func validEntryName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// LoadCollection loads every top-level directory of url as its own template
// below path. It stops at the first failure and returns what was loaded.
func (l *Loader) LoadCollection(ctx context.Context, path, url string, force bool) ([]*LoadResult, error) {
	p, err := l.NewProvider(url)
	if err != nil {
		return nil, err
	}
	nodes, err := p.ListChildren(ctx, url)
	if err != nil {
		return nil, err
	}

	var results []*LoadResult
	for _, node := range nodes {
		if !node.IsDir() {
			continue
		}
		if !validEntryName(node.Name) {
			return results, NewDecodeError(p.Name(), url, fmt.Sprintf("invalid entry name %q", node.Name), nil)
		}
		res, err := l.LoadTemplate(ctx, filepath.Join(path, node.Name), node.URL, force)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Reload refetches a template from its recorded source, overwriting local
// files. With reset the template directory is moved aside first and
// restored unchanged when the fetch fails.
func (l *Loader) Reload(ctx context.Context, name string, strict, reset bool) (*LoadResult, error) {
	resolved, err := l.Store.Resolve(name, strict)
	if err != nil {
		return nil, err
	}

	meta := model.ParseMeta(l.Store.Root(), resolved)
	if meta.Source == "" {
		return nil, NewNoProvenanceError(resolved)
	}
	if _, err := l.NewProvider(meta.Source); err != nil {
		return nil, err
	}

	dir := l.Store.Dir(resolved)
	if !reset {
		return l.LoadTemplate(ctx, dir, meta.Source, true)
	}

	backup := dir + model.BackupSuffix
	if err := os.RemoveAll(backup); err != nil {
		return nil, NewWriteError(backup, err)
	}
	if err := os.Rename(dir, backup); err != nil {
		return nil, NewWriteError(dir, err)
	}
	debug.Debug("[loader] Moved %s to %s", dir, backup)

	result, err := l.LoadTemplate(ctx, dir, meta.Source, true)
	if err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			debug.Warn("[loader] Failed to remove partial %s: %v", dir, rmErr)
		}
		if mvErr := os.Rename(backup, dir); mvErr != nil {
			return nil, fmt.Errorf("%w (restoring backup also failed: %v)", err, mvErr)
		}
		debug.Debug("[loader] Restored %s from backup", dir)
		return nil, err
	}

	if err := os.RemoveAll(backup); err != nil {
		debug.Warn("[loader] Failed to remove backup %s: %v", backup, err)
	}
	return result, nil
}

// ReloadAll reloads every template by its exact name. Failures are reported
// per template and do not stop the remaining reloads.
func (l *Loader) ReloadAll(ctx context.Context, reset bool) ([]ReloadResult, error) {
	names, err := l.Store.Names()
	if err != nil {
		return nil, err
	}

	results := make([]ReloadResult, 0, len(names))
	for _, name := range names {
		meta := model.ParseMeta(l.Store.Root(), name)
		res, err := l.Reload(ctx, name, true, reset)
		results = append(results, ReloadResult{Name: name, Source: meta.Source, Load: res, Err: err})
		if err != nil {
			debug.Debug("[loader] Reload of %s failed: %v", name, err)
		}
	}
	return results, nil
}
