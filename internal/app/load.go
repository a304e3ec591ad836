package app

import (
	"context"
	"fmt"

	"github.com/tacogips/tpy/internal/debug"
	"github.com/tacogips/tpy/internal/template/provider"
)

// LoadOptions contains options for loading remote templates.
type LoadOptions struct {
	// URL is the remote directory.
	URL string
	// Force overwrites existing templates and files.
	Force bool
	// Single loads URL as one template instead of a collection.
	Single bool
}

// Load copies remote templates into the project. By default every
// top-level directory of URL becomes a template; with Single, URL itself
// becomes one template named after its last path element.
func Load(ctx context.Context, w *Workspace, opts LoadOptions) ([]*provider.LoadResult, error) {
	debug.DebugSection("[app] Load workflow start")
	debug.DebugValue("[app] URL", opts.URL)
	debug.DebugValue("[app] Single", opts.Single)

	s := w.Store()
	if err := s.EnsureInitialized(); err != nil {
		return nil, wrapError("cannot load", err)
	}
	if _, err := provider.Classify(opts.URL); err != nil {
		return nil, wrapError("cannot load", err)
	}
	if err := w.requireNetwork(ctx); err != nil {
		return nil, err
	}

	loader := w.Loader()
	if !opts.Single {
		results, err := loader.LoadCollection(ctx, s.Root(), opts.URL, opts.Force)
		if err != nil {
			return results, wrapError("failed to load templates", err)
		}
		return results, nil
	}

	name := provider.TemplateNameFromURL(opts.URL)
	if name == "" {
		return nil, NewAppError(InvalidValue, fmt.Sprintf("cannot derive a template name from %s", opts.URL), nil)
	}
	result, err := loader.LoadTemplate(ctx, s.Dir(name), opts.URL, opts.Force)
	if err != nil {
		return nil, wrapError(fmt.Sprintf("failed to load template %s", name), err)
	}
	return []*provider.LoadResult{result}, nil
}

// ReloadOptions contains options for reloading templates.
type ReloadOptions struct {
	// Name selects one template. Empty reloads all.
	Name string
	// Strict requires an exact template name.
	Strict bool
	// Reset replaces the template instead of overwriting files in place.
	Reset bool
}

// Reload refetches templates from their recorded source. Reloading all
// templates reports failures per template and only fails as a whole when
// the store cannot be read.
func Reload(ctx context.Context, w *Workspace, opts ReloadOptions) ([]provider.ReloadResult, error) {
	debug.DebugSection("[app] Reload workflow start")
	debug.DebugValue("[app] Name", opts.Name)
	debug.DebugValue("[app] Reset", opts.Reset)

	s := w.Store()
	if err := s.EnsureInitialized(); err != nil {
		return nil, wrapError("cannot reload", err)
	}
	if err := w.requireNetwork(ctx); err != nil {
		return nil, err
	}

	loader := w.Loader()
	if opts.Name == "" {
		results, err := loader.ReloadAll(ctx, opts.Reset)
		if err != nil {
			return nil, wrapError("failed to reload templates", err)
		}
		for i := range results {
			if results[i].Err != nil {
				results[i].Err = wrapError(fmt.Sprintf("template %s could not be reloaded", results[i].Name), results[i].Err)
			}
		}
		return results, nil
	}

	result, err := loader.Reload(ctx, opts.Name, opts.Strict, opts.Reset)
	if err != nil {
		return nil, wrapError(fmt.Sprintf("failed to reload template %s", opts.Name), err)
	}
	return []provider.ReloadResult{{Name: result.Name, Source: result.URL, Load: result}}, nil
}
