package app

import (
	"context"
	_ "embed"
	"os"
	"path/filepath"

	"github.com/tacogips/tpy/internal/debug"
	"github.com/tacogips/tpy/internal/template/provider"
)

//go:embed scaffolds/README.md
var readmeContent []byte

// ReadmeFile is written into a fresh templates root.
const ReadmeFile = "README.md"

// InitOptions contains options for project initialization.
type InitOptions struct {
	// Offline skips loading the example templates.
	Offline bool
	// Blank creates only the templates root, without README or examples.
	Blank bool
}

// InitResult contains the results of project initialization.
type InitResult struct {
	// Root is the created templates root.
	Root string
	// ReadmeCreated is set when the README was written.
	ReadmeCreated bool
	// Examples lists the example templates that were loaded.
	Examples []*provider.LoadResult
	// ExamplesSkipped explains why no examples were loaded, if so.
	ExamplesSkipped string
	// ExamplesErr is the non-fatal error of a failed example load.
	ExamplesErr error
}

// Init creates the templates root of the project. Unless blank it writes a
// README, and unless offline it loads the configured example collection.
// Failing to load the examples does not fail Init.
func Init(ctx context.Context, w *Workspace, opts InitOptions) (*InitResult, error) {
	debug.DebugSection("[app] Init workflow start")
	debug.DebugValue("[app] Offline", opts.Offline)
	debug.DebugValue("[app] Blank", opts.Blank)

	s := w.Store()
	if s.Initialized() {
		return nil, NewAppError(AlreadyExists, "tpy is already initialized in this project", nil)
	}
	if err := s.Init(); err != nil {
		return nil, wrapError("failed to initialize", err)
	}

	result := &InitResult{Root: s.Root()}
	if opts.Blank {
		return result, nil
	}

	if err := os.WriteFile(filepath.Join(s.Root(), ReadmeFile), readmeContent, 0644); err != nil {
		return nil, NewAppError(Internal, "failed to write README", err)
	}
	result.ReadmeCreated = true

	switch {
	case opts.Offline:
		result.ExamplesSkipped = "offline mode"
	case w.Config.Init.ExampleURL == "":
		result.ExamplesSkipped = "no example URL configured"
	case !w.networkAvailable(ctx):
		result.ExamplesSkipped = "no internet connection"
	default:
		loaded, err := w.Loader().LoadCollection(ctx, s.Root(), w.Config.Init.ExampleURL, true)
		result.Examples = loaded
		if err != nil {
			debug.Warn("[app] Failed to load example templates: %v", err)
			result.ExamplesErr = wrapError("failed to load example templates", err)
		}
	}

	debug.Debug("[app] Init workflow completed")
	return result, nil
}
