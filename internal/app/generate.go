package app

import (
	"context"
	"fmt"

	"github.com/tacogips/tpy/internal/debug"
	"github.com/tacogips/tpy/internal/template/generator"
	"github.com/tacogips/tpy/internal/template/model"
)

// GenerateOptions contains options for generating files from a template.
type GenerateOptions struct {
	// Template is the template name or unique prefix.
	Template string
	// Name is the given name substituted for $$name$$.
	Name string
	// Vars is a comma-separated list of name=value assignments.
	Vars string
	// DefaultVars fills every remaining variable with its default.
	DefaultVars bool
	// Reload refetches the template from its source first.
	Reload bool
	// DryRun reports the plan without writing.
	DryRun bool
	// Force overwrites existing files.
	Force bool
	// Strict requires an exact template name.
	Strict bool
	// Prompter asks for variables still unset. nil disables prompting.
	Prompter model.Prompter
}

// GenerateResult contains the results of a generation.
type GenerateResult struct {
	// Template is the resolved template name.
	Template string
	// Meta is the parsed template with resolved variables.
	Meta *model.TemplateMeta
	// Generation holds the actions taken or planned.
	Generation *generator.GenerateResult
	// Warnings are non-fatal problems, including a failed reload.
	Warnings []string
}

// Generate resolves the template, its variables and writes the output tree.
// Variables are resolved in this order: assignments, defaults (when
// requested), then the prompter. Generation only starts once every variable
// has a value.
func Generate(ctx context.Context, w *Workspace, opts GenerateOptions) (*GenerateResult, error) {
	debug.DebugSection("[app] Generate workflow start")
	debug.DebugValue("[app] Template", opts.Template)
	debug.DebugValue("[app] Name", opts.Name)
	debug.DebugValue("[app] Dry run", opts.DryRun)

	s := w.Store()
	if err := s.EnsureInitialized(); err != nil {
		return nil, wrapError("cannot generate", err)
	}
	name, err := s.Resolve(opts.Template, opts.Strict)
	if err != nil {
		return nil, wrapError("cannot generate", err)
	}

	result := &GenerateResult{Template: name}

	if opts.Reload {
		if warning := reloadBeforeGenerate(ctx, w, name); warning != "" {
			debug.Warn("[app] %s", warning)
			result.Warnings = append(result.Warnings, warning)
		}
	}

	meta := model.ParseMeta(s.Root(), name)
	result.Meta = meta

	if err := resolveVars(meta.Vars, opts); err != nil {
		return nil, err
	}

	gen := generator.NewGeneratorWithBinaryExtensions(w.Engine, w.Config.Templates.BinaryExtensions)
	genOpts := generator.GenerateOptions{
		Meta:    meta,
		Name:    opts.Name,
		BaseDir: w.Dir,
		Force:   opts.Force,
	}

	var genResult *generator.GenerateResult
	if opts.DryRun {
		genResult, err = gen.DryRun(ctx, genOpts)
	} else {
		genResult, err = gen.Generate(ctx, genOpts)
	}
	if err != nil {
		return nil, wrapError(fmt.Sprintf("failed to generate from template %s", name), err)
	}

	result.Generation = genResult
	result.Warnings = append(result.Warnings, genResult.Warnings...)

	debug.Debug("[app] Generate workflow completed")
	debug.DebugValue("[app] Files created", genResult.FilesCreated)
	return result, nil
}

func resolveVars(vars *model.VarCollection, opts GenerateOptions) error {
	if _, err := vars.ResolveFromAssignments(opts.Vars); err != nil {
		return wrapError("invalid --var", err)
	}
	if opts.DefaultVars {
		vars.ApplyDefaults()
	} else if opts.Prompter != nil && len(vars.Unset()) > 0 {
		if err := vars.ResolveInteractively(opts.Prompter); err != nil {
			return wrapError("failed to read variables", err)
		}
	}
	if err := vars.AreAllSet(); err != nil {
		return wrapError("cannot generate", err)
	}
	return nil
}

// reloadBeforeGenerate refreshes the template from its source. Failures
// are returned as a warning and never stop generation.
func reloadBeforeGenerate(ctx context.Context, w *Workspace, name string) string {
	if !w.networkAvailable(ctx) {
		return fmt.Sprintf("template %s was not reloaded: no internet connection", name)
	}
	if _, err := w.Loader().Reload(ctx, name, true, false); err != nil {
		return fmt.Sprintf("template %s was not reloaded: %v", name, err)
	}
	return ""
}
