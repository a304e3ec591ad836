package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tacogips/tpy/internal/debug"
	"github.com/tacogips/tpy/internal/template/model"
	"github.com/tacogips/tpy/internal/template/placeholder"
)

// Generator materializes templates in two phases: Plan computes every
// filesystem mutation without touching disk, Commit applies a plan.
type Generator interface {
	// Plan walks the template and checks every target path for conflicts.
	Plan(ctx context.Context, opts GenerateOptions) (*Plan, error)

	// Commit applies a plan produced by Plan.
	Commit(ctx context.Context, plan *Plan) (*GenerateResult, error)

	// Generate plans and commits.
	Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error)

	// DryRun plans and reports what Commit would do without writing.
	DryRun(ctx context.Context, opts GenerateOptions) (*GenerateResult, error)
}

// GenerateOptions configures generation.
type GenerateOptions struct {
	// Meta is the parsed template, including its resolved variables.
	Meta *model.TemplateMeta

	// Name is the given name substituted for $$name$$.
	Name string

	// BaseDir is the project root. The template's output path and
	// snippet files are relative to it.
	BaseDir string

	// Force overwrites existing files instead of failing.
	Force bool
}

// FileToCreate is one planned mutation.
type FileToCreate struct {
	// Path is the resolved target path.
	Path string
	// IsDir marks a directory entry.
	IsDir bool
	// Content is the resolved content; nil for directories.
	Content []byte
	// Mode is the template file's permission bits.
	Mode os.FileMode
	// Overwrite is set when the target exists and Force was given.
	Overwrite bool
	// Source is the template path the entry came from.
	Source string
}

// Plan is the ordered list of mutations for one generation. Directories
// precede their contents.
type Plan struct {
	// TemplateName is the generated template.
	TemplateName string
	// TargetRoot is the resolved output directory.
	TargetRoot string
	// BaseDir is the project root.
	BaseDir string
	// Entries are applied in order.
	Entries []FileToCreate
	// Snippets have their file and content already resolved.
	Snippets []model.Snippet
}

// ActionKind describes what happened, or would happen, to a path.
type ActionKind int

const (
	ActionCreateDir ActionKind = iota
	ActionCreateFile
	ActionOverwriteFile
	ActionInsertSnippet
	ActionSkipSnippet
)

// String returns the past-tense description of the action.
func (k ActionKind) String() string {
	switch k {
	case ActionCreateDir:
		return "created directory"
	case ActionCreateFile:
		return "created"
	case ActionOverwriteFile:
		return "overwrote"
	case ActionInsertSnippet:
		return "inserted snippet into"
	case ActionSkipSnippet:
		return "skipped snippet for"
	default:
		return "unknown"
	}
}

// Planned returns the description used in dry-run reports.
func (k ActionKind) Planned() string {
	switch k {
	case ActionCreateDir:
		return "would create directory"
	case ActionCreateFile:
		return "would create"
	case ActionOverwriteFile:
		return "would overwrite"
	case ActionInsertSnippet:
		return "would insert snippet into"
	case ActionSkipSnippet:
		return "would skip snippet for"
	default:
		return "unknown"
	}
}

// Action is a single reported step.
type Action struct {
	Kind ActionKind
	Path string
	// Detail carries the snippet id or skip reason.
	Detail string
}

// GenerateResult contains generation statistics.
type GenerateResult struct {
	// TargetRoot is the resolved output directory.
	TargetRoot string

	// DryRun is set when nothing was written.
	DryRun bool

	// Actions lists every step in plan order.
	Actions []Action

	// FilesCreated is the number of new files created.
	FilesCreated int

	// FilesOverwritten is the number of existing files overwritten.
	FilesOverwritten int

	// DirsCreated is the number of directory entries in the plan.
	DirsCreated int

	// Warnings contains non-fatal problems, such as missing snippet targets.
	Warnings []string
}

// DefaultGenerator implements Generator.
type DefaultGenerator struct {
	engine    *placeholder.Engine
	processor Processor
	writer    Writer
}

// NewGenerator creates a DefaultGenerator. A nil engine uses the wall clock
// and git.
func NewGenerator(engine *placeholder.Engine) Generator {
	return NewGeneratorWithBinaryExtensions(engine, nil)
}

// NewGeneratorWithBinaryExtensions creates a DefaultGenerator that copies
// files with the given extensions verbatim. nil uses the built-in list.
func NewGeneratorWithBinaryExtensions(engine *placeholder.Engine, binaryExtensions []string) Generator {
	if engine == nil {
		engine = placeholder.NewEngine()
	}
	return &DefaultGenerator{
		engine:    engine,
		processor: NewFileProcessor(binaryExtensions),
		writer:    NewFileWriter(),
	}
}

// Generate creates the planned tree on disk.
func (g *DefaultGenerator) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	plan, err := g.Plan(ctx, opts)
	if err != nil {
		return nil, err
	}
	return g.Commit(ctx, plan)
}

// DryRun reports the planned tree. Conflicts fail exactly as in Generate.
func (g *DefaultGenerator) DryRun(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	plan, err := g.Plan(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{TargetRoot: plan.TargetRoot, DryRun: true}
	for _, e := range plan.Entries {
		result.record(e)
	}
	for _, s := range plan.Snippets {
		if g.writer.Exists(s.File) {
			result.Actions = append(result.Actions, Action{Kind: ActionInsertSnippet, Path: s.File, Detail: s.ID})
		} else {
			result.Actions = append(result.Actions, Action{Kind: ActionSkipSnippet, Path: s.File, Detail: "file does not exist"})
		}
	}
	debug.Debug("[generator] Dry run complete: %d entries, no files were written", len(plan.Entries))
	return result, nil
}

// Plan resolves the output tree. It fails on the first conflicting path and
// never writes to disk.
func (g *DefaultGenerator) Plan(ctx context.Context, opts GenerateOptions) (*Plan, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	meta := opts.Meta
	resolve := func(s string) string { return g.engine.Resolve(s, opts.Name, meta.Vars) }

	targetRoot := g.resolveTargetRoot(opts, resolve)
	debug.Debug("[generator] Planning: template=%s, target=%s, force=%v", meta.Name, targetRoot, opts.Force)

	if info, err := os.Stat(targetRoot); err == nil && !info.IsDir() {
		return nil, newConflictError(targetRoot, "output path exists and is not a directory")
	}

	p := &planner{
		opts:    opts,
		resolve: resolve,
		proc:    g.processor,
		seen:    make(map[string]bool),
		plan: &Plan{
			TemplateName: meta.Name,
			TargetRoot:   targetRoot,
			BaseDir:      opts.BaseDir,
		},
	}
	if err := p.walk(ctx, meta.Dir, "", targetRoot); err != nil {
		return nil, err
	}

	for _, s := range meta.Snippets {
		if s.ID == "" || s.File == "" {
			continue
		}
		p.plan.Snippets = append(p.plan.Snippets, model.Snippet{
			ID:      s.ID,
			File:    joinBase(opts.BaseDir, resolve(s.File)),
			Content: resolve(s.Content),
			Before:  s.Before,
		})
	}

	debug.Debug("[generator] Plan complete: %d entries, %d snippets", len(p.plan.Entries), len(p.plan.Snippets))
	return p.plan, nil
}

func (g *DefaultGenerator) resolveTargetRoot(opts GenerateOptions, resolve func(string) string) string {
	path := opts.Meta.Path
	if path == "" {
		path = model.DefaultOutputPath
	}
	return joinBase(opts.BaseDir, resolve(path))
}

func joinBase(base, path string) string {
	path = filepath.FromSlash(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// Commit applies the plan in order, then inserts snippets.
func (g *DefaultGenerator) Commit(ctx context.Context, plan *Plan) (*GenerateResult, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan cannot be nil")
	}

	result := &GenerateResult{TargetRoot: plan.TargetRoot}
	if err := g.writer.CreateDir(plan.TargetRoot); err != nil {
		return result, err
	}

	for _, e := range plan.Entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if e.IsDir {
			if err := g.writer.CreateDir(e.Path); err != nil {
				return result, err
			}
		} else {
			if e.Overwrite {
				if err := g.writer.Remove(e.Path); err != nil {
					return result, err
				}
			}
			if err := g.writer.WriteFile(e.Path, e.Content, e.Mode); err != nil {
				return result, err
			}
		}
		result.record(e)
	}

	for _, s := range plan.Snippets {
		inserted, err := insertSnippet(s)
		switch {
		case err != nil:
			result.Warnings = append(result.Warnings, fmt.Sprintf("snippet %s: %v", s.ID, err))
			result.Actions = append(result.Actions, Action{Kind: ActionSkipSnippet, Path: s.File, Detail: err.Error()})
		case inserted == 0:
			result.Warnings = append(result.Warnings, fmt.Sprintf("snippet %s: marker %s not found in %s", s.ID, s.Marker(), s.File))
			result.Actions = append(result.Actions, Action{Kind: ActionSkipSnippet, Path: s.File, Detail: "marker not found"})
		default:
			result.Actions = append(result.Actions, Action{Kind: ActionInsertSnippet, Path: s.File, Detail: s.ID})
		}
	}

	debug.Debug("[generator] Generation complete: created=%d, overwritten=%d, dirs=%d, warnings=%d",
		result.FilesCreated, result.FilesOverwritten, result.DirsCreated, len(result.Warnings))
	return result, nil
}

func (r *GenerateResult) record(e FileToCreate) {
	switch {
	case e.IsDir:
		r.DirsCreated++
		r.Actions = append(r.Actions, Action{Kind: ActionCreateDir, Path: e.Path})
	case e.Overwrite:
		r.FilesOverwritten++
		r.Actions = append(r.Actions, Action{Kind: ActionOverwriteFile, Path: e.Path})
	default:
		r.FilesCreated++
		r.Actions = append(r.Actions, Action{Kind: ActionCreateFile, Path: e.Path})
	}
}

// planner accumulates plan entries during the template walk.
type planner struct {
	opts    GenerateOptions
	resolve func(string) string
	proc    Processor
	seen    map[string]bool
	plan    *Plan
}

// walk visits srcDir in lexical order. rel is the template-relative path
// of srcDir and dst its resolved target.
func (p *planner) walk(ctx context.Context, srcDir, rel, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return newGeneratorError(GeneratorReadFailed, "failed to read template directory", srcDir, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(srcDir, entry.Name())
		relPath := filepath.Join(rel, entry.Name())
		if IsSpecialFile(entry.Name()) {
			continue
		}

		name, err := ProcessFilename(entry.Name(), p.resolve)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, name)
		if p.seen[target] {
			return newConflictError(target, "more than one template entry resolves to the same path")
		}
		p.seen[target] = true

		info, err := os.Stat(srcPath)
		if err != nil {
			return newGeneratorError(GeneratorReadFailed, "failed to stat template entry", srcPath, err)
		}

		if info.IsDir() {
			if existing, err := os.Stat(target); err == nil && !existing.IsDir() {
				return newConflictError(target, "a file exists where a directory is planned")
			}
			p.plan.Entries = append(p.plan.Entries, FileToCreate{
				Path:   target,
				IsDir:  true,
				Mode:   info.Mode().Perm(),
				Source: relPath,
			})
			if err := p.walk(ctx, srcPath, relPath, target); err != nil {
				return err
			}
			continue
		}

		planned, err := p.planFile(srcPath, relPath, target, info)
		if err != nil {
			return err
		}
		p.plan.Entries = append(p.plan.Entries, planned)
	}
	return nil
}

func (p *planner) planFile(srcPath, relPath, target string, info os.FileInfo) (FileToCreate, error) {
	overwrite := false
	if existing, err := os.Stat(target); err == nil {
		if existing.IsDir() {
			return FileToCreate{}, newConflictError(target, "a directory exists where a file is planned")
		}
		if !p.opts.Force {
			return FileToCreate{}, newConflictError(target, "file already exists")
		}
		overwrite = true
	}

	content, err := os.ReadFile(srcPath)
	if err != nil {
		return FileToCreate{}, newGeneratorError(GeneratorReadFailed, "failed to read template file", srcPath, err)
	}

	file := model.TemplateFile{Path: relPath, Content: content, Mode: info.Mode().Perm()}
	return FileToCreate{
		Path:      target,
		Content:   p.proc.Process(file, p.resolve),
		Mode:      file.Mode,
		Overwrite: overwrite,
		Source:    relPath,
	}, nil
}

// validateOptions validates GenerateOptions.
func validateOptions(opts GenerateOptions) error {
	if opts.Meta == nil {
		return fmt.Errorf("template metadata cannot be nil")
	}
	if opts.Meta.Dir == "" {
		return fmt.Errorf("template directory cannot be empty")
	}
	if opts.Meta.Vars == nil {
		return fmt.Errorf("template variables cannot be nil")
	}
	return nil
}
