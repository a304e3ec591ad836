package app

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tacogips/tpy/internal/debug"
	"github.com/tacogips/tpy/internal/template/model"
)

// NewTemplateOptions holds options for creating a new template.
type NewTemplateOptions struct {
	// Name is the template directory name.
	Name string
	// Description is written to the descriptor.
	Description string
	// Path is the output path pattern. Empty means the project root.
	Path string
}

// NewTemplateResult holds the result of template creation.
type NewTemplateResult struct {
	// Dir is the created template directory.
	Dir string
	// Descriptor is the written descriptor file.
	Descriptor string
}

// descriptorDoc is the YAML layout written for new templates.
type descriptorDoc struct {
	Description string   `yaml:"description"`
	Path        string   `yaml:"path"`
	Vars        []string `yaml:"vars,omitempty"`
}

// NewTemplate creates an empty template with a YAML descriptor.
func NewTemplate(w *Workspace, opts NewTemplateOptions) (*NewTemplateResult, error) {
	debug.DebugSection("[app] NewTemplate workflow start")
	debug.DebugValue("[app] Name", opts.Name)

	dir, err := w.Store().Create(opts.Name)
	if err != nil {
		return nil, wrapError("failed to create template", err)
	}

	doc := descriptorDoc{Description: opts.Description, Path: opts.Path}
	if doc.Path == "" {
		doc.Path = model.DefaultOutputPath
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, NewAppError(Internal, "failed to encode descriptor", err)
	}

	descriptor := filepath.Join(dir, model.DescriptorYAMLFile)
	if err := os.WriteFile(descriptor, data, 0644); err != nil {
		return nil, NewAppError(Internal, "failed to write descriptor", err)
	}

	debug.DebugValue("[app] Created template", dir)
	return &NewTemplateResult{Dir: dir, Descriptor: descriptor}, nil
}
