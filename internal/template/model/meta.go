package model

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultDivider separates keys from values in line descriptors.
const DefaultDivider = ":"

// TemplateMeta is the typed view of a template descriptor.
type TemplateMeta struct {
	// Name is the template directory name under the templates root.
	Name string
	// Dir is the template directory.
	Dir string
	// Description is a one-line summary for listings.
	Description string
	// Path is the output path pattern, relative to the project root.
	Path string
	// Source is the provenance URL; empty for locally authored templates.
	Source string
	// Command is parsed but not executed.
	Command string
	// Raw holds every key seen, case-folded.
	Raw map[string]string
	// Vars holds the declared variable placeholders.
	Vars *VarCollection
	// Snippets are applied after generation.
	Snippets []Snippet
	// DescriptorFile is the parsed file, empty when none exists.
	DescriptorFile string

	// divider is the line-format divider; empty when parsed as YAML.
	divider string
}

// NewTemplateMeta returns the defaults used when no descriptor is present.
func NewTemplateMeta(name, dir string) *TemplateMeta {
	return &TemplateMeta{
		Name: name,
		Dir:  dir,
		Path: DefaultOutputPath,
		Raw: map[string]string{
			KeyDescription: "",
			KeyPath:        DefaultOutputPath,
		},
		Vars:    NewVarCollection(),
		divider: DefaultDivider,
	}
}

// ParseMeta reads the descriptor of the named template. It never fails: a
// missing or unreadable descriptor yields defaults.
func ParseMeta(templatesRoot, name string) *TemplateMeta {
	dir := filepath.Join(templatesRoot, name)
	meta := NewTemplateMeta(name, dir)

	path := FindDescriptor(dir)
	if path == "" {
		return meta
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return meta
	}
	meta.DescriptorFile = path

	// A divider marker pins the line format; otherwise YAML is tried first.
	if (filepath.Base(path) != DescriptorFile || !hasDividerMarker(data)) && meta.parseYAML(data) {
		return meta
	}
	meta.parseLines(data)
	return meta
}

// FindDescriptor returns the first descriptor present in dir, or "".
func FindDescriptor(dir string) string {
	for _, name := range DescriptorFiles() {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Get returns the raw value of key, case-insensitively.
func (m *TemplateMeta) Get(key string) string {
	return m.Raw[strings.ToLower(key)]
}

func (m *TemplateMeta) set(key, value string) {
	m.Raw[key] = value
	switch key {
	case KeyDescription:
		m.Description = value
	case KeyPath:
		if value == "" {
			value = DefaultOutputPath
			m.Raw[key] = value
		}
		m.Path = value
	case KeySource:
		m.Source = value
	case KeyCommand:
		m.Command = value
	}
}

// parseYAML reports false when data is not a YAML mapping.
func (m *TemplateMeta) parseYAML(data []byte) bool {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil || doc == nil {
		return false
	}
	m.divider = ""

	for rawKey, node := range doc {
		key := strings.ToLower(strings.TrimSpace(rawKey))
		switch {
		case isVarKey(key):
			for _, decl := range declarations(&node) {
				m.Vars.Add(decl)
			}
		case key == KeySnippets:
			var snippets []Snippet
			if err := node.Decode(&snippets); err == nil {
				m.Snippets = append(m.Snippets, snippets...)
			}
		case node.Kind == yaml.ScalarNode:
			m.set(key, strings.TrimSpace(node.Value))
		}
	}
	return true
}

// declarations accepts a single declaration string or a list of them.
func declarations(node *yaml.Node) []string {
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}
	case yaml.SequenceNode:
		var out []string
		for _, item := range node.Content {
			if item.Kind == yaml.ScalarNode {
				out = append(out, item.Value)
			}
		}
		return out
	}
	return nil
}

func (m *TemplateMeta) parseLines(data []byte) {
	m.divider = dividerOf(data)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, m.divider)
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		if isVarKey(key) {
			m.Vars.Add(value)
			continue
		}
		m.set(key, value)
	}
}

// dividerOf reads a "#!<div>" (or legacy "#?<div>") marker from the first line.
func dividerOf(data []byte) string {
	if div, ok := markedDivider(data); ok {
		return div
	}
	return DefaultDivider
}

func hasDividerMarker(data []byte) bool {
	_, ok := markedDivider(data)
	return ok
}

func markedDivider(data []byte) (string, bool) {
	first, _, _ := strings.Cut(string(data), "\n")
	first = strings.ReplaceAll(strings.TrimSpace(first), " ", "")
	for _, marker := range []string{"#!", "#?"} {
		if div, ok := strings.CutPrefix(first, marker); ok && div != "" {
			return div, true
		}
	}
	return "", false
}

// AppendSource records url as the provenance of the template in dir. It does
// nothing when the descriptor already has a source key, even an empty one,
// and reports whether it wrote.
func AppendSource(dir, url string) (bool, error) {
	meta := ParseMeta(filepath.Dir(dir), filepath.Base(dir))
	if _, ok := meta.Raw[KeySource]; ok {
		return false, nil
	}

	path := meta.DescriptorFile
	if path == "" {
		path = filepath.Join(dir, DescriptorYAMLFile)
		meta.divider = ""
	}

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read descriptor: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(existing)
	if len(existing) > 0 && !bytes.HasSuffix(existing, []byte("\n")) {
		buf.WriteByte('\n')
	}
	if len(existing) > 0 {
		buf.WriteByte('\n')
	}
	div := meta.divider
	if div == "" {
		div = DefaultDivider
	}
	fmt.Fprintf(&buf, "%s%s %s\n", KeySource, div, url)

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return false, fmt.Errorf("failed to write descriptor: %w", err)
	}
	return true, nil
}
