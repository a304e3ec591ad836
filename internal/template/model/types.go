package model

import "os"

// Special file and directory names used by tpy.
const (
	// DefaultTemplatesDir is the templates root, relative to the project root.
	DefaultTemplatesDir = ".templates"
	// DescriptorFile is the line-oriented template descriptor.
	DescriptorFile = ".templify"
	// DescriptorYAMLFile is the structured template descriptor.
	DescriptorYAMLFile = ".templify.yml"
	// DescriptorYAMLAltFile is accepted as an alternative spelling.
	DescriptorYAMLAltFile = ".templify.yaml"
	// KeepFile keeps an otherwise empty template directory in version control.
	KeepFile = ".tpykeep"
	// LegacyKeepFile is the older spelling of KeepFile.
	LegacyKeepFile = ".templifykeep"
	// BackupSuffix is appended to a template directory while it is being reset.
	BackupSuffix = "---backup"
)

// Reserved descriptor keys.
const (
	KeyDescription = "description"
	KeyPath        = "path"
	KeySource      = ".source"
	KeyCommand     = "command"
	KeySnippets    = "snippets"
)

// DefaultOutputPath is used when a descriptor declares no path.
const DefaultOutputPath = "."

// DescriptorFiles returns the descriptor names in lookup order.
func DescriptorFiles() []string {
	return []string{DescriptorYAMLFile, DescriptorYAMLAltFile, DescriptorFile}
}

// IsReservedFile reports whether a template entry is tool metadata that must
// never be copied into generated output.
func IsReservedFile(name string) bool {
	switch name {
	case DescriptorFile, DescriptorYAMLFile, DescriptorYAMLAltFile, KeepFile, LegacyKeepFile:
		return true
	}
	return false
}

// isVarKey reports whether a descriptor key declares variable placeholders.
func isVarKey(key string) bool {
	switch key {
	case "var", "vars", "variable", "variables":
		return true
	}
	return false
}

// DefaultBinaryExtensions returns the file extensions copied without
// placeholder substitution unless configured otherwise.
func DefaultBinaryExtensions() []string {
	return []string{
		// Images
		".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".webp",
		// Archives
		".zip", ".tar", ".gz", ".bz2", ".xz", ".rar", ".7z",
		// Executables and libraries
		".exe", ".dll", ".so", ".dylib", ".bin",
		// Media
		".mp3", ".mp4", ".avi", ".mov", ".wav",
		// Documents
		".pdf", ".doc", ".docx", ".xls", ".xlsx",
		// Fonts
		".ttf", ".otf", ".woff", ".woff2",
	}
}

// TemplateFile represents a single file read from a template directory.
type TemplateFile struct {
	// Path is the path relative to the template root.
	Path string
	// Content is the raw file content.
	Content []byte
	// Mode is the file permission mode.
	Mode os.FileMode
	// IsBinary marks content that must be copied without substitution.
	IsBinary bool
}
