package generator

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/tacogips/tpy/internal/debug"
	"github.com/tacogips/tpy/internal/template/model"
)

// Processor resolves the content of individual template files.
type Processor interface {
	// Process returns the content to write for file. Binary files are
	// returned unchanged.
	Process(file model.TemplateFile, resolve func(string) string) []byte

	// ShouldProcess reports whether file content takes placeholders.
	ShouldProcess(file model.TemplateFile) bool
}

// FileProcessor implements Processor for file processing.
type FileProcessor struct {
	binaryExtensions []string
}

// NewFileProcessor creates a new FileProcessor.
// binaryExtensions is a list of file extensions that should be treated as binary.
func NewFileProcessor(binaryExtensions []string) Processor {
	if binaryExtensions == nil {
		binaryExtensions = model.DefaultBinaryExtensions()
	}
	return &FileProcessor{
		binaryExtensions: binaryExtensions,
	}
}

// ShouldProcess returns false if:
// - file.IsBinary is true
// - file extension matches binary extensions
// - file content contains a NUL byte in its first 512 bytes
func (p *FileProcessor) ShouldProcess(file model.TemplateFile) bool {
	if file.IsBinary {
		return false
	}

	ext := strings.ToLower(filepath.Ext(file.Path))
	for _, binaryExt := range p.binaryExtensions {
		if ext == binaryExt {
			return false
		}
	}

	return !isBinaryContent(file.Content)
}

// isBinaryContent checks up to 512 bytes for NUL bytes.
func isBinaryContent(content []byte) bool {
	checkLen := len(content)
	if checkLen > 512 {
		checkLen = 512
	}

	return bytes.IndexByte(content[:checkLen], 0) != -1
}

// Process resolves placeholders in text files.
func (p *FileProcessor) Process(file model.TemplateFile, resolve func(string) string) []byte {
	if !p.ShouldProcess(file) {
		debug.Debug("[generator] Copying binary file verbatim: %s (size: %d bytes)", file.Path, len(file.Content))
		return file.Content
	}
	return []byte(resolve(string(file.Content)))
}
