package generator

import (
	"os"
	"path/filepath"

	"github.com/tacogips/tpy/internal/debug"
)

// Writer writes files to the filesystem.
type Writer interface {
	// WriteFile writes content to a file with the specified permissions.
	WriteFile(path string, content []byte, mode os.FileMode) error

	// CreateDir creates a directory and any necessary parent directories.
	CreateDir(path string) error

	// Remove deletes a single file.
	Remove(path string) error

	// Exists checks if a file or directory exists at the given path.
	Exists(path string) bool
}

// FileWriter implements Writer for filesystem operations.
type FileWriter struct{}

// NewFileWriter creates a new FileWriter.
func NewFileWriter() Writer {
	return &FileWriter{}
}

// WriteFile writes content atomically through a temporary file in the
// target directory, keeping the template file's permission bits.
func (w *FileWriter) WriteFile(path string, content []byte, mode os.FileMode) error {
	debug.Debug("[generator] Writing file: %s (size: %d bytes, mode: %o)", path, len(content), mode)

	dir := filepath.Dir(path)
	if err := w.CreateDir(dir); err != nil {
		return newGeneratorError(GeneratorWriteFailed, "failed to create parent directory", path, err)
	}

	fileMode := mode.Perm()
	if fileMode&0600 == 0 {
		fileMode |= 0600
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return newGeneratorError(GeneratorWriteFailed, "failed to create temporary file", path, err)
	}
	tempFile := f.Name()

	_, err = f.Write(content)
	closeErr := f.Close()

	if err != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed, "failed to write file content", path, err)
	}
	if closeErr != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed, "failed to close file", path, closeErr)
	}
	if err := os.Chmod(tempFile, fileMode); err != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed, "failed to set file mode", path, err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed, "failed to rename temporary file", path, err)
	}
	return nil
}

// CreateDir creates a directory and any necessary parent directories.
// Uses 0755 permissions for created directories.
func (w *FileWriter) CreateDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return newGeneratorError(GeneratorWriteFailed, "failed to create directory", path, err)
	}
	return nil
}

// Remove deletes a single file; a missing file is not an error.
func (w *FileWriter) Remove(path string) error {
	debug.Debug("[generator] Removing existing file: %s", path)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return newGeneratorError(GeneratorWriteFailed, "failed to remove existing file", path, err)
	}
	return nil
}

// Exists checks if a file or directory exists at the given path.
func (w *FileWriter) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
