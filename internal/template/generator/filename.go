package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tacogips/tpy/internal/debug"
)

// ProcessFilename resolves placeholders in a template-relative path, one
// component at a time. Returns an error if:
// - a component resolves to an empty value
// - a component contains a path separator or equals ".." after substitution
// - the resulting path is absolute or resolves to "."
func ProcessFilename(filePath string, resolve func(string) string) (string, error) {
	components := strings.Split(filepath.ToSlash(filePath), "/")
	processedComponents := make([]string, 0, len(components))

	for _, component := range components {
		if component == "" {
			continue
		}

		processed := resolve(component)
		if err := validateFilenameComponent(processed, component); err != nil {
			return "", err
		}
		processedComponents = append(processedComponents, processed)
	}

	result := strings.Join(processedComponents, "/")
	if result != filePath {
		debug.Debug("[generator] ProcessFilename: %s -> %s", filePath, result)
	}

	if err := validateProcessedPath(result, filePath); err != nil {
		return "", err
	}
	return filepath.FromSlash(result), nil
}

// validateFilenameComponent validates a single processed filename component.
func validateFilenameComponent(processed, original string) error {
	if processed == ".." {
		return newGeneratorError(GeneratorPathError,
			fmt.Sprintf("invalid filename component: %q contains path traversal (..) after substitution", processed),
			original, nil)
	}

	if strings.ContainsAny(processed, `/\`) {
		return newGeneratorError(GeneratorPathError,
			fmt.Sprintf("invalid filename component: %q contains path separator after substitution", processed),
			original, nil)
	}

	if strings.TrimSpace(processed) == "" {
		return newGeneratorError(GeneratorPathError,
			"filename component resulted in empty value after substitution",
			original, nil)
	}

	return nil
}

// validateProcessedPath validates the complete processed path.
func validateProcessedPath(processed, original string) error {
	if filepath.IsAbs(processed) {
		return newGeneratorError(GeneratorPathError,
			fmt.Sprintf("invalid filename: %q is an absolute path after substitution", processed),
			original, nil)
	}

	cleaned := filepath.Clean(processed)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return newGeneratorError(GeneratorPathError,
			fmt.Sprintf("invalid filename: %q attempts path traversal after substitution", processed),
			original, nil)
	}
	if cleaned == "." {
		return newGeneratorError(GeneratorPathError,
			fmt.Sprintf("invalid filename: %q resolves to current directory after substitution", processed),
			original, nil)
	}

	return nil
}
