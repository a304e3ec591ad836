package generator

import (
	"path/filepath"

	"github.com/tacogips/tpy/internal/template/model"
)

// IsSpecialFile checks if a template entry must be excluded from generation.
// Descriptors and keep markers are skipped at any depth.
func IsSpecialFile(path string) bool {
	return model.IsReservedFile(filepath.Base(filepath.ToSlash(path)))
}
