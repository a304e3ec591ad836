package generator

import (
	"fmt"
	"os"
	"strings"

	"github.com/tacogips/tpy/internal/debug"
	"github.com/tacogips/tpy/internal/template/model"
)

// insertSnippet adds s.Content next to every line of s.File containing the
// snippet marker. Returns the number of markers found.
func insertSnippet(s model.Snippet) (int, error) {
	info, err := os.Stat(s.File)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("file %s does not exist", s.File)
		}
		return 0, err
	}

	data, err := os.ReadFile(s.File)
	if err != nil {
		return 0, err
	}

	marker := s.Marker()
	content := strings.Split(strings.TrimSuffix(s.Content, "\n"), "\n")
	lines := strings.Split(string(data), "\n")

	out := make([]string, 0, len(lines)+len(content))
	found := 0
	for _, line := range lines {
		if !strings.Contains(line, marker) {
			out = append(out, line)
			continue
		}
		found++
		if s.Before {
			out = append(out, content...)
			out = append(out, line)
		} else {
			out = append(out, line)
			out = append(out, content...)
		}
	}
	if found == 0 {
		return 0, nil
	}

	if err := NewFileWriter().WriteFile(s.File, []byte(strings.Join(out, "\n")), info.Mode()); err != nil {
		return 0, err
	}
	debug.Debug("[generator] Snippet %s inserted into %s (%d markers)", s.ID, s.File, found)
	return found, nil
}
