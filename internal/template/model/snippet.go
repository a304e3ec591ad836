package model

import "fmt"

// Snippet inserts Content into an existing project file next to every line
// carrying its ~~ID~~ marker.
type Snippet struct {
	ID      string `yaml:"id"`
	File    string `yaml:"file"`
	Content string `yaml:"content"`
	// Before inserts above the marker line instead of below it.
	Before bool `yaml:"before"`
}

// Marker returns the token searched for in the target file.
func (s Snippet) Marker() string {
	return fmt.Sprintf("~~%s~~", s.ID)
}
