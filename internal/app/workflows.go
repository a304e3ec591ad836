package app

import (
	"github.com/tacogips/tpy/internal/template/model"
	"github.com/tacogips/tpy/internal/template/placeholder"
)

// ListTemplates returns the parsed descriptor of every template, by name.
func ListTemplates(w *Workspace) ([]*model.TemplateMeta, error) {
	metas, err := w.Store().List()
	if err != nil {
		return nil, wrapError("failed to list templates", err)
	}
	return metas, nil
}

// PlaceholderInfo describes one built-in placeholder.
type PlaceholderInfo struct {
	// Token is the placeholder as written in templates, e.g. "$$year$$".
	Token string
	// Description explains the value.
	Description string
	// Value is the current value; empty for $$name$$.
	Value string
}

// CaseInfo describes one case style suffix.
type CaseInfo struct {
	// Suffix is the long suffix, e.g. "pascal".
	Suffix string
	// Short is the one-letter alias.
	Short string
	// Example renders "my new name" in this style.
	Example string
}

// PlaceholderReport lists the built-in placeholders and case styles.
type PlaceholderReport struct {
	Builtins []PlaceholderInfo
	Cases    []CaseInfo
}

const caseExample = "my new name"

// Placeholders reports the built-in placeholders with their current values.
func Placeholders(w *Workspace) *PlaceholderReport {
	report := &PlaceholderReport{
		Builtins: []PlaceholderInfo{{Token: "$$" + placeholder.NameToken + "$$", Description: "The name given to generate"}},
	}
	for _, b := range w.Engine.Builtins() {
		info := PlaceholderInfo{Token: "$$" + b.Name + "$$", Description: b.Description}
		if b.Value != nil {
			info.Value = b.Value()
		}
		report.Builtins = append(report.Builtins, info)
	}

	tokens := placeholder.Tokenize(caseExample)
	for _, style := range placeholder.CaseStyles() {
		report.Cases = append(report.Cases, CaseInfo{
			Suffix:  style.String(),
			Short:   style.Short(),
			Example: placeholder.Render(style, tokens),
		})
	}
	return report
}
