package model

import (
	"fmt"
	"slices"
	"strings"
)

// UnknownValue is assigned to plain placeholders under the use-defaults policy.
const UnknownValue = "unknown"

// VarPlaceholder is a template-declared variable resolved by the user.
type VarPlaceholder struct {
	// Name is unique within its collection.
	Name string
	// Value is the assigned value, valid only when IsSet.
	Value string
	// Options restricts Value when non-empty.
	Options []string
	// IsSet reports whether Value has been assigned.
	IsSet bool
}

// ParseDeclaration builds a placeholder from one declaration:
//
//	name           plain, unset
//	name(default)  defaulted, already set
//	name[a,b,c]    enumerated, unset, constrained to the options
//
// It returns nil when the declaration has no name.
func ParseDeclaration(decl string) *VarPlaceholder {
	decl = strings.TrimSpace(decl)

	if open := strings.Index(decl, "("); open >= 0 && strings.Contains(decl[open:], ")") {
		name := strings.TrimSpace(decl[:open])
		if name == "" {
			return nil
		}
		rest := decl[open+1:]
		def := strings.TrimSpace(rest[:strings.Index(rest, ")")])
		return &VarPlaceholder{Name: name, Value: def, IsSet: true}
	}

	if open := strings.Index(decl, "["); open >= 0 && strings.Contains(decl[open:], "]") {
		name := strings.TrimSpace(decl[:open])
		if name == "" {
			return nil
		}
		rest := decl[open+1:]
		p := &VarPlaceholder{Name: name}
		for _, o := range strings.Split(rest[:strings.Index(rest, "]")], ",") {
			if o = strings.TrimSpace(o); o != "" {
				p.Options = append(p.Options, o)
			}
		}
		return p
	}

	if decl == "" {
		return nil
	}
	return &VarPlaceholder{Name: decl}
}

// HasOptions reports whether the placeholder is enumerated.
func (p *VarPlaceholder) HasOptions() bool {
	return len(p.Options) > 0
}

// SetValue assigns a value, enforcing the option set of enumerated placeholders.
func (p *VarPlaceholder) SetValue(value string) error {
	if p.HasOptions() && !slices.Contains(p.Options, value) {
		return newInvalidValueError(p.Name, value, p.Options)
	}
	p.Value = value
	p.IsSet = true
	return nil
}

// String renders "name" or "name (value)" once set.
func (p *VarPlaceholder) String() string {
	if !p.IsSet {
		return p.Name
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.Value)
}
