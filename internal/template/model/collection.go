package model

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// VarCollection is an insertion-ordered set of variable placeholders.
// Order is both display order and the numbering basis for prompts.
type VarCollection struct {
	order []string
	vars  map[string]*VarPlaceholder
}

// NewVarCollection creates an empty collection.
func NewVarCollection() *VarCollection {
	return &VarCollection{vars: make(map[string]*VarPlaceholder)}
}

// Add parses decl and inserts the placeholder. Re-declaring a name replaces
// the placeholder in its original position. Returns nil for an empty declaration.
func (c *VarCollection) Add(decl string) *VarPlaceholder {
	p := ParseDeclaration(decl)
	if p == nil {
		return nil
	}
	if _, exists := c.vars[p.Name]; !exists {
		c.order = append(c.order, p.Name)
	}
	c.vars[p.Name] = p
	return p
}

// Get returns the named placeholder, or nil.
func (c *VarCollection) Get(name string) *VarPlaceholder {
	if c == nil {
		return nil
	}
	return c.vars[name]
}

// All returns the placeholders in declaration order.
func (c *VarCollection) All() []*VarPlaceholder {
	if c == nil {
		return nil
	}
	out := make([]*VarPlaceholder, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.vars[name])
	}
	return out
}

// Len returns the number of placeholders.
func (c *VarCollection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Unset returns the names of placeholders without a value, in order.
func (c *VarCollection) Unset() []string {
	var names []string
	for _, p := range c.All() {
		if !p.IsSet {
			names = append(names, p.Name)
		}
	}
	return names
}

// ResolveFromAssignments applies a comma-separated list of name=value pairs.
// Names not in the collection are ignored. Returns the names that were set.
func (c *VarCollection) ResolveFromAssignments(input string) ([]string, error) {
	var consumed []string
	for _, pair := range strings.Split(input, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return consumed, &VarError{
				Type:    VarInvalidValue,
				Names:   []string{pair},
				Message: "no value found for " + pair,
			}
		}
		name := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		p := c.Get(name)
		if p == nil {
			continue
		}
		if err := p.SetValue(value); err != nil {
			return consumed, err
		}
		consumed = append(consumed, name)
	}
	return consumed, nil
}

// ApplyDefaults sets every unset placeholder to its first option, or to
// UnknownValue when it has none.
func (c *VarCollection) ApplyDefaults() {
	for _, p := range c.All() {
		if p.IsSet {
			continue
		}
		if p.HasOptions() {
			p.Value = p.Options[0]
		} else {
			p.Value = UnknownValue
		}
		p.IsSet = true
	}
}

// ResolveInteractively asks for every unset placeholder in order. Enumerated
// placeholders re-ask until a valid 1-based index is given. An empty answer
// to a plain placeholder leaves it unset.
func (c *VarCollection) ResolveInteractively(p Prompter) error {
	for _, v := range c.All() {
		if v.IsSet {
			continue
		}
		if v.HasOptions() {
			if err := askOption(p, v); err != nil {
				return err
			}
			continue
		}

		answer, err := p.Ask(fmt.Sprintf("Enter value for %s:", v.Name))
		if err != nil {
			return promptError(v.Name, err)
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			v.Value = answer
			v.IsSet = true
		}
	}
	return nil
}

func askOption(p Prompter, v *VarPlaceholder) error {
	p.Say(fmt.Sprintf("Select value for %s:", v.Name))
	for i, o := range v.Options {
		p.Say(fmt.Sprintf("  %d) %s", i+1, o))
	}
	for {
		answer, err := p.Ask(fmt.Sprintf("Number for %s [1-%d]:", v.Name, len(v.Options)))
		if err != nil {
			return promptError(v.Name, err)
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(answer))
		if convErr != nil || n < 1 || n > len(v.Options) {
			p.Say(fmt.Sprintf("Invalid choice %q, enter a number between 1 and %d", strings.TrimSpace(answer), len(v.Options)))
			continue
		}
		return v.SetValue(v.Options[n-1])
	}
}

func promptError(name string, err error) *VarError {
	msg := "failed to read value for " + name
	if errors.Is(err, io.EOF) {
		msg = "input closed while reading value for " + name
	}
	return &VarError{Type: VarPromptFailed, Names: []string{name}, Message: msg, Cause: err}
}

// AreAllSet reports every unset placeholder in a single MissingValue error.
func (c *VarCollection) AreAllSet() error {
	if unset := c.Unset(); len(unset) > 0 {
		return newMissingValueError(unset)
	}
	return nil
}
