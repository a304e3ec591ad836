// Package placeholder resolves $$token$$ placeholders in template names and
// content: built-in date and git tokens, the given name, declared variables,
// and case renderings of the latter two.
package placeholder

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tacogips/tpy/internal/template/model"
)

var tokenPattern = regexp.MustCompile(`\$\$([^$\s]+)\$\$`)

// Engine substitutes placeholders. The zero value uses the wall clock and git.
type Engine struct {
	// Now returns the current time for date tokens.
	Now func() time.Time
	// GitName returns the git user name.
	GitName func() string

	gitNameCache *string
}

// NewEngine creates an Engine backed by the wall clock and `git config`.
func NewEngine() *Engine {
	return &Engine{Now: time.Now, GitName: GitUserName}
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Engine) gitName() string {
	if e.gitNameCache != nil {
		return *e.gitNameCache
	}
	fn := e.GitName
	if fn == nil {
		fn = GitUserName
	}
	name := fn()
	e.gitNameCache = &name
	return name
}

// Resolve replaces every known placeholder in s. Unknown tokens, and tokens
// of variables that are still unset, are left as they are.
func (e *Engine) Resolve(s, givenName string, vars *model.VarCollection) string {
	if !strings.Contains(s, "$$") {
		return s
	}
	return tokenPattern.ReplaceAllStringFunc(s, func(token string) string {
		if value, ok := e.lookup(token[2:len(token)-2], givenName, vars); ok {
			return value
		}
		return token
	})
}

func (e *Engine) lookup(token, givenName string, vars *model.VarCollection) (string, bool) {
	switch token {
	case NameToken:
		return givenName, true
	case YearToken:
		return strconv.Itoa(e.now().Year()), true
	case MonthToken:
		return strconv.Itoa(int(e.now().Month())), true
	case MonthNameToken:
		return monthNames[e.now().Month()-1], true
	case DayToken:
		return strconv.Itoa(e.now().Day()), true
	case GitNameToken:
		return e.gitName(), true
	}

	if i := strings.LastIndex(token, "."); i > 0 {
		if style, ok := ParseCaseStyle(token[i+1:]); ok {
			base := token[:i]
			if base == NameToken {
				return Render(style, Tokenize(givenName)), true
			}
			if v := vars.Get(base); v != nil && v.IsSet {
				return Render(style, Tokenize(v.Value)), true
			}
			return "", false
		}
	}

	if v := vars.Get(token); v != nil && v.IsSet {
		return v.Value, true
	}
	return "", false
}
