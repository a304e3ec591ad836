package placeholder

import (
	"os/exec"
	"strconv"
	"strings"
)

// Built-in placeholder names.
const (
	NameToken      = "name"
	YearToken      = "year"
	MonthToken     = "month"
	MonthNameToken = "month-name"
	DayToken       = "day"
	GitNameToken   = "git-name"
)

// UnknownGitName is used when git is missing or user.name is unset.
const UnknownGitName = "unknown"

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Builtin describes a placeholder that needs no declaration.
type Builtin struct {
	Name        string
	Description string
	Value       func() string
}

// Builtins lists the date and git placeholders with their current values.
func (e *Engine) Builtins() []Builtin {
	return []Builtin{
		{YearToken, "The current year", func() string { return strconv.Itoa(e.now().Year()) }},
		{MonthToken, "The current month", func() string { return strconv.Itoa(int(e.now().Month())) }},
		{MonthNameToken, "The current month as name", func() string { return monthNames[e.now().Month()-1] }},
		{DayToken, "The current day", func() string { return strconv.Itoa(e.now().Day()) }},
		{GitNameToken, "The name of the git user", e.gitName},
	}
}

// GitUserName returns `git config user.name`, or UnknownGitName.
func GitUserName() string {
	out, err := exec.Command("git", "config", "user.name").Output()
	if err != nil {
		return UnknownGitName
	}
	if name := strings.TrimSpace(string(out)); name != "" {
		return name
	}
	return UnknownGitName
}
