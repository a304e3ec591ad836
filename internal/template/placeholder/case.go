package placeholder

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CaseStyle is a naming convention a value can be rendered in.
type CaseStyle int

const (
	Lower CaseStyle = iota
	Upper
	Camel
	Snake
	Kebab
	Pascal
	Macro
	Train
)

var caseSuffixes = []struct {
	style CaseStyle
	long  string
	short string
}{
	{Lower, "lower", "l"},
	{Upper, "upper", "u"},
	{Camel, "camel", "c"},
	{Snake, "snake", "s"},
	{Kebab, "kebab", "k"},
	{Pascal, "pascal", "p"},
	{Macro, "macro", "m"},
	{Train, "train", "t"},
}

// CaseStyles returns every style in display order.
func CaseStyles() []CaseStyle {
	out := make([]CaseStyle, len(caseSuffixes))
	for i, s := range caseSuffixes {
		out[i] = s.style
	}
	return out
}

// String returns the long suffix of the style.
func (c CaseStyle) String() string {
	for _, s := range caseSuffixes {
		if s.style == c {
			return s.long
		}
	}
	return "unknown"
}

// Short returns the one-letter suffix of the style.
func (c CaseStyle) Short() string {
	for _, s := range caseSuffixes {
		if s.style == c {
			return s.short
		}
	}
	return ""
}

// ParseCaseStyle maps a long or short suffix to its style.
func ParseCaseStyle(suffix string) (CaseStyle, bool) {
	for _, s := range caseSuffixes {
		if suffix == s.long || suffix == s.short {
			return s.style, true
		}
	}
	return 0, false
}

// Tokenize splits s into lowercase words. Words are separated by '-', '_',
// whitespace, and before any uppercase rune that is not the first rune of s.
func Tokenize(s string) []string {
	var b strings.Builder
	for i, r := range []rune(s) {
		switch {
		case r == '-' || r == '_':
			b.WriteRune(' ')
		case unicode.IsUpper(r) && i > 0:
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	tokens := strings.Fields(b.String())
	if tokens == nil {
		return []string{}
	}
	return tokens
}

// Capitalize uppercases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Render joins tokens in the given style.
func Render(style CaseStyle, tokens []string) string {
	switch style {
	case Lower:
		return strings.ToLower(strings.Join(tokens, ""))
	case Upper:
		return strings.ToUpper(strings.Join(tokens, ""))
	case Camel:
		parts := make([]string, len(tokens))
		for i, t := range tokens {
			if i == 0 {
				parts[i] = t
			} else {
				parts[i] = Capitalize(t)
			}
		}
		return strings.Join(parts, "")
	case Snake:
		return strings.Join(tokens, "_")
	case Kebab:
		return strings.Join(tokens, "-")
	case Pascal:
		return strings.Join(capitalizeAll(tokens), "")
	case Macro:
		return strings.ToUpper(strings.Join(tokens, "_"))
	case Train:
		return strings.Join(capitalizeAll(tokens), "-")
	}
	return strings.Join(tokens, "")
}

func capitalizeAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = Capitalize(t)
	}
	return out
}
