package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Output styles
var (
	styleSuccess  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleWarning  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleHeader   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	styleMuted    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// colorEnabled reports whether w gets styled output.
func colorEnabled(w io.Writer) bool {
	if globalNoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// styled renders s with style when w is a color terminal.
func styled(w io.Writer, style lipgloss.Style, s string) string {
	if !colorEnabled(w) {
		return s
	}
	return lipgloss.NewRenderer(w).NewStyle().Inherit(style).Render(s)
}

// Output formatting helpers

// printInfo prints an informational message
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintln(outWriter, msg)
}

// printSuccess prints a success message
func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(outWriter, "%s %s\n", styled(outWriter, styleSuccess, "✓"), msg)
}

// printWarning prints a warning message
func printWarning(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(outWriter, "%s %s\n", styled(outWriter, styleWarning, "⚠"), msg)
}

// printErrorMsg prints an error message to stderr
func printErrorMsg(msg string) {
	fmt.Fprintf(errWriter, "%s %s\n", styled(errWriter, styleError, "✗"), msg)
}

// printProgress prints a progress indicator
func printProgress(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(outWriter, "%s %s\n", styled(outWriter, styleProgress, "→"), msg)
}

// printHeader prints a section header
func printHeader(title string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(outWriter, "\n%s\n", styled(outWriter, styleHeader, "=== "+title+" ==="))
}

// printItem prints an indented list entry with an optional muted note.
func printItem(text, note string) {
	if globalQuiet {
		return
	}
	if note == "" {
		fmt.Fprintf(outWriter, "  %s\n", text)
		return
	}
	fmt.Fprintf(outWriter, "  %s %s\n", text, styled(outWriter, styleMuted, note))
}

// printTable prints rows with the first column padded to a common width.
func printTable(rows [][2]string) {
	if globalQuiet {
		return
	}
	width := 0
	for _, r := range rows {
		if len(r[0]) > width {
			width = len(r[0])
		}
	}
	for _, r := range rows {
		pad := strings.Repeat(" ", width-len(r[0]))
		fmt.Fprintf(outWriter, "  %s%s  %s\n", r[0], pad, r[1])
	}
}

// pluralize returns "n word" with an s appended unless n is 1.
func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
