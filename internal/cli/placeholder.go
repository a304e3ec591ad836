package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tacogips/tpy/internal/app"
)

// placeholderCmd represents the placeholder command
var placeholderCmd = &cobra.Command{
	Use:     "placeholder",
	Aliases: []string{"ph"},
	Short:   "Show the built-in placeholders",
	Long: `Show the built-in placeholders with their current values and the
case conversions that can be appended to any placeholder, e.g. $$name.kebab$$.`,
	Args: cobra.NoArgs,
	RunE: runPlaceholder,
}

func runPlaceholder(cmd *cobra.Command, args []string) error {
	w, err := newWorkspace()
	if err != nil {
		return err
	}
	report := app.Placeholders(w)

	printHeader("Placeholders")
	rows := make([][2]string, 0, len(report.Builtins))
	for _, b := range report.Builtins {
		desc := b.Description
		if b.Value != "" {
			desc = fmt.Sprintf("%s (%s)", desc, b.Value)
		}
		rows = append(rows, [2]string{b.Token, desc})
	}
	printTable(rows)

	printHeader("Case conversion")
	rows = rows[:0]
	for _, c := range report.Cases {
		rows = append(rows, [2]string{fmt.Sprintf(".%s (.%s)", c.Suffix, c.Short), c.Example})
	}
	printTable(rows)
	return nil
}
