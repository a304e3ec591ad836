package cli

import (
	"github.com/spf13/cobra"
	"github.com/tacogips/tpy/internal/app"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the available templates",
	Long: `List the templates of the project with their descriptions.

Examples:
  tpy list
  tpy list --name
  tpy list --path`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// List command flags
var (
	listNameOnly bool
	listPath     bool
)

func init() {
	listCmd.Flags().BoolVarP(&listNameOnly, FlagName, "n", false, DescListName)
	listCmd.Flags().BoolVarP(&listPath, FlagPath, "p", false, DescListPath)
}

func runList(cmd *cobra.Command, args []string) error {
	w, err := newWorkspace()
	if err != nil {
		return err
	}
	metas, err := app.ListTemplates(w)
	if err != nil {
		return err
	}

	printInfo("Available templates:")
	for _, m := range metas {
		line := m.Name
		if m.Description != "" && !listNameOnly {
			line += " - " + m.Description
		}
		note := ""
		if listPath {
			note = "[" + m.Path + "]"
		}
		printItem(line, note)
	}
	return nil
}
