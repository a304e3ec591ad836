package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tacogips/tpy/internal/app"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:     "new <name>",
	Aliases: []string{"n"},
	Short:   "Create a new template",
	Long: `Create an empty template with a .templify.yml descriptor.

Examples:
  tpy new component
  tpy new component -d "React component" -p "src/components/$$name$$"`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

// New command flags
var (
	newDescription string
	newPath        string
)

func init() {
	newCmd.Flags().StringVarP(&newDescription, FlagDescription, "d", "", DescDescription)
	newCmd.Flags().StringVarP(&newPath, FlagPath, "p", ".", DescPath)
}

func runNew(cmd *cobra.Command, args []string) error {
	w, err := newWorkspace()
	if err != nil {
		return err
	}

	result, err := app.NewTemplate(w, app.NewTemplateOptions{
		Name:        args[0],
		Description: newDescription,
		Path:        newPath,
	})
	if err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Template %s created", args[0]))
	printItem(result.Descriptor, "")
	return nil
}
