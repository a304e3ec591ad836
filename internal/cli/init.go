package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tacogips/tpy/internal/app"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:     "init",
	Aliases: []string{"i"},
	Short:   "Initialize tpy in the current project",
	Long: `Create the .templates directory of the project.

Unless --blank is given a README describing the template format is written,
and unless --offline is given the example templates are loaded.

Examples:
  tpy init
  tpy init --offline
  tpy init --blank`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

// Init command flags
var (
	initOffline bool
	initBlank   bool
)

func init() {
	initCmd.Flags().BoolVarP(&initOffline, FlagOffline, "o", false, DescOffline)
	initCmd.Flags().BoolVarP(&initBlank, FlagBlank, "b", false, DescBlank)
}

func runInit(cmd *cobra.Command, args []string) error {
	w, err := newWorkspace()
	if err != nil {
		return err
	}

	printProgress("Initializing tpy...")
	result, err := app.Init(cmd.Context(), w, app.InitOptions{
		Offline: initOffline,
		Blank:   initBlank,
	})
	if err != nil {
		return err
	}

	if result.ReadmeCreated {
		printInfo(fmt.Sprintf("Created %s", app.ReadmeFile))
	}
	for _, ex := range result.Examples {
		printItem(fmt.Sprintf("Loaded example template %s", ex.Name), "["+pluralize(ex.Files, "file")+"]")
	}
	if result.ExamplesSkipped != "" {
		printWarning(fmt.Sprintf("Skipped example templates: %s", result.ExamplesSkipped))
	}
	if result.ExamplesErr != nil {
		printWarning(result.ExamplesErr.Error())
	}

	printSuccess(fmt.Sprintf("tpy initialized in %s", result.Root))
	printInfo(`Run "tpy new <name>" to create your first template.`)
	return nil
}
