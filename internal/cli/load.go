package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tacogips/tpy/internal/app"
	"github.com/tacogips/tpy/internal/template/provider"
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:     "load <url>",
	Aliases: []string{"l"},
	Short:   "Load templates from GitHub or GitLab",
	Long: `Load templates from a GitHub tree URL or a GitLab repository tree API
URL. Every directory below the URL becomes a template; with --template the
URL itself is loaded as one template.

The source URL is recorded in the template descriptor so the template
can be refreshed later with "tpy reload".

Examples:
  tpy load https://github.com/owner/repo/tree/main/templates
  tpy load "https://gitlab.com/api/v4/projects/42/repository/tree?path=templates/api" -t`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

// reloadCmd represents the reload command
var reloadCmd = &cobra.Command{
	Use:     "reload [template]",
	Aliases: []string{"rl"},
	Short:   "Reload templates from their source",
	Long: `Refetch a template, or all templates, from the URL recorded when it
was loaded. With --reset the template is replaced as a whole and restored
unchanged when the fetch fails.

Examples:
  tpy reload
  tpy reload component --reset`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReload,
}

// Load command flags
var (
	loadForce    bool
	loadTemplate bool
)

// Reload command flags
var (
	reloadStrict bool
	reloadReset  bool
)

func init() {
	loadCmd.Flags().BoolVarP(&loadForce, FlagForce, "f", false, DescForce)
	loadCmd.Flags().BoolVarP(&loadTemplate, FlagTemplate, "t", false, DescTemplate)

	reloadCmd.Flags().BoolVar(&reloadStrict, FlagStrict, false, DescStrict)
	reloadCmd.Flags().BoolVarP(&reloadReset, FlagReset, "r", false, DescReset)
}

func runLoad(cmd *cobra.Command, args []string) error {
	w, err := newWorkspace()
	if err != nil {
		return err
	}

	printProgress(fmt.Sprintf("Loading templates from %s", args[0]))
	results, err := app.Load(cmd.Context(), w, app.LoadOptions{
		URL:    args[0],
		Force:  loadForce,
		Single: loadTemplate,
	})
	for _, r := range results {
		printLoadResult(r)
	}
	if err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Loaded %s", pluralize(len(results), "template")))
	return nil
}

func runReload(cmd *cobra.Command, args []string) error {
	w, err := newWorkspace()
	if err != nil {
		return err
	}

	opts := app.ReloadOptions{Strict: reloadStrict, Reset: reloadReset}
	if len(args) == 1 {
		opts.Name = args[0]
	}

	printProgress("Reloading templates...")
	results, err := app.Reload(cmd.Context(), w, opts)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			printWarning(r.Err.Error())
			continue
		}
		printLoadResult(r.Load)
	}
	if failed > 0 {
		return app.NewAppError(app.Internal, fmt.Sprintf("%s of %d could not be reloaded", pluralize(failed, "template"), len(results)), nil)
	}

	printSuccess(fmt.Sprintf("Reloaded %s", pluralize(len(results), "template")))
	return nil
}

func printLoadResult(r *provider.LoadResult) {
	printItem(r.Name, fmt.Sprintf("[%s from %s]", pluralize(r.Files, "file"), r.URL))
}
