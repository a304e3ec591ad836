package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tacogips/tpy/internal/app"
	"github.com/tacogips/tpy/internal/template/generator"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:     "generate <template> <name>",
	Aliases: []string{"g"},
	Short:   "Generate files from a template",
	Long: `Generate files from a template. The template may be given by any
unique prefix of its name unless --strict is set.

Variables declared by the template are taken from --var, from their
defaults with --default-var, or asked for interactively.

Examples:
  tpy generate component my-button
  tpy generate comp my-button --var "lang=ts,style=css"
  tpy generate component my-button --dry-run
  tpy generate component my-button --reload --force`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

// Generate command flags
var (
	generateVars       string
	generateDefaultVar bool
	generateReload     bool
	generateDryRun     bool
	generateForce      bool
	generateStrict     bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateVars, FlagVar, "v", "", DescVar)
	generateCmd.Flags().BoolVarP(&generateDefaultVar, FlagDefaultVar, "D", false, DescDefaultVar)
	generateCmd.Flags().BoolVar(&generateReload, FlagReload, false, DescReload)
	generateCmd.Flags().BoolVar(&generateDryRun, FlagDryRun, false, DescDryRun)
	generateCmd.Flags().BoolVarP(&generateForce, FlagForce, "f", false, DescForce)
	generateCmd.Flags().BoolVar(&generateStrict, FlagStrict, false, DescStrict)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	w, err := newWorkspace()
	if err != nil {
		return err
	}

	result, err := app.Generate(cmd.Context(), w, app.GenerateOptions{
		Template:    args[0],
		Name:        args[1],
		Vars:        generateVars,
		DefaultVars: generateDefaultVar,
		Reload:      generateReload,
		DryRun:      generateDryRun,
		Force:       generateForce,
		Strict:      generateStrict,
		Prompter:    newPrompter(inReader, outWriter),
	})
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		printWarning(warning)
	}

	gen := result.Generation
	if gen.DryRun {
		printHeader(fmt.Sprintf("Dry run: %s", result.Template))
	}
	for _, a := range gen.Actions {
		printAction(a, gen.DryRun)
	}
	if gen.DryRun {
		printInfo("No files were written.")
		return nil
	}

	summary := pluralize(gen.FilesCreated, "file") + " created"
	if gen.FilesOverwritten > 0 {
		summary += ", " + pluralize(gen.FilesOverwritten, "file") + " overwritten"
	}
	printSuccess(fmt.Sprintf("Generated %s from %s in %s (%s)", args[1], result.Template, gen.TargetRoot, summary))
	return nil
}

func printAction(a generator.Action, dryRun bool) {
	verb := a.Kind.String()
	if dryRun {
		verb = a.Kind.Planned()
	}
	note := ""
	if a.Detail != "" {
		note = "(" + a.Detail + ")"
	}
	printItem(verb+" "+a.Path, note)
}
