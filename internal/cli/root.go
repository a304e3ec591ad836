package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tacogips/tpy/internal/app"
	"github.com/tacogips/tpy/internal/config"
	"github.com/tacogips/tpy/internal/debug"
	"github.com/tacogips/tpy/internal/version"
)

// Alias version variables for compatibility
var (
	Version   = version.Version
	GitCommit = version.GitCommit
	BuildDate = version.BuildDate
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
	globalLogFile string
	globalConfig  string
	globalDir     string
)

// State prepared by the root command before any subcommand runs.
var (
	loadedConfig *config.Config
	outWriter    io.Writer = os.Stdout
	errWriter    io.Writer = os.Stderr
	inReader     io.Reader = os.Stdin
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tpy",
	Short: "Project-local template scaffolding tool",
	Long: `tpy generates files and directories from templates stored in the
.templates directory of your project.

Use "tpy init" to create the templates directory, "tpy new <name>" to
author a template and "tpy generate <template> <name>" to use it.
Templates can also be loaded from GitHub or GitLab with "tpy load <url>".`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupGlobals,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		debug.Close()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		debug.Close()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)
	rootCmd.PersistentFlags().StringVar(&globalLogFile, FlagLogFile, "", DescLogFile)
	rootCmd.PersistentFlags().StringVar(&globalConfig, FlagConfig, "", DescConfig)
	rootCmd.PersistentFlags().StringVarP(&globalDir, FlagDir, "C", ".", DescDir)

	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(placeholderCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupGlobals wires output streams, logging and configuration.
func setupGlobals(cmd *cobra.Command, args []string) error {
	outWriter = cmd.OutOrStdout()
	errWriter = cmd.ErrOrStderr()
	inReader = cmd.InOrStdin()

	debug.SetOutput(errWriter)
	debug.SetDebug(globalDebug)
	debug.SetNoColor(globalNoColor)

	cfg, err := config.NewLoader().Load(globalConfig)
	if err != nil {
		return err
	}
	loadedConfig = cfg
	if !cfg.Output.Color {
		globalNoColor = true
		debug.SetNoColor(true)
	}

	logFile := globalLogFile
	if logFile == "" {
		logFile = cfg.Log.File
	}
	if err := debug.SetLogFile(logFile); err != nil {
		return err
	}

	debug.DebugSection("[cli] Command start")
	debug.DebugValue("[cli] Command", cmd.CommandPath())
	debug.DebugValue("[cli] Args", args)
	debug.DebugValue("[cli] Dir", globalDir)
	return nil
}

// newWorkspace returns the workspace for the project directory.
func newWorkspace() (*app.Workspace, error) {
	dir, err := filepath.Abs(globalDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}
	cfg := loadedConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return app.NewWorkspace(dir, cfg), nil
}

// printError prints an error message to stderr
func printError(err error) {
	var appErr *app.AppError
	if errors.As(err, &appErr) && appErr.Type != app.Internal {
		printErrorMsg(fmt.Sprintf("%s (%s)", err, appErr.Type))
		return
	}
	printErrorMsg(err.Error())
}
