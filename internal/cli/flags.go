package cli

// Common flag names and descriptions
const (
	// Flag names
	FlagConfig      = "config"
	FlagDir         = "dir"
	FlagNoColor     = "no-color"
	FlagQuiet       = "quiet"
	FlagDebug       = "debug"
	FlagLogFile     = "log-file"
	FlagOffline     = "offline"
	FlagBlank       = "blank"
	FlagDescription = "description"
	FlagPath        = "path"
	FlagName        = "name"
	FlagVar         = "var"
	FlagDefaultVar  = "default-var"
	FlagReload      = "reload"
	FlagDryRun      = "dry-run"
	FlagForce       = "force"
	FlagStrict      = "strict"
	FlagTemplate    = "template"
	FlagReset       = "reset"

	// Flag descriptions
	DescConfig      = "Path to config file"
	DescDir         = "Project directory"
	DescNoColor     = "Disable colored output"
	DescQuiet       = "Suppress non-error output"
	DescDebug       = "Enable debug logging"
	DescLogFile     = "Append log entries to this file"
	DescOffline     = "Do not load the example templates"
	DescBlank       = "Create only the templates directory"
	DescDescription = "Description of the template"
	DescPath        = "Output path pattern of the template"
	DescListName    = "Show template names only"
	DescListPath    = "Show the output path of each template"
	DescVar         = "Variable values, e.g. \"lang=go,license=MIT\""
	DescDefaultVar  = "Use default values for unset variables"
	DescReload      = "Reload the template from its source first"
	DescDryRun      = "Show actions without execution"
	DescForce       = "Overwrite existing files"
	DescStrict      = "Require an exact template name"
	DescTemplate    = "Load the URL as a single template"
	DescReset       = "Replace the template instead of overwriting files"
)
