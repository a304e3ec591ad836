package config

// Config represents the global tpy configuration.
type Config struct {
	// TemplatesDir is the templates root, relative to the project directory.
	TemplatesDir string `koanf:"templates_dir"`
	// Network configuration for connectivity checks and HTTP requests.
	Network NetworkConfig `koanf:"network"`
	// GitHub configuration for repository access.
	GitHub TokenConfig `koanf:"github"`
	// GitLab configuration for repository access.
	GitLab TokenConfig `koanf:"gitlab"`
	// Init configuration for `tpy init`.
	Init InitConfig `koanf:"init"`
	// Templates configuration for template processing.
	Templates TemplateConfig `koanf:"templates"`
	// Output configuration for display.
	Output OutputConfig `koanf:"output"`
	// Log configuration for the debug log.
	Log LogConfig `koanf:"log"`
}

// NetworkConfig represents network settings.
type NetworkConfig struct {
	// CheckURL is requested to decide whether the network is available.
	CheckURL string `koanf:"check_url"`
	// TimeoutSeconds is the HTTP request timeout in seconds.
	TimeoutSeconds int `koanf:"timeout_seconds"`
}

// TokenConfig holds a personal access token for a hosting provider.
type TokenConfig struct {
	Token string `koanf:"token"`
}

// InitConfig represents settings for initializing a project.
type InitConfig struct {
	// ExampleURL is the collection loaded by `tpy init`. Empty disables it.
	ExampleURL string `koanf:"example_url"`
}

// TemplateConfig represents template processing settings.
type TemplateConfig struct {
	// BinaryExtensions are file extensions copied without substitution.
	BinaryExtensions []string `koanf:"binary_extensions"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// Color enables colored terminal output.
	Color bool `koanf:"color"`
}

// LogConfig represents debug log settings.
type LogConfig struct {
	// File receives the debug log in addition to stderr when set.
	File string `koanf:"file"`
}
