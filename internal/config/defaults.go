package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/tacogips/tpy/internal/template/model"
)

const (
	// DefaultCheckURL is probed by the network availability check.
	DefaultCheckURL = "https://google.com"
	// DefaultExampleURL is the example collection loaded by `tpy init`.
	DefaultExampleURL = "https://github.com/cophilot/templify-vault/tree/main/Example"
	// DefaultTimeoutSeconds is the default HTTP timeout.
	DefaultTimeoutSeconds = 30

	configRelPath = "tpy/config.toml"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		TemplatesDir: model.DefaultTemplatesDir,
		Network: NetworkConfig{
			CheckURL:       DefaultCheckURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Init: InitConfig{
			ExampleURL: DefaultExampleURL,
		},
		Templates: TemplateConfig{
			BinaryExtensions: DefaultBinaryExtensions(),
		},
		Output: OutputConfig{
			Color: true,
		},
	}
}

// defaultMap is DefaultConfig in koanf's flat key form.
func defaultMap() map[string]interface{} {
	cfg := DefaultConfig()
	return map[string]interface{}{
		"templates_dir":               cfg.TemplatesDir,
		"network.check_url":           cfg.Network.CheckURL,
		"network.timeout_seconds":     cfg.Network.TimeoutSeconds,
		"github.token":                "",
		"gitlab.token":                "",
		"init.example_url":            cfg.Init.ExampleURL,
		"templates.binary_extensions": cfg.Templates.BinaryExtensions,
		"output.color":                cfg.Output.Color,
		"log.file":                    "",
	}
}

// DefaultBinaryExtensions returns the default binary file extensions.
func DefaultBinaryExtensions() []string {
	return model.DefaultBinaryExtensions()
}

// DefaultConfigPath returns the configuration file under the XDG config
// home. The file does not need to exist.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, configRelPath)
}
