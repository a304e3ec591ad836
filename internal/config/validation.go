package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate validates the global configuration.
func Validate(config *Config) error {
	return NewLoader().Validate(config)
}

// Validate validates the configuration.
func (l *KoanfLoader) Validate(config *Config) error {
	if config == nil {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "", "configuration cannot be nil")
	}

	dir := strings.TrimSpace(config.TemplatesDir)
	if dir == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "templates_dir", "templates directory cannot be empty")
	}

	if config.Network.TimeoutSeconds <= 0 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "network.timeout_seconds", "timeout must be positive")
	}
	if err := validateHTTPURL("network.check_url", config.Network.CheckURL, false); err != nil {
		return err
	}
	if err := validateHTTPURL("init.example_url", config.Init.ExampleURL, true); err != nil {
		return err
	}

	for _, ext := range config.Templates.BinaryExtensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return NewConfigErrorWithField(ConfigValidationFailed, "", "templates.binary_extensions",
				fmt.Sprintf("extension %q must start with a dot", ext))
		}
	}
	return nil
}

func validateHTTPURL(field, raw string, allowEmpty bool) error {
	if raw == "" {
		if allowEmpty {
			return nil
		}
		return NewConfigErrorWithField(ConfigValidationFailed, "", field, "URL cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", field, fmt.Sprintf("invalid http(s) URL: %s", raw))
	}
	return nil
}
