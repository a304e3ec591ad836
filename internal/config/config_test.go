package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/tpy/internal/template/model"
)

// isolateXDG points the XDG config search at an empty temp directory.
func isolateXDG(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(home, "system"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return home
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func requireConfigError(t *testing.T, err error, typ ConfigErrorType) *ConfigError {
	t.Helper()
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %v", err)
	assert.Equal(t, typ, cfgErr.Type)
	return cfgErr
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ".templates", cfg.TemplatesDir)
	assert.Equal(t, DefaultCheckURL, cfg.Network.CheckURL)
	assert.Equal(t, 30, cfg.Network.TimeoutSeconds)
	assert.Equal(t, DefaultExampleURL, cfg.Init.ExampleURL)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, model.DefaultBinaryExtensions(), cfg.Templates.BinaryExtensions)
	require.NoError(t, Validate(cfg))
}

func TestLoad_Defaults(t *testing.T) {
	isolateXDG(t)

	cfg, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_XDGFile(t *testing.T) {
	home := isolateXDG(t)
	writeConfig(t, filepath.Join(home, "tpy"), `
templates_dir = "tpl"

[network]
timeout_seconds = 5

[github]
token = "gh-token"
`)

	cfg, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, "tpl", cfg.TemplatesDir)
	assert.Equal(t, 5, cfg.Network.TimeoutSeconds)
	assert.Equal(t, "gh-token", cfg.GitHub.Token)
	assert.Equal(t, DefaultCheckURL, cfg.Network.CheckURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateXDG(t)
	path := writeConfig(t, t.TempDir(), `
[output]
color = true

[gitlab]
token = "from-file"
`)
	t.Setenv("TPY_GITLAB_TOKEN", "from-env")
	t.Setenv("TPY_OUTPUT_COLOR", "false")
	t.Setenv("TPY_TEMPLATES_BINARY_EXTENSIONS", ".bin,.dat")
	t.Setenv("TPY_UNKNOWN_KEY", "ignored")

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.GitLab.Token)
	assert.False(t, cfg.Output.Color)
	assert.Equal(t, []string{".bin", ".dat"}, cfg.Templates.BinaryExtensions)
}

func TestLoad_Errors(t *testing.T) {
	isolateXDG(t)

	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.toml"))
	requireConfigError(t, err, ConfigNotFound)

	path := writeConfig(t, t.TempDir(), "templates_dir = [unterminated")
	_, err = NewLoader().Load(path)
	cfgErr := requireConfigError(t, err, ConfigInvalid)
	assert.Equal(t, path, cfgErr.File)

	path = writeConfig(t, t.TempDir(), "[network]\ntimeout_seconds = 0\n")
	_, err = NewLoader().Load(path)
	cfgErr = requireConfigError(t, err, ConfigValidationFailed)
	assert.Equal(t, "network.timeout_seconds", cfgErr.Field)
	assert.Contains(t, cfgErr.Error(), path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "empty templates dir", modify: func(c *Config) { c.TemplatesDir = " " }, field: "templates_dir"},
		{name: "negative timeout", modify: func(c *Config) { c.Network.TimeoutSeconds = -1 }, field: "network.timeout_seconds"},
		{name: "empty check url", modify: func(c *Config) { c.Network.CheckURL = "" }, field: "network.check_url"},
		{name: "non http check url", modify: func(c *Config) { c.Network.CheckURL = "ftp://x" }, field: "network.check_url"},
		{name: "empty example url", modify: func(c *Config) { c.Init.ExampleURL = "" }},
		{name: "relative example url", modify: func(c *Config) { c.Init.ExampleURL = "Example" }, field: "init.example_url"},
		{name: "extension without dot", modify: func(c *Config) { c.Templates.BinaryExtensions = []string{"png"} }, field: "templates.binary_extensions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := Validate(cfg)
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			cfgErr := requireConfigError(t, err, ConfigValidationFailed)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}

	requireConfigError(t, Validate(nil), ConfigValidationFailed)
}

func TestConfigError(t *testing.T) {
	err := NewConfigErrorWithField(ConfigValidationFailed, "/etc/tpy.toml", "log.file", "bad")
	assert.Equal(t, "configuration error in /etc/tpy.toml [field: log.file]: bad", err.Error())

	cause := errors.New("boom")
	wrapped := NewConfigErrorWithCause(ConfigInvalid, "", "failed", cause)
	assert.Equal(t, "configuration error: failed: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}
