package config

import (
	"errors"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tacogips/tpy/internal/debug"
)

// EnvPrefix prefixes every environment variable read as configuration.
const EnvPrefix = "TPY_"

// envKeys maps lowercased environment names (without prefix) to config keys.
// Keys themselves contain underscores, so names cannot be split mechanically.
var envKeys = map[string]string{
	"templates_dir":               "templates_dir",
	"network_check_url":           "network.check_url",
	"network_timeout_seconds":     "network.timeout_seconds",
	"github_token":                "github.token",
	"gitlab_token":                "gitlab.token",
	"init_example_url":            "init.example_url",
	"templates_binary_extensions": "templates.binary_extensions",
	"output_color":                "output.color",
	"log_file":                    "log.file",
}

// Loader defines the interface for loading configuration.
type Loader interface {
	// Load merges defaults, the configuration file and the environment. An
	// empty path searches the XDG config directories for tpy/config.toml.
	Load(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// KoanfLoader implements Loader on top of koanf.
type KoanfLoader struct{}

// NewLoader creates a new KoanfLoader instance.
func NewLoader() Loader {
	return &KoanfLoader{}
}

// Load loads configuration. Sources override each other in this order:
// defaults, TOML file, TPY_* environment variables.
func (l *KoanfLoader) Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, "", "failed to load defaults", err)
	}

	configFile, err := resolveConfigFile(path)
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		debug.Debug("[config] Loading %s", configFile)
		if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, configFile, "invalid TOML", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, "", "failed to read environment", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, configFile, "failed to decode configuration", err)
	}

	if err := l.Validate(&cfg); err != nil {
		if cfgErr, ok := err.(*ConfigError); ok && cfgErr.File == "" {
			cfgErr.File = configFile
		}
		return nil, err
	}
	return &cfg, nil
}

// resolveConfigFile returns the file to load, or "" when none exists. An
// explicit path must exist.
func resolveConfigFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
			}
			return "", NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
		}
		return path, nil
	}

	found, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		debug.Debug("[config] No configuration file found, using defaults")
		return "", nil
	}
	return found, nil
}

func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	return envKeys[key]
}
