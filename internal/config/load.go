package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/gitops-tools/autoresolve/internal/errors"
)

// legacyEnvAliases maps config keys to the bare environment variable names
// agent harnesses already export. The AUTORESOLVE_-prefixed forms win when
// both are set because they are bound first.
var legacyEnvAliases = map[string][]string{
	"git.remote":         {"AUTORESOLVE_GIT_REMOTE", "GIT_REMOTE"},
	"git.strategy":       {"AUTORESOLVE_GIT_STRATEGY", "GIT_STRATEGY"},
	"git.commit_message": {"AUTORESOLVE_GIT_COMMIT_MESSAGE", "GIT_COMMIT_MESSAGE"},
}

// newViperInstance creates a Viper instance with standard autoresolve
// configuration: defaults, the AUTORESOLVE_ env prefix, key replacer, and the
// legacy env aliases.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("AUTORESOLVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range legacyEnvAliases {
		// BindEnv never fails with a non-empty key list.
		_ = v.BindEnv(append([]string{key}, names...)...)
	}
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not
// found error. Missing config files are expected in many scenarios.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// viperDecoderOption returns the mapstructure decode hooks used when
// unmarshaling configuration.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

// Load reads configuration from all available sources with proper precedence.
// workDir is the repository the pipeline will run in; its project config file
// (.autoresolve.yaml) overrides the global one (~/.autoresolve/config.yaml).
//
// The function returns an error only for actual configuration problems, not
// for missing config files.
func Load(ctx context.Context, workDir string) (*Config, error) {
	return LoadWithOverrides(ctx, workDir, nil)
}

// LoadWithOverrides is Load with an extra top-precedence layer of explicit
// key/value overrides, used for CLI flag values the user actually set.
func LoadWithOverrides(ctx context.Context, workDir string, overrides map[string]any) (*Config, error) {
	v := newViperInstance()

	// Global config first (lower precedence)
	if path, err := GlobalConfigPath(); err == nil {
		if err := mergeConfigFile(v, path); err != nil {
			return nil, err
		}
	}

	// Project config merges over global
	if workDir != "" {
		if err := mergeConfigFile(v, ProjectConfigPath(workDir)); err != nil {
			return nil, err
		}
	}

	// Explicit overrides beat everything, including env
	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("git.remote", cfg.Git.Remote).
		Str("git.strategy", cfg.Git.Strategy).
		Msg("configuration loaded and unmarshaled")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// mergeConfigFile merges a single config file into the viper instance,
// skipping silently when the file does not exist.
func mergeConfigFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	return nil
}
