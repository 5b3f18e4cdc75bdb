package config

import (
	"fmt"
	"os"
)

// Source identifies where a resolved configuration value came from.
type Source string

const (
	SourceDefault    Source = "default"
	SourceConfigFile Source = "config_file"
	SourceEnvVar     Source = "env_var"
	SourceFlag       Source = "flag"
)

// Override describes a command-line flag overriding a config-file or
// env-var-sourced value, surfaced so cmd/cairn can warn the user about it
// in verbose mode. Generalized from the teacher's config-source-detection
// mechanism; sourceFor knows the sources of --api-key and --model, and any
// other flag (such as --timeout, which has no config-file key) is treated as
// shadowing only a default, so it never produces an Override.
type Override struct {
	Key            string
	EffectiveValue interface{}
	OverriddenBy   Source
	OriginalSource Source
	OriginalValue  interface{}
}

// FlagValue bundles a flag's parsed value with whether it was explicitly
// set on the command line (as opposed to left at its zero value).
type FlagValue struct {
	Value  interface{}
	WasSet bool
}

// apiKeyEnvNames are the env vars CheckOverrides treats as already-resolved
// sources for the api-key key, beyond ${VAR} interpolation inside
// .cairnrc.yaml itself.
var apiKeyEnvNames = []string{"CAIRN_API_KEY", "ANTHROPIC_API_KEY"}

// CheckOverrides compares CLI flag values the caller explicitly set against
// the loaded config, returning one Override per flag that shadows a
// config-file or environment-sourced value.
func (c *Config) CheckOverrides(flags map[string]FlagValue) []Override {
	var out []Override
	for key, fv := range flags {
		if !fv.WasSet {
			continue
		}
		source, original := c.sourceFor(key)
		if source == SourceDefault {
			continue
		}
		out = append(out, Override{
			Key:            key,
			EffectiveValue: fv.Value,
			OverriddenBy:   SourceFlag,
			OriginalSource: source,
			OriginalValue:  original,
		})
	}
	return out
}

func (c *Config) sourceFor(key string) (Source, interface{}) {
	switch key {
	case "api-key":
		for _, env := range apiKeyEnvNames {
			if os.Getenv(env) != "" {
				return SourceEnvVar, "<redacted>"
			}
		}
		if c.AI.EnvVarName() != "" {
			return SourceEnvVar, "<redacted>"
		}
		if c.AI.APIKey != "" {
			return SourceConfigFile, "<redacted>"
		}
	case "model":
		if c.AI.Model != "" {
			return SourceConfigFile, c.AI.Model
		}
	}
	return SourceDefault, nil
}

// LogOverride writes a human-readable line describing an override to
// stderr; callers guard this behind a verbose flag.
func LogOverride(o Override) {
	var originalDesc string
	switch o.OriginalSource {
	case SourceConfigFile:
		originalDesc = "config file"
	case SourceEnvVar:
		originalDesc = "environment variable"
	default:
		originalDesc = string(o.OriginalSource)
	}
	fmt.Fprintf(os.Stderr, "config: --%s overrides %s value (was: %v, now: %v)\n",
		o.Key, originalDesc, o.OriginalValue, o.EffectiveValue)
}
