// Package config loads cairnlog's YAML configuration: the typed
// journal/git/ai/telemetry schema from spec.md §6, resolved from
// <repo>/.cairnrc.yaml (falling back to ~/.cairnrc.yaml), with a single pass
// of ${VAR} environment interpolation applied to the raw file before
// decoding. Unknown keys are ignored with a warning, never an error.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/cairnlog/cairnlog/internal/debug"
	"github.com/cairnlog/cairnlog/internal/errkind"
)

// JournalConfig controls where and how journal entries are written.
type JournalConfig struct {
	Path         string `mapstructure:"path"`
	AutoGenerate bool   `mapstructure:"auto_generate"`
	IncludeChat  bool   `mapstructure:"include_chat"`
	IncludeMood  bool   `mapstructure:"include_mood"`
}

// GitConfig controls which changed files the git context collector ignores.
type GitConfig struct {
	ExcludePatterns []string `mapstructure:"exclude_patterns"`
}

// AIConfig holds the AI provider key and model. The field name
// openai_api_key is retained verbatim from spec.md §6's schema even though
// cairnlog's provider is Anthropic; it is simply the configured credential.
type AIConfig struct {
	APIKey string `mapstructure:"openai_api_key"`
	Model  string `mapstructure:"model"`

	// envVarName records which ${VAR} token (if any) resolved APIKey, so
	// internal/aiprovider can recognize auth errors that name it.
	envVarName string
}

// EnvVarName returns the environment variable name the API key was
// interpolated from, or "" if it was a literal value or unset.
func (a AIConfig) EnvVarName() string { return a.envVarName }

// TelemetryConfig controls whether spans are recorded and where (informational
// only; cairnlog never exports telemetry, see SPEC_FULL.md §1).
type TelemetryConfig struct {
	Enabled     bool     `mapstructure:"enabled"`
	ServiceName string   `mapstructure:"service_name"`
	Exporters   []string `mapstructure:"exporters"`
}

// Config is cairnlog's fully resolved, typed configuration.
type Config struct {
	Journal   JournalConfig   `mapstructure:"journal"`
	Git       GitConfig       `mapstructure:"git"`
	AI        AIConfig        `mapstructure:"ai"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`

	// MinVersion, if set, is the lowest cairn version (a "vX.Y.Z" semver
	// string) this repo's config is known to work with; the cairn version
	// command warns rather than errors when the running binary is older.
	MinVersion string `mapstructure:"min_version"`

	// SourcePath is the config file actually loaded, "" if none was found
	// and defaults apply.
	SourcePath string
}

func defaults() *Config {
	return &Config{
		Journal: JournalConfig{
			Path:         "journal",
			AutoGenerate: true,
			IncludeChat:  true,
			IncludeMood:  true,
		},
		Git: GitConfig{
			ExcludePatterns: []string{".git/**", "journal/**"},
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
		},
	}
}

// Load resolves configuration for the repository at repoPath: it walks up
// from repoPath looking for .cairnrc.yaml, falling back to
// ~/.cairnrc.yaml, applies ${VAR} interpolation, and decodes into Config.
// A missing config file is not an error; defaults apply. An unresolved
// ${VAR} token is a Config-kind error.
func Load(repoPath string) (*Config, error) {
	cfg := defaults()

	path, raw, err := findAndRead(repoPath)
	if err != nil {
		return nil, errkind.New(errkind.Config, path, "check that .cairnrc.yaml is readable", err)
	}
	if raw == nil {
		debug.Logf("config: no .cairnrc.yaml found; using defaults")
		return cfg, nil
	}
	cfg.SourcePath = path

	apiKeyEnvVar := apiKeyEnvVarName(raw)

	interpolated, missing := interpolate(raw)
	if len(missing) > 0 {
		return nil, errkind.New(errkind.Config, path,
			"set the referenced environment variable(s) or remove the ${VAR} token",
			unresolvedVarsError(missing))
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(interpolated)); err != nil {
		return nil, errkind.New(errkind.Config, path, "check .cairnrc.yaml's YAML syntax", err)
	}

	for _, key := range v.AllKeys() {
		if !isKnownKey(key) {
			debug.Logf("config: ignoring unknown key %q", key)
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		ErrorUnused:      false,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errkind.New(errkind.Config, path, "internal decoder setup failed", err)
	}
	if err := dec.Decode(v.AllSettings()); err != nil {
		return nil, errkind.New(errkind.Config, path, "check .cairnrc.yaml's field types", err)
	}

	cfg.AI.envVarName = apiKeyEnvVar
	return cfg, nil
}

// findAndRead walks up from repoPath looking for .cairnrc.yaml, falling
// back to ~/.cairnrc.yaml. Returns (path, nil, nil) semantics: raw is nil
// if no file was found anywhere.
func findAndRead(repoPath string) (string, []byte, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		abs = repoPath
	}
	for dir := abs; ; {
		candidate := filepath.Join(dir, ".cairnrc.yaml")
		if _, statErr := os.Stat(candidate); statErr == nil {
			raw, readErr := os.ReadFile(candidate)
			return candidate, raw, readErr
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil, nil
	}
	candidate := filepath.Join(home, ".cairnrc.yaml")
	if _, statErr := os.Stat(candidate); statErr != nil {
		return "", nil, nil
	}
	raw, readErr := os.ReadFile(candidate)
	return candidate, raw, readErr
}

var knownTopLevelSections = map[string]bool{
	"journal":     true,
	"git":         true,
	"ai":          true,
	"telemetry":   true,
	"min_version": true,
}

func isKnownKey(key string) bool {
	top := strings.SplitN(key, ".", 2)[0]
	return knownTopLevelSections[top]
}
