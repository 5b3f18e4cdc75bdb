package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Journal.Path != "journal" {
		t.Errorf("Journal.Path = %q, want %q", cfg.Journal.Path, "journal")
	}
	if !cfg.Journal.AutoGenerate {
		t.Errorf("Journal.AutoGenerate = false, want true")
	}
	if cfg.SourcePath != "" {
		t.Errorf("SourcePath = %q, want empty when no config file exists", cfg.SourcePath)
	}
}

func TestLoad_ReadsFileAndWalksUp(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	yaml := "journal:\n  path: notes\n  auto_generate: false\ngit:\n  exclude_patterns:\n    - vendor/**\n"
	if err := os.WriteFile(filepath.Join(root, ".cairnrc.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(sub)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Journal.Path != "notes" {
		t.Errorf("Journal.Path = %q, want %q", cfg.Journal.Path, "notes")
	}
	if cfg.Journal.AutoGenerate {
		t.Errorf("Journal.AutoGenerate = true, want false (explicit override)")
	}
	if len(cfg.Git.ExcludePatterns) != 1 || cfg.Git.ExcludePatterns[0] != "vendor/**" {
		t.Errorf("Git.ExcludePatterns = %v", cfg.Git.ExcludePatterns)
	}
}

func TestLoad_InterpolatesEnvVars(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CAIRN_TEST_KEY", "sk-abc123")

	yaml := "ai:\n  openai_api_key: ${CAIRN_TEST_KEY}\n"
	if err := os.WriteFile(filepath.Join(dir, ".cairnrc.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.APIKey != "sk-abc123" {
		t.Errorf("AI.APIKey = %q, want %q", cfg.AI.APIKey, "sk-abc123")
	}
	if cfg.AI.EnvVarName() != "CAIRN_TEST_KEY" {
		t.Errorf("AI.EnvVarName() = %q, want %q", cfg.AI.EnvVarName(), "CAIRN_TEST_KEY")
	}
}

func TestLoad_UnresolvedEnvVarIsConfigError(t *testing.T) {
	dir := t.TempDir()
	yaml := "ai:\n  openai_api_key: ${CAIRN_DEFINITELY_UNSET_VAR}\n"
	if err := os.WriteFile(filepath.Join(dir, ".cairnrc.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected an error for an unresolved ${VAR} token")
	}
}

func TestLoad_UnknownKeysIgnored(t *testing.T) {
	dir := t.TempDir()
	yaml := "journal:\n  path: notes\nsomething_unknown:\n  foo: bar\n"
	if err := os.WriteFile(filepath.Join(dir, ".cairnrc.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Journal.Path != "notes" {
		t.Errorf("Journal.Path = %q, want %q", cfg.Journal.Path, "notes")
	}
}

func TestRoundTrip_InterpolationIsIdempotentUnderStableEnv(t *testing.T) {
	t.Setenv("CAIRN_TEST_KEY2", "stable-value")
	raw := []byte("ai:\n  openai_api_key: ${CAIRN_TEST_KEY2}\n")

	first, missing := interpolate(raw)
	if len(missing) != 0 {
		t.Fatalf("unexpected missing vars: %v", missing)
	}
	second, missing := interpolate(first)
	if len(missing) != 0 {
		t.Fatalf("unexpected missing vars on second pass: %v", missing)
	}
	if string(first) != string(second) {
		t.Errorf("interpolate is not idempotent: %q vs %q", first, second)
	}
}
