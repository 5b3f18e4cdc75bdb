package platform

import (
	"os"
	"runtime"
	"testing"
)

func TestWorkspaceStoragePaths_EnvOverrideWins(t *testing.T) {
	t.Setenv("CURSOR_WORKSPACE_PATH", "/custom/storage")

	paths, err := WorkspaceStoragePaths()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) == 0 || paths[0] != "/custom/storage" {
		t.Fatalf("expected override first, got %v", paths)
	}
}

func TestWorkspaceStoragePaths_Dedup(t *testing.T) {
	t.Setenv("CURSOR_WORKSPACE_PATH", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	paths, err := WorkspaceStoragePaths()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]bool)
	for _, p := range paths {
		if seen[p] {
			t.Fatalf("duplicate path in result: %s", p)
		}
		seen[p] = true
	}
}

func TestIsWSL_EnvVarFallback(t *testing.T) {
	if os.Getenv("GOOS") == "windows" {
		t.Skip("not applicable on windows")
	}
	t.Setenv("WSL_DISTRO_NAME", "Ubuntu")
	// isWSL only returns true on linux GOOS; there, with WSL_DISTRO_NAME set,
	// the env var branch must report WSL even when /proc/version is absent
	// or inconclusive on the test machine.
	if runtime.GOOS == "linux" && !isWSL() {
		t.Error("expected isWSL() = true on linux with WSL_DISTRO_NAME set")
	}
}

func TestDedup(t *testing.T) {
	in := []string{"a", "b", "a", "c", "b"}
	out := dedup(in)
	want := []string{"a", "b", "c"}
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("got %v, want %v", out, want)
		}
	}
}
