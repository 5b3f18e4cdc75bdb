// Package platform enumerates candidate Cursor workspace-storage directories
// for the current operating system, including WSL-to-Windows-mount detection.
package platform

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrUnsupported is returned when the running OS is none of the platforms
// this package knows how to locate Cursor storage on.
var ErrUnsupported = errors.New("platform: unsupported operating system")

// WorkspaceStoragePaths returns candidate Cursor workspace-storage
// directories in priority order: an explicit env override first, then
// platform defaults. No further fallback locations (portable or
// system-wide installs) are listed. Duplicates are removed, preserving
// first occurrence. Paths are returned whether or not they exist; callers
// filter for existence.
func WorkspaceStoragePaths() ([]string, error) {
	var candidates []string

	if override := os.Getenv("CURSOR_WORKSPACE_PATH"); override != "" {
		candidates = append(candidates, override)
	}

	defaults, err := defaultPaths()
	if err != nil {
		return nil, err
	}
	candidates = append(candidates, defaults...)

	return dedup(candidates), nil
}

func defaultPaths() ([]string, error) {
	if isWSL() {
		return wslPaths(), nil
	}

	switch runtime.GOOS {
	case "darwin":
		return macPaths(), nil
	case "linux":
		return linuxPaths(), nil
	case "windows":
		return windowsPaths(), nil
	default:
		return nil, ErrUnsupported
	}
}

func macPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, "Library", "Application Support", "Cursor", "User", "workspaceStorage"),
	}
}

func linuxPaths() []string {
	var out []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		out = append(out, filepath.Join(xdg, "Cursor", "User", "workspaceStorage"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		out = append(out, filepath.Join(home, ".config", "Cursor", "User", "workspaceStorage"))
	}
	return out
}

func windowsPaths() []string {
	var out []string
	if appData := os.Getenv("APPDATA"); appData != "" {
		out = append(out, filepath.Join(appData, "Cursor", "User", "workspaceStorage"))
	}
	if profile := os.Getenv("USERPROFILE"); profile != "" {
		out = append(out, filepath.Join(profile, "AppData", "Roaming", "Cursor", "User", "workspaceStorage"))
	}
	return out
}

// wslPaths enumerates /mnt/c/Users/*/AppData/Roaming/Cursor/User/workspaceStorage
// for every user directory found, then falls through to the Linux defaults,
// since a WSL install may also run Cursor natively inside the Linux side.
func wslPaths() []string {
	var out []string

	usersRoot := "/mnt/c/Users"
	entries, err := os.ReadDir(usersRoot)
	if err == nil {
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			out = append(out, filepath.Join(usersRoot, e.Name(), "AppData", "Roaming", "Cursor", "User", "workspaceStorage"))
		}
	}

	out = append(out, linuxPaths()...)
	return out
}

// isWSL detects Windows Subsystem for Linux by reading /proc/version for a
// "microsoft" or "wsl" substring, falling back to the WSL_DISTRO_NAME and
// WSL_INTEROP environment variables.
func isWSL() bool {
	if runtime.GOOS != "linux" {
		return false
	}

	if data, err := os.ReadFile("/proc/version"); err == nil {
		lower := strings.ToLower(string(data))
		if strings.Contains(lower, "microsoft") || strings.Contains(lower, "wsl") {
			return true
		}
	}

	if os.Getenv("WSL_DISTRO_NAME") != "" || os.Getenv("WSL_INTEROP") != "" {
		return true
	}

	return false
}

// GlobalDBPath returns the global state database path that sits alongside
// a workspace-storage directory: Cursor stores per-message bodies in
// <User>/globalStorage/state.vscdb, a sibling of
// <User>/workspaceStorage.
func GlobalDBPath(workspaceStorageDir string) string {
	return filepath.Join(filepath.Dir(workspaceStorageDir), "globalStorage", "state.vscdb")
}

func dedup(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
