package hookworker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cairnlog/cairnlog/internal/ui"
)

const hookMarker = "# cairnlog post-commit hook"

// hookBody is the shell one-liner the post-commit hook runs: invoke the
// worker with the repo root as sole argument, discard all output, and
// never let a worker crash fail the commit.
func hookBody() string {
	return fmt.Sprintf("%s\ncairn hook-worker \"$PWD\" > /dev/null 2>&1 || true\n", hookMarker)
}

// InstallPostCommitHook writes (or updates) <repoPath>/.git/hooks/post-commit
// to invoke cairn's hook worker. If an existing hook already has cairnlog's
// marker, it is left untouched. If a different, non-cairnlog hook already
// exists, the caller's prompt decides whether to append or skip — this
// mirrors the teacher's chain-or-overwrite-or-skip flow for existing git
// hooks rather than silently clobbering another tool's hook.
func InstallPostCommitHook(repoPath string, confirm func(prompt string) bool) error {
	hookPath := filepath.Join(repoPath, ".git", "hooks", "post-commit")

	existing, err := os.ReadFile(hookPath)
	if err == nil {
		if strings.Contains(string(existing), hookMarker) {
			return nil
		}
		if !confirm(fmt.Sprintf("%s already has a post-commit hook. Append cairnlog's hook to it?", repoPath)) {
			return nil
		}
		appended := string(existing)
		if !strings.HasSuffix(appended, "\n") {
			appended += "\n"
		}
		appended += "\n" + hookBody()
		return os.WriteFile(hookPath, []byte(appended), 0o755)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("hookworker: reading existing hook: %w", err)
	}

	script := "#!/bin/sh\n" + hookBody()
	if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
		return fmt.Errorf("hookworker: creating hooks directory: %w", err)
	}
	return os.WriteFile(hookPath, []byte(script), 0o755)
}

// PromptInstall is the default confirm callback for interactive CLI use,
// built on internal/ui's yes/no prompt.
func PromptInstall(prompt string) bool {
	return ui.PromptYesNo(prompt, true)
}
