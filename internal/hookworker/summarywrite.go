package hookworker

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeSummaryFile creates path's parent directory on demand and writes
// content, refusing to overwrite an existing file — the trigger's
// existence check already decided this summary is due, but a second guard
// here keeps a generate-then-write race from clobbering a summary another
// process just finished.
func writeSummaryFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("hookworker: %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("hookworker: creating directory for %s: %w", path, err)
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
