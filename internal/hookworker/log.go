// Package hookworker orchestrates the per-commit pipeline the git
// post-commit hook invokes: resolve git and chat context, filter it through
// the AI boundary detector, generate journal sections, write the entry, and
// check whether any period summaries are now due. Every step degrades
// gracefully; the process that wraps this package always exits zero.
package hookworker

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const logRotateSize = 10 * 1024 * 1024 // 10MB

// Logger writes commit-timestamped lines to <repo>/.git/hooks/cairn.log,
// renaming the file to a ".old" sibling and starting fresh once it exceeds
// 10MB. This is a custom rotator rather than lumberjack's numbered-backup
// scheme: spec.md's log path is bit-exact and expects exactly one ".old"
// sibling, not lumberjack's timestamped backup naming.
type Logger struct {
	mu          sync.Mutex
	path        string
	commitStamp time.Time
}

// NewLogger opens (creating if needed) the hook log at
// <repoPath>/.git/hooks/cairn.log. commitStamp is used for every log line's
// timestamp instead of wall-clock, to stay consistent with the rest of the
// pipeline.
func NewLogger(repoPath string, commitStamp time.Time) (*Logger, error) {
	dir := filepath.Join(repoPath, ".git", "hooks")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("hookworker: creating hooks directory: %w", err)
	}
	return &Logger{
		path:        filepath.Join(dir, "cairn.log"),
		commitStamp: commitStamp,
	}, nil
}

// Logf appends a timestamped line, rotating first if the file has grown
// past logRotateSize.
func (l *Logger) Logf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rotateIfNeeded()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s\n", l.commitStamp.Format(time.RFC3339), fmt.Sprintf(format, args...))
	f.WriteString(line)
}

func (l *Logger) rotateIfNeeded() {
	info, err := os.Stat(l.path)
	if err != nil || info.Size() < logRotateSize {
		return
	}
	oldPath := l.path + ".old"
	os.Remove(oldPath)
	os.Rename(l.path, oldPath)
}
