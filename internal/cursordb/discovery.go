package cursordb

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cairnlog/cairnlog/internal/debug"
)

const (
	stateFileName  = "state.vscdb"
	recencyWindow  = 48 * time.Hour
)

var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	".git":         true,
}

// DiscoverDatabases recursively walks root for files named state.vscdb
// modified within the last 48 hours, returning absolute paths sorted
// newest-first. Permission errors are logged and skipped, never fatal.
func DiscoverDatabases(root string) ([]string, error) {
	type found struct {
		path string
		mod  time.Time
	}
	var matches []found

	cutoff := time.Now().Add(-recencyWindow)

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			debug.Logf("discovery: skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if name != "." && (skipDirs[name] || (len(name) > 0 && name[0] == '.' && path != root)) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != stateFileName {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			debug.Logf("discovery: stat failed for %s: %v", path, err)
			return nil
		}
		if info.ModTime().Before(cutoff) {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		matches = append(matches, found{path: abs, mod: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].mod.After(matches[j].mod)
	})

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.path
	}
	return out, nil
}
