package hookworker

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch re-runs the pipeline against HEAD whenever .cairnrc.yaml changes,
// for local iteration on journal prompts without making a new commit each
// time. It blocks until ctx is cancelled or the watcher fails to start.
func Watch(ctx context.Context, p *Pipeline, repoPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	configPath := filepath.Join(repoPath, ".cairnrc.yaml")
	if err := watcher.Add(repoPath); err != nil {
		return err
	}

	p.Log.Logf("watch: watching %s for changes", configPath)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != configPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.Log.Logf("watch: %s changed, re-running pipeline against HEAD", configPath)
			if err := p.Run(ctx, repoPath, ""); err != nil {
				p.Log.Logf("watch: pipeline run failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.Log.Logf("watch: watcher error: %v", err)
		}
	}
}
