package hookworker

import (
	"context"
	"time"
)

const defaultTimeout = 30 * time.Second

// RunDetached launches p.Run in a background goroutine bounded by timeout
// (default 30s if timeout <= 0) and returns immediately, never blocking the
// git operation that triggered it. Grounded on the teacher's fire-and-forget
// goroutine dispatch for lifecycle hooks: the caller gets no result channel
// because by design nothing downstream waits on one — a worker that runs
// past its deadline is simply abandoned, not reported as a failure.
func RunDetached(p *Pipeline, repoPath, commitHash string, timeout time.Duration) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := p.Run(ctx, repoPath, commitHash); err != nil {
			p.Log.Logf("hookworker: detached run ended with error: %v", err)
		}
	}()
}
