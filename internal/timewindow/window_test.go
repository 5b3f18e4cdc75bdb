package timewindow

import (
	"errors"
	"testing"
)

func TestCalculate_FirstCommit(t *testing.T) {
	now := int64(1700000000000)
	result := Calculate(CommitInfo{TimestampMs: now, ParentCount: 0})

	if result.Window == nil {
		t.Fatal("expected non-nil window")
	}
	if result.Window.Strategy != FirstCommit {
		t.Errorf("strategy = %s, want %s", result.Window.Strategy, FirstCommit)
	}
	if result.Window.StartMs != now-dayMs {
		t.Errorf("start = %d, want %d", result.Window.StartMs, now-dayMs)
	}
	if result.Window.DurationHours != 24.0 {
		t.Errorf("duration = %.2f, want 24.0", result.Window.DurationHours)
	}
}

func TestCalculate_MergeCommit(t *testing.T) {
	result := Calculate(CommitInfo{TimestampMs: 1700000000000, ParentCount: 2})
	if result.Window != nil {
		t.Errorf("expected nil window for merge commit, got %+v", result.Window)
	}
}

func TestCalculate_NormalCommit(t *testing.T) {
	current := int64(1700003600000)
	parent := int64(1700000000000)
	result := Calculate(CommitInfo{TimestampMs: current, ParentCount: 1, FirstParentMs: parent})

	if result.Window.Strategy != CommitBased {
		t.Errorf("strategy = %s, want %s", result.Window.Strategy, CommitBased)
	}
	if result.Window.StartMs != parent || result.Window.EndMs != current {
		t.Errorf("window = [%d, %d], want [%d, %d]", result.Window.StartMs, result.Window.EndMs, parent, current)
	}
	if result.Window.DurationHours != 1.0 {
		t.Errorf("duration = %.2f, want 1.0", result.Window.DurationHours)
	}
}

func TestCalculate_FallbackOnParentError(t *testing.T) {
	current := int64(1700000000000)
	result := Calculate(CommitInfo{
		TimestampMs:    current,
		ParentCount:    1,
		FirstParentErr: errors.New("parent object corrupt"),
	})

	if result.Window.Strategy != Fallback24h {
		t.Errorf("strategy = %s, want %s", result.Window.Strategy, Fallback24h)
	}
	if result.ErrorCategory != "git_command" {
		t.Errorf("error category = %s, want git_command", result.ErrorCategory)
	}
}

func TestFallbackWindow(t *testing.T) {
	now := int64(1700000000000)
	result := FallbackWindow(now, "invalid_commit")
	if result.Window.StartMs != now-dayMs {
		t.Errorf("start = %d, want %d", result.Window.StartMs, now-dayMs)
	}
	if result.ErrorCategory != "invalid_commit" {
		t.Errorf("error category = %s, want invalid_commit", result.ErrorCategory)
	}
}

func TestWindowInvariant_StartBeforeEnd(t *testing.T) {
	results := []Result{
		Calculate(CommitInfo{TimestampMs: 2000, ParentCount: 0}),
		Calculate(CommitInfo{TimestampMs: 2000, ParentCount: 1, FirstParentMs: 1000}),
		FallbackWindow(2000, "invalid_commit"),
	}
	for _, r := range results {
		if r.Window == nil {
			continue
		}
		if r.Window.StartMs > r.Window.EndMs {
			t.Errorf("window violates start <= end: %+v", r.Window)
		}
	}
}
