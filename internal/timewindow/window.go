// Package timewindow derives the commit-scoped time window used to bound
// chat message extraction.
package timewindow

import "time"

// Strategy identifies how a Window was derived.
type Strategy string

const (
	CommitBased  Strategy = "commit_based"
	FirstCommit  Strategy = "first_commit"
	Fallback24h  Strategy = "fallback_24h"
	MergeSkipped Strategy = "merge_skipped"
)

const dayMs = int64(24 * 3600 * 1000)

// Window is a commit-scoped time range in milliseconds.
type Window struct {
	Strategy      Strategy
	StartMs       int64
	EndMs         int64
	DurationHours float64
}

// Result is the outcome of a window calculation. Window is nil only for a
// merge-skipped commit.
type Result struct {
	Window        *Window
	ErrorCategory string
}

// CommitInfo is the minimal view of a commit timewindow needs: its own
// timestamp, its parent count, and (if it has one) its first parent's
// timestamp. gitutil builds this from a real repository; tests build it
// directly.
type CommitInfo struct {
	TimestampMs       int64
	ParentCount       int
	FirstParentMs     int64
	FirstParentErr    error
}

// IsMergeCommit reports whether a commit has more than one parent.
func IsMergeCommit(c CommitInfo) bool {
	return c.ParentCount > 1
}

// Calculate derives the time window for a single commit.
func Calculate(c CommitInfo) Result {
	if IsMergeCommit(c) {
		return Result{Window: nil}
	}

	if c.ParentCount == 0 {
		return Result{Window: &Window{
			Strategy:      FirstCommit,
			StartMs:       c.TimestampMs - dayMs,
			EndMs:         c.TimestampMs,
			DurationHours: 24.0,
		}}
	}

	if c.FirstParentErr != nil {
		return Result{
			Window: &Window{
				Strategy:      Fallback24h,
				StartMs:       c.TimestampMs - dayMs,
				EndMs:         c.TimestampMs,
				DurationHours: 24.0,
			},
			ErrorCategory: "git_command",
		}
	}

	durationHours := float64(c.TimestampMs-c.FirstParentMs) / 3600000.0

	return Result{Window: &Window{
		Strategy:      CommitBased,
		StartMs:       c.FirstParentMs,
		EndMs:         c.TimestampMs,
		DurationHours: durationHours,
	}}
}

// FallbackWindow builds a 24-hour-lookback fallback window ending at nowMs,
// used when the commit reference itself can't be resolved.
func FallbackWindow(nowMs int64, errorCategory string) Result {
	return Result{
		Window: &Window{
			Strategy:      Fallback24h,
			StartMs:       nowMs - dayMs,
			EndMs:         nowMs,
			DurationHours: 24.0,
		},
		ErrorCategory: errorCategory,
	}
}

// TimestampMs converts a time.Time to Cursor's millisecond epoch format.
func TimestampMs(t time.Time) int64 {
	return t.UnixMilli()
}
