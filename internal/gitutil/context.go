// Package gitutil collects structured git context for a commit: file
// statistics, diff summaries, and the fields the journal entry generator and
// Boundary Filter need as prompt context.
package gitutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/cairnlog/cairnlog/internal/timewindow"
)

// SizeClass classifies a commit's overall diff size.
type SizeClass string

const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

// FileStats counts changed files by coarse category.
type FileStats struct {
	Source int
	Config int
	Docs   int
	Tests  int
}

// CommitContext is the structured git context passed to the Boundary Filter
// and the journal entry generator.
type CommitContext struct {
	Hash        string
	Author      string
	DateISO     string
	Message     string
	ChangedFiles []string
	FileStats   FileStats
	DiffSummary string
	SizeClass   SizeClass
	IsMerge     bool
}

// OpenRepo opens the git repository rooted at path.
func OpenRepo(path string) (*git.Repository, error) {
	return git.PlainOpen(path)
}

// ResolveCommit resolves a commit hash (full or abbreviated via the
// underlying object store) to a commit object.
func ResolveCommit(repo *git.Repository, hash string) (*object.Commit, error) {
	h, err := repo.ResolveRevision(plumbing.Revision(hash))
	if err != nil {
		return nil, err
	}
	return repo.CommitObject(*h)
}

// ToCommitInfo converts a resolved commit into the minimal view
// internal/timewindow operates on.
func ToCommitInfo(commit *object.Commit) timewindow.CommitInfo {
	info := timewindow.CommitInfo{
		TimestampMs: timewindow.TimestampMs(commit.Author.When),
		ParentCount: commit.NumParents(),
	}
	if info.ParentCount == 1 {
		parent, err := commit.Parent(0)
		if err != nil {
			info.FirstParentErr = err
		} else {
			info.FirstParentMs = timewindow.TimestampMs(parent.Author.When)
		}
	}
	return info
}

// BuildCommitContext derives a CommitContext from a resolved commit,
// excluding files matching any of the glob patterns in excludePatterns.
func BuildCommitContext(commit *object.Commit, excludePatterns []string) (CommitContext, error) {
	ctx := CommitContext{
		Hash:    commit.Hash.String(),
		Author:  commit.Author.Name,
		DateISO: commit.Author.When.UTC().Format(time.RFC3339),
		Message: strings.TrimRight(commit.Message, "\n"),
		IsMerge: commit.NumParents() > 1,
	}

	stats, err := commitStats(commit)
	if err != nil {
		return ctx, err
	}

	totalLines := 0
	for _, s := range stats {
		if matchesAny(s.Name, excludePatterns) {
			continue
		}
		ctx.ChangedFiles = append(ctx.ChangedFiles, s.Name)
		classify(&ctx.FileStats, s.Name)
		totalLines += s.Addition + s.Deletion
	}

	ctx.DiffSummary = summarizeStats(stats, excludePatterns)
	ctx.SizeClass = sizeClassFor(totalLines)

	return ctx, nil
}

func commitStats(commit *object.Commit) (object.FileStats, error) {
	stats, err := commit.Stats()
	if err != nil {
		return nil, fmt.Errorf("gitutil: reading commit stats: %w", err)
	}
	return stats, nil
}

func sizeClassFor(totalLines int) SizeClass {
	switch {
	case totalLines < 10:
		return SizeSmall
	case totalLines < 50:
		return SizeMedium
	default:
		return SizeLarge
	}
}

func classify(stats *FileStats, name string) {
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.ToLower(filepath.Base(name))

	switch {
	case strings.Contains(base, "test") || strings.Contains(name, "/tests/") || strings.Contains(name, "/test/"):
		stats.Tests++
	case ext == ".md" || ext == ".rst" || ext == ".txt" || strings.Contains(name, "docs/"):
		stats.Docs++
	case ext == ".yaml" || ext == ".yml" || ext == ".json" || ext == ".toml" || ext == ".ini" || base == "dockerfile":
		stats.Config++
	default:
		stats.Source++
	}
}

func summarizeStats(stats object.FileStats, excludePatterns []string) string {
	var lines []string
	for _, s := range stats {
		if matchesAny(s.Name, excludePatterns) {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: +%d -%d", s.Name, s.Addition, s.Deletion))
	}
	return strings.Join(lines, "\n")
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
		if ok, _ := filepath.Match(p, filepath.Base(name)); ok {
			return true
		}
	}
	return false
}

// IsJournalOnly reports whether every file touched by the commit lies under
// journalRoot (relative to the repo root), meaning this commit is itself a
// journal write and should not trigger another one.
func IsJournalOnly(commit *object.Commit, journalRoot string) (bool, error) {
	stats, err := commitStats(commit)
	if err != nil {
		return false, err
	}
	if len(stats) == 0 {
		return false, nil
	}
	root := filepath.ToSlash(strings.TrimSuffix(journalRoot, "/"))
	for _, s := range stats {
		name := filepath.ToSlash(s.Name)
		if !strings.HasPrefix(name, root+"/") && name != root {
			return false, nil
		}
	}
	return true, nil
}
